// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import (
	"math/rand"

	"github.com/folium-11/elo-arena/models"
)

// pickRandomPair selects two distinct items uniformly at random.
func pickRandomPair(items []models.Item) (models.Item, models.Item, bool) {
	if len(items) < 2 {
		return models.Item{}, models.Item{}, false
	}
	first := rand.Intn(len(items))
	second := rand.Intn(len(items) - 1)
	if second >= first {
		second++
	}
	return items[first], items[second], true
}

func validPair(st *models.State, pair [2]string) bool {
	if pair[0] == pair[1] {
		return false
	}
	return ItemByID(st, pair[0]) != nil && ItemByID(st, pair[1]) != nil
}

// EnsurePair returns the device's current pair, assigning a new one only
// when none exists or the stored pair references removed items. Repeated
// calls without a vote in between return the identical pair. Returns
// mutated=true when the state document changed and must be persisted.
func EnsurePair(st *models.State, deviceID string) (pair []models.PublicItem, mutated bool) {
	if deviceID == "" || len(st.Items) < 2 {
		return nil, false
	}

	ids, ok := st.CurrentPairs[deviceID]
	if !ok || !validPair(st, ids) {
		a, b, ok := pickRandomPair(st.Items)
		if !ok {
			return nil, false
		}
		ids = [2]string{a.ID, b.ID}
		st.CurrentPairs[deviceID] = ids
		mutated = true
	}

	first := ItemByID(st, ids[0])
	second := ItemByID(st, ids[1])
	return []models.PublicItem{SanitizeItem(st, *first), SanitizeItem(st, *second)}, mutated
}

// AssignNewPair unconditionally picks and stores a fresh pair for the
// device, so the next fetch shows new items after a vote.
func AssignNewPair(st *models.State, deviceID string) []models.PublicItem {
	if deviceID == "" || len(st.Items) < 2 {
		return nil
	}
	a, b, ok := pickRandomPair(st.Items)
	if !ok {
		return nil
	}
	st.CurrentPairs[deviceID] = [2]string{a.ID, b.ID}
	return []models.PublicItem{SanitizeItem(st, a), SanitizeItem(st, b)}
}
