// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import (
	"errors"

	"github.com/folium-11/elo-arena/models"
)

var ErrItemNotFound = errors.New("item not found")

// ItemByID returns a pointer into the state's item slice, or nil.
func ItemByID(st *models.State, id string) *models.Item {
	for i := range st.Items {
		if st.Items[i].ID == id {
			return &st.Items[i]
		}
	}
	return nil
}

// SanitizeItem is the client-facing view of an item: overrides applied,
// internal fields stripped.
func SanitizeItem(st *models.State, it models.Item) models.PublicItem {
	name := it.Name
	if o := st.NameOverrides[it.ID]; o != "" {
		name = o
	}
	return models.PublicItem{ID: it.ID, Name: name, ImageURL: it.ImageURL}
}

// SanitizeItems maps the whole item list for the client.
func SanitizeItems(st *models.State) []models.PublicItem {
	out := make([]models.PublicItem, 0, len(st.Items))
	for _, it := range st.Items {
		out = append(out, SanitizeItem(st, it))
	}
	return out
}

// AddItem appends a new item and initializes its stats.
func AddItem(st *models.State, it models.Item) {
	st.Items = append(st.Items, it)
	EnsureItemStats(st, it.ID)
}

// RenameItem changes an item's display name, keeping the override map
// in sync so older exported data stays consistent.
func RenameItem(st *models.State, id, name string) error {
	it := ItemByID(st, id)
	if it == nil {
		return ErrItemNotFound
	}
	it.Name = name
	st.NameOverrides[id] = name
	return nil
}

// RemoveItem deletes an item and cascades: ratings, counters, overrides,
// every device's personal rating entry, and any current pair that
// references it (forcing reassignment on the next fetch).
func RemoveItem(st *models.State, id string) error {
	if ItemByID(st, id) == nil {
		return ErrItemNotFound
	}

	kept := st.Items[:0]
	for _, it := range st.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	st.Items = kept

	delete(st.GlobalRatings, id)
	delete(st.Wins, id)
	delete(st.Appearances, id)
	delete(st.NameOverrides, id)

	for _, personal := range st.PersonalRatings {
		delete(personal, id)
	}
	for did, pair := range st.CurrentPairs {
		if pair[0] == id || pair[1] == id {
			delete(st.CurrentPairs, did)
		}
	}
	return nil
}

// ResetItemStats zeroes one item's global record back to defaults.
func ResetItemStats(st *models.State, id string) error {
	if ItemByID(st, id) == nil {
		return ErrItemNotFound
	}
	st.GlobalRatings[id] = models.DefaultRating
	st.Wins[id] = 0
	st.Appearances[id] = 0
	return nil
}
