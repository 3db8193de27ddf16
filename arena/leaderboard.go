// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import (
	"math"
	"sort"

	"github.com/folium-11/elo-arena/models"
)

// LeaderboardReady reports whether there are enough items to rank.
func LeaderboardReady(st *models.State) bool {
	return len(st.Items) >= 2
}

// BuildGlobalLeaderboard maps every item to its rating row, sorted by
// rating descending and ranked from 1.
func BuildGlobalLeaderboard(st *models.State) []models.GlobalRow {
	rows := make([]models.GlobalRow, 0, len(st.Items))
	for _, it := range st.Items {
		rating, ok := st.GlobalRatings[it.ID]
		if !ok {
			rating = models.DefaultRating
		}
		wins := st.Wins[it.ID]
		appearances := st.Appearances[it.ID]
		winPct := 0
		if appearances > 0 {
			winPct = int(math.Round(float64(wins) / float64(appearances) * 100))
		}
		rows = append(rows, models.GlobalRow{
			ID:     it.ID,
			Name:   SanitizeItem(st, it).Name,
			Rating: rating,
			W:      wins,
			L:      appearances - wins,
			WP:     winPct,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rating > rows[j].Rating })
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// BuildPersonalLeaderboard builds the device-local view. With sign-in
// disabled every device sees its own rows ("anon"); with sign-in
// enabled the rows only appear once the device has a bound voter name.
func BuildPersonalLeaderboard(st *models.State, deviceID string) models.PersonalSnapshot {
	if !st.SignInEnabled {
		return models.PersonalSnapshot{
			Mode: models.PersonalModeAnon,
			Rows: personalRows(st, deviceID),
		}
	}

	if deviceID == "" {
		return models.PersonalSnapshot{Mode: models.PersonalModeSignedOut, Rows: []models.PersonalRow{}}
	}
	sess, ok := st.ActiveSessions[deviceID]
	if !ok || sess.Name == "" {
		return models.PersonalSnapshot{Mode: models.PersonalModeSignedOut, Rows: []models.PersonalRow{}}
	}

	return models.PersonalSnapshot{
		Mode:     models.PersonalModeSignedIn,
		Rows:     personalRows(st, deviceID),
		SignedIn: true,
		Name:     sess.Name,
	}
}

// personalRows converts a device's rating map to ranked rows, filtered
// to items that still exist.
func personalRows(st *models.State, deviceID string) []models.PersonalRow {
	rows := []models.PersonalRow{}
	if deviceID == "" {
		return rows
	}
	for id, rating := range st.PersonalRatings[deviceID] {
		it := ItemByID(st, id)
		if it == nil {
			continue
		}
		rows = append(rows, models.PersonalRow{
			ID:     id,
			Name:   SanitizeItem(st, *it).Name,
			Rating: rating,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].ID < rows[j].ID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
