// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import "github.com/folium-11/elo-arena/models"

// ResetContent clears all arena content while preserving the sign-in
// configuration, active voter sessions, device identity index, and the
// super-admin lock.
func ResetContent(st *models.State) *models.State {
	next := models.NewState()
	next.SignInEnabled = st.SignInEnabled
	next.AllowedNames = st.AllowedNames
	next.SlotLimits = st.SlotLimits
	next.ExtraSlots = st.ExtraSlots
	next.ActiveSessions = st.ActiveSessions
	next.DeviceRecords = st.DeviceRecords
	next.DeviceBuckets = st.DeviceBuckets
	next.SuperAdminLock = st.SuperAdminLock
	return next
}

// Import replaces the document with imported data. In preserve mode the
// current sign-in configuration, voter sessions, device index, and lock
// survive; only arena content is taken from the import. Current pairs
// are always cleared since imported item ids may not match.
func Import(current, data *models.State, preserveSignIn bool) *models.State {
	data.Normalize()
	if !preserveSignIn {
		data.CurrentPairs = map[string][2]string{}
		return data
	}

	next := ResetContent(current)
	next.ArenaTitle = data.ArenaTitle
	next.Items = data.Items
	next.GlobalRatings = data.GlobalRatings
	next.PersonalRatings = data.PersonalRatings
	next.Wins = data.Wins
	next.Appearances = data.Appearances
	next.NameOverrides = data.NameOverrides
	return next
}
