// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import (
	"errors"
	"time"

	"github.com/folium-11/elo-arena/models"
)

var (
	ErrSignInDisabled = errors.New("sign-in is disabled")
	ErrNameNotAllowed = errors.New("name not on allow-list")
	ErrNameFull       = errors.New("no free slots for name")
)

// EffectiveSlots is a voter name's concurrent sign-in capacity: its base
// slot limit (default 1 when unset) plus any extra slot bonus.
func EffectiveSlots(st *models.State, name string) int {
	base := 1
	if v, ok := st.SlotLimits[name]; ok {
		base = max(0, v)
	}
	extra := 0
	if v, ok := st.ExtraSlots[name]; ok {
		extra = max(0, v)
	}
	return base + extra
}

// SessionsByName counts how many devices currently hold each name.
func SessionsByName(st *models.State) map[string]int {
	counts := map[string]int{}
	for _, sess := range st.ActiveSessions {
		if sess.Name != "" {
			counts[sess.Name]++
		}
	}
	return counts
}

// SignIn binds a device to a voter name, enforcing the allow-list and
// per-name slot capacity. A device holds at most one name; a prior
// binding is overwritten.
func SignIn(st *models.State, deviceID, name string, now time.Time) error {
	if !st.SignInEnabled {
		return ErrSignInDisabled
	}
	if len(st.AllowedNames) > 0 && !containsString(st.AllowedNames, name) {
		return ErrNameNotAllowed
	}

	counts := SessionsByName(st)
	current := counts[name]
	// Re-claiming the same name from the same device is not a new slot.
	if prior, ok := st.ActiveSessions[deviceID]; ok && prior.Name == name {
		current--
	}
	if current >= EffectiveSlots(st, name) {
		return ErrNameFull
	}

	st.ActiveSessions[deviceID] = models.VoterSession{Name: name, Since: now}
	return nil
}

// SignOutNames removes every active session bound to one of the given
// names and reports how many were removed.
func SignOutNames(st *models.State, names []string) int {
	removed := 0
	for did, sess := range st.ActiveSessions {
		if containsString(names, sess.Name) {
			delete(st.ActiveSessions, did)
			removed++
		}
	}
	return removed
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
