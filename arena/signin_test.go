// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import (
	"errors"
	"testing"
	"time"

	"github.com/folium-11/elo-arena/models"
)

func signInState() *models.State {
	st := models.NewState()
	st.SignInEnabled = true
	return st
}

func TestEffectiveSlots(t *testing.T) {
	st := signInState()
	st.SlotLimits["pair"] = 2
	st.SlotLimits["banned"] = 0
	st.SlotLimits["negative"] = -3
	st.ExtraSlots["pair"] = 1
	st.ExtraSlots["bonus-only"] = 2

	tests := []struct {
		name string
		want int
	}{
		{"unknown", 1},
		{"pair", 3},
		{"banned", 0},
		{"negative", 0},
		{"bonus-only", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveSlots(st, tt.name); got != tt.want {
				t.Errorf("EffectiveSlots(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestSignInDisabled(t *testing.T) {
	st := models.NewState()
	err := SignIn(st, "dev-1", "alice", time.Now())
	if !errors.Is(err, ErrSignInDisabled) {
		t.Errorf("SignIn() error = %v, want ErrSignInDisabled", err)
	}
}

func TestSignInAllowList(t *testing.T) {
	st := signInState()
	st.AllowedNames = []string{"alice", "bob"}

	if err := SignIn(st, "dev-1", "alice", time.Now()); err != nil {
		t.Errorf("SignIn(allowed) error = %v", err)
	}
	if err := SignIn(st, "dev-2", "mallory", time.Now()); !errors.Is(err, ErrNameNotAllowed) {
		t.Errorf("SignIn(not allowed) error = %v, want ErrNameNotAllowed", err)
	}

	// An empty allow-list admits any name.
	st.AllowedNames = []string{}
	if err := SignIn(st, "dev-3", "walk-in", time.Now()); err != nil {
		t.Errorf("SignIn(open list) error = %v", err)
	}
}

func TestSignInSlotCapacity(t *testing.T) {
	st := signInState()
	st.SlotLimits["shared"] = 2
	st.ExtraSlots["shared"] = 1
	now := time.Now()

	// Capacity 3: three distinct devices succeed, the fourth is refused.
	for i, dev := range []string{"dev-1", "dev-2", "dev-3"} {
		if err := SignIn(st, dev, "shared", now); err != nil {
			t.Fatalf("SignIn() #%d error = %v", i+1, err)
		}
	}
	if err := SignIn(st, "dev-4", "shared", now); !errors.Is(err, ErrNameFull) {
		t.Fatalf("SignIn() over capacity error = %v, want ErrNameFull", err)
	}

	// Freeing a slot admits the waiting device.
	if removed := SignOutNames(st, []string{"shared"}); removed != 3 {
		t.Fatalf("SignOutNames() removed = %d, want 3", removed)
	}
	if err := SignIn(st, "dev-4", "shared", now); err != nil {
		t.Errorf("SignIn() after force sign-out error = %v", err)
	}
}

func TestSignInReclaimSameName(t *testing.T) {
	st := signInState()
	now := time.Now()

	// Default capacity is one; re-claiming from the same device is not a
	// second slot.
	if err := SignIn(st, "dev-1", "alice", now); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := SignIn(st, "dev-1", "alice", now.Add(time.Minute)); err != nil {
		t.Errorf("re-claim from same device error = %v", err)
	}
	if err := SignIn(st, "dev-2", "alice", now); !errors.Is(err, ErrNameFull) {
		t.Errorf("second device error = %v, want ErrNameFull", err)
	}
}

func TestSignInOverwritesPriorBinding(t *testing.T) {
	st := signInState()
	now := time.Now()

	if err := SignIn(st, "dev-1", "alice", now); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := SignIn(st, "dev-1", "bob", now.Add(time.Minute)); err != nil {
		t.Fatalf("SignIn(new name) error = %v", err)
	}

	sess := st.ActiveSessions["dev-1"]
	if sess.Name != "bob" {
		t.Errorf("binding = %q, want bob", sess.Name)
	}
	// The alice slot is free again.
	if err := SignIn(st, "dev-2", "alice", now); err != nil {
		t.Errorf("SignIn(freed name) error = %v", err)
	}
}

func TestSessionsByName(t *testing.T) {
	st := signInState()
	now := time.Now()
	st.ActiveSessions["dev-1"] = models.VoterSession{Name: "alice", Since: now}
	st.ActiveSessions["dev-2"] = models.VoterSession{Name: "alice", Since: now}
	st.ActiveSessions["dev-3"] = models.VoterSession{Name: "bob", Since: now}

	counts := SessionsByName(st)
	if counts["alice"] != 2 || counts["bob"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestSignOutNamesSelective(t *testing.T) {
	st := signInState()
	now := time.Now()
	st.ActiveSessions["dev-1"] = models.VoterSession{Name: "alice", Since: now}
	st.ActiveSessions["dev-2"] = models.VoterSession{Name: "bob", Since: now}
	st.ActiveSessions["dev-3"] = models.VoterSession{Name: "carol", Since: now}

	removed := SignOutNames(st, []string{"alice", "carol", "unknown"})
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, ok := st.ActiveSessions["dev-2"]; !ok {
		t.Error("unrelated session was removed")
	}
	if len(st.ActiveSessions) != 1 {
		t.Errorf("sessions left = %d, want 1", len(st.ActiveSessions))
	}
}
