// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"32 bytes", 32, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestHashHint(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		value  string
	}{
		{"user agent", "secret", "Mozilla/5.0 (X11; Linux x86_64)"},
		{"ip address", "secret", "192.0.2.1"},
		{"empty value", "secret", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashHint(tt.secret, tt.value)

			// Should be 64 hex characters (SHA-256)
			if len(hash) != 64 {
				t.Errorf("HashHint() length = %d, want 64", len(hash))
			}

			// Should be deterministic
			if hash != HashHint(tt.secret, tt.value) {
				t.Error("HashHint() is not deterministic")
			}
		})
	}

	// Different values should produce different hashes
	if HashHint("secret", "a") == HashHint("secret", "b") {
		t.Error("HashHint() produced same hash for different values")
	}

	// Different secrets should produce different hashes
	if HashHint("secret1", "a") == HashHint("secret2", "a") {
		t.Error("HashHint() produced same hash for different secrets")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal", "token-value", "token-value", true},
		{"different", "token-value", "other-value", false},
		{"different length", "short", "longer-value", false},
		{"both empty", "", "", true},
		{"one empty", "x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConstantTimeEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ConstantTimeEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPickRole(t *testing.T) {
	tests := []struct {
		name     string
		password string
		adminPW  string
		superPW  string
		wantRole Role
		wantOK   bool
	}{
		{"matches admin", "a-pw", "a-pw", "s-pw", RoleAdmin, true},
		{"matches super", "s-pw", "a-pw", "s-pw", RoleSuperAdmin, true},
		{"super checked first on collision", "same", "same", "same", RoleSuperAdmin, true},
		{"no match", "wrong", "a-pw", "s-pw", "", false},
		{"empty submission", "", "a-pw", "s-pw", "", false},
		{"empty admin password never matches", "", "", "s-pw", "", false},
		{"only admin configured", "a-pw", "a-pw", "", RoleAdmin, true},
		{"nothing configured", "anything", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := PickRole(tt.password, tt.adminPW, tt.superPW)
			if ok != tt.wantOK {
				t.Fatalf("PickRole() ok = %v, want %v", ok, tt.wantOK)
			}
			if role != tt.wantRole {
				t.Errorf("PickRole() role = %q, want %q", role, tt.wantRole)
			}
		})
	}
}

func TestNeedsStepUp(t *testing.T) {
	now := time.Now()
	fresh := now.Add(-5 * time.Minute)
	stale := now.Add(-StepUpWindow - time.Minute)

	tests := []struct {
		name     string
		stepUpAt *time.Time
		want     bool
	}{
		{"never verified", nil, true},
		{"fresh verification", &fresh, false},
		{"stale verification", &stale, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := Session{StepUpAt: tt.stepUpAt}
			if got := NeedsStepUp(sess, now); got != tt.want {
				t.Errorf("NeedsStepUp() = %v, want %v", got, tt.want)
			}
		})
	}
}
