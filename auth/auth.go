// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// Role is an administrative privilege level carried by session tokens.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashHint computes a keyed one-way hash of a client hint (user-agent,
// IP) used for soft session binding. Never store the raw value.
func HashHint(secret, v string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(v))
	return hex.EncodeToString(h.Sum(nil))
}

// ConstantTimeEqual compares two strings without leaking timing
// information about where they diverge.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// PickRole matches a submitted password against the configured secrets,
// highest privilege first. Returns false when nothing matches. Empty
// configured passwords never match.
func PickRole(password, adminPassword, superPassword string) (Role, bool) {
	if superPassword != "" && ConstantTimeEqual(password, superPassword) {
		return RoleSuperAdmin, true
	}
	if adminPassword != "" && ConstantTimeEqual(password, adminPassword) {
		return RoleAdmin, true
	}
	return "", false
}

// NeedsStepUp reports whether the session must re-verify its password
// before sensitive operations. A session with no step-up stamp, or one
// older than the window, needs a fresh verification.
func NeedsStepUp(sess Session, now time.Time) bool {
	if sess.StepUpAt == nil {
		return true
	}
	return now.Sub(*sess.StepUpAt) > StepUpWindow
}
