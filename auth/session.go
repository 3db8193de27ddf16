// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionTTL is the sliding lifetime of an admin session.
	SessionTTL = 72 * time.Hour
	// StepUpWindow is how long a password re-verification stays fresh.
	StepUpWindow = 20 * time.Minute
)

// Session is the decoded, verified content of an admin session token.
// The token is self-contained: no server-side session table exists.
type Session struct {
	ID         string
	Roles      []Role
	CSRFSecret string
	UAHash     string
	IPHash     string
	CreatedAt  time.Time
	LastSeen   time.Time
	ExpiresAt  time.Time
	StepUpAt   *time.Time
}

// HasAnyRole reports whether the session carries at least one of the
// allowed roles.
func (s Session) HasAnyRole(allowed ...Role) bool {
	for _, want := range allowed {
		for _, have := range s.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsSuper reports whether the session holds the super-admin role.
func (s Session) IsSuper() bool {
	return s.HasAnyRole(RoleSuperAdmin)
}

type sessionClaims struct {
	Roles    []string `json:"roles"`
	CSRF     string   `json:"csrf"`
	UAHash   string   `json:"ua"`
	IPHash   string   `json:"ip"`
	LastSeen int64    `json:"lastSeen"`
	StepUpAt int64    `json:"stepUpAt,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session tokens.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue creates a new session bound to the caller's hint hashes and
// returns it along with its encoded token.
func (m *Manager) Issue(roles []Role, uaHash, ipHash string) (Session, string, error) {
	now := time.Now()
	csrf, err := GenerateID(32)
	if err != nil {
		return Session{}, "", err
	}
	sess := Session{
		ID:         uuid.NewString(),
		Roles:      roles,
		CSRFSecret: csrf,
		UAHash:     uaHash,
		IPHash:     ipHash,
		CreatedAt:  now,
		LastSeen:   now,
		ExpiresAt:  now.Add(SessionTTL),
	}
	token, err := m.Encode(sess)
	if err != nil {
		return Session{}, "", err
	}
	return sess, token, nil
}

// Encode serializes and signs a session as an HS256 JWT.
func (m *Manager) Encode(sess Session) (string, error) {
	claims := sessionClaims{
		Roles:    roleStrings(sess.Roles),
		CSRF:     sess.CSRFSecret,
		UAHash:   sess.UAHash,
		IPHash:   sess.IPHash,
		LastSeen: sess.LastSeen.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	if sess.StepUpAt != nil {
		claims.StepUpAt = sess.StepUpAt.Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks a token's signature, expiry, and user-agent binding.
// Any failure yields (zero, false): a bad token is indistinguishable
// from no token, and verification never raises an error to the caller.
func (m *Manager) Verify(token, uaHash string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Session{}, false
	}
	if claims.UAHash != uaHash {
		return Session{}, false
	}
	sess := Session{
		ID:         claims.ID,
		Roles:      parseRoles(claims.Roles),
		CSRFSecret: claims.CSRF,
		UAHash:     claims.UAHash,
		IPHash:     claims.IPHash,
		LastSeen:   time.Unix(claims.LastSeen, 0),
	}
	if claims.IssuedAt != nil {
		sess.CreatedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.StepUpAt != 0 {
		t := time.Unix(claims.StepUpAt, 0)
		sess.StepUpAt = &t
	}
	return sess, true
}

// Refresh slides the session's expiry forward and re-encodes it. Called
// on every verified request so active sessions never lapse.
func (m *Manager) Refresh(sess Session) (Session, string, error) {
	now := time.Now()
	sess.LastSeen = now
	sess.ExpiresAt = now.Add(SessionTTL)
	token, err := m.Encode(sess)
	if err != nil {
		return Session{}, "", err
	}
	return sess, token, nil
}

func roleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func parseRoles(raw []string) []Role {
	out := make([]Role, 0, len(raw))
	for _, r := range raw {
		switch Role(r) {
		case RoleAdmin, RoleSuperAdmin:
			out = append(out, Role(r))
		}
	}
	return out
}
