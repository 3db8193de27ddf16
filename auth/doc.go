// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin roles, session tokens, and password checks.

# Sessions

Sessions are stateless HS256 JWTs; no server-side session table exists.
A Manager signs and verifies them:

	m := auth.NewManager(secret)
	sess, token, err := m.Issue(roles, uaHash, ipHash)
	sess, ok := m.Verify(token, uaHash)

Verify never returns an error: a tampered, expired, or mismatched token
is indistinguishable from no token. Tokens bind softly to the client's
hashed user-agent. Refresh slides the 72-hour expiry on every verified
request.

# Roles

Two privilege levels:

	auth.RoleAdmin       // day-to-day arena management
	auth.RoleSuperAdmin  // export/import, reset, sign-in config

PickRole matches a submitted password against the configured secrets in
constant time, super-admin first:

	role, ok := auth.PickRole(password, adminPW, superPW)

# Step-Up

Destructive operations require a fresh password verification within a
20-minute window:

	if auth.NeedsStepUp(sess, time.Now()) { ... }

# Hashing Helpers

	hash := auth.HashHint(secret, userAgent) // HMAC-SHA256 hex
	id, err := auth.GenerateID(16)           // 32 hex characters
	auth.ConstantTimeEqual(a, b)
*/
package auth
