// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Elo Arena API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, blobs, cfg)

# Endpoints

Health:

	GET /health

Public arena surface:

	GET  /api/home                 - Combined page snapshot
	GET  /api/pair                 - Current sticky pair
	POST /api/vote                 - Record a vote
	GET  /api/leaderboard/global   - Global rankings
	GET  /api/leaderboard/personal - Device-local rankings
	POST /api/device/identify      - Resolve fingerprint to device id
	GET  /uploads/{key}            - Uploaded images

Voter sign-in:

	POST /api/signin/login  - Claim a voter name
	GET  /api/signin/status - Sign-in state for this device

Admin authentication:

	POST /api/admin/login        - Password login (role by password)
	POST /api/admin/logout       - Clear session (idempotent)
	GET  /api/admin/status       - Effective role
	POST /api/auth/stepup/verify - Re-verify password

Item management (admin, requires sid cookie + X-CSRF):

	POST /api/admin/items/add-text
	POST /api/admin/items/upload
	POST /api/admin/items/rename
	POST /api/admin/items/remove
	POST /api/admin/items/reset-stats
	POST /api/admin/title

Sign-in administration (admin):

	POST /api/admin/signin/enable
	POST /api/admin/signin/allowed
	POST /api/admin/signin/extra
	POST /api/admin/signin/force-signout

Document lifecycle (super-admin):

	GET  /api/admin/export
	POST /api/admin/import
	POST /api/admin/resetArena
	GET  /api/signin/config
	POST /api/signin/config

# Handler Initialization

The router creates handler instances with dependency injection. The
session manager and device resolver are built from the configured
secrets and shared across handlers.
*/
package router
