// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Elo Arena API server.

Elo Arena is a pairwise-comparison voting service: visitors are shown two
items at a time, pick a winner, and the service maintains Elo ratings both
globally and per device.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SESSION_SECRET=... DEVICE_ID_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3319 -t sqlite -d "file:arena.db"

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): Secret for session token signing
  - DEVICE_ID_SECRET (-device-secret): Secret for device ID hashing
  - DATABASE_URL (-d): Connection string (required for postgres)

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - ADMIN_PASSWORD, SUPER_ADMIN_PASSWORD: Admin login secrets
  - SUPER_ADMIN_EXCLUSIVE: One super-admin at a time (default: true)
  - SECURE_COOKIES: Set the Secure cookie attribute (default: false)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (arena, device, sign-in, admin, items, state)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: The state document plus request/response types
  - arena: Pairing, Elo rating, leaderboards, sign-in rules
  - device: Fingerprint-based device resolution
  - auth: Roles, session tokens, password checks
  - store: State document and blob persistence with caching
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
