// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Elo Arena API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - ArenaHandler: home snapshot, pair fetch, voting, leaderboards
  - DeviceHandler: fingerprint-based device identification
  - SignInHandler: voter sign-in plus its admin configuration
  - AdminHandler: admin login/logout/status and step-up verification
  - ItemsHandler: item add/upload/rename/remove/reset, arena title
  - StateHandler: export, import, reset (super-admin)
  - BlobHandler: serving uploaded images

Handlers are created via constructor functions:

	arenaHandler := handlers.NewArenaHandler(st, cfg)
	itemsHandler := handlers.NewItemsHandler(st, blobs, cfg, sessions)

# Request Flow

Every mutating handler follows the same read-modify-write shape: load
the whole state document, apply the domain operation, persist, respond.
A failed persist is the caller's failure (500 store_error); no handler
reports success for unconfirmed state.

# Cookies

Two independent identity axes:

  - did: long-lived device identifier (public voting surface)
  - sid: signed admin session token (admin surface)

Arena reads mint a random did when none is present so pairs stay sticky
even for devices that never call identify.

# Admin Gating

Admin handlers authenticate via the sid cookie and require the X-CSRF
header to match the session's CSRF secret on mutations. Role checks are
per-route: most management takes admin or super_admin; export, import,
reset, and the combined sign-in config take super_admin only. Import
and reset additionally require a fresh step-up verification.
*/
package handlers
