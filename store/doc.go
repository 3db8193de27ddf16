// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists the arena state document and uploaded blobs.

# Interfaces

Store reads and replaces the single state document as a whole, with a
cheap version marker for staleness checks:

	Get(ctx) (*models.State, error)  // default document when empty
	Put(ctx, st) error               // whole-document replace
	Head(ctx) (string, error)        // opaque version, changes per Put

BlobStore holds uploaded binary content under write-once keys.

# SQL Backend

SQL stores the document as one JSON row and blobs in a sibling table,
speaking both sqlite (modernc.org/sqlite) and postgres (lib/pq):

	s, err := store.OpenSQL(cfg.DatabaseType, cfg.DatabaseURL)
	err = s.CreateSchema()

The driver must be blank-imported by the caller. Placeholders are
rebound to $n automatically for postgres.

# Caching

Cached wraps a Store with an in-process read cache:

	cached := store.NewCached(s)

Reads inside the 3-second revalidation window are served from memory;
after that the backing version marker is compared before trusting the
cache. Local writes update the cache immediately. A failed Put drops
the cache so the process never keeps serving state it failed to
persist. Every Get returns a deep copy, so handlers can do
read-modify-write without aliasing the cached document.

# Memory Backend

Memory implements both interfaces for tests, including a FailPuts
switch for exercising persist-failure paths.
*/
package store
