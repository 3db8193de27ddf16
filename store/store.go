// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/folium-11/elo-arena/models"
)

// ErrNotFound is returned by blob lookups for unknown keys.
var ErrNotFound = errors.New("not found")

// ErrPutFailed is returned by the memory store when configured to
// simulate persistence failures.
var ErrPutFailed = errors.New("put failed")

// Store persists the single arena state document. The document is
// always read and replaced as a whole; there are no partial-field
// transactions, and concurrent writers race with last-write-wins.
type Store interface {
	// Get returns the current document, or a fresh default document
	// when nothing has been persisted yet.
	Get(ctx context.Context) (*models.State, error)
	// Put atomically replaces the whole document.
	Put(ctx context.Context, st *models.State) error
	// Head returns an opaque version marker that changes on every Put,
	// or "" when nothing has been persisted. Used for cheap staleness
	// checks without fetching the document.
	Head(ctx context.Context) (string, error)
}

// BlobStore persists uploaded binary content, content-addressed by a
// caller-supplied key. Keys are write-once; Delete exists only for
// best-effort compensation when a dependent state write fails.
type BlobStore interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Open(ctx context.Context, key string) (data []byte, contentType string, err error)
	Delete(ctx context.Context, key string) error
}
