// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/folium-11/elo-arena/models"
)

// RevalidateWindow bounds how stale the in-process cache may be when
// another process writes to the same backing store.
const RevalidateWindow = 3 * time.Second

// Cached wraps a Store with an in-process read cache. Local writes
// update the cache immediately; reads re-validate the backing version
// marker once the revalidation window lapses. A failed Put drops the
// cache so the process never keeps serving state it failed to persist.
type Cached struct {
	inner  Store
	window time.Duration

	mu        sync.Mutex
	state     *models.State
	version   string
	checkedAt time.Time
}

func NewCached(inner Store) *Cached {
	return &Cached{inner: inner, window: RevalidateWindow}
}

func (c *Cached) Get(ctx context.Context) (*models.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != nil {
		if time.Since(c.checkedAt) < c.window {
			return cloneState(c.state)
		}
		version, err := c.inner.Head(ctx)
		if err == nil && version == c.version {
			c.checkedAt = time.Now()
			return cloneState(c.state)
		}
	}

	st, err := c.inner.Get(ctx)
	if err != nil {
		return nil, err
	}
	version, err := c.inner.Head(ctx)
	if err != nil {
		version = ""
	}
	c.state, _ = cloneState(st)
	c.version = version
	c.checkedAt = time.Now()
	return st, nil
}

func (c *Cached) Put(ctx context.Context, st *models.State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.inner.Put(ctx, st); err != nil {
		// The in-memory copy no longer matches the backing store;
		// drop it rather than serve unconfirmed state.
		c.state = nil
		c.version = ""
		return err
	}

	version, err := c.inner.Head(ctx)
	if err != nil {
		version = ""
	}
	c.state, _ = cloneState(st)
	c.version = version
	c.checkedAt = time.Now()
	return nil
}

func (c *Cached) Head(ctx context.Context) (string, error) {
	return c.inner.Head(ctx)
}

// cloneState deep-copies a document so callers can do read-modify-write
// without mutating the cached copy in place.
func cloneState(st *models.State) (*models.State, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	out := &models.State{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	out.Normalize()
	return out, nil
}
