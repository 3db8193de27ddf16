// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/folium-11/elo-arena/models"
)

type memoryBlob struct {
	data        []byte
	contentType string
}

// Memory is an in-memory Store and BlobStore used by tests.
type Memory struct {
	mu      sync.Mutex
	state   *models.State
	version string
	blobs   map[string]memoryBlob

	// FailPuts makes every Put return an error, for exercising
	// persist-failure paths.
	FailPuts bool
}

func NewMemory() *Memory {
	return &Memory{blobs: map[string]memoryBlob{}}
}

func (m *Memory) Get(ctx context.Context) (*models.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return models.NewState(), nil
	}
	return cloneState(m.state)
}

func (m *Memory) Put(ctx context.Context, st *models.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPuts {
		return ErrPutFailed
	}
	clone, err := cloneState(st)
	if err != nil {
		return err
	}
	m.state = clone
	m.version = uuid.NewString()
	return nil
}

func (m *Memory) Head(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *Memory) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		buf := make([]byte, len(data))
		copy(buf, data)
		m.blobs[key] = memoryBlob{data: buf, contentType: contentType}
	}
	return "/uploads/" + key, nil
}

func (m *Memory) Open(ctx context.Context, key string) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	return b.data, b.contentType, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// HasBlob reports whether a key is present. Test helper.
func (m *Memory) HasBlob(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok
}

// BlobCount reports how many blobs are stored. Test helper.
func (m *Memory) BlobCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
