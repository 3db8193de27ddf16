// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/testutil"
)

func TestServeBlob(t *testing.T) {
	mem := testutil.SetupTestStore(t)
	h := NewBlobHandler(mem)

	if _, err := mem.Store(context.Background(), "img-1", []byte("png-bytes"), "image/png"); err != nil {
		t.Fatalf("Failed to seed blob: %v", err)
	}

	req := httptest.NewRequest("GET", "/uploads/img-1", nil)
	req.SetPathValue("key", "img-1")
	w := httptest.NewRecorder()

	h.Serve(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "png-bytes" {
		t.Errorf("Body = %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("Cache-Control = %q, want immutable", cc)
	}
}

func TestServeBlobNotFound(t *testing.T) {
	mem := testutil.SetupTestStore(t)
	h := NewBlobHandler(mem)

	req := httptest.NewRequest("GET", "/uploads/missing", nil)
	req.SetPathValue("key", "missing")
	w := httptest.NewRecorder()

	h.Serve(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
	testutil.AssertErrorReason(t, w, models.ReasonNotFound)
}
