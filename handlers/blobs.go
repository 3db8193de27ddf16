// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

type BlobHandler struct {
	blobs store.BlobStore
}

func NewBlobHandler(blobs store.BlobStore) *BlobHandler {
	return &BlobHandler{blobs: blobs}
}

// Serve handles GET /uploads/{key}
// Uploaded content is immutable, so it can be cached forever.
func (h *BlobHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound)
		return
	}

	data, contentType, err := h.blobs.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound)
			return
		}
		slog.Error("failed to open blob", "key", key, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write blob response", "key", key, "error", err)
	}
}
