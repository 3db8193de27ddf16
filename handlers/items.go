// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/folium-11/elo-arena/arena"
	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

// maxUploadBytes caps a whole multipart upload request.
const maxUploadBytes = 32 << 20

type ItemsHandler struct {
	store    store.Store
	blobs    store.BlobStore
	cfg      cliparse.Config
	sessions *auth.Manager
}

func NewItemsHandler(st store.Store, blobs store.BlobStore, cfg cliparse.Config, sessions *auth.Manager) *ItemsHandler {
	return &ItemsHandler{store: st, blobs: blobs, cfg: cfg, sessions: sessions}
}

// AddText handles POST /api/admin/items/add-text
func (h *ItemsHandler) AddText(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.AddTextRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	it := models.Item{ID: "txt-" + uuid.NewString(), Name: req.Name}
	arena.AddItem(st, it)

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	slog.Info("item added", "id", it.ID, "name", it.Name)
	middleware.JSONResponse(w, http.StatusOK, models.AddTextResponse{OK: true, ID: it.ID, Name: it.Name})
}

// Upload handles POST /api/admin/items/upload
// Accepts multipart "files" parts, stores each as a blob, and adds one
// image item per file. If the state write fails after the blobs are
// stored, the blobs are deleted best-effort so nothing is orphaned.
func (h *ItemsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	var storedKeys []string
	var added []models.PublicItem
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
			return
		}

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		key := "img-" + uuid.NewString()
		url, err := h.blobs.Store(r.Context(), key, data, contentType)
		if err != nil {
			slog.Error("failed to store upload", "key", key, "error", err)
			h.cleanupBlobs(r, storedKeys)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
			return
		}
		storedKeys = append(storedKeys, key)

		it := models.Item{ID: key, Name: itemNameFromFile(fh.Filename), ImageURL: url}
		arena.AddItem(st, it)
		added = append(added, arena.SanitizeItem(st, it))
	}

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist uploaded items", "error", err)
		h.cleanupBlobs(r, storedKeys)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	slog.Info("items uploaded", "count", len(added))
	middleware.JSONResponse(w, http.StatusOK, struct {
		OK    bool                `json:"ok"`
		Items []models.PublicItem `json:"items"`
	}{OK: true, Items: added})
}

func (h *ItemsHandler) cleanupBlobs(r *http.Request, keys []string) {
	for _, key := range keys {
		if err := h.blobs.Delete(r.Context(), key); err != nil {
			slog.Warn("failed to clean up blob", "key", key, "error", err)
		}
	}
}

// itemNameFromFile derives a display name from an uploaded filename by
// stripping the extension.
func itemNameFromFile(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return base
	}
	return name
}

// Rename handles POST /api/admin/items/rename
func (h *ItemsHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.RenameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" || req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	h.mutateItem(w, r, req.ID, func(st *models.State) error {
		return arena.RenameItem(st, req.ID, req.Name)
	}, func(st *models.State) {
		middleware.JSONResponse(w, http.StatusOK, models.RenameResponse{OK: true, ID: req.ID, Name: req.Name})
	})
}

// Remove handles POST /api/admin/items/remove
// Cascades across ratings, counters, overrides, personal tables, and any
// pairs referencing the item.
func (h *ItemsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.ItemIDRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.ID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	h.mutateItem(w, r, req.ID, func(st *models.State) error {
		return arena.RemoveItem(st, req.ID)
	}, func(st *models.State) {
		slog.Info("item removed", "id", req.ID)
		middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
	})
}

// ResetStats handles POST /api/admin/items/reset-stats
func (h *ItemsHandler) ResetStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.ItemIDRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.ID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	h.mutateItem(w, r, req.ID, func(st *models.State) error {
		return arena.ResetItemStats(st, req.ID)
	}, func(st *models.State) {
		middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
	})
}

// Title handles POST /api/admin/title
func (h *ItemsHandler) Title(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.TitleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = models.DefaultTitle
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}
	st.ArenaTitle = title
	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist title", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// mutateItem is the shared read-modify-write loop for single-item
// operations, translating ErrItemNotFound to a 404.
func (h *ItemsHandler) mutateItem(w http.ResponseWriter, r *http.Request, id string, apply func(*models.State) error, respond func(*models.State)) {
	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if err := apply(st); err != nil {
		if errors.Is(err, arena.ErrItemNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, models.ReasonNotFound)
			return
		}
		slog.Error("item mutation failed", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}
	respond(st)
}
