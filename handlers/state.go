// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/folium-11/elo-arena/arena"
	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

type StateHandler struct {
	store    store.Store
	cfg      cliparse.Config
	sessions *auth.Manager
}

func NewStateHandler(st store.Store, cfg cliparse.Config, sessions *auth.Manager) *StateHandler {
	return &StateHandler{store: st, cfg: cfg, sessions: sessions}
}

// Export handles GET /api/admin/export
// Streams the full state document as a JSON download.
func (h *StateHandler) Export(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleSuperAdmin); !ok {
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="arena-export.json"`)
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		slog.Error("failed to encode export", "error", err)
	}
}

// Import handles POST /api/admin/import
// Replaces the document with the uploaded one. With preserveSignIn the
// current sign-in configuration, voter sessions, and device index
// survive and only arena content is taken from the import.
func (h *StateHandler) Import(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleSuperAdmin)
	if !ok {
		return
	}
	if auth.NeedsStepUp(sess, time.Now()) {
		middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonStepUpRequired)
		return
	}

	var req models.ImportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.Data == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	next := arena.Import(st, req.Data, req.PreserveSignIn)
	if err := h.store.Put(r.Context(), next); err != nil {
		slog.Error("failed to persist import", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	slog.Info("state imported", "items", len(next.Items), "preserve_signin", req.PreserveSignIn)
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// ResetArena handles POST /api/admin/resetArena
// Clears all arena content but keeps the sign-in configuration, active
// voter sessions, and device identity index.
func (h *StateHandler) ResetArena(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleSuperAdmin)
	if !ok {
		return
	}
	if auth.NeedsStepUp(sess, time.Now()) {
		middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonStepUpRequired)
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	next := arena.ResetContent(st)
	if err := h.store.Put(r.Context(), next); err != nil {
		slog.Error("failed to persist reset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	slog.Info("arena content reset")
	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
