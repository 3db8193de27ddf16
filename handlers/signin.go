// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/folium-11/elo-arena/arena"
	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

type SignInHandler struct {
	store    store.Store
	cfg      cliparse.Config
	sessions *auth.Manager
}

func NewSignInHandler(st store.Store, cfg cliparse.Config, sessions *auth.Manager) *SignInHandler {
	return &SignInHandler{store: st, cfg: cfg, sessions: sessions}
}

// Login handles POST /api/signin/login
// Binds the caller's device to a voter name.
func (h *SignInHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	did := deviceID(r)
	if did == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonDeviceMissing)
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if err := arena.SignIn(st, did, req.Name, time.Now()); err != nil {
		switch {
		case errors.Is(err, arena.ErrSignInDisabled):
			middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonSignInDisabled)
		case errors.Is(err, arena.ErrNameNotAllowed):
			middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonNotAllowed)
		case errors.Is(err, arena.ErrNameFull):
			middleware.ErrorResponse(w, http.StatusConflict, models.ReasonNameFull)
		default:
			slog.Error("sign-in failed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		}
		return
	}

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist sign-in", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	slog.Info("voter signed in", "name", req.Name, "device", did)
	middleware.JSONResponse(w, http.StatusOK, models.SignInResponse{OK: true, Name: req.Name})
}

// Status handles GET /api/signin/status
func (h *SignInHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	resp := models.SignInStatusResponse{Enabled: st.SignInEnabled}
	if did := deviceID(r); did != "" {
		if sess, ok := st.ActiveSessions[did]; ok && sess.Name != "" {
			resp.SignedIn = true
			resp.Name = sess.Name
		}
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Enable handles POST /api/admin/signin/enable
func (h *SignInHandler) Enable(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.EnableRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	h.mutate(w, r, func(st *models.State) {
		st.SignInEnabled = req.Enabled
	}, func(st *models.State) {
		slog.Info("sign-in toggled", "enabled", req.Enabled)
		middleware.JSONResponse(w, http.StatusOK, models.EnableResponse{OK: true, Enabled: req.Enabled})
	})
}

// Allowed handles POST /api/admin/signin/allowed
// Replaces the allow-list wholesale. An empty list disables filtering.
func (h *SignInHandler) Allowed(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.AllowedNamesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	names := normalizeNames(req.Names)

	h.mutate(w, r, func(st *models.State) {
		st.AllowedNames = names
	}, func(st *models.State) {
		middleware.JSONResponse(w, http.StatusOK, models.AllowedNamesResponse{OK: true, Count: len(names)})
	})
}

// Extra handles POST /api/admin/signin/extra
// Grants (or revokes, with 0) extra concurrent slots for one name.
func (h *SignInHandler) Extra(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.ExtraSlotsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Extra < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	h.mutate(w, r, func(st *models.State) {
		if req.Extra == 0 {
			delete(st.ExtraSlots, req.Name)
		} else {
			st.ExtraSlots[req.Name] = req.Extra
		}
	}, func(st *models.State) {
		middleware.JSONResponse(w, http.StatusOK, models.ExtraSlotsResponse{OK: true, Name: req.Name, Extra: req.Extra})
	})
}

// ForceSignOut handles POST /api/admin/signin/force-signout
func (h *SignInHandler) ForceSignOut(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.ForceSignOutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	names := normalizeNames(req.Names)
	if len(names) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	removed := 0
	h.mutate(w, r, func(st *models.State) {
		removed = arena.SignOutNames(st, names)
	}, func(st *models.State) {
		slog.Info("voters force-signed-out", "names", names, "removed", removed)
		middleware.JSONResponse(w, http.StatusOK, models.ForceSignOutResponse{OK: true, Removed: removed})
	})
}

// ConfigGet handles GET /api/signin/config
// Super-admin combined view of the sign-in configuration plus a count of
// active sessions per name.
func (h *SignInHandler) ConfigGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleSuperAdmin); !ok {
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, signInConfig(st))
}

// ConfigPost handles POST /api/signin/config
// Partial update: only the fields present in the payload change.
func (h *SignInHandler) ConfigPost(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleSuperAdmin); !ok {
		return
	}

	var req models.SignInConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	h.mutate(w, r, func(st *models.State) {
		if req.SignInEnabled != nil {
			st.SignInEnabled = *req.SignInEnabled
		}
		if req.AllowedNamesText != nil {
			st.AllowedNames = splitNames(*req.AllowedNamesText)
		}
		if req.SlotLimits != nil {
			st.SlotLimits = req.SlotLimits
		}
		if req.ExtraSlots != nil {
			st.ExtraSlots = req.ExtraSlots
		}
	}, func(st *models.State) {
		middleware.JSONResponse(w, http.StatusOK, signInConfig(st))
	})
}

// mutate is the shared read-modify-write loop for sign-in admin
// endpoints: load, apply, persist, then respond from the saved state.
func (h *SignInHandler) mutate(w http.ResponseWriter, r *http.Request, apply func(*models.State), respond func(*models.State)) {
	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	apply(st)

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}
	respond(st)
}

func signInConfig(st *models.State) models.SignInConfigResponse {
	return models.SignInConfigResponse{
		SignInEnabled:  st.SignInEnabled,
		AllowedNames:   st.AllowedNames,
		SlotLimits:     st.SlotLimits,
		ExtraSlots:     st.ExtraSlots,
		SessionsByName: arena.SessionsByName(st),
	}
}

// normalizeNames trims entries and drops blanks and duplicates,
// preserving first-seen order.
func normalizeNames(raw []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// splitNames parses a newline-separated allow-list as pasted into the
// admin textarea.
func splitNames(text string) []string {
	return normalizeNames(strings.Split(text, "\n"))
}
