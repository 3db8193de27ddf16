// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/folium-11/elo-arena/arena"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

type ArenaHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewArenaHandler(st store.Store, cfg cliparse.Config) *ArenaHandler {
	return &ArenaHandler{store: st, cfg: cfg}
}

// ensureDeviceCookie returns the caller's device id, minting a random
// one when no identity cookie is present yet. Devices that never call
// identify still get sticky pairs and a personal rating table.
func (h *ArenaHandler) ensureDeviceCookie(w http.ResponseWriter, r *http.Request) string {
	if did := deviceID(r); did != "" {
		return did
	}
	did := uuid.NewString()
	setCookie(w, h.cfg, DeviceCookie, did, deviceCookieMaxAge)
	return did
}

// Home handles GET /api/home
// One round trip for everything the arena page needs.
func (h *ArenaHandler) Home(w http.ResponseWriter, r *http.Request) {
	did := h.ensureDeviceCookie(w, r)

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	pair, mutated := arena.EnsurePair(st, did)
	if mutated {
		if err := h.store.Put(r.Context(), st); err != nil {
			slog.Error("failed to persist assigned pair", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
			return
		}
	}

	personal := arena.BuildPersonalLeaderboard(st, did)
	personalRows := personal.Rows
	if personal.Mode == models.PersonalModeSignedOut {
		personalRows = []models.PersonalRow{}
	}

	items := arena.SanitizeItems(st)
	middleware.JSONResponse(w, http.StatusOK, models.HomeResponse{
		OK:            true,
		Title:         st.ArenaTitle,
		Items:         items,
		ItemsCount:    len(items),
		Pair:          pair,
		GlobalRows:    arena.BuildGlobalLeaderboard(st),
		PersonalMode:  personal.Mode,
		PersonalRows:  personalRows,
		SignInEnabled: st.SignInEnabled,
		SignedIn:      personal.SignedIn,
		MyName:        personal.Name,
	})
}

// Pair handles GET /api/pair
// Sticky: the same pair comes back until the device votes.
func (h *ArenaHandler) Pair(w http.ResponseWriter, r *http.Request) {
	did := h.ensureDeviceCookie(w, r)

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	pair, mutated := arena.EnsurePair(st, did)
	if mutated {
		if err := h.store.Put(r.Context(), st); err != nil {
			slog.Error("failed to persist assigned pair", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PairResponse{Pair: pair})
}

// Vote handles POST /api/vote
// Applies the Elo update and returns the refreshed leaderboard plus the
// device's next pair in a single payload.
func (h *ArenaHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}
	if req.WinnerID == "" || req.LoserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadInput)
		return
	}

	did := deviceID(r)

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if err := arena.ApplyVote(st, did, req.WinnerID, req.LoserID); err != nil {
		switch {
		case errors.Is(err, arena.ErrSignInRequired):
			middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonSignInRequired)
		case errors.Is(err, arena.ErrInvalidItem):
			middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonInvalid)
		default:
			slog.Error("vote failed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		}
		return
	}

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	slog.Info("vote recorded", "winner", req.WinnerID, "loser", req.LoserID, "device", did)

	pair, _ := arena.EnsurePair(st, did)
	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		OK:         true,
		GlobalRows: arena.BuildGlobalLeaderboard(st),
		Pair:       pair,
	})
}

// GlobalLeaderboard handles GET /api/leaderboard/global
func (h *ArenaHandler) GlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if !arena.LeaderboardReady(st) {
		middleware.JSONResponse(w, http.StatusOK, models.GlobalLeaderboardResponse{Ready: false, Rows: []models.GlobalRow{}})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.GlobalLeaderboardResponse{
		Ready: true,
		Rows:  arena.BuildGlobalLeaderboard(st),
	})
}

// PersonalLeaderboard handles GET /api/leaderboard/personal
func (h *ArenaHandler) PersonalLeaderboard(w http.ResponseWriter, r *http.Request) {
	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	personal := arena.BuildPersonalLeaderboard(st, deviceID(r))
	enabled := st.SignInEnabled || personal.Mode == models.PersonalModeAnon
	middleware.JSONResponse(w, http.StatusOK, models.PersonalLeaderboardResponse{
		Enabled:  enabled,
		SignedIn: personal.SignedIn,
		Name:     personal.Name,
		Rows:     personal.Rows,
	})
}
