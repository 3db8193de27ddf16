// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/device"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

type DeviceHandler struct {
	store    store.Store
	cfg      cliparse.Config
	resolver *device.Resolver
}

func NewDeviceHandler(st store.Store, cfg cliparse.Config, resolver *device.Resolver) *DeviceHandler {
	return &DeviceHandler{store: st, cfg: cfg, resolver: resolver}
}

// Identify handles POST /api/device/identify
// Resolves the submitted signal bundle to a stable device id and sets
// the long-lived identity cookie.
func (h *DeviceHandler) Identify(w http.ResponseWriter, r *http.Request) {
	var req models.IdentifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil || req.Sig == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	chosen := h.resolver.Resolve(st.DeviceRecords, st.DeviceBuckets, *req.Sig, time.Now())

	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist device index", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	setCookie(w, h.cfg, DeviceCookie, chosen, deviceCookieMaxAge)

	slog.Info("device identified", "device_id", chosen, "known_devices", len(st.DeviceRecords))
	middleware.JSONResponse(w, http.StatusOK, models.IdentifyResponse{DeviceID: chosen})
}
