// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/device"
	"github.com/folium-11/elo-arena/handlers"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/store"
)

func NewRouter(st store.Store, blobs store.BlobStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	sessions := auth.NewManager(cfg.SessionSecret)
	resolver := device.NewResolver(cfg.DeviceIDSecret)

	// Initialize handlers
	arenaHandler := handlers.NewArenaHandler(st, cfg)
	deviceHandler := handlers.NewDeviceHandler(st, cfg, resolver)
	signInHandler := handlers.NewSignInHandler(st, cfg, sessions)
	adminHandler := handlers.NewAdminHandler(st, cfg, sessions)
	itemsHandler := handlers.NewItemsHandler(st, blobs, cfg, sessions)
	stateHandler := handlers.NewStateHandler(st, cfg, sessions)
	blobHandler := handlers.NewBlobHandler(blobs)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public arena surface
	mux.HandleFunc("GET /api/home", middleware.WithLogging(arenaHandler.Home))
	mux.HandleFunc("GET /api/pair", middleware.WithLogging(arenaHandler.Pair))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(arenaHandler.Vote))
	mux.HandleFunc("GET /api/leaderboard/global", middleware.WithLogging(arenaHandler.GlobalLeaderboard))
	mux.HandleFunc("GET /api/leaderboard/personal", middleware.WithLogging(arenaHandler.PersonalLeaderboard))
	mux.HandleFunc("POST /api/device/identify", middleware.WithLogging(deviceHandler.Identify))

	// Voter sign-in
	mux.HandleFunc("POST /api/signin/login", middleware.WithLogging(signInHandler.Login))
	mux.HandleFunc("GET /api/signin/status", middleware.WithLogging(signInHandler.Status))

	// Admin authentication
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", middleware.WithLogging(adminHandler.Logout))
	mux.HandleFunc("GET /api/admin/status", middleware.WithLogging(adminHandler.Status))
	mux.HandleFunc("POST /api/auth/stepup/verify", middleware.WithLogging(adminHandler.StepUpVerify))

	// Item management (admin)
	mux.HandleFunc("POST /api/admin/items/add-text", middleware.WithLogging(itemsHandler.AddText))
	mux.HandleFunc("POST /api/admin/items/upload", middleware.WithLogging(itemsHandler.Upload))
	mux.HandleFunc("POST /api/admin/items/rename", middleware.WithLogging(itemsHandler.Rename))
	mux.HandleFunc("POST /api/admin/items/remove", middleware.WithLogging(itemsHandler.Remove))
	mux.HandleFunc("POST /api/admin/items/reset-stats", middleware.WithLogging(itemsHandler.ResetStats))
	mux.HandleFunc("POST /api/admin/title", middleware.WithLogging(itemsHandler.Title))

	// Sign-in administration (admin)
	mux.HandleFunc("POST /api/admin/signin/enable", middleware.WithLogging(signInHandler.Enable))
	mux.HandleFunc("POST /api/admin/signin/allowed", middleware.WithLogging(signInHandler.Allowed))
	mux.HandleFunc("POST /api/admin/signin/extra", middleware.WithLogging(signInHandler.Extra))
	mux.HandleFunc("POST /api/admin/signin/force-signout", middleware.WithLogging(signInHandler.ForceSignOut))

	// Document lifecycle and combined config (super-admin)
	mux.HandleFunc("GET /api/admin/export", middleware.WithLogging(stateHandler.Export))
	mux.HandleFunc("POST /api/admin/import", middleware.WithLogging(stateHandler.Import))
	mux.HandleFunc("POST /api/admin/resetArena", middleware.WithLogging(stateHandler.ResetArena))
	mux.HandleFunc("GET /api/signin/config", middleware.WithLogging(signInHandler.ConfigGet))
	mux.HandleFunc("POST /api/signin/config", middleware.WithLogging(signInHandler.ConfigPost))

	// Uploaded images
	mux.HandleFunc("GET /uploads/{key}", middleware.WithLogging(blobHandler.Serve))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("elo-arena API v1"))
	})

	return mux
}
