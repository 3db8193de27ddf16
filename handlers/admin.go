// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

type AdminHandler struct {
	store    store.Store
	cfg      cliparse.Config
	sessions *auth.Manager
}

func NewAdminHandler(st store.Store, cfg cliparse.Config, sessions *auth.Manager) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg, sessions: sessions}
}

// Login handles POST /api/admin/login
// Password decides the role: the super-admin secret is checked first.
// With exclusivity enabled a second super-admin login is rejected while
// another session holds the unexpired lock.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	if h.cfg.AdminPassword == "" && h.cfg.SuperAdminPassword == "" {
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonEnvMissing)
		return
	}

	role, ok := auth.PickRole(req.Password, h.cfg.AdminPassword, h.cfg.SuperAdminPassword)
	if !ok {
		// Same generic reason whether the password is wrong or empty.
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonInvalid)
		return
	}

	roles := []auth.Role{auth.RoleAdmin}
	if role == auth.RoleSuperAdmin {
		roles = append(roles, auth.RoleSuperAdmin)
	}

	sess, token, err := h.sessions.Issue(roles, uaHash(h.cfg, r), ipHash(h.cfg, r))
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}
	now := time.Now()
	sess.StepUpAt = &now
	token, err = h.sessions.Encode(sess)
	if err != nil {
		slog.Error("failed to encode session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}

	if role == auth.RoleSuperAdmin && h.cfg.SuperAdminExclusive {
		if !h.claimSuperAdmin(w, r, sess) {
			return
		}
	}

	setCookie(w, h.cfg, SessionCookie, token, sessionCookieMaxAge)

	slog.Info("admin logged in", "role", string(role), "session", sess.ID)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		OK:   true,
		Role: string(role),
		CSRF: sess.CSRFSecret,
	})
}

// claimSuperAdmin records the exclusivity lock for this session. The
// check is best-effort: two logins racing through the document store can
// both succeed, and the loser's lock simply wins the last write.
func (h *AdminHandler) claimSuperAdmin(w http.ResponseWriter, r *http.Request, sess auth.Session) bool {
	st, err := h.store.Get(r.Context())
	if err != nil {
		slog.Error("failed to read state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return false
	}

	lock := st.SuperAdminLock
	if lock != nil && lock.SessionID != sess.ID && lock.ExpiresAt.After(time.Now()) {
		middleware.ErrorResponse(w, http.StatusConflict, models.ReasonSuperTaken)
		return false
	}

	st.SuperAdminLock = &models.SuperAdminLock{SessionID: sess.ID, ExpiresAt: sess.ExpiresAt}
	if err := h.store.Put(r.Context(), st); err != nil {
		slog.Error("failed to persist super-admin lock", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return false
	}
	return true
}

// Logout handles POST /api/admin/logout
// Idempotent: callers without a valid session still get ok. A session
// holding the super-admin lock releases it on the way out.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(h.sessions, h.cfg, w, r)
	clearCookie(w, h.cfg, SessionCookie)

	if ok && sess.IsSuper() {
		st, err := h.store.Get(r.Context())
		if err == nil && st.SuperAdminLock != nil && st.SuperAdminLock.SessionID == sess.ID {
			st.SuperAdminLock = nil
			if err := h.store.Put(r.Context(), st); err != nil {
				// Lock release is best-effort; it expires on its own.
				slog.Warn("failed to release super-admin lock", "error", err)
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Status handles GET /api/admin/status
// Reports the caller's effective role so the admin UI can decide what to
// render. Anonymous callers get role "".
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.AdminStatusResponse{Role: ""})
		return
	}

	role := string(auth.RoleAdmin)
	if sess.IsSuper() {
		role = string(auth.RoleSuperAdmin)
	}
	middleware.JSONResponse(w, http.StatusOK, models.AdminStatusResponse{Role: role, CSRF: sess.CSRFSecret})
}

// StepUpVerify handles POST /api/auth/stepup/verify
// Re-checks the password for an already-authenticated session and stamps
// a fresh step-up time, opening the window for sensitive operations.
func (h *AdminHandler) StepUpVerify(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireRoles(h.sessions, h.cfg, w, r, auth.RoleAdmin, auth.RoleSuperAdmin)
	if !ok {
		return
	}

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.ReasonBadPayload)
		return
	}

	role, matched := auth.PickRole(req.Password, h.cfg.AdminPassword, h.cfg.SuperAdminPassword)
	if !matched {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonInvalid)
		return
	}
	// The re-verified password must carry at least the session's level.
	if sess.IsSuper() && role != auth.RoleSuperAdmin {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonInvalid)
		return
	}

	now := time.Now()
	sess.StepUpAt = &now
	token, err := h.sessions.Encode(sess)
	if err != nil {
		slog.Error("failed to encode session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, models.ReasonStoreError)
		return
	}
	setCookie(w, h.cfg, SessionCookie, token, sessionCookieMaxAge)

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
