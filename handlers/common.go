// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/middleware"
	"github.com/folium-11/elo-arena/models"
)

const (
	// SessionCookie carries the signed admin session token.
	SessionCookie = "sid"
	// DeviceCookie carries the resolved device identifier.
	DeviceCookie = "did"
	// CSRFHeader must match the session's CSRF secret on mutations.
	CSRFHeader = "X-CSRF"

	deviceCookieMaxAge  = 365 * 24 * 60 * 60
	sessionCookieMaxAge = int(auth.SessionTTL / 1e9)
)

func setCookie(w http.ResponseWriter, cfg cliparse.Config, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.SecureCookies,
	})
}

func clearCookie(w http.ResponseWriter, cfg cliparse.Config, name string) {
	setCookie(w, cfg, name, "", -1)
}

// deviceID reads the device identity cookie; "" when absent.
func deviceID(r *http.Request) string {
	c, err := r.Cookie(DeviceCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func uaHash(cfg cliparse.Config, r *http.Request) string {
	return auth.HashHint(cfg.SessionSecret, r.UserAgent())
}

func ipHash(cfg cliparse.Config, r *http.Request) string {
	return auth.HashHint(cfg.SessionSecret, middleware.GetClientIP(r))
}

// currentSession verifies the caller's session cookie, refreshing and
// re-issuing it on success. Any verification failure clears the cookie
// and reports the caller as anonymous; it never errors out.
func currentSession(m *auth.Manager, cfg cliparse.Config, w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return auth.Session{}, false
	}

	sess, ok := m.Verify(c.Value, uaHash(cfg, r))
	if !ok {
		clearCookie(w, cfg, SessionCookie)
		return auth.Session{}, false
	}

	refreshed, token, err := m.Refresh(sess)
	if err != nil {
		// Keep serving the still-valid session if re-signing failed.
		return sess, true
	}
	setCookie(w, cfg, SessionCookie, token, sessionCookieMaxAge)
	return refreshed, true
}

// requireRoles gates an operation on session roles and, for
// state-changing methods, the CSRF header. On failure it writes the
// error response and returns false.
func requireRoles(m *auth.Manager, cfg cliparse.Config, w http.ResponseWriter, r *http.Request, allowed ...auth.Role) (auth.Session, bool) {
	sess, ok := currentSession(m, cfg, w, r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, models.ReasonUnauthorized)
		return auth.Session{}, false
	}
	if !sess.HasAnyRole(allowed...) {
		middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonForbidden)
		return auth.Session{}, false
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
	default:
		token := r.Header.Get(CSRFHeader)
		if !auth.ConstantTimeEqual(token, sess.CSRFSecret) {
			middleware.ErrorResponse(w, http.StatusForbidden, models.ReasonBadCSRF)
			return auth.Session{}, false
		}
	}

	return sess, true
}
