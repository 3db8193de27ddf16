// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
	"github.com/folium-11/elo-arena/testutil"
)

func newStateHandler(t *testing.T) (*StateHandler, *store.Memory, cliparse.Config) {
	t.Helper()
	mem := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	return NewStateHandler(mem, cfg, auth.NewManager(cfg.SessionSecret)), mem, cfg
}

// staleHeaders issues a super-admin session whose password verification
// is outside the step-up window.
func staleHeaders(t *testing.T, cfg cliparse.Config) map[string]string {
	t.Helper()

	m := auth.NewManager(cfg.SessionSecret)
	sess, _, err := m.Issue([]auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin}, auth.HashHint(cfg.SessionSecret, ""), auth.HashHint(cfg.SessionSecret, "192.0.2.1"))
	if err != nil {
		t.Fatalf("Failed to issue session: %v", err)
	}
	old := time.Now().Add(-auth.StepUpWindow - time.Minute)
	sess.StepUpAt = &old
	token, err := m.Encode(sess)
	if err != nil {
		t.Fatalf("Failed to encode session: %v", err)
	}
	return map[string]string{
		"Cookie": "sid=" + token,
		"X-CSRF": sess.CSRFSecret,
	}
}

func TestExport(t *testing.T) {
	h, mem, cfg := newStateHandler(t)
	testutil.SeedItems(t, mem, "Coffee", "Tea")
	testutil.MutateState(t, mem, func(st *models.State) {
		st.ArenaTitle = "Exported Arena"
	})
	headers := testutil.AdminHeaders(t, cfg, auth.RoleAdmin, auth.RoleSuperAdmin)

	req := testutil.MakeRequest("GET", "/api/admin/export", nil, headers)
	w := httptest.NewRecorder()

	h.Export(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q, want attachment", cd)
	}

	var exported models.State
	testutil.AssertJSON(t, w, &exported)
	if exported.ArenaTitle != "Exported Arena" {
		t.Errorf("Exported title = %q", exported.ArenaTitle)
	}
	if len(exported.Items) != 2 {
		t.Errorf("Exported items = %d, want 2", len(exported.Items))
	}
}

func TestExportIsSuperOnly(t *testing.T) {
	h, _, cfg := newStateHandler(t)
	headers := testutil.AdminHeaders(t, cfg, auth.RoleAdmin)

	req := testutil.MakeRequest("GET", "/api/admin/export", nil, headers)
	w := httptest.NewRecorder()

	h.Export(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
	testutil.AssertErrorReason(t, w, models.ReasonForbidden)
}

func TestImportFullReplace(t *testing.T) {
	h, mem, cfg := newStateHandler(t)
	testutil.SeedItems(t, mem, "Old")
	headers := testutil.AdminHeaders(t, cfg, auth.RoleAdmin, auth.RoleSuperAdmin)

	data := models.NewState()
	data.ArenaTitle = "Imported"
	data.Items = []models.Item{{ID: "txt-x", Name: "X"}, {ID: "txt-y", Name: "Y"}}

	req := testutil.MakeRequest("POST", "/api/admin/import", models.ImportRequest{Data: data}, headers)
	w := httptest.NewRecorder()

	h.Import(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	st, _ := mem.Get(context.Background())
	if st.ArenaTitle != "Imported" {
		t.Errorf("Title = %q", st.ArenaTitle)
	}
	if len(st.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(st.Items))
	}
}

func TestImportPreservesSignIn(t *testing.T) {
	h, mem, cfg := newStateHandler(t)
	testutil.MutateState(t, mem, func(st *models.State) {
		st.SignInEnabled = true
		st.AllowedNames = []string{"alice"}
		st.ActiveSessions["dev-1"] = models.VoterSession{Name: "alice", Since: time.Now()}
	})
	headers := testutil.AdminHeaders(t, cfg, auth.RoleAdmin, auth.RoleSuperAdmin)

	data := models.NewState()
	data.ArenaTitle = "Imported"
	data.SignInEnabled = false
	data.AllowedNames = []string{"other"}

	req := testutil.MakeRequest("POST", "/api/admin/import", models.ImportRequest{Data: data, PreserveSignIn: true}, headers)
	w := httptest.NewRecorder()

	h.Import(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	st, _ := mem.Get(context.Background())
	if st.ArenaTitle != "Imported" {
		t.Errorf("Title = %q", st.ArenaTitle)
	}
	if !st.SignInEnabled {
		t.Error("Preserve mode lost the sign-in flag")
	}
	if len(st.AllowedNames) != 1 || st.AllowedNames[0] != "alice" {
		t.Errorf("Allow-list = %v", st.AllowedNames)
	}
	if _, ok := st.ActiveSessions["dev-1"]; !ok {
		t.Error("Preserve mode lost voter sessions")
	}
}

func TestImportValidation(t *testing.T) {
	h, _, cfg := newStateHandler(t)
	headers := testutil.AdminHeaders(t, cfg, auth.RoleAdmin, auth.RoleSuperAdmin)

	// Missing data payload.
	req := testutil.MakeRequest("POST", "/api/admin/import", models.ImportRequest{}, headers)
	w := httptest.NewRecorder()
	h.Import(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	testutil.AssertErrorReason(t, w, models.ReasonBadPayload)
}

func TestImportRequiresFreshStepUp(t *testing.T) {
	h, _, cfg := newStateHandler(t)
	headers := staleHeaders(t, cfg)

	data := models.NewState()
	req := testutil.MakeRequest("POST", "/api/admin/import", models.ImportRequest{Data: data}, headers)
	w := httptest.NewRecorder()

	h.Import(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
	testutil.AssertErrorReason(t, w, models.ReasonStepUpRequired)
}

func TestResetArena(t *testing.T) {
	h, mem, cfg := newStateHandler(t)
	testutil.SeedItems(t, mem, "Coffee", "Tea")
	testutil.MutateState(t, mem, func(st *models.State) {
		st.SignInEnabled = true
		st.ActiveSessions["dev-1"] = models.VoterSession{Name: "alice", Since: time.Now()}
	})
	headers := testutil.AdminHeaders(t, cfg, auth.RoleAdmin, auth.RoleSuperAdmin)

	req := testutil.MakeRequest("POST", "/api/admin/resetArena", nil, headers)
	w := httptest.NewRecorder()

	h.ResetArena(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	st, _ := mem.Get(context.Background())
	if len(st.Items) != 0 {
		t.Error("Content survived the reset")
	}
	if !st.SignInEnabled {
		t.Error("Sign-in configuration was lost")
	}
	if _, ok := st.ActiveSessions["dev-1"]; !ok {
		t.Error("Voter session was lost")
	}
}

func TestResetArenaRequiresFreshStepUp(t *testing.T) {
	h, mem, cfg := newStateHandler(t)
	testutil.SeedItems(t, mem, "Coffee", "Tea")
	headers := staleHeaders(t, cfg)

	req := testutil.MakeRequest("POST", "/api/admin/resetArena", nil, headers)
	w := httptest.NewRecorder()

	h.ResetArena(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
	testutil.AssertErrorReason(t, w, models.ReasonStepUpRequired)

	st, _ := mem.Get(context.Background())
	if len(st.Items) != 2 {
		t.Error("Stale step-up still reset the arena")
	}
}
