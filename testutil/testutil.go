// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/folium-11/elo-arena/auth"
	"github.com/folium-11/elo-arena/cliparse"
	"github.com/folium-11/elo-arena/device"
	"github.com/folium-11/elo-arena/models"
	"github.com/folium-11/elo-arena/store"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                3318,
		DatabaseType:        "sqlite",
		DatabaseURL:         "file:test.db?mode=memory",
		SessionSecret:       "test-session-secret",
		DeviceIDSecret:      "test-device-secret",
		AdminPassword:       "admin-pw",
		SuperAdminPassword:  "super-pw",
		SuperAdminExclusive: true,
	}
}

// SetupTestStore returns a fresh in-memory document and blob store.
func SetupTestStore(t *testing.T) *store.Memory {
	t.Helper()
	return store.NewMemory()
}

// SeedItems writes a state document containing text items with the given
// names. IDs are "item-0", "item-1", ... in order.
func SeedItems(t *testing.T, st store.Store, names ...string) []string {
	t.Helper()

	ctx := context.Background()
	doc, err := st.Get(ctx)
	if err != nil {
		t.Fatalf("Failed to read state: %v", err)
	}
	ids := make([]string, len(names))
	for i, name := range names {
		id := "item-" + strconv.Itoa(i)
		ids[i] = id
		doc.Items = append(doc.Items, models.Item{ID: id, Name: name})
		doc.GlobalRatings[id] = models.DefaultRating
	}
	if err := st.Put(ctx, doc); err != nil {
		t.Fatalf("Failed to seed state: %v", err)
	}
	return ids
}

// MutateState applies fn to the stored document and writes it back.
func MutateState(t *testing.T, st store.Store, fn func(*models.State)) {
	t.Helper()

	ctx := context.Background()
	doc, err := st.Get(ctx)
	if err != nil {
		t.Fatalf("Failed to read state: %v", err)
	}
	fn(doc)
	if err := st.Put(ctx, doc); err != nil {
		t.Fatalf("Failed to write state: %v", err)
	}
}

// AdminHeaders issues a session with the given roles under the test
// config's session secret and returns the Cookie and X-CSRF headers an
// authenticated admin request needs. The session is bound to the empty
// user-agent, matching requests built with MakeRequest.
func AdminHeaders(t *testing.T, cfg cliparse.Config, roles ...auth.Role) map[string]string {
	t.Helper()

	m := auth.NewManager(cfg.SessionSecret)
	sess, _, err := m.Issue(roles, auth.HashHint(cfg.SessionSecret, ""), auth.HashHint(cfg.SessionSecret, "192.0.2.1"))
	if err != nil {
		t.Fatalf("Failed to issue test session: %v", err)
	}
	// A real login stamps a fresh step-up; mirror that so destructive
	// operations are testable without a second password round trip.
	now := time.Now()
	sess.StepUpAt = &now
	token, err := m.Encode(sess)
	if err != nil {
		t.Fatalf("Failed to encode test session: %v", err)
	}
	return map[string]string{
		"Cookie": "sid=" + token,
		"X-CSRF": sess.CSRFSecret,
	}
}

// SampleSignal returns a realistic device signal bundle for identify
// tests. Vary fields per test case as needed.
func SampleSignal() device.Signal {
	return device.Signal{
		UA: device.UAHints{
			Platform: "Linux x86_64",
			Mobile:   false,
			Brands: []Brand{
				{Brand: "Chromium", Version: "126"},
				{Brand: "Google Chrome", Version: "126"},
			},
		},
		Lang:   "en-US",
		TZ:     "America/Chicago",
		WebGL:  device.WebGLInfo{Vendor: "Google Inc.", Renderer: "ANGLE (NVIDIA GeForce RTX 3060)"},
		Screen: device.ScreenInfo{Width: 1920, Height: 1080, ColorDepth: 24, DPR: 1.25},
		Canvas: device.RenderHash{Hash: "c4a1b2d3e4f5a6b7"},
		Audio:  device.RenderHash{Hash: "a1b2c3d4e5f6a7b8"},
	}
}

// Brand aliases device.Brand so tests can build signal variants tersely.
type Brand = device.Brand

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorReason checks the machine-readable reason code in an error
// envelope response.
func AssertErrorReason(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != reason {
		t.Errorf("Expected error reason %q, got %q", reason, resp.Error)
	}
}
