// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/folium-11/elo-arena/device"
)

// DefaultRating is assigned to any item the first time it is rated.
const DefaultRating = 1500

// DefaultTitle is used when no arena title has been configured.
const DefaultTitle = "Arena"

// Machine-readable reason codes returned in error envelopes. Clients
// key their messaging off these, so they are stable strings.
const (
	ReasonBadPayload     = "bad_payload"
	ReasonBadInput       = "bad_input"
	ReasonInvalid        = "invalid"
	ReasonUnauthorized   = "unauthorized"
	ReasonForbidden      = "forbidden"
	ReasonBadCSRF        = "bad_csrf"
	ReasonNotFound       = "not_found"
	ReasonSignInRequired = "signin_required"
	ReasonSignInDisabled = "sign_in_disabled"
	ReasonDeviceMissing  = "device_missing"
	ReasonNotAllowed     = "not_allowed"
	ReasonNameFull       = "name_full"
	ReasonSuperTaken     = "super_admin_taken"
	ReasonEnvMissing     = "env_missing"
	ReasonStepUpRequired = "step_up_required"
	ReasonStoreError     = "store_error"
)

// Item is one arena entry. The ID is unique and immutable once created;
// the display name may be superseded by a NameOverrides entry.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// VoterSession binds a device to a claimed voter name.
type VoterSession struct {
	Name  string    `json:"name"`
	Since time.Time `json:"since"`
}

// SuperAdminLock is the best-effort single-super-admin marker. It names
// the session currently holding the role and when that claim lapses.
type SuperAdminLock struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// State is the single shared arena document. It is always read and
// written as a whole; concurrent writers race at the document level and
// the last write wins.
type State struct {
	ArenaTitle      string                    `json:"arenaTitle"`
	Items           []Item                    `json:"items"`
	GlobalRatings   map[string]int            `json:"globalRatings"`
	PersonalRatings map[string]map[string]int `json:"personalRatingsByDevice"`
	Wins            map[string]int            `json:"wins"`
	Appearances     map[string]int            `json:"appearances"`
	NameOverrides   map[string]string         `json:"nameOverrides"`
	AllowedNames    []string                  `json:"allowedNames"`
	SlotLimits      map[string]int            `json:"slotLimits"`
	ExtraSlots      map[string]int            `json:"extraSlots"`
	ActiveSessions  map[string]VoterSession   `json:"activeSessions"`
	SignInEnabled   bool                      `json:"signInEnabled"`
	CurrentPairs    map[string][2]string      `json:"currentPairByDevice"`
	DeviceRecords   map[string]*device.Record `json:"deviceRecords"`
	DeviceBuckets   map[string][]string       `json:"deviceBuckets"`
	SuperAdminLock  *SuperAdminLock           `json:"superAdminLock,omitempty"`
}

// NewState returns an empty arena document with all maps initialized.
func NewState() *State {
	s := &State{ArenaTitle: DefaultTitle}
	s.Normalize()
	return s
}

// Normalize initializes any nil collections. Imported or hand-edited
// documents may omit keys entirely; every consumer relies on the maps
// being non-nil.
func (s *State) Normalize() {
	if s.ArenaTitle == "" {
		s.ArenaTitle = DefaultTitle
	}
	if s.Items == nil {
		s.Items = []Item{}
	}
	if s.GlobalRatings == nil {
		s.GlobalRatings = map[string]int{}
	}
	if s.PersonalRatings == nil {
		s.PersonalRatings = map[string]map[string]int{}
	}
	if s.Wins == nil {
		s.Wins = map[string]int{}
	}
	if s.Appearances == nil {
		s.Appearances = map[string]int{}
	}
	if s.NameOverrides == nil {
		s.NameOverrides = map[string]string{}
	}
	if s.AllowedNames == nil {
		s.AllowedNames = []string{}
	}
	if s.SlotLimits == nil {
		s.SlotLimits = map[string]int{}
	}
	if s.ExtraSlots == nil {
		s.ExtraSlots = map[string]int{}
	}
	if s.ActiveSessions == nil {
		s.ActiveSessions = map[string]VoterSession{}
	}
	if s.CurrentPairs == nil {
		s.CurrentPairs = map[string][2]string{}
	}
	if s.DeviceRecords == nil {
		s.DeviceRecords = map[string]*device.Record{}
	}
	if s.DeviceBuckets == nil {
		s.DeviceBuckets = map[string][]string{}
	}
}

// Request types

type IdentifyRequest struct {
	Sig *device.Signal `json:"sig"`
}

type VoteRequest struct {
	WinnerID string `json:"winnerId"`
	LoserID  string `json:"loserId"`
}

type SignInRequest struct {
	Name string `json:"name"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type AddTextRequest struct {
	Name string `json:"name"`
}

type RenameRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemIDRequest struct {
	ID string `json:"id"`
}

type TitleRequest struct {
	Title string `json:"title"`
}

type EnableRequest struct {
	Enabled bool `json:"enabled"`
}

type AllowedNamesRequest struct {
	Names []string `json:"names"`
}

type ExtraSlotsRequest struct {
	Name  string `json:"name"`
	Extra int    `json:"extra"`
}

type ForceSignOutRequest struct {
	Names []string `json:"names"`
}

type SignInConfigRequest struct {
	SignInEnabled    *bool          `json:"signInEnabled,omitempty"`
	AllowedNamesText *string        `json:"allowedNamesText,omitempty"`
	SlotLimits       map[string]int `json:"slotLimits,omitempty"`
	ExtraSlots       map[string]int `json:"extraSlots,omitempty"`
}

type ImportRequest struct {
	Data           *State `json:"data"`
	PreserveSignIn bool   `json:"preserveSignIn"`
}

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type PublicItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type GlobalRow struct {
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	W      int    `json:"w"`
	L      int    `json:"l"`
	WP     int    `json:"wp"`
}

type PersonalRow struct {
	Rank   int    `json:"rank"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// Personal leaderboard modes.
const (
	PersonalModeAnon      = "anon"
	PersonalModeSignedOut = "signedOut"
	PersonalModeSignedIn  = "signedIn"
)

type PersonalSnapshot struct {
	Mode     string        `json:"mode"`
	Rows     []PersonalRow `json:"rows"`
	SignedIn bool          `json:"signedIn"`
	Name     string        `json:"name"`
}

type IdentifyResponse struct {
	DeviceID string `json:"device_id"`
}

type PairResponse struct {
	Pair []PublicItem `json:"pair"`
}

type VoteResponse struct {
	OK         bool         `json:"ok"`
	GlobalRows []GlobalRow  `json:"globalRows"`
	Pair       []PublicItem `json:"pair"`
}

type HomeResponse struct {
	OK            bool          `json:"ok"`
	Title         string        `json:"title"`
	Items         []PublicItem  `json:"items"`
	ItemsCount    int           `json:"itemsCount"`
	Pair          []PublicItem  `json:"pair"`
	GlobalRows    []GlobalRow   `json:"globalRows"`
	PersonalMode  string        `json:"personalMode"`
	PersonalRows  []PersonalRow `json:"personalRows"`
	SignInEnabled bool          `json:"signInEnabled"`
	SignedIn      bool          `json:"signedIn"`
	MyName        string        `json:"myName"`
}

type GlobalLeaderboardResponse struct {
	Ready bool        `json:"ready"`
	Rows  []GlobalRow `json:"rows"`
}

type PersonalLeaderboardResponse struct {
	Enabled  bool          `json:"enabled"`
	SignedIn bool          `json:"signedIn"`
	Name     string        `json:"name,omitempty"`
	Rows     []PersonalRow `json:"rows"`
}

type SignInResponse struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
}

type SignInStatusResponse struct {
	Enabled  bool   `json:"enabled"`
	SignedIn bool   `json:"signedIn"`
	Name     string `json:"name,omitempty"`
}

type LoginResponse struct {
	OK   bool   `json:"ok"`
	Role string `json:"role"`
	CSRF string `json:"csrf"`
}

type AdminStatusResponse struct {
	Role string `json:"role"`
	CSRF string `json:"csrf,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type AddTextResponse struct {
	OK   bool   `json:"ok"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RenameResponse struct {
	OK   bool   `json:"ok"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EnableResponse struct {
	OK      bool `json:"ok"`
	Enabled bool `json:"enabled"`
}

type AllowedNamesResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type ExtraSlotsResponse struct {
	OK    bool   `json:"ok"`
	Name  string `json:"name"`
	Extra int    `json:"extra"`
}

type ForceSignOutResponse struct {
	OK      bool `json:"ok"`
	Removed int  `json:"removed"`
}

type SignInConfigResponse struct {
	SignInEnabled  bool           `json:"signInEnabled"`
	AllowedNames   []string       `json:"allowedNames"`
	SlotLimits     map[string]int `json:"slotLimits"`
	ExtraSlots     map[string]int `json:"extraSlots"`
	SessionsByName map[string]int `json:"sessionsByName"`
}
