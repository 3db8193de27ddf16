// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the arena state document plus request, response,
and domain types for the API.

# The State Document

State is the single shared document holding everything: items, global
and per-device ratings, win/appearance counters, name overrides, the
sign-in configuration, active voter sessions, current pairs, the device
identity index, and the super-admin lock. It is always read and written
as a whole; concurrent writers race at the document level and the last
write wins.

NewState returns an empty document; Normalize initializes nil maps on
documents that arrived via import or an older export.

# Request Types

Types for parsing incoming JSON:

  - IdentifyRequest: sig (fingerprint bundle)
  - VoteRequest: winnerId, loserId
  - SignInRequest: name
  - LoginRequest: password
  - AddTextRequest, RenameRequest, ItemIDRequest, TitleRequest
  - EnableRequest, AllowedNamesRequest, ExtraSlotsRequest,
    ForceSignOutRequest, SignInConfigRequest
  - ImportRequest: data, preserveSignIn

# Response Types

Types for JSON responses:

  - HomeResponse: combined title/items/pair/leaderboards/sign-in snapshot
  - PairResponse, VoteResponse, GlobalLeaderboardResponse,
    PersonalLeaderboardResponse
  - IdentifyResponse, SignInResponse, SignInStatusResponse
  - LoginResponse, AdminStatusResponse, OKResponse
  - ErrorResponse: error (reason code), optional message

# Reason Codes

Error envelopes carry stable machine-readable reasons:

	ReasonBadPayload, ReasonBadInput, ReasonInvalid,
	ReasonUnauthorized, ReasonForbidden, ReasonBadCSRF,
	ReasonNotFound, ReasonSignInRequired, ReasonSignInDisabled,
	ReasonDeviceMissing, ReasonNotAllowed, ReasonNameFull,
	ReasonSuperTaken, ReasonEnvMissing, ReasonStepUpRequired,
	ReasonStoreError

# Constants

	DefaultRating = 1500
	DefaultTitle  = "Arena"

Personal leaderboard modes:

	PersonalModeAnon      = "anon"
	PersonalModeSignedOut = "signedOut"
	PersonalModeSignedIn  = "signedIn"
*/
package models
