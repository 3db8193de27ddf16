// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package arena

import (
	"errors"
	"math"

	"github.com/folium-11/elo-arena/models"
)

// KFactor is the fixed Elo K used for every update.
const KFactor = 32

var (
	ErrInvalidItem    = errors.New("invalid item")
	ErrSignInRequired = errors.New("sign-in required")
)

// ExpectedScore is the logistic expected outcome for a rated at ra
// against an opponent at rb.
func ExpectedScore(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/400))
}

// EnsureItemStats initializes rating and counters for an item the first
// time it is referenced.
func EnsureItemStats(st *models.State, id string) {
	if _, ok := st.GlobalRatings[id]; !ok {
		st.GlobalRatings[id] = models.DefaultRating
	}
	if _, ok := st.Wins[id]; !ok {
		st.Wins[id] = 0
	}
	if _, ok := st.Appearances[id]; !ok {
		st.Appearances[id] = 0
	}
}

// applyElo updates a rating map in place for a decided comparison.
// Unset entries start at the default rating. The update is zero-sum up
// to rounding.
func applyElo(ratings map[string]int, winnerID, loserID string) {
	ra, ok := ratings[winnerID]
	if !ok {
		ra = models.DefaultRating
	}
	rb, ok := ratings[loserID]
	if !ok {
		rb = models.DefaultRating
	}
	ea := ExpectedScore(ra, rb)
	eb := ExpectedScore(rb, ra)
	ratings[winnerID] = int(math.Round(float64(ra) + KFactor*(1-ea)))
	ratings[loserID] = int(math.Round(float64(rb) + KFactor*(0-eb)))
}

// ApplyVote records a single pairwise outcome: global Elo, the voting
// device's personal Elo, win/appearance counters, and a fresh pair for
// the device. Item ids are re-validated against the live item set; a
// vote referencing a removed item mutates nothing.
func ApplyVote(st *models.State, deviceID, winnerID, loserID string) error {
	if winnerID == loserID {
		return ErrInvalidItem
	}
	if ItemByID(st, winnerID) == nil || ItemByID(st, loserID) == nil {
		return ErrInvalidItem
	}
	if st.SignInEnabled {
		if _, ok := st.ActiveSessions[deviceID]; !ok {
			return ErrSignInRequired
		}
	}

	EnsureItemStats(st, winnerID)
	EnsureItemStats(st, loserID)
	applyElo(st.GlobalRatings, winnerID, loserID)
	st.Wins[winnerID]++
	st.Appearances[winnerID]++
	st.Appearances[loserID]++

	// Personal ratings are kept per device regardless of sign-in so the
	// local leaderboard works in anonymous mode too.
	if deviceID != "" {
		personal := st.PersonalRatings[deviceID]
		if personal == nil {
			personal = map[string]int{}
			st.PersonalRatings[deviceID] = personal
		}
		applyElo(personal, winnerID, loserID)
	}

	AssignNewPair(st, deviceID)
	return nil
}
