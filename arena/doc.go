// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package arena implements the voting domain: pair selection, Elo rating,
leaderboards, voter sign-in rules, and document lifecycle operations.

All functions operate on *models.State in place; persistence is the
caller's concern.

# Pairing

Each device keeps a sticky pair until it votes:

	pair, mutated := arena.EnsurePair(st, deviceID)

Pairs are re-validated against the live item set; a pair referencing a
removed item is replaced. Fewer than two items yields an empty pair.

# Voting

ApplyVote validates, updates ratings, and assigns the next pair:

	err := arena.ApplyVote(st, deviceID, winnerID, loserID)

The Elo update uses K=32 with the logistic expected score, rounded to
integers. The global table and the device's personal table receive the
same update. Errors: ErrInvalidItem (unknown ids or winner == loser,
nothing mutated), ErrSignInRequired (sign-in enabled and device has no
voter binding).

# Leaderboards

	rows := arena.BuildGlobalLeaderboard(st)
	snap := arena.BuildPersonalLeaderboard(st, deviceID)

Global rows carry rank, override-aware name, rating, wins, losses, and
win percentage, sorted by rating descending. The personal snapshot has
three modes: "anon" (sign-in disabled, device-local rows), "signedOut",
and "signedIn".

# Sign-In

Voter sign-in binds a device to a claimed name with per-name capacity:

	err := arena.SignIn(st, deviceID, name, time.Now())

Capacity is SlotLimits[name] (default 1) plus ExtraSlots[name]. An
optional allow-list restricts claimable names. SignOutNames force-
releases bindings by name.

# Lifecycle

	next := arena.ResetContent(st)           // clear content, keep sign-in config
	next := arena.Import(st, data, preserve) // wholesale or merge import
*/
package arena
