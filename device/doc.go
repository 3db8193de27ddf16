// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package device resolves client-submitted fingerprint signals to stable
device identifiers without accounts or logins.

# Signals

A Signal is the bundle the client collects: user-agent hints, language,
timezone, GPU strings, screen geometry, and canvas/audio render hashes.
Every field is optional; absence is just another value.

# Identifiers

Two keyed one-way hashes are derived per signal:

	bucketID, deviceID := device.DeriveIDs(secret, sig)

The bucket ID uses only the stable fields and groups likely-same devices
into a candidate set. The fine ID adds the noisy fields. Raw signal
values never leave the derivation unhashed.

# Resolution

The Resolver merges a new signal into an existing record when it is
similar enough, or mints a new device:

	r := device.NewResolver(secret)
	id := r.Resolve(records, buckets, sig, time.Now())

Candidates come from the signal's bucket. Similarity is a weighted sum
over field agreements (GPU renderer, canvas and audio hashes weigh
most); a best score at or above the threshold (3.0) merges, anything
lower mints. Merging refreshes LastSeen, bumps UsageCount, and
overwrites the stored signal's populated sections.

Nothing here is cryptographically strong anti-spoofing; a lying client
gets a fresh device at worst.
*/
package device
