// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import "time"

// MatchThreshold is the minimum similarity score at which a candidate
// is considered the same device. Roughly: one rendering hash plus one
// stable feature, or several stable features without a rendering hash.
const MatchThreshold = 3.0

// Resolver maps incoming signal bundles onto stable device identifiers.
// False merges and false splits are accepted failure modes; resolution
// never errors.
type Resolver struct {
	Secret    string
	Scorer    Scorer
	Threshold float64
}

func NewResolver(secret string) *Resolver {
	return &Resolver{
		Secret:    secret,
		Scorer:    WeightedScorer{},
		Threshold: MatchThreshold,
	}
}

// Resolve returns the device identifier for sig, either by fuzzy-matching
// an existing record in the signal's coarse bucket or by minting a new
// record keyed by the fine-projection hash. The records and buckets maps
// are mutated in place and must be persisted by the caller.
func (r *Resolver) Resolve(records map[string]*Record, buckets map[string][]string, sig Signal, now time.Time) string {
	bucketID, deviceID := DeriveIDs(r.Secret, sig)

	bestID, bestScore := "", -1.0
	for _, id := range buckets[bucketID] {
		rec := records[id]
		if rec == nil {
			continue
		}
		if sc := r.Scorer.Score(sig, rec.Signal); sc > bestScore {
			bestID, bestScore = id, sc
		}
	}

	if bestID != "" && bestScore >= r.Threshold {
		rec := records[bestID]
		rec.LastSeen = now
		rec.UsageCount++
		rec.Signal = mergeSignal(rec.Signal, sig)
		return bestID
	}

	records[deviceID] = &Record{
		DeviceID:   deviceID,
		BucketID:   bucketID,
		Signal:     sig,
		CreatedAt:  now,
		LastSeen:   now,
		UsageCount: 1,
	}
	buckets[bucketID] = appendUnique(buckets[bucketID], deviceID)
	return deviceID
}

// mergeSignal shallow-overwrites the stored signal with any section the
// new submission actually populated, keeping old values for sections the
// client omitted this time.
func mergeSignal(old, next Signal) Signal {
	out := old
	if next.UA.Platform != "" || len(next.UA.Brands) > 0 {
		out.UA = next.UA
	}
	if next.Lang != "" {
		out.Lang = next.Lang
	}
	if next.TZ != "" {
		out.TZ = next.TZ
	}
	if next.WebGL.Renderer != "" || next.WebGL.Vendor != "" {
		out.WebGL = next.WebGL
	}
	if next.Screen != (ScreenInfo{}) {
		out.Screen = next.Screen
	}
	if next.Canvas.Hash != "" {
		out.Canvas = next.Canvas
	}
	if next.Audio.Hash != "" {
		out.Audio = next.Audio
	}
	return out
}

func appendUnique(list []string, id string) []string {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}
