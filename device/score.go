// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import (
	"math"
	"strings"
)

// Scorer rates how likely two signals come from the same physical
// device. Higher is more similar. Swappable so the weights and
// threshold can be tuned and tested in isolation.
type Scorer interface {
	Score(a, b Signal) float64
}

// WeightedScorer is the default additive feature-match scorer.
// Max score is 5.5; anything at or above the resolver threshold is
// treated as the same device.
type WeightedScorer struct{}

func (WeightedScorer) Score(a, b Signal) float64 {
	var s float64

	if strings.EqualFold(a.WebGL.Renderer, b.WebGL.Renderer) {
		s += 1.0
	}
	if strings.EqualFold(a.WebGL.Vendor, b.WebGL.Vendor) {
		s += 0.5
	}
	if primaryLang(a.Lang) == primaryLang(b.Lang) {
		s += 0.5
	}
	if a.TZ == b.TZ {
		s += 0.5
	}
	if a.Screen.ColorDepth == b.Screen.ColorDepth {
		s += 0.25
	}
	if roundDPR(a.Screen.DPR) == roundDPR(b.Screen.DPR) {
		s += 0.25
	}

	// Width and height must both be within 5% relative tolerance.
	wa, wb := float64(a.Screen.Width), float64(b.Screen.Width)
	ha, hb := float64(a.Screen.Height), float64(b.Screen.Height)
	if wb != 0 && hb != 0 &&
		math.Abs(wa-wb)/wb <= 0.05 && math.Abs(ha-hb)/hb <= 0.05 {
		s += 0.5
	}

	if a.Canvas.Hash != "" && a.Canvas.Hash == b.Canvas.Hash {
		s += 1.0
	}
	if a.Audio.Hash != "" && a.Audio.Hash == b.Audio.Hash {
		s += 1.0
	}

	return s
}
