// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import (
	"math"
	"testing"
)

func TestWeightedScorerIdentical(t *testing.T) {
	sig := sampleSignal()
	got := WeightedScorer{}.Score(sig, sig)
	if got != 5.5 {
		t.Errorf("Score(identical) = %v, want 5.5", got)
	}
}

func TestWeightedScorerDisjoint(t *testing.T) {
	a := sampleSignal()
	b := Signal{
		Lang:   "ja",
		TZ:     "Asia/Tokyo",
		WebGL:  WebGLInfo{Vendor: "Apple", Renderer: "Apple M3"},
		Screen: ScreenInfo{Width: 800, Height: 600, ColorDepth: 30, DPR: 3},
		Canvas: RenderHash{Hash: "other-canvas"},
		Audio:  RenderHash{Hash: "other-audio"},
	}
	if got := (WeightedScorer{}).Score(a, b); got != 0 {
		t.Errorf("Score(disjoint) = %v, want 0", got)
	}
}

func TestWeightedScorerFeatureWeights(t *testing.T) {
	base := sampleSignal()

	tests := []struct {
		name   string
		change func(*Signal)
		lost   float64
	}{
		{"renderer mismatch", func(s *Signal) { s.WebGL.Renderer = "other" }, 1.0},
		{"vendor mismatch", func(s *Signal) { s.WebGL.Vendor = "other" }, 0.5},
		{"language mismatch", func(s *Signal) { s.Lang = "de-DE" }, 0.5},
		{"timezone mismatch", func(s *Signal) { s.TZ = "Europe/Berlin" }, 0.5},
		{"color depth mismatch", func(s *Signal) { s.Screen.ColorDepth = 30 }, 0.25},
		{"dpr mismatch", func(s *Signal) { s.Screen.DPR = 2 }, 0.25},
		{"screen far off", func(s *Signal) { s.Screen.Width = 1280; s.Screen.Height = 720 }, 0.5},
		{"canvas mismatch", func(s *Signal) { s.Canvas.Hash = "other" }, 1.0},
		{"audio mismatch", func(s *Signal) { s.Audio.Hash = "other" }, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base
			tt.change(&changed)
			got := WeightedScorer{}.Score(changed, base)
			want := 5.5 - tt.lost
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, want)
			}
		})
	}
}

func TestWeightedScorerScreenTolerance(t *testing.T) {
	base := sampleSignal()

	// Within 5% relative tolerance still counts as a screen match.
	near := base
	near.Screen.Width = 1900  // ~1% off 1920
	near.Screen.Height = 1060 // ~2% off 1080
	if got := (WeightedScorer{}).Score(near, base); got != 5.5 {
		t.Errorf("Score(near screen) = %v, want 5.5", got)
	}

	// Just outside the tolerance drops the screen weight.
	far := base
	far.Screen.Width = 1800 // 6.25% off 1920
	if got := (WeightedScorer{}).Score(far, base); got != 5.0 {
		t.Errorf("Score(far screen) = %v, want 5.0", got)
	}
}

func TestWeightedScorerGPUCaseInsensitive(t *testing.T) {
	a := sampleSignal()
	b := sampleSignal()
	b.WebGL.Renderer = "angle (nvidia geforce rtx 3060)"
	b.WebGL.Vendor = "GOOGLE INC."
	if got := (WeightedScorer{}).Score(a, b); got != 5.5 {
		t.Errorf("Score(case variants) = %v, want 5.5", got)
	}
}

func TestWeightedScorerEmptyHashesNeverMatch(t *testing.T) {
	a := sampleSignal()
	b := sampleSignal()
	a.Canvas.Hash = ""
	b.Canvas.Hash = ""
	a.Audio.Hash = ""
	b.Audio.Hash = ""
	// Two absent hashes must not count as agreement.
	if got := (WeightedScorer{}).Score(a, b); got != 5.5-2.0 {
		t.Errorf("Score(empty hashes) = %v, want %v", got, 5.5-2.0)
	}
}
