// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package device

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Brand is one entry of the user-agent brand list reported by the client.
type Brand struct {
	Brand   string `json:"brand"`
	Version string `json:"version"`
}

// UAHints carries the user-agent client hints portion of a signal bundle.
type UAHints struct {
	Platform string  `json:"platform"`
	Mobile   bool    `json:"mobile"`
	Brands   []Brand `json:"brands"`
}

// ScreenInfo carries screen geometry from the client.
type ScreenInfo struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	ColorDepth int     `json:"colorDepth"`
	DPR        float64 `json:"dpr"`
}

// WebGLInfo carries GPU strings from the client.
type WebGLInfo struct {
	Renderer string `json:"renderer"`
	Vendor   string `json:"vendor"`
}

// RenderHash wraps a rendering-based hash (canvas or audio).
type RenderHash struct {
	Hash string `json:"hash"`
}

// Signal is the client-submitted fingerprint bundle. Fields may be
// missing or empty; the resolver treats absence as just another value.
type Signal struct {
	UA     UAHints    `json:"ua"`
	Lang   string     `json:"lang"`
	TZ     string     `json:"tz"`
	WebGL  WebGLInfo  `json:"webgl"`
	Screen ScreenInfo `json:"screen"`
	Canvas RenderHash `json:"canvas"`
	Audio  RenderHash `json:"audio"`
}

// Record is a stored device: the last merged signal snapshot plus
// bookkeeping timestamps.
type Record struct {
	DeviceID   string    `json:"deviceId"`
	BucketID   string    `json:"bucketId"`
	Signal     Signal    `json:"sig"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeen   time.Time `json:"lastSeen"`
	UsageCount int       `json:"usageCount"`
}

// coarseProjection uses only highly stable fields. Devices sharing a
// coarse hash land in the same candidate bucket.
type coarseProjection struct {
	Platform   string   `json:"uaPlatform"`
	Mobile     bool     `json:"uaMobile"`
	Brands     []string `json:"uaBrands"`
	Lang       string   `json:"lang"`
	TZ         string   `json:"tz"`
	Renderer   string   `json:"renderer"`
	Vendor     string   `json:"vendor"`
	ColorDepth int      `json:"colorDepth"`
	DPR        float64  `json:"dpr"`
}

// fineProjection adds the noisy fields on top of the coarse ones.
type fineProjection struct {
	coarseProjection
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Canvas string `json:"canvas"`
	Audio  string `json:"audio"`
}

func primaryLang(lang string) string {
	if i := strings.IndexByte(lang, '-'); i >= 0 {
		return lang[:i]
	}
	return lang
}

func roundDPR(d float64) float64 {
	if d == 0 {
		d = 1
	}
	return math.Round(d*100) / 100
}

func coarseOf(sig Signal) coarseProjection {
	brands := make([]string, 0, len(sig.UA.Brands))
	for _, b := range sig.UA.Brands {
		brands = append(brands, b.Brand+":"+b.Version)
	}
	return coarseProjection{
		Platform:   sig.UA.Platform,
		Mobile:     sig.UA.Mobile,
		Brands:     brands,
		Lang:       primaryLang(sig.Lang),
		TZ:         sig.TZ,
		Renderer:   strings.ToLower(sig.WebGL.Renderer),
		Vendor:     strings.ToLower(sig.WebGL.Vendor),
		ColorDepth: sig.Screen.ColorDepth,
		DPR:        roundDPR(sig.Screen.DPR),
	}
}

func hmacHex(secret string, v interface{}) string {
	// Struct field order makes the JSON encoding deterministic.
	data, _ := json.Marshal(v)
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DeriveIDs computes the bucket (coarse) and device (fine) identifiers
// for a signal using a keyed one-way hash.
func DeriveIDs(secret string, sig Signal) (bucketID, deviceID string) {
	coarse := coarseOf(sig)
	fine := fineProjection{
		coarseProjection: coarse,
		Width:            sig.Screen.Width,
		Height:           sig.Screen.Height,
		Canvas:           sig.Canvas.Hash,
		Audio:            sig.Audio.Hash,
	}
	return hmacHex(secret, coarse), hmacHex(secret, fine)
}
