// Package render models output geometry: resolution tiers, aspect ratios and
// the pixel dimensions providers actually accept.
package render

import "math"

// Resolution is a coarse output tier mapped to a long-side pixel length.
type Resolution string

const (
	Resolution1K Resolution = "1K"
	Resolution2K Resolution = "2K"
	Resolution4K Resolution = "4K"
)

// AspectRatio enumerates supported output shapes.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectWide      AspectRatio = "16:9"
	AspectTall      AspectRatio = "9:16"
	AspectLandscape AspectRatio = "4:3"
	AspectPortrait  AspectRatio = "3:4"
)

// Config carries the per-request output settings. A fresh value is built from
// UI state for every generation; only the resulting history entry persists.
type Config struct {
	Resolution     Resolution
	AspectRatio    AspectRatio
	Strength       float64
	Seed           int64
	Scale          float64
	NegativePrompt string
}

// SeedUnset marks a seed the provider should choose itself.
const SeedUnset int64 = -1

// Default returns the baseline configuration used when the caller supplies
// nothing: square 1K output with the provider picking the seed.
func Default() Config {
	return Config{
		Resolution:  Resolution1K,
		AspectRatio: AspectSquare,
		Strength:    0.65,
		Seed:        SeedUnset,
		Scale:       7.5,
	}
}

// LongSide returns the long-edge pixel length for a tier. Unknown tiers fall
// back to 1K.
func LongSide(r Resolution) int {
	switch r {
	case Resolution2K:
		return 2048
	case Resolution4K:
		return 3840
	default:
		return 1024
	}
}

// Resolve converts an aspect ratio and resolution tier into concrete pixel
// dimensions. The short side is derived from the ratio first and both sides
// are then snapped to the nearest multiple of 8, in that order: rounding the
// ratio input before the division shifts results by up to 7px and breaks
// provider alignment.
func Resolve(aspect AspectRatio, tier Resolution) (width, height int) {
	long := LongSide(tier)

	w, h := long, long
	switch aspect {
	case AspectWide:
		w, h = long, roundRatio(long, 9, 16)
	case AspectTall:
		w, h = roundRatio(long, 9, 16), long
	case AspectLandscape:
		w, h = long, roundRatio(long, 3, 4)
	case AspectPortrait:
		w, h = roundRatio(long, 3, 4), long
	}

	return snapTo8(w), snapTo8(h)
}

func roundRatio(long, num, den int) int {
	return int(math.Round(float64(long) * float64(num) / float64(den)))
}

func snapTo8(v int) int {
	return int(math.Round(float64(v)/8)) * 8
}
