package geometry

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
)

// Rotation is a raw camera/subject orientation in degrees. Values are
// unbounded: drag gestures accumulate full turns and the sign never resets.
type Rotation struct {
	Pitch float64
	Yaw   float64
}

// Normalize maps both angles into the canonical (-180, 180] range. The
// +540/-180 dance keeps the mapping wrap-around safe for negative inputs and
// any number of accumulated turns.
func Normalize(r Rotation) Rotation {
	return Rotation{
		Pitch: normalizeDegrees(r.Pitch),
		Yaw:   normalizeDegrees(r.Yaw),
	}
}

func normalizeDegrees(raw float64) float64 {
	return math.Mod(math.Mod(raw, 360)+540, 360) - 180
}

// Vertical and horizontal classification breakpoints, in degrees. The buckets
// are intentionally asymmetric: a 20 degree tilt already reads as a distinct
// camera angle to a viewer, while anything past 160 degrees of yaw reads as
// "from behind" rather than a profile.
const (
	tiltThreshold    = 20
	profileThreshold = 160
)

// Describe classifies a rotation into a human-readable camera-angle phrase in
// the requested language, with the rounded canonical degrees embedded. Only
// English and Chinese vocabularies exist; any non-Chinese tag falls back to
// English.
func Describe(r Rotation, lang language.Tag) string {
	n := Normalize(r)

	if isChinese(lang) {
		vDesc := "平视"
		if n.Pitch < -tiltThreshold {
			vDesc = "仰视"
		} else if n.Pitch > tiltThreshold {
			vDesc = "俯视"
		}

		hDesc := "正面"
		switch {
		case n.Yaw > tiltThreshold && n.Yaw < profileThreshold:
			hDesc = "右侧"
		case n.Yaw < -tiltThreshold && n.Yaw > -profileThreshold:
			hDesc = "左侧"
		case math.Abs(n.Yaw) >= profileThreshold:
			hDesc = "背面"
		}

		return fmt.Sprintf("%s, %s (X:%d°, Y:%d°)", vDesc, hDesc, round(n.Pitch), round(n.Yaw))
	}

	vDesc := "Eye level"
	if n.Pitch < -tiltThreshold {
		vDesc = "Worm's eye view"
	} else if n.Pitch > tiltThreshold {
		vDesc = "High angle view"
	}

	hDesc := "Front view"
	switch {
	case n.Yaw > tiltThreshold && n.Yaw < profileThreshold:
		hDesc = "Right profile"
	case n.Yaw < -tiltThreshold && n.Yaw > -profileThreshold:
		hDesc = "Left profile"
	case math.Abs(n.Yaw) >= profileThreshold:
		hDesc = "Back view"
	}

	return fmt.Sprintf("%s, %s (X:%d°, Y:%d°)", vDesc, hDesc, round(n.Pitch), round(n.Yaw))
}

func isChinese(lang language.Tag) bool {
	base, _ := lang.Base()
	zh, _ := language.Chinese.Base()
	return base == zh
}

func round(v float64) int {
	return int(math.Round(v))
}
