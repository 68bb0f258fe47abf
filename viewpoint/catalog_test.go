package viewpoint

import (
	"testing"

	"golang.org/x/text/language"
)

func TestCatalogHasFourteenPresets(t *testing.T) {
	presets := Presets()
	if len(presets) != 14 {
		t.Fatalf("catalog size = %d, want 14", len(presets))
	}
	seen := map[string]bool{}
	for _, p := range presets {
		if seen[p.ID] {
			t.Fatalf("duplicate preset id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestAdjacencyGraphIsTotal(t *testing.T) {
	dirs := []Direction{Up, Down, Left, Right}
	for _, p := range Presets() {
		edges, ok := adjacency[p.ID]
		if !ok {
			t.Fatalf("preset %q has no adjacency entry", p.ID)
		}
		for _, d := range dirs {
			next, ok := edges[d]
			if !ok {
				t.Fatalf("preset %q missing direction %s", p.ID, d)
			}
			if _, ok := Lookup(next); !ok {
				t.Fatalf("preset %q direction %s references unknown preset %q", p.ID, d, next)
			}
		}
	}
}

func TestNavigateRoundTrips(t *testing.T) {
	cases := []struct {
		from string
		out  Direction
		back Direction
	}{
		{PresetFront, Up, Down},
		{PresetFront, Right, Left},
		{PresetFront, Left, Right},
		{PresetRight, Up, Down},
		{PresetLeft, Down, Up},
	}
	for _, tc := range cases {
		mid := Navigate(tc.from, tc.out)
		if mid == tc.from {
			t.Fatalf("Navigate(%q, %s) did not move", tc.from, tc.out)
		}
		if got := Navigate(mid, tc.back); got != tc.from {
			t.Fatalf("Navigate(%q, %s) then %s = %q, want %q", tc.from, tc.out, tc.back, got, tc.from)
		}
	}
}

func TestNavigateNeverEscapesCatalog(t *testing.T) {
	dirs := []Direction{Up, Down, Left, Right}
	for _, p := range Presets() {
		for _, d := range dirs {
			next := Navigate(p.ID, d)
			if _, ok := Lookup(next); !ok {
				t.Fatalf("Navigate(%q, %s) = %q not in catalog", p.ID, d, next)
			}
		}
	}
}

func TestNavigateUnknownInputsAreNoOps(t *testing.T) {
	if got := Navigate("sideways", Up); got != "sideways" {
		t.Fatalf("unknown preset should be returned unchanged, got %q", got)
	}
	if got := Navigate(PresetFront, Direction("DIAGONAL")); got != PresetFront {
		t.Fatalf("unknown direction should be a no-op, got %q", got)
	}
}

func TestDiagonalsResolveTowardCardinals(t *testing.T) {
	if got := Navigate(PresetFrontRight, Right); got != PresetRight {
		t.Fatalf("front-right + RIGHT = %q, want %q", got, PresetRight)
	}
	if got := Navigate(PresetUpperLeft, Down); got != PresetLeft {
		t.Fatalf("upper-left + DOWN = %q, want %q", got, PresetLeft)
	}
}

func TestActiveFaces(t *testing.T) {
	for _, p := range Presets() {
		faces := ActiveFaces(p.ID)
		switch p.ID {
		case PresetFront, PresetBack, PresetLeft, PresetRight, PresetTop, PresetBottom:
			if len(faces) != 1 {
				t.Fatalf("cardinal preset %q highlights %d faces, want 1", p.ID, len(faces))
			}
		default:
			if len(faces) != 2 {
				t.Fatalf("diagonal preset %q highlights %d faces, want 2", p.ID, len(faces))
			}
		}
	}
	if faces := ActiveFaces("nope"); faces != nil {
		t.Fatalf("unknown preset should highlight nothing, got %v", faces)
	}
}

func TestDisplayNameLocalization(t *testing.T) {
	if got := DisplayName(PresetFrontLeft, language.English); got != "left three-quarter view" {
		t.Fatalf("english name = %q", got)
	}
	if got := DisplayName(PresetFrontLeft, language.Chinese); got != "左前方四分之三视角" {
		t.Fatalf("chinese name = %q", got)
	}
	if got := DisplayName("mystery", language.English); got != "mystery" {
		t.Fatalf("unknown preset should fall back to the id, got %q", got)
	}
}
