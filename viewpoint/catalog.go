// Package viewpoint holds the fixed catalog of named camera viewpoints and
// the hand-curated navigation graph between them. Navigation is an explicit
// lookup table rather than grid math: diagonals route back to the cardinal
// views a human would expect, which a torus layout cannot express.
package viewpoint

// Face identifies one side of the preview cube for highlighting.
type Face string

const (
	FaceFront  Face = "front"
	FaceBack   Face = "back"
	FaceLeft   Face = "left"
	FaceRight  Face = "right"
	FaceTop    Face = "top"
	FaceBottom Face = "bottom"
)

// Direction is a discrete navigation step between presets.
type Direction string

const (
	Up    Direction = "UP"
	Down  Direction = "DOWN"
	Left  Direction = "LEFT"
	Right Direction = "RIGHT"
)

// Preset is a named, fixed viewpoint with canonical pitch/yaw values.
type Preset struct {
	ID    string
	Pitch float64
	Yaw   float64
	Faces []Face
}

// Stable preset identifiers. Display strings live in the localization table
// below so navigation never depends on a display language.
const (
	PresetFront      = "front"
	PresetRight      = "right"
	PresetLeft       = "left"
	PresetBack       = "back"
	PresetFrontRight = "front-right"
	PresetFrontLeft  = "front-left"
	PresetBackRight  = "back-right"
	PresetBackLeft   = "back-left"
	PresetTop        = "top"
	PresetBottom     = "bottom"
	PresetUpperRight = "upper-right"
	PresetUpperLeft  = "upper-left"
	PresetLowerRight = "lower-right"
	PresetLowerLeft  = "lower-left"
)

var catalog = []Preset{
	{ID: PresetFront, Pitch: 0, Yaw: 0, Faces: []Face{FaceFront}},
	{ID: PresetFrontRight, Pitch: 0, Yaw: 45, Faces: []Face{FaceFront, FaceRight}},
	{ID: PresetRight, Pitch: 0, Yaw: 90, Faces: []Face{FaceRight}},
	{ID: PresetBackRight, Pitch: 0, Yaw: 135, Faces: []Face{FaceBack, FaceRight}},
	{ID: PresetBack, Pitch: 0, Yaw: 180, Faces: []Face{FaceBack}},
	{ID: PresetBackLeft, Pitch: 0, Yaw: -135, Faces: []Face{FaceBack, FaceLeft}},
	{ID: PresetLeft, Pitch: 0, Yaw: -90, Faces: []Face{FaceLeft}},
	{ID: PresetFrontLeft, Pitch: 0, Yaw: -45, Faces: []Face{FaceFront, FaceLeft}},
	{ID: PresetTop, Pitch: 60, Yaw: 0, Faces: []Face{FaceTop}},
	{ID: PresetUpperRight, Pitch: 30, Yaw: 45, Faces: []Face{FaceTop, FaceRight}},
	{ID: PresetUpperLeft, Pitch: 30, Yaw: -45, Faces: []Face{FaceTop, FaceLeft}},
	{ID: PresetBottom, Pitch: -60, Yaw: 0, Faces: []Face{FaceBottom}},
	{ID: PresetLowerRight, Pitch: -30, Yaw: 45, Faces: []Face{FaceBottom, FaceRight}},
	{ID: PresetLowerLeft, Pitch: -30, Yaw: -45, Faces: []Face{FaceBottom, FaceLeft}},
}

var byID = func() map[string]Preset {
	m := make(map[string]Preset, len(catalog))
	for _, p := range catalog {
		m[p.ID] = p
	}
	return m
}()

// adjacency is deliberately hand-written. LEFT/RIGHT walk the equatorial ring
// through the three-quarter views; UP/DOWN move between tiers, with diagonals
// resolving to the nearest cardinal on the way back. Entries may reference
// themselves at the edges of the graph.
var adjacency = map[string]map[Direction]string{
	PresetFront:      {Up: PresetTop, Down: PresetBottom, Left: PresetFrontLeft, Right: PresetFrontRight},
	PresetFrontRight: {Up: PresetUpperRight, Down: PresetLowerRight, Left: PresetFront, Right: PresetRight},
	PresetRight:      {Up: PresetUpperRight, Down: PresetLowerRight, Left: PresetFrontRight, Right: PresetBackRight},
	PresetBackRight:  {Up: PresetUpperRight, Down: PresetLowerRight, Left: PresetRight, Right: PresetBack},
	PresetBack:       {Up: PresetTop, Down: PresetBottom, Left: PresetBackRight, Right: PresetBackLeft},
	PresetBackLeft:   {Up: PresetUpperLeft, Down: PresetLowerLeft, Left: PresetBack, Right: PresetLeft},
	PresetLeft:       {Up: PresetUpperLeft, Down: PresetLowerLeft, Left: PresetBackLeft, Right: PresetFrontLeft},
	PresetFrontLeft:  {Up: PresetUpperLeft, Down: PresetLowerLeft, Left: PresetLeft, Right: PresetFront},
	PresetTop:        {Up: PresetTop, Down: PresetFront, Left: PresetUpperLeft, Right: PresetUpperRight},
	PresetUpperRight: {Up: PresetTop, Down: PresetRight, Left: PresetTop, Right: PresetRight},
	PresetUpperLeft:  {Up: PresetTop, Down: PresetLeft, Left: PresetLeft, Right: PresetTop},
	PresetBottom:     {Up: PresetFront, Down: PresetBottom, Left: PresetLowerLeft, Right: PresetLowerRight},
	PresetLowerRight: {Up: PresetRight, Down: PresetBottom, Left: PresetBottom, Right: PresetRight},
	PresetLowerLeft:  {Up: PresetLeft, Down: PresetBottom, Left: PresetLeft, Right: PresetBottom},
}

// Presets returns the catalog in its fixed display order.
func Presets() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the preset for the given identifier.
func Lookup(id string) (Preset, bool) {
	p, ok := byID[id]
	return p, ok
}

// Navigate resolves one discrete step from the current preset. Unknown
// presets and undefined directions are a no-op: the current identifier is
// returned unchanged and Navigate never panics.
func Navigate(current string, dir Direction) string {
	edges, ok := adjacency[current]
	if !ok {
		return current
	}
	next, ok := edges[dir]
	if !ok {
		return current
	}
	return next
}

// ActiveFaces returns the cube faces to highlight for a preset: one face for
// cardinal views, two for diagonals. Unknown presets highlight nothing.
func ActiveFaces(id string) []Face {
	p, ok := byID[id]
	if !ok {
		return nil
	}
	faces := make([]Face, len(p.Faces))
	copy(faces, p.Faces)
	return faces
}
