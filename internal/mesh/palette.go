package mesh

// Color is an RGB triple in [0,1].
type Color [3]float32

// Palette maps the six axis-aligned face directions to colors. Each color
// pairs 1:1 with one of the three 2D views: Top/Bottom with the top view,
// Front/Back with the front view, Right/Left with the side view.
type Palette struct {
	Top    Color
	Bottom Color
	Front  Color
	Back   Color
	Right  Color
	Left   Color
}

// DefaultPalette returns the stock six-color scheme.
func DefaultPalette() Palette {
	return Palette{
		Top:    Color{0.93, 0.79, 0.25}, // yellow
		Bottom: Color{0.55, 0.42, 0.13},
		Front:  Color{0.28, 0.56, 0.89}, // blue
		Back:   Color{0.16, 0.30, 0.52},
		Right:  Color{0.84, 0.32, 0.28}, // red
		Left:   Color{0.52, 0.18, 0.16},
	}
}

// dominance threshold for classifying a normal. Wedge hypotenuse faces have
// two components at ~0.707, so 0.5 picks the right pair and the priority
// chain below breaks the tie.
const dominant = 0.5

// ColorFor classifies a flat face normal into one of the six colors.
// Priority: vertical axis, then the front-view depth axis, then the lateral
// axis. The order matters for the 45° wedge faces, which exceed the
// threshold on two axes at once.
func (p Palette) ColorFor(n vec3) Color {
	switch {
	case n.y > dominant:
		return p.Top
	case n.y < -dominant:
		return p.Bottom
	case n.z > dominant:
		return p.Front
	case n.z < -dominant:
		return p.Back
	case n.x > dominant:
		return p.Right
	default:
		return p.Left
	}
}
