// Package surface defines the 2D drawing surface the field renders onto.
package surface

import "image/color"

// Surface receives the draw primitives of one frame. Colours carry straight
// (non-premultiplied) alpha.
type Surface interface {
	Clear(bg color.NRGBA)
	FillCircle(x, y, radius float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA)
}

// Kind identifies a recorded primitive.
type Kind uint8

const (
	KindClear Kind = iota
	KindCircle
	KindLine
)

// Primitive is a single recorded draw call.
type Primitive struct {
	Kind           Kind
	X1, Y1, X2, Y2 float64
	Radius, Width  float64
	Color          color.NRGBA
}

// Recorder is a Surface that keeps the primitives of the current frame.
// Clear starts a new frame. Headless runs and tests draw onto it.
type Recorder struct {
	Primitives []Primitive
	// Discard counts primitives without storing them.
	Discard bool

	circles int
	lines   int
}

// NewRecorder creates a recorder. With discard set it only counts.
func NewRecorder(discard bool) *Recorder {
	return &Recorder{Discard: discard}
}

// Clear resets the frame.
func (r *Recorder) Clear(bg color.NRGBA) {
	r.Primitives = r.Primitives[:0]
	r.circles = 0
	r.lines = 0
	if !r.Discard {
		r.Primitives = append(r.Primitives, Primitive{Kind: KindClear, Color: bg})
	}
}

// FillCircle records a filled circle.
func (r *Recorder) FillCircle(x, y, radius float64, c color.NRGBA) {
	r.circles++
	if r.Discard {
		return
	}
	r.Primitives = append(r.Primitives, Primitive{Kind: KindCircle, X1: x, Y1: y, Radius: radius, Color: c})
}

// StrokeLine records a line segment.
func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	r.lines++
	if r.Discard {
		return
	}
	r.Primitives = append(r.Primitives, Primitive{Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

// Circles returns the number of circles drawn this frame.
func (r *Recorder) Circles() int { return r.circles }

// Lines returns the number of lines drawn this frame.
func (r *Recorder) Lines() int { return r.lines }

// Filter returns the recorded primitives of the given kind.
func (r *Recorder) Filter(kind Kind) []Primitive {
	var out []Primitive
	for _, p := range r.Primitives {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
