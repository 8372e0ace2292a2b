package components

// Position represents a particle's current location in surface space.
// Layout matches gonum's r2.Vec so the two convert directly.
type Position struct {
	X, Y float64
}

// Anchor is the rest position a particle eases back toward.
// Set once at creation and never written again.
type Anchor struct {
	X, Y float64
}
