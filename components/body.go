package components

// Body holds the immutable physical properties of a particle.
type Body struct {
	Index   int     // creation order within the current particle set
	Radius  float64 // visual radius and clamp margin
	Density float64 // repulsion responsiveness, drawn once at creation
}
