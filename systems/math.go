package systems

import "math"

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clampMargin clamps v into [margin, size-margin], checking the low wall first.
func clampMargin(v, margin, size float64) float64 {
	if v < margin {
		return margin
	}
	if v > size-margin {
		return size - margin
	}
	return v
}
