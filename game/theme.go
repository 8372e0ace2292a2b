package game

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/plexus/config"
)

// Theme holds the resolved draw colours.
type Theme struct {
	Background color.NRGBA
	Particle   color.NRGBA
	Line       color.NRGBA
}

// NewTheme parses the configured hex colours.
func NewTheme(tc config.ThemeConfig) (Theme, error) {
	var t Theme
	for _, c := range []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"background", tc.Background, &t.Background},
		{"particle", tc.Particle, &t.Particle},
		{"line", tc.Line, &t.Line},
	} {
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s %q: %w", c.name, c.hex, err)
		}
		r, g, b := parsed.RGB255()
		*c.dst = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return t, nil
}

// withOpacity returns c with alpha scaled by opacity in [0, 1].
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity <= 0 {
		c.A = 0
		return c
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}
