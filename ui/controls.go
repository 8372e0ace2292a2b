package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plexus/game"
)

// ControlsPanel renders the particle-count and pointer-radius sliders and
// the reset button.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	maxParticles int
	maxRadius    float64
}

// NewControlsPanel creates a controls panel with the given slider ranges.
func NewControlsPanel(x, y, width int32, maxParticles int, maxRadius float64, visible bool) *ControlsPanel {
	return &ControlsPanel{
		renderer:     NewRenderer(),
		x:            x,
		y:            y,
		width:        width,
		visible:      visible,
		maxParticles: maxParticles,
		maxRadius:    maxRadius,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// height is the panel height for its fixed content.
func (c *ControlsPanel) height() int32 {
	t := c.renderer.Theme
	return t.Padding*2 + t.LineHeight + 4 + 2*(t.LineHeight+t.SliderHeight+8) + 30
}

// Bounds returns the panel rectangle.
func (c *ControlsPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height())}
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	return c.visible && rl.CheckCollisionPointRec(p, c.Bounds())
}

// Draw renders the panel and applies slider and button changes to s.
func (c *ControlsPanel) Draw(s *game.State) {
	if !c.visible {
		return
	}

	r := c.renderer
	t := r.Theme
	params := s.Params()
	inner := c.width - t.Padding*2

	r.DrawPanel(c.x, c.y, c.width, c.height())
	x := c.x + t.Padding
	y := r.DrawSectionHeader(x, c.y+t.Padding, "Field")

	// Particle count
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", params.ParticleCount))
	count := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: float32(t.SliderHeight)},
		"", "",
		float32(params.ParticleCount), 0, float32(c.maxParticles),
	)
	if n := int(math.Round(float64(count))); n != params.ParticleCount {
		s.SetParticleCount(n)
	}
	y += t.SliderHeight + 8

	// Pointer radius
	y = r.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.0f", params.InfluenceRadius))
	radius := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: float32(t.SliderHeight)},
		"", "",
		float32(params.InfluenceRadius), 0, float32(c.maxRadius),
	)
	if rv := float64(radius); math.Abs(rv-params.InfluenceRadius) >= 0.5 {
		s.SetInfluenceRadius(math.Round(rv))
	}
	y += t.SliderHeight + 8

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 24}, "Reset") {
		s.ResetToDefaults()
	}
}
