package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the readout values.
type HUDData struct {
	Particles   int
	Connections int
	Radius      float64
	Tick        int32
	FPS         int32
	TickUS      int64 // mean tick cost over the perf window
	Paused      bool
}

// HUD renders the bottom-left readout and key legend.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the readout above the legend.
func (h *HUD) Draw(data HUDData, screenHeight int32) {
	fs := h.renderer.Theme.FontSize
	rl.DrawText(
		fmt.Sprintf("Particles: %d | Lines: %d | Radius: %.0f | Tick: %d | FPS: %d | %dus/tick",
			data.Particles, data.Connections, data.Radius, data.Tick, data.FPS, data.TickUS),
		10, screenHeight-45, fs, rl.Gray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, screenHeight-65, h.renderer.Theme.HeaderFontSize, rl.Yellow)
	}
	rl.DrawText("[H] panel  [R] reset  [Space] pause  [F11] fullscreen  [Esc] quit", 10, screenHeight-25, fs, rl.DarkGray)
}
