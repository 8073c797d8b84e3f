package render

import (
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/rockfield/pkg/sim"
)

// HUD overlays the score, frame rate and game-over banner on the scene.
type HUD struct {
	Palette Palette
	ShowFPS bool

	score     int
	running   bool
	asteroids int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD with its FPS window starting at now.
func NewHUD(p Palette, now time.Time) *HUD {
	return &HUD{Palette: p, ShowFPS: true, running: true, fpsTime: now}
}

// Update records the values to show from snap.
func (h *HUD) Update(snap *sim.Snapshot) {
	h.score = snap.Score
	h.running = snap.Running
	h.asteroids = len(snap.Asteroids)
}

// Tick counts a frame and refreshes the FPS figure once per second.
func (h *HUD) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the frame rate measured over the last full second.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Draw implements uv.Drawable.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle) {
	width, height := area.Max.X-area.Min.X, area.Max.Y-area.Min.Y
	if width <= 0 || height <= 0 {
		return
	}
	text := uv.Style{Fg: h.Palette.HUD, Bg: h.Palette.Background}
	bold := text
	bold.Attrs |= uv.AttrBold

	drawText(scr, area, area.Min.X, area.Min.Y, fmt.Sprintf(" SCORE %d ", h.score), bold)
	drawText(scr, area, area.Min.X, area.Max.Y-1, fmt.Sprintf(" %d asteroids ", h.asteroids), text)
	if h.ShowFPS {
		s := fmt.Sprintf(" %.0f FPS ", h.fps)
		drawText(scr, area, area.Max.X-len(s), area.Min.Y, s, text)
	}

	if !h.running {
		alert := uv.Style{Fg: h.Palette.Alert, Bg: h.Palette.Background, Attrs: uv.AttrBold}
		mid := area.Min.Y + height/2
		centered(scr, area, mid-1, " GAME OVER ", alert)
		centered(scr, area, mid+1, fmt.Sprintf(" final score %d, esc to quit ", h.score), text)
	}
}

func centered(scr uv.Screen, area uv.Rectangle, y int, s string, style uv.Style) {
	drawText(scr, area, (area.Min.X+area.Max.X-len(s))/2, y, s, style)
}

// drawText writes ASCII text one cell per byte, clipped to area.
func drawText(scr uv.Screen, area uv.Rectangle, x, y int, s string, style uv.Style) {
	if y < area.Min.Y || y >= area.Max.Y {
		return
	}
	for i := range len(s) {
		col := x + i
		if col < area.Min.X || col >= area.Max.X {
			continue
		}
		scr.SetCell(col, y, &uv.Cell{Content: string(s[i]), Width: 1, Style: style})
	}
}
