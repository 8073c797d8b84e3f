package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// upperHalf shows the top pixel as foreground and the bottom one as background.
const upperHalf = "▀"

// Draw paints the framebuffer onto scr. Row r of the screen shows pixel
// rows 2r and 2r+1. It satisfies uv.Drawable.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: upperHalf,
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// rgbaToColor maps fully transparent pixels to the terminal default.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is an alias for color.RGBA.
type Color = color.RGBA

// RGB creates an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Shade scales the RGB channels of c by intensity, clamped to [0, 1].
func Shade(c color.RGBA, intensity float64) color.RGBA {
	intensity = max(0, min(1, intensity))
	return color.RGBA{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}

// Palette holds the colors of everything the scene draws.
type Palette struct {
	Background color.RGBA
	Asteroid   color.RGBA
	Ship       color.RGBA
	Wreck      color.RGBA
	Bullet     color.RGBA
	Star       color.RGBA
	HUD        color.RGBA
	Alert      color.RGBA
}

// DefaultPalette returns the standard rockfield colors.
func DefaultPalette() Palette {
	return Palette{
		Background: RGB(8, 8, 16),
		Asteroid:   RGB(170, 150, 130),
		Ship:       RGB(120, 200, 255),
		Wreck:      RGB(200, 60, 40),
		Bullet:     RGB(255, 240, 120),
		Star:       RGB(150, 150, 170),
		HUD:        RGB(230, 230, 230),
		Alert:      RGB(255, 80, 60),
	}
}
