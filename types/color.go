package types

import (
	"fmt"
	"math"
)

// An RGB color with float32 channels. Channel values are not clamped while
// tracing; clamping happens when the color is quantized for output.
type Color struct {
	R, G, B float32
}

// Commonly used colors.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Gray  = Color{0.5, 0.5, 0.5}
)

// Define a color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// Add a color.
func (c Color) Add(c2 Color) Color {
	return Color{c.R + c2.R, c.G + c2.G, c.B + c2.B}
}

// Multiply each channel with a scalar.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Multiply channels pair-wise.
func (c Color) Mul(c2 Color) Color {
	return Color{c.R * c2.R, c.G * c2.G, c.B * c2.B}
}

// Clamp channels to the [0, 1] range.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Quantize color to 8 bits per channel.
func (c Color) RGB8() (r, g, b uint8) {
	c = c.Clamp()
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

// Returns true if the color channels of c and c2 differ by at most eps.
func (c Color) ApproxEqual(c2 Color, eps float32) bool {
	return abs32(c.R-c2.R) <= eps && abs32(c.G-c2.G) <= eps && abs32(c.B-c2.B) <= eps
}

// Returns true if all channels are finite numbers.
func (c Color) IsFinite() bool {
	for _, v := range [3]float32{c.R, c.G, c.B} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

func (c Color) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
