package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/achilleasa/whitted/types"
)

// A 2D color grid that receives traced pixels. Row 0 is the bottom row of
// the frame. Distinct rows may be written concurrently.
type FrameBuffer struct {
	width, height int
	defaultColor  types.Color
	pixels        []types.Color
}

// Create a framebuffer with every pixel set to defaultColor.
func NewFrameBuffer(width, height int, defaultColor types.Color) *FrameBuffer {
	fb := &FrameBuffer{
		width:        max(width, 0),
		height:       max(height, 0),
		defaultColor: defaultColor,
	}
	fb.pixels = make([]types.Color, fb.width*fb.height)
	fb.Clear()
	return fb
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Reset every pixel to the default color.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = fb.defaultColor
	}
}

// Set the pixel at (row, col). Writes outside the frame are ignored.
func (fb *FrameBuffer) SetPixel(row, col int, c types.Color) {
	if row < 0 || row >= fb.height || col < 0 || col >= fb.width {
		return
	}
	fb.pixels[row*fb.width+col] = c
}

// Get the pixel at (row, col). Reads outside the frame return the default color.
func (fb *FrameBuffer) Pixel(row, col int) types.Color {
	if row < 0 || row >= fb.height || col < 0 || col >= fb.width {
		return fb.defaultColor
	}
	return fb.pixels[row*fb.width+col]
}

// Convert the framebuffer contents to an 8-bit image. Colors are scaled by
// exposure and clamped; rows are flipped so that row 0 ends up at the
// bottom of the image.
func (fb *FrameBuffer) Image(exposure float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for row := 0; row < fb.height; row++ {
		y := fb.height - 1 - row
		for col := 0; col < fb.width; col++ {
			r, g, b := fb.pixels[row*fb.width+col].Scale(exposure).RGB8()
			img.SetRGBA(col, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

func (fb *FrameBuffer) String() string {
	return fmt.Sprintf("%dx%d (%.2f MP)", fb.width, fb.height, float64(fb.width*fb.height)/1e6)
}
