package renderer

import (
	"image/color"
	"testing"

	"github.com/achilleasa/whitted/types"
)

func TestFrameBuffer(t *testing.T) {
	bg := types.RGB(0.25, 0.5, 0.75)
	fb := NewFrameBuffer(4, 2, bg)

	if fb.Width() != 4 || fb.Height() != 2 {
		t.Fatalf("expected 4x2 framebuffer; got %dx%d", fb.Width(), fb.Height())
	}
	if got := fb.Pixel(1, 3); got != bg {
		t.Fatalf("expected default color %v; got %v", bg, got)
	}

	fb.SetPixel(1, 3, types.White)
	fb.SetPixel(5, 5, types.White)
	fb.SetPixel(-1, 0, types.White)
	if got := fb.Pixel(1, 3); got != types.White {
		t.Fatalf("expected pixel to be set; got %v", got)
	}
	if got := fb.Pixel(5, 5); got != bg {
		t.Fatalf("expected out of bounds read to return the default color; got %v", got)
	}

	fb.Clear()
	if got := fb.Pixel(1, 3); got != bg {
		t.Fatalf("expected clear to restore the default color; got %v", got)
	}
}

func TestFrameBufferString(t *testing.T) {
	type spec struct {
		w, h int
		exp  string
	}
	specs := []spec{
		{640, 480, "640x480 (0.31 MP)"},
		{1920, 1080, "1920x1080 (2.07 MP)"},
		{0, 0, "0x0 (0.00 MP)"},
	}

	for index, s := range specs {
		if got := NewFrameBuffer(s.w, s.h, types.Black).String(); got != s.exp {
			t.Fatalf("[spec %d] expected %q; got %q", index, s.exp, got)
		}
	}
}

func TestFrameBufferImage(t *testing.T) {
	fb := NewFrameBuffer(2, 2, types.Black)
	fb.SetPixel(0, 0, types.RGB(0.5, 2, -1))
	fb.SetPixel(1, 1, types.RGB(0.2, 0.4, 0.1))

	type spec struct {
		exposure float32
		x, y     int
		exp      color.RGBA
	}
	specs := []spec{
		// Row 0 is the bottom image row; channels are clamped
		{1, 0, 1, color.RGBA{128, 255, 0, 255}},
		{1, 1, 0, color.RGBA{51, 102, 26, 255}},
		{2, 1, 0, color.RGBA{102, 204, 51, 255}},
		{1, 1, 1, color.RGBA{0, 0, 0, 255}},
	}

	for index, s := range specs {
		img := fb.Image(s.exposure)
		if got := img.RGBAAt(s.x, s.y); got != s.exp {
			t.Fatalf("[spec %d] expected pixel (%d, %d) to be %v; got %v", index, s.x, s.y, s.exp, got)
		}
	}
}
