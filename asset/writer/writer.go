// Package writer encodes rendered frames into image files.
package writer

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Quality used by the jpeg encoder.
const JPEGQuality = 95

// An Encoder serializes an image to a stream.
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	"ppm": EncodePPM,
	"png": png.Encode,
	"jpg": encodeJPEG,
	"bmp": bmp.Encode,
	"tif": encodeTIFF,
}

// Alternative extensions.
var formatAliases = map[string]string{
	"jpeg": "jpg",
	"tiff": "tif",
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Get the list of supported format names.
func Formats() []string {
	names := make([]string, 0, len(encoders)+len(formatAliases))
	for name := range encoders {
		names = append(names, name)
	}
	for name := range formatAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup the encoder for a format name or file extension.
func EncoderFor(format string) (Encoder, error) {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	if alias, isAlias := formatAliases[format]; isAlias {
		format = alias
	}

	enc, exists := encoders[format]
	if !exists {
		return nil, fmt.Errorf("writer: unsupported image format \"%s\"", format)
	}
	return enc, nil
}

// Encode img and write it to a file. The format is selected by the file
// extension.
func WriteImage(filename string, img image.Image) error {
	enc, err := EncoderFor(filepath.Ext(filename))
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err = enc(bw, img); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// Encode an image as a binary (P6) PPM with 8 bits per channel.
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	row := make([]byte, 3*bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			offset := 3 * (x - bounds.Min.X)
			row[offset], row[offset+1], row[offset+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
