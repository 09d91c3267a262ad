// Package imaging converts clipboard bitmaps into the canonical form written
// to disk: opaque RGB, alpha flattened against white, PNG encoded.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	"image/png"
	"io"

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Normalize returns an opaque copy of src with the same dimensions and its
// origin at (0,0). Pixels carrying alpha are composited over white:
//
//	out = src*alpha + white*(1-alpha)
//
// Sources without alpha are converted to RGB through their colour model.
func Normalize(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// HasAlpha reports whether img may contain non-opaque pixels.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// EncodePNG writes img as PNG. An opaque *image.RGBA (as returned by
// Normalize) is written with the RGB colour type.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	return nil
}

// Decode decodes any registered image format (PNG, JPEG, GIF, BMP, TIFF,
// WebP) from data.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("image decode: %w", err)
	}
	return img, format, nil
}
