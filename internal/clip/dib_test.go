package clip_test

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"go.klb.dev/clipbridge/internal/clip"
)

func opaqueImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 60), B: 77, A: 255})
		}
	}
	return img
}

func assertSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			w := color.RGBAModel.Convert(want.At(x, y))
			g := color.RGBAModel.Convert(got.At(got.Bounds().Min.X+x, got.Bounds().Min.Y+y))
			require.Equal(t, w, g, "pixel (%d,%d)", x, y)
		}
	}
}

// infoHeader builds a 40-byte BITMAPINFOHEADER.
func infoHeader(w, h int32, bpp uint16, compression uint32) []byte {
	b := make([]byte, 40)
	binary.LittleEndian.PutUint32(b[0:4], 40)
	binary.LittleEndian.PutUint32(b[4:8], uint32(w))
	binary.LittleEndian.PutUint32(b[8:12], uint32(h))
	binary.LittleEndian.PutUint16(b[12:14], 1)
	binary.LittleEndian.PutUint16(b[14:16], bpp)
	binary.LittleEndian.PutUint32(b[16:20], compression)
	return b
}

func TestDecodeDIB_FromBMPFile(t *testing.T) {
	t.Parallel()

	src := opaqueImage(5, 3)
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	// CF_DIB is a .bmp without its 14-byte file header.
	img, err := clip.DecodeDIB(buf.Bytes()[14:])
	require.NoError(t, err)
	assertSamePixels(t, src, img)
}

func TestDecodeDIB_Bitfields32(t *testing.T) {
	t.Parallel()

	// 2x1, bottom-up, BGRX pixels with standard masks after the header.
	var blob []byte
	blob = append(blob, infoHeader(2, 1, 32, 3)...)
	masks := make([]byte, 12)
	binary.LittleEndian.PutUint32(masks[0:4], 0x00ff0000)
	binary.LittleEndian.PutUint32(masks[4:8], 0x0000ff00)
	binary.LittleEndian.PutUint32(masks[8:12], 0x000000ff)
	blob = append(blob, masks...)
	blob = append(blob,
		0x10, 0x20, 0x30, 0x00, // B G R X
		0xff, 0x00, 0x00, 0x00,
	)

	img, err := clip.DecodeDIB(blob)
	require.NoError(t, err)
	require.Equal(t, image.Pt(2, 1), img.Bounds().Size())

	assert.Equal(t, color.RGBA{R: 0x30, G: 0x20, B: 0x10, A: 0xff}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, color.RGBAModel.Convert(img.At(1, 0)))
}

func TestDecodeDIB_EmbeddedPNG(t *testing.T) {
	t.Parallel()

	src := opaqueImage(4, 4)
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))

	blob := append(infoHeader(4, 4, 0, 5), pngBuf.Bytes()...)

	img, err := clip.DecodeDIB(blob)
	require.NoError(t, err)
	assertSamePixels(t, src, img)
}

func TestDecodeDIB_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"empty":          nil,
		"short":          make([]byte, 12),
		"bad header len": append([]byte{0xff, 0xff, 0, 0}, make([]byte, 40)...),
		"odd bit fields": append(infoHeader(1, 1, 16, 3), make([]byte, 16)...),
		"garbage png":    append(infoHeader(1, 1, 0, 5), []byte("nope")...),
	}
	for name, blob := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := clip.DecodeDIB(blob)
			require.Error(t, err)
		})
	}
}
