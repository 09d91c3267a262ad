package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipbridge/internal/imaging"
)

// pngColorType returns the colour type byte from the IHDR chunk.
func pngColorType(t *testing.T, data []byte) byte {
	t.Helper()
	// 8-byte signature, 4-byte length, "IHDR", width, height, depth, colour type
	require.Greater(t, len(data), 25)
	require.Equal(t, "IHDR", string(data[12:16]))
	return data[25]
}

func assertOpaque(t *testing.T, img *image.RGBA) {
	t.Helper()
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			require.Equal(t, uint8(0xff), img.RGBAAt(x, y).A, "pixel (%d,%d) not opaque", x, y)
		}
	}
}

func TestNormalize_TransparentBecomesWhite(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	// (1,0) stays fully transparent
	src.SetNRGBA(2, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	out := imaging.Normalize(src)

	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assertOpaque(t, out)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(1, 0))

	// half-transparent black over white lands mid-grey
	half := out.RGBAAt(2, 0)
	assert.InDelta(t, 127, int(half.R), 2)
	assert.Equal(t, half.R, half.G)
	assert.Equal(t, half.G, half.B)
}

func TestNormalize_GrayConvertsToRGB(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(1, 1, color.Gray{Y: 0x40})

	out := imaging.Normalize(src)

	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, 4, out.Bounds().Dy())
	assertOpaque(t, out)
	assert.Equal(t, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, out.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{A: 0xff}, out.RGBAAt(0, 0))
}

func TestNormalize_PalettedWithTransparency(t *testing.T) {
	t.Parallel()

	pal := color.Palette{color.NRGBA{}, color.NRGBA{B: 255, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	src.SetColorIndex(1, 0, 1)

	out := imaging.Normalize(src)

	assertOpaque(t, out)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(1, 0))
}

func TestNormalize_OffsetBoundsMovedToOrigin(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(10, 20, 15, 22))
	src.SetRGBA(10, 20, color.RGBA{G: 200, A: 255})

	out := imaging.Normalize(src)

	assert.Equal(t, image.Rect(0, 0, 5, 2), out.Bounds())
	assert.Equal(t, color.RGBA{G: 200, A: 255}, out.RGBAAt(0, 0))
}

func TestNormalize_YCbCr(t *testing.T) {
	t.Parallel()

	src := image.NewYCbCr(image.Rect(0, 0, 8, 6), image.YCbCrSubsampleRatio420)
	out := imaging.Normalize(src)

	assert.Equal(t, 8, out.Bounds().Dx())
	assert.Equal(t, 6, out.Bounds().Dy())
	assertOpaque(t, out)
}

func TestHasAlpha(t *testing.T) {
	t.Parallel()

	opaque := image.NewRGBA(image.Rect(0, 0, 1, 1))
	opaque.SetRGBA(0, 0, color.RGBA{A: 255})
	assert.False(t, imaging.HasAlpha(opaque))
	assert.True(t, imaging.HasAlpha(image.NewNRGBA(image.Rect(0, 0, 1, 1))))
	assert.False(t, imaging.HasAlpha(image.NewGray(image.Rect(0, 0, 1, 1))))
}

func TestEncodePNG_WritesRGBColorType(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 5, 7))
	src.SetNRGBA(2, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	var buf bytes.Buffer
	require.NoError(t, imaging.EncodePNG(&buf, imaging.Normalize(src)))

	assert.Equal(t, byte(2), pngColorType(t, buf.Bytes()), "expected truecolour without alpha")

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 7), decoded.Bounds())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))

	img, format, err := imaging.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 2, img.Bounds().Dx())

	_, _, err = imaging.Decode([]byte("not an image"))
	require.Error(t, err)
}
