package clip

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/bmp"

	"go.klb.dev/clipbridge/internal/imaging"
)

// Layout of a device-independent bitmap as placed on the clipboard (CF_DIB):
// a BITMAPINFOHEADER (or a larger V4/V5 header), optional colour masks and
// palette, then the payload. A .bmp file is the same thing behind a 14-byte
// BITMAPFILEHEADER.
const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	maskLen       = 12

	biRGB       = 0
	biBitfields = 3
	biJPEG      = 4
	biPNG       = 5
)

var errBadDIB = errors.New("dib: malformed header")

// DecodeDIB decodes a CF_DIB clipboard blob. The leading info header is
// read and skipped; JPEG and PNG payloads are decoded directly, uncompressed
// bitmaps are decoded by prefixing the BMP file header they lack.
func DecodeDIB(b []byte) (image.Image, error) {
	if len(b) < infoHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes", errBadDIB, len(b))
	}
	hdrLen := int(binary.LittleEndian.Uint32(b[0:4]))
	if hdrLen < infoHeaderLen || hdrLen > len(b) {
		return nil, fmt.Errorf("%w: header size %d", errBadDIB, hdrLen)
	}
	bpp := int(binary.LittleEndian.Uint16(b[14:16]))
	compression := binary.LittleEndian.Uint32(b[16:20])
	clrUsed := int(binary.LittleEndian.Uint32(b[32:36]))

	switch compression {
	case biJPEG, biPNG:
		img, _, err := imaging.Decode(b[hdrLen:])
		return img, err
	}

	palette := clrUsed
	if palette == 0 && bpp <= 8 {
		palette = 1 << bpp
	}
	offset := fileHeaderLen + hdrLen + palette*4

	dib := b
	if compression == biBitfields && hdrLen == infoHeaderLen {
		// x/image/bmp only reads bit fields from V4/V5 headers. The usual
		// 32-bit BGRX layout is identical to BI_RGB once the masks are gone.
		if bpp != 32 || len(b) < hdrLen+maskLen || !standardMasks(b[hdrLen:hdrLen+maskLen]) {
			return nil, fmt.Errorf("dib: unsupported bit fields (%d bpp)", bpp)
		}
		dib = make([]byte, 0, len(b)-maskLen)
		dib = append(dib, b[:hdrLen]...)
		dib = append(dib, b[hdrLen+maskLen:]...)
		binary.LittleEndian.PutUint32(dib[16:20], biRGB)
	}

	file := make([]byte, fileHeaderLen, fileHeaderLen+len(dib))
	file[0], file[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(file[2:6], uint32(fileHeaderLen+len(dib)))
	binary.LittleEndian.PutUint32(file[10:14], uint32(offset))
	file = append(file, dib...)

	img, err := bmp.Decode(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("dib: %w", err)
	}
	return img, nil
}

func standardMasks(m []byte) bool {
	return binary.LittleEndian.Uint32(m[0:4]) == 0x00ff0000 &&
		binary.LittleEndian.Uint32(m[4:8]) == 0x0000ff00 &&
		binary.LittleEndian.Uint32(m[8:12]) == 0x000000ff
}
