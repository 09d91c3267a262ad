//go:build windows || linux || darwin

package clip

import (
	"fmt"
	"image"

	"golang.design/x/clipboard"

	"go.klb.dev/clipbridge/internal/imaging"
)

// grabImage reads the clipboard's image representation through
// golang.design/x/clipboard, which hands it back PNG-encoded.
func grabImage() (image.Image, error) {
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoImage, err)
	}
	return img, nil
}
