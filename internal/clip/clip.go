// Package clip provides a unified interface to the system clipboard across
// platforms. Build constraints select the appropriate implementation:
//
//	clip_windows.go  raw CF_DIB via user32, falling back to golang.design/x/clipboard
//	clip_unix.go     Linux and macOS via golang.design/x/clipboard
//	clip_other.go    headless stub for every other platform
//
// Images are read through golang.design/x/clipboard (or the raw DIB on
// Windows); text is written through github.com/atotto/clipboard, which
// reports failures instead of swallowing them.
package clip

import (
	"errors"
	"image"
)

var (
	// ErrNoImage is returned by ReadImage when the clipboard holds nothing
	// that decodes as an image. It is an expected outcome, not a failure.
	ErrNoImage = errors.New("no image found in clipboard")

	// ErrUnavailable is returned when the clipboard cannot be used at all,
	// e.g. on a headless host.
	ErrUnavailable = errors.New("clipboard unavailable")
)

// Backend is the interface that all platform clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ReadImage returns the image currently on the clipboard, or an error
	// wrapping ErrNoImage when there is none.
	ReadImage() (image.Image, error)

	// WriteText replaces the clipboard contents with text.
	WriteText(text string) error

	// Close releases any resources held by the backend.
	Close()
}
