//go:build linux || darwin

package clip

import (
	"image"
	"log/slog"
	"runtime"

	"golang.design/x/clipboard"
)

type desktopBackend struct{}

// New returns the clipboard backend for Linux (X11) or macOS, or a headless
// backend if the display is unavailable. clipboard.Init is called here rather
// than in init() so that sub-commands which never touch the clipboard don't
// log spurious warnings on headless systems.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headlessBackend{}
	}
	return desktopBackend{}
}

func (desktopBackend) Name() string {
	if runtime.GOOS == "darwin" {
		return "macOS NSPasteboard"
	}
	return "Linux clipboard"
}

func (desktopBackend) ReadImage() (image.Image, error) { return grabImage() }
func (desktopBackend) WriteText(text string) error     { return writeText(text) }
func (desktopBackend) Close()                          {}
