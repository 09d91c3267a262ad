//go:build windows

package clip

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"
	"unsafe"

	"golang.design/x/clipboard"
	"golang.org/x/sys/windows"
)

const (
	cfBitmap = 2
	cfDIB    = 8

	openAttempts = 5
	openBackoff  = 20 * time.Millisecond
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procGlobalLock                 = kernel32.NewProc("GlobalLock")
	procGlobalUnlock               = kernel32.NewProc("GlobalUnlock")
	procGlobalSize                 = kernel32.NewProc("GlobalSize")
)

type windowsBackend struct {
	grabOK bool
}

// New returns the Windows clipboard backend. clipboard.Init only gates the
// bitmap grab fallback; the raw CF_DIB path talks to user32 directly.
func New() Backend {
	b := &windowsBackend{grabOK: true}
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard init failed, CF_BITMAP fallback disabled", "err", err)
		b.grabOK = false
	}
	return b
}

func (b *windowsBackend) Name() string { return "Windows Clipboard" }

// ReadImage prefers the CF_DIB blob and falls back to the bitmap grab when
// only CF_BITMAP is offered or the blob does not decode.
func (b *windowsBackend) ReadImage() (image.Image, error) {
	blob, hasBitmap, err := readDIB()
	if err != nil {
		return nil, err
	}
	if blob != nil {
		img, err := DecodeDIB(blob)
		if err == nil {
			return img, nil
		}
		slog.Debug("CF_DIB not decodable, trying bitmap grab", "err", err)
		hasBitmap = true
	}
	if !hasBitmap {
		return nil, ErrNoImage
	}
	if !b.grabOK {
		return nil, fmt.Errorf("%w: bitmap grab unavailable", ErrNoImage)
	}
	return grabImage()
}

func (b *windowsBackend) WriteText(text string) error { return writeText(text) }
func (b *windowsBackend) Close()                      {}

// readDIB copies the CF_DIB blob off the clipboard. When no DIB is present it
// reports whether a CF_BITMAP handle is offered instead.
func readDIB() (blob []byte, hasBitmap bool, err error) {
	// The clipboard is owned by the thread that opened it.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := openClipboard(); err != nil {
		return nil, false, err
	}
	defer procCloseClipboard.Call()

	if r, _, _ := procIsClipboardFormatAvailable.Call(cfDIB); r == 0 {
		r, _, _ = procIsClipboardFormatAvailable.Call(cfBitmap)
		return nil, r != 0, nil
	}

	h, _, callErr := procGetClipboardData.Call(cfDIB)
	if h == 0 {
		return nil, false, fmt.Errorf("GetClipboardData(CF_DIB): %w", callErr)
	}
	p, _, callErr := procGlobalLock.Call(h)
	if p == 0 {
		return nil, false, fmt.Errorf("GlobalLock: %w", callErr)
	}
	defer procGlobalUnlock.Call(h)

	size, _, _ := procGlobalSize.Call(h)
	src := unsafe.Slice((*byte)(unsafe.Pointer(p)), int(size))
	blob = make([]byte, len(src))
	copy(blob, src)
	return blob, false, nil
}

// openClipboard retries briefly; another process may hold the clipboard for
// a few milliseconds right after a copy.
func openClipboard() error {
	var err error
	for range openAttempts {
		var r uintptr
		r, _, err = procOpenClipboard.Call(0)
		if r != 0 {
			return nil
		}
		time.Sleep(openBackoff)
	}
	return fmt.Errorf("OpenClipboard: %w", err)
}
