//go:build windows

package inject

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const (
	vkControl      = 0x11
	vkV            = 0x56
	keyEventFKeyUp = 0x0002
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent = user32.NewProc("keybd_event")
)

type keybd struct{}

// New returns the user32 keybd_event injector.
func New() (Injector, error) {
	if err := procKeybdEvent.Find(); err != nil {
		return nil, fmt.Errorf("keybd_event: %w", err)
	}
	return keybd{}, nil
}

func (keybd) SendPasteChord() error {
	for _, ev := range [][2]uintptr{
		{vkControl, 0},
		{vkV, 0},
		{vkV, keyEventFKeyUp},
		{vkControl, keyEventFKeyUp},
	} {
		// keybd_event returns nothing; the only failure is a missing proc.
		_, _, _ = procKeybdEvent.Call(ev[0], 0, ev[1], 0)
	}
	return nil
}
