//go:build !windows && !darwin && !(linux && x11hotkey)

package system

import "go.klb.dev/clipbridge/internal/hotkey"

// Supported reports whether this build can register global hotkeys.
const Supported = false

type unsupported struct{}

// NewSource returns a hotkey.Source whose registrations always fail with
// hotkey.ErrUnsupported.
func NewSource() hotkey.Source { return unsupported{} }

func (unsupported) Register(hotkey.Binding) error   { return hotkey.ErrUnsupported }
func (unsupported) Unregister(hotkey.Binding) error { return nil }
func (unsupported) Poll() (hotkey.Event, bool)      { return hotkey.Event{}, false }
