//go:build windows || darwin || (linux && x11hotkey)

package system

import (
	"fmt"

	xhotkey "golang.design/x/hotkey"

	"go.klb.dev/clipbridge/internal/hotkey"
)

// Supported reports whether this build can register global hotkeys.
const Supported = true

// source registers chords through golang.design/x/hotkey. On macOS the
// caller must run inside mainthread.Init.
type source struct {
	keys registry[*xhotkey.Hotkey]
}

// NewSource returns the OS-backed hotkey.Source for this platform.
func NewSource() hotkey.Source { return &source{} }

func (s *source) Register(b hotkey.Binding) error {
	if s.keys.has(b.Action) {
		return fmt.Errorf("%s already registered", b.Action)
	}
	chord, err := hotkey.ParseChord(b.Chord)
	if err != nil {
		return err
	}
	mods, key, err := resolve(chord)
	if err != nil {
		return err
	}
	hk := xhotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", chord, err)
	}
	s.keys.put(b.Action, hk)
	return nil
}

func (s *source) Unregister(b hotkey.Binding) error {
	hk, ok := s.keys.take(b.Action)
	if !ok {
		return nil
	}
	if err := hk.Unregister(); err != nil {
		return fmt.Errorf("unregister %s: %w", b.Chord, err)
	}
	return nil
}

// Poll checks each registered hotkey without blocking. Key releases are
// discarded; the library queues one per press and nobody else reads them.
func (s *source) Poll() (hotkey.Event, bool) {
	var (
		out hotkey.Event
		got bool
	)
	s.keys.each(func(a hotkey.Action, hk *xhotkey.Hotkey) bool {
		discard(hk.Keyup())
		select {
		case <-hk.Keydown():
			out, got = hotkey.Event{Kind: hotkey.EventTrigger, Action: a}, true
			return false
		default:
			return true
		}
	})
	return out, got
}

func resolve(c hotkey.Chord) ([]xhotkey.Modifier, xhotkey.Key, error) {
	mods := make([]xhotkey.Modifier, 0, len(c.Mods))
	for _, m := range c.Mods {
		mod, ok := platformMods[m]
		if !ok {
			return nil, 0, fmt.Errorf("%w: modifier %q on this platform", hotkey.ErrUnknownKey, m)
		}
		mods = append(mods, mod)
	}
	key, ok := platformKeys[c.Key]
	if !ok {
		key, ok = commonKeys[c.Key]
	}
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", hotkey.ErrUnknownKey, c.Key)
	}
	return mods, key, nil
}
