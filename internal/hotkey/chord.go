package hotkey

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownKey is returned for chords naming a key or modifier the
// platform table does not know.
var ErrUnknownKey = errors.New("unknown key")

// Chord is a parsed key combination such as "ctrl+shift+insert".
type Chord struct {
	// Mods are canonical modifier names (ctrl, shift, alt, super), sorted.
	Mods []string
	Key  string
}

var modAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"option":  "alt",
	"super":   "super",
	"win":     "super",
	"cmd":     "super",
	"command": "super",
	"meta":    "super",
}

var keyAliases = map[string]string{
	"ins":   "insert",
	"enter": "return",
	"esc":   "escape",
	"del":   "delete",
	"spc":   "space",
}

// ParseChord parses a "+"-separated chord. The last element is the key; the
// others are modifiers. Matching is case-insensitive.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Chord{}, fmt.Errorf("chord %q: empty element", s)
		}
	}

	key := parts[len(parts)-1]
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	if _, ok := modAliases[key]; ok {
		return Chord{}, fmt.Errorf("chord %q: missing key after modifiers", s)
	}

	var mods []string
	for _, p := range parts[:len(parts)-1] {
		m, ok := modAliases[p]
		if !ok {
			return Chord{}, fmt.Errorf("chord %q: %w modifier %q", s, ErrUnknownKey, p)
		}
		if !slices.Contains(mods, m) {
			mods = append(mods, m)
		}
	}
	slices.Sort(mods)
	return Chord{Mods: mods, Key: key}, nil
}

func (c Chord) String() string {
	return strings.Join(append(append([]string(nil), c.Mods...), c.Key), "+")
}
