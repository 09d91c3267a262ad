//go:build windows

package system

import xhotkey "golang.design/x/hotkey"

var platformMods = map[string]xhotkey.Modifier{
	"ctrl":  xhotkey.ModCtrl,
	"shift": xhotkey.ModShift,
	"alt":   xhotkey.ModAlt,
	"super": xhotkey.ModWin,
}

// Virtual-key codes missing from golang.design/x/hotkey.
var platformKeys = map[string]xhotkey.Key{
	"insert": xhotkey.Key(0x2D), // VK_INSERT
	"home":   xhotkey.Key(0x24), // VK_HOME
	"end":    xhotkey.Key(0x23), // VK_END
	"pause":  xhotkey.Key(0x13), // VK_PAUSE
}
