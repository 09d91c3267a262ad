//go:build linux && x11hotkey

package system

import xhotkey "golang.design/x/hotkey"

// X11 modifier masks: Mod1 is Alt and Mod4 is Super on stock layouts.
var platformMods = map[string]xhotkey.Modifier{
	"ctrl":  xhotkey.ModCtrl,
	"shift": xhotkey.ModShift,
	"alt":   xhotkey.Mod1,
	"super": xhotkey.Mod4,
}

// X11 keysyms missing from golang.design/x/hotkey.
var platformKeys = map[string]xhotkey.Key{
	"insert": xhotkey.Key(0xff63), // XK_Insert
	"home":   xhotkey.Key(0xff50), // XK_Home
	"end":    xhotkey.Key(0xff57), // XK_End
	"pause":  xhotkey.Key(0xff13), // XK_Pause
}
