//go:build darwin

package system

import xhotkey "golang.design/x/hotkey"

var platformMods = map[string]xhotkey.Modifier{
	"ctrl":  xhotkey.ModCtrl,
	"shift": xhotkey.ModShift,
	"alt":   xhotkey.ModOption,
	"super": xhotkey.ModCmd,
}

// Carbon virtual key codes missing from golang.design/x/hotkey. Apple
// keyboards have no Insert; PC keyboards report it as Help.
var platformKeys = map[string]xhotkey.Key{
	"insert": xhotkey.Key(0x72), // kVK_Help
	"home":   xhotkey.Key(0x73), // kVK_Home
	"end":    xhotkey.Key(0x77), // kVK_End
}
