// Package system registers global hotkeys with the operating system through
// golang.design/x/hotkey.
//
// On Linux that library opens the X11 display in its package init and
// panics when there is none, so the X11 implementation is only compiled with
// the x11hotkey build tag. Default Linux builds get a Source whose
// registrations fail with hotkey.ErrUnsupported; the control socket's
// `clipbridge trigger` then stands in for the hotkeys.
package system
