// Package inject synthesizes the paste keystroke after the clipboard has
// been rewritten.
package inject

// Injector sends one ctrl+v chord to whatever window has focus.
type Injector interface {
	SendPasteChord() error
}

// Nop is an Injector that does nothing. It backs --no-paste.
type Nop struct{}

func (Nop) SendPasteChord() error { return nil }

// Func adapts a plain function to Injector.
type Func func() error

func (f Func) SendPasteChord() error { return f() }
