package clip

import "image"

// headlessBackend is used when no display server is available (headless
// Linux servers, containers, etc.). Every operation reports ErrUnavailable.
type headlessBackend struct{}

func (headlessBackend) Name() string                     { return "headless (no-op)" }
func (headlessBackend) ReadImage() (image.Image, error) { return nil, ErrUnavailable }
func (headlessBackend) WriteText(string) error           { return ErrUnavailable }
func (headlessBackend) Close()                           {}
