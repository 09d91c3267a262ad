//go:build !windows && !linux && !darwin

package clip

// New returns a headless backend; no clipboard integration exists for this
// platform.
func New() Backend { return headlessBackend{} }
