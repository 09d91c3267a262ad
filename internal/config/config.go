// Package config holds the immutable runtime configuration shared by every
// clipbridge component. It is built once at startup and passed by value.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.klb.dev/clipbridge/internal/pathconv"
)

// SharedDirName is the leaf name of the shared image directory.
const SharedDirName = "sharedclaude"

// ShortRefPrefix prefixes the short-form reference written to the clipboard.
// It is fixed and never derived from the resolved directory name.
const ShortRefPrefix = "@sharedclaude/"

// Defaults.
const (
	DefaultHotkeyShort   = "shift+insert"
	DefaultHotkeyFull    = "ctrl+shift+insert"
	DefaultLifetime      = 5 * time.Minute
	DefaultSweepInterval = 30 * time.Second
	DefaultPasteDelay    = 150 * time.Millisecond
	DefaultPollInterval  = 10 * time.Millisecond
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved configuration.
type Config struct {
	// BaseDir is the working directory supplied by the user.
	BaseDir string
	// SharedDir is the absolute directory images are written to.
	SharedDir string

	PathStyle   pathconv.Style
	MountPrefix string

	HotkeyShort string
	HotkeyFull  string

	Lifetime      time.Duration
	SweepInterval time.Duration
	PasteDelay    time.Duration
	PollInterval  time.Duration

	// Paste enables synthetic ctrl+v after the clipboard is rewritten.
	Paste bool
	// Control enables the local control socket.
	Control bool
}

// Default returns a Config with every default applied and no directories.
func Default() Config {
	return Config{
		PathStyle:     pathconv.StyleNative,
		MountPrefix:   pathconv.DefaultMountPrefix,
		HotkeyShort:   DefaultHotkeyShort,
		HotkeyFull:    DefaultHotkeyFull,
		Lifetime:      DefaultLifetime,
		SweepInterval: DefaultSweepInterval,
		PasteDelay:    DefaultPasteDelay,
		PollInterval:  DefaultPollInterval,
		Paste:         true,
		Control:       true,
	}
}

// ResolveSharedDir returns the shared directory for base: base itself when
// its last segment is already "sharedclaude", otherwise base/sharedclaude.
// Both separators are accepted so Windows paths resolve the same way on
// every host.
func ResolveSharedDir(base string) string {
	trimmed := strings.TrimRight(base, `/\`)
	if trimmed == "" {
		trimmed = base
	}
	leaf := trimmed[strings.LastIndexAny(trimmed, `/\`)+1:]
	if leaf == SharedDirName {
		return trimmed
	}
	return filepath.Join(trimmed, SharedDirName)
}

// WithBaseDir returns a copy of c with BaseDir and SharedDir set from base.
// The shared directory is made absolute.
func (c Config) WithBaseDir(base string) (Config, error) {
	shared := ResolveSharedDir(base)
	abs, err := filepath.Abs(shared)
	if err != nil {
		return c, fmt.Errorf("resolve %s: %w", shared, err)
	}
	c.BaseDir = base
	c.SharedDir = abs
	return c, nil
}

// PathOptions returns the translation options for full-path references.
func (c Config) PathOptions() pathconv.Options {
	return pathconv.Options{Style: c.PathStyle, MountPrefix: c.MountPrefix}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	var errs []error
	if c.SharedDir == "" {
		errs = append(errs, errors.New("shared directory is not set"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval))
	}
	// The sweeper relies on no file being created and expired within one interval.
	if c.Lifetime <= c.SweepInterval {
		errs = append(errs, fmt.Errorf("lifetime %s must be longer than sweep interval %s", c.Lifetime, c.SweepInterval))
	}
	if c.PasteDelay < 0 {
		errs = append(errs, fmt.Errorf("paste delay must not be negative, got %s", c.PasteDelay))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	if c.HotkeyShort == "" && c.HotkeyFull == "" {
		errs = append(errs, errors.New("no hotkey configured"))
	}
	if c.PathStyle != pathconv.StyleNative && c.PathStyle != pathconv.StyleWSL {
		errs = append(errs, fmt.Errorf("unknown path style %q", c.PathStyle))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
