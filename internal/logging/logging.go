// Package logging configures the global slog logger for clipbridge.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// TimeFormat is the timestamp layout of the human-readable handler.
const TimeFormat = "15:04:05.000"

// Format selects the log output format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a string to a Format, returning FormatAuto for unknown values.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "text", "tint", "human":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}

// ResolveLevel converts s to a slog.Level. An empty or unparseable s yields
// debug for interactive sessions and info otherwise.
func ResolveLevel(s string, interactive bool) slog.Level {
	var l slog.Level
	if s != "" && l.UnmarshalText([]byte(s)) == nil {
		return l
	}
	if interactive {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Options controls handler selection.
type Options struct {
	Format Format
	Level  string
	// Interactive forces the tinted handler and a debug default level.
	Interactive bool
}

// New builds a logger writing to w: tinted text when w is a terminal (or
// the format says so), JSON otherwise.
func New(w io.Writer, opts Options) *slog.Logger {
	interactive := opts.Interactive || IsTTY(w)
	level := ResolveLevel(opts.Level, interactive)

	useTint := opts.Format == FormatText ||
		(opts.Format != FormatJSON && interactive)

	var h slog.Handler
	if useTint {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      level,
			TimeFormat: TimeFormat,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(h)
}

// Setup configures the global slog logger on stderr. Call once after
// flag/viper parsing.
func Setup(opts Options) *slog.Logger {
	l := New(os.Stderr, opts)
	slog.SetDefault(l)
	return l
}
