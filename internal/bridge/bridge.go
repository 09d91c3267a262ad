// Package bridge implements one clipboard-to-file conversion: read the
// clipboard image, persist it as PNG, replace the clipboard with a textual
// reference to the file and paste that reference into the focused window.
package bridge

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"go.klb.dev/clipbridge/internal/clip"
	"go.klb.dev/clipbridge/internal/config"
	"go.klb.dev/clipbridge/internal/hotkey"
	"go.klb.dev/clipbridge/internal/imaging"
	"go.klb.dev/clipbridge/internal/inject"
	"go.klb.dev/clipbridge/internal/pathconv"
	"go.klb.dev/clipbridge/internal/store"
)

// Clipboard is the part of clip.Backend a run needs.
type Clipboard interface {
	ReadImage() (image.Image, error)
	WriteText(text string) error
}

// Saver persists a normalised image.
type Saver interface {
	Save(img image.Image) (store.Image, error)
}

// Options controls how a run formats and delivers its reference.
type Options struct {
	Path pathconv.Options
	// PasteDelay is waited out between the clipboard write and the paste
	// chord so the target application sees the new contents.
	PasteDelay time.Duration
	// Paste enables the synthetic ctrl+v.
	Paste bool
}

// OptionsFrom derives Options from the runtime configuration.
func OptionsFrom(c config.Config) Options {
	return Options{Path: c.PathOptions(), PasteDelay: c.PasteDelay, Paste: c.Paste}
}

// Result describes a successful run.
type Result struct {
	Name      string
	Path      string
	Reference string
	// Pasted is false when injection was disabled or failed.
	Pasted bool
}

// Stats are cumulative counters since the Bridge was created.
type Stats struct {
	Runs   uint64 `json:"runs"`
	Saved  uint64 `json:"saved"`
	Empty  uint64 `json:"empty"`
	Failed uint64 `json:"failed"`
}

// Bridge performs conversions. It is safe for concurrent use; concurrent
// runs are independent and are not serialised.
type Bridge struct {
	clip   Clipboard
	store  Saver
	inject inject.Injector
	opts   Options
	log    *slog.Logger
	sleep  func(time.Duration)

	runs, saved, empty, failed atomic.Uint64
}

// New returns a Bridge. A nil injector behaves like inject.Nop.
func New(cb Clipboard, s Saver, inj inject.Injector, opts Options, log *slog.Logger) *Bridge {
	if inj == nil {
		inj = inject.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{
		clip:   cb,
		store:  s,
		inject: inj,
		opts:   opts,
		log:    log.With("component", "bridge"),
		sleep:  time.Sleep,
	}
}

// Run converts the current clipboard image. When the clipboard holds no
// image it returns an error wrapping clip.ErrNoImage and nothing is written.
// Earlier stages are never rolled back: a failed clipboard write leaves the
// saved file in place.
func (b *Bridge) Run(fullPath bool) (*Result, error) {
	b.runs.Add(1)

	img, err := b.clip.ReadImage()
	if err != nil {
		if errors.Is(err, clip.ErrNoImage) {
			b.empty.Add(1)
		} else {
			b.failed.Add(1)
		}
		return nil, fmt.Errorf("read clipboard: %w", err)
	}

	saved, err := b.store.Save(imaging.Normalize(img))
	if err != nil {
		b.failed.Add(1)
		return nil, fmt.Errorf("save image: %w", err)
	}
	b.saved.Add(1)
	b.log.Info("image saved", "file", saved.Path, "bytes", saved.Size)

	res := &Result{Name: saved.Name, Path: saved.Path, Reference: b.reference(saved, fullPath)}
	if err := b.clip.WriteText(res.Reference); err != nil {
		b.failed.Add(1)
		return res, fmt.Errorf("write clipboard: %w", err)
	}
	b.log.Info("clipboard updated", "reference", res.Reference)

	if !b.opts.Paste {
		return res, nil
	}
	b.sleep(b.opts.PasteDelay)
	if err := b.inject.SendPasteChord(); err != nil {
		b.log.Warn("paste injection failed", "err", err)
		return res, nil
	}
	res.Pasted = true
	b.log.Info("paste sent")
	return res, nil
}

func (b *Bridge) reference(img store.Image, fullPath bool) string {
	if fullPath {
		return pathconv.Translate(img.Path, b.opts.Path)
	}
	return config.ShortRefPrefix + img.Name
}

// Handle runs a conversion for action and logs the outcome. Errors stop
// at the log, so it can be started as a fire-and-forget goroutine.
func (b *Bridge) Handle(action hotkey.Action) {
	log := b.log.With("action", string(action))
	log.Debug("hotkey triggered")
	_, err := b.Run(action.FullPath())
	switch {
	case err == nil:
	case errors.Is(err, clip.ErrNoImage):
		log.Info("no image found in clipboard")
	default:
		log.Error("conversion failed", "err", err)
	}
}

// Stats returns a snapshot of the run counters.
func (b *Bridge) Stats() Stats {
	return Stats{
		Runs:   b.runs.Load(),
		Saved:  b.saved.Load(),
		Empty:  b.empty.Load(),
		Failed: b.failed.Load(),
	}
}
