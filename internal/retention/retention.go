// Package retention deletes persisted images once they outlive the
// configured lifetime.
package retention

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/clipbridge/internal/store"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultLifetime = 5 * time.Minute
)

// Lister is the part of store.Store the sweeper needs.
type Lister interface {
	List() ([]store.Image, error)
	Remove(name string) error
}

// Sweeper periodically removes images whose age has reached Lifetime.
type Sweeper struct {
	store    Lister
	interval time.Duration
	lifetime time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// New returns a Sweeper. Zero durations fall back to the defaults; a nil
// logger uses slog.Default().
func New(s Lister, interval, lifetime time.Duration, log *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		store:    s,
		interval: interval,
		lifetime: lifetime,
		log:      log.With("component", "retention"),
		now:      time.Now,
	}
}

// Run sweeps once per interval until ctx is done. The first sweep happens one
// interval after Run is called.
func (s *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	s.log.Debug("sweeper started", "interval", s.interval, "lifetime", s.lifetime)
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("sweeper stopped")
			return
		case <-t.C:
			// Shutdown may have raced with the tick.
			if ctx.Err() != nil {
				return
			}
			if _, err := s.Sweep(s.now()); err != nil {
				s.log.Error("sweep failed", "err", err)
			}
		}
	}
}

// Sweep removes every image whose age at now is at least the lifetime. The
// boundary is inclusive. A failed delete is logged and skipped; the file is
// picked up again on the next sweep. Returns the number of files removed.
func (s *Sweeper) Sweep(now time.Time) (int, error) {
	images, err := s.store.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, img := range images {
		age := now.Sub(img.ModTime)
		if age < s.lifetime {
			continue
		}
		if err := s.store.Remove(img.Name); err != nil {
			s.log.Warn("could not delete expired image", "file", img.Path, "err", err)
			continue
		}
		removed++
		s.log.Info("cleaned up old image", "file", img.Path, "age", age.Round(time.Second))
	}
	return removed, nil
}
