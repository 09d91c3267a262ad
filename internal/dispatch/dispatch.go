// Package dispatch runs the hotkey polling loop and fans each trigger out to
// its own conversion goroutine.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/clipbridge/internal/hotkey"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = 10 * time.Millisecond

// Handler performs the work for one trigger.
type Handler interface {
	Handle(action hotkey.Action)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(hotkey.Action)

func (f HandlerFunc) Handle(a hotkey.Action) { f(a) }

// Dispatcher polls for hotkey events until its context ends or a quit event
// arrives.
type Dispatcher struct {
	poller   hotkey.Poller
	handler  Handler
	interval time.Duration
	log      *slog.Logger
}

// New returns a Dispatcher. A non-positive interval uses DefaultInterval.
func New(p hotkey.Poller, h Handler, interval time.Duration, log *slog.Logger) *Dispatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		poller:   p,
		handler:  h,
		interval: interval,
		log:      log.With("component", "dispatch"),
	}
}

// Run blocks until ctx is done or a quit event is polled. Each trigger is
// handled on a new goroutine that Run never waits for.
func (d *Dispatcher) Run(ctx context.Context) {
	t := time.NewTicker(d.interval)
	defer t.Stop()

	d.log.Debug("dispatcher started", "interval", d.interval)
	for {
		select {
		case <-ctx.Done():
			d.log.Debug("dispatcher stopped", "reason", context.Cause(ctx))
			return
		case <-t.C:
		}
		if d.drain() {
			d.log.Debug("dispatcher stopped", "reason", "quit event")
			return
		}
	}
}

// drain handles every pending event and reports whether a quit was seen.
func (d *Dispatcher) drain() bool {
	for {
		ev, ok := d.poller.Poll()
		if !ok {
			return false
		}
		switch ev.Kind {
		case hotkey.EventTrigger:
			go d.handler.Handle(ev.Action)
		case hotkey.EventQuit:
			return true
		default:
			d.log.Debug("ignoring event", "kind", ev.Kind)
		}
	}
}
