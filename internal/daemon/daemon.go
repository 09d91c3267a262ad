// Package daemon wires the clipbridge components together and owns the
// process lifecycle: startup checks, binding registration, the background
// loops, and orderly shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"go.klb.dev/clipbridge/internal/bridge"
	"go.klb.dev/clipbridge/internal/config"
	"go.klb.dev/clipbridge/internal/control"
	"go.klb.dev/clipbridge/internal/dispatch"
	"go.klb.dev/clipbridge/internal/hotkey"
	"go.klb.dev/clipbridge/internal/inject"
	"go.klb.dev/clipbridge/internal/message"
	"go.klb.dev/clipbridge/internal/retention"
	"go.klb.dev/clipbridge/internal/store"
)

// ErrNoBindings is returned by Run when no hotkey binding could be
// registered.
var ErrNoBindings = errors.New("no hotkey binding could be registered")

// controlQueueSize bounds the number of control requests waiting for the
// dispatcher.
const controlQueueSize = 16

// Deps are the OS collaborators the daemon drives.
type Deps struct {
	Clipboard bridge.Clipboard
	Hotkeys   hotkey.Source
	Injector  inject.Injector
	Store     *store.Store
	// Listen opens the control socket. Nil disables it.
	Listen func() (net.Listener, error)
	Log    *slog.Logger
}

// Daemon is one run of the background service.
type Daemon struct {
	cfg    config.Config
	deps   Deps
	log    *slog.Logger
	bridge *bridge.Bridge

	startedAt time.Time

	mu       sync.Mutex
	bindings []message.BindingInfo
}

// New returns a Daemon for cfg. Deps.Store defaults to the OS filesystem at
// cfg.SharedDir.
func New(cfg config.Config, deps Deps) *Daemon {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Store == nil {
		deps.Store = store.New(cfg.SharedDir)
	}
	if !cfg.Paste || deps.Injector == nil {
		deps.Injector = inject.Nop{}
	}
	return &Daemon{
		cfg:    cfg,
		deps:   deps,
		log:    deps.Log,
		bridge: bridge.New(deps.Clipboard, deps.Store, deps.Injector, bridge.OptionsFrom(cfg), deps.Log),
	}
}

// Bridge returns the daemon's conversion engine.
func (d *Daemon) Bridge() *bridge.Bridge { return d.bridge }

// Run starts every component and blocks until ctx is cancelled or a quit
// event arrives. It returns ErrNoBindings when neither hotkey could be
// registered. Conversions still in flight at shutdown are not awaited.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.deps.Store.Ensure(); err != nil {
		return err
	}
	d.log.Info("shared directory ready", "dir", d.deps.Store.Dir())

	bindings := []hotkey.Binding{
		{Action: hotkey.ActionShortRef, Chord: d.cfg.HotkeyShort},
		{Action: hotkey.ActionFullPath, Chord: d.cfg.HotkeyFull},
	}
	registered, err := d.register(bindings)
	if len(registered) == 0 {
		return fmt.Errorf("%w: %w", ErrNoBindings, err)
	}
	defer d.unregister(registered)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.startedAt = time.Now()

	sweeper := retention.New(d.deps.Store, d.cfg.SweepInterval, d.cfg.Lifetime, d.log)
	go sweeper.Run(ctx)

	events := hotkey.NewQueue(controlQueueSize)
	controlDone := d.startControl(ctx, events, cancel)

	d.log.Info("clipbridge running",
		"short", d.cfg.HotkeyShort,
		"full", d.cfg.HotkeyFull,
		"path_style", string(d.cfg.PathStyle))

	disp := dispatch.New(hotkey.Merge(d.deps.Hotkeys, events), d.bridge, d.cfg.PollInterval, d.log)
	disp.Run(ctx)

	cancel()
	<-controlDone
	d.log.Info("clipbridge stopped")
	return nil
}

func (d *Daemon) register(bindings []hotkey.Binding) ([]hotkey.Binding, error) {
	var (
		ok   []hotkey.Binding
		errs []error
		info []message.BindingInfo
	)
	for _, b := range bindings {
		bi := message.BindingInfo{Action: string(b.Action), Chord: b.Chord}
		if err := d.deps.Hotkeys.Register(b); err != nil {
			d.log.Warn("could not register hotkey", "binding", b.String(), "err", err)
			bi.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", b, err))
		} else {
			d.log.Debug("hotkey registered", "binding", b.String())
			bi.Registered = true
			ok = append(ok, b)
		}
		info = append(info, bi)
	}
	d.mu.Lock()
	d.bindings = info
	d.mu.Unlock()
	return ok, errors.Join(errs...)
}

// unregister releases bindings. Failures are logged only; the process is
// exiting anyway.
func (d *Daemon) unregister(bindings []hotkey.Binding) {
	for _, b := range bindings {
		if err := d.deps.Hotkeys.Unregister(b); err != nil {
			d.log.Debug("unregister failed", "binding", b.String(), "err", err)
		}
	}
}

// startControl serves the control socket when enabled. The returned channel
// is closed once the listener is shut down.
func (d *Daemon) startControl(ctx context.Context, events *hotkey.Queue, stop func()) <-chan struct{} {
	done := make(chan struct{})
	if d.deps.Listen == nil {
		close(done)
		return done
	}
	ln, err := d.deps.Listen()
	if err != nil {
		d.log.Warn("control socket disabled", "err", err)
		close(done)
		return done
	}
	srv := control.NewServer(events, d.Status, stop, d.log)
	go func() {
		defer close(done)
		if err := srv.Serve(ctx, ln); err != nil {
			d.log.Error("control socket failed", "err", err)
		}
	}()
	return done
}

// Status reports the daemon's state for the control socket.
func (d *Daemon) Status() message.Status {
	d.mu.Lock()
	bindings := append([]message.BindingInfo(nil), d.bindings...)
	d.mu.Unlock()

	images, err := d.deps.Store.List()
	if err != nil {
		d.log.Debug("status: list failed", "err", err)
	}
	st := d.bridge.Stats()
	return message.Status{
		PID:       os.Getpid(),
		SharedDir: d.deps.Store.Dir(),
		PathStyle: string(d.cfg.PathStyle),
		Lifetime:  d.cfg.Lifetime.String(),
		StartedAt: d.startedAt,
		Images:    len(images),
		Bindings:  bindings,
		Counters: message.Counters{
			Runs:   st.Runs,
			Saved:  st.Saved,
			Empty:  st.Empty,
			Failed: st.Failed,
		},
	}
}
