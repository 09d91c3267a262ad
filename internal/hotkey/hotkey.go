// Package hotkey defines the hotkey capability the dispatcher consumes:
// bindings from a key chord to a logical action, a Source that registers
// them with the OS, and the Poller the dispatch loop drains.
//
// The OS implementation lives in package system so that importing this
// package never loads a native hotkey library; other event producers, such
// as the control socket, feed a Queue.
package hotkey

import (
	"errors"
	"fmt"
)

// Action is the logical operation a binding triggers.
type Action string

const (
	// ActionShortRef pastes the @sharedclaude/<file> shorthand.
	ActionShortRef Action = "paste-short-reference"
	// ActionFullPath pastes the absolute path of the saved file.
	ActionFullPath Action = "paste-full-path"
)

// ParseAction converts s to an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionShortRef, ActionFullPath:
		return Action(s), nil
	case "short", "":
		return ActionShortRef, nil
	case "full":
		return ActionFullPath, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// FullPath reports whether the action produces a full-path reference.
func (a Action) FullPath() bool { return a == ActionFullPath }

// Binding pairs a key chord with an action.
type Binding struct {
	Action Action
	Chord  string
}

func (b Binding) String() string { return fmt.Sprintf("%s (%s)", b.Chord, b.Action) }

// EventKind distinguishes hotkey triggers from session termination.
type EventKind int

const (
	EventTrigger EventKind = iota + 1
	EventQuit
)

// Event is one item produced by a Poller.
type Event struct {
	Kind   EventKind
	Action Action
}

// Poller yields pending events without blocking.
type Poller interface {
	// Poll returns the next pending event, or false if none is waiting.
	Poll() (Event, bool)
}

// Source registers bindings with the OS and reports their key presses.
type Source interface {
	Poller
	// Register activates b. An error means the chord could not be claimed,
	// typically because another application owns it.
	Register(b Binding) error
	// Unregister releases b. Releasing a binding that is not registered is
	// not an error.
	Unregister(b Binding) error
}

// ErrUnsupported is returned by Register on platforms without global hotkeys.
var ErrUnsupported = errors.New("global hotkeys not supported on this platform")

// Merge returns a Poller that drains each of ps in order.
func Merge(ps ...Poller) Poller { return merged(ps) }

type merged []Poller

func (m merged) Poll() (Event, bool) {
	for _, p := range m {
		if p == nil {
			continue
		}
		if ev, ok := p.Poll(); ok {
			return ev, true
		}
	}
	return Event{}, false
}

// Queue is a Poller fed programmatically. Push never blocks; events beyond
// the buffer are dropped.
type Queue struct {
	ch chan Event
}

// NewQueue returns a Queue buffering up to size events.
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Event, size)}
}

// Push enqueues ev and reports whether it was accepted.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

func (q *Queue) Poll() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return Event{}, false
	}
}
