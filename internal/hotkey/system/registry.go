//go:build windows || darwin || (linux && x11hotkey)

package system

import (
	"sync"

	"go.klb.dev/clipbridge/internal/hotkey"
)

// registry tracks which bindings a Source holds, in registration order.
type registry[T any] struct {
	mu    sync.Mutex
	order []hotkey.Action
	items map[hotkey.Action]T
}

func (r *registry[T]) put(a hotkey.Action, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[hotkey.Action]T)
	}
	if _, ok := r.items[a]; !ok {
		r.order = append(r.order, a)
	}
	r.items[a] = v
}

func (r *registry[T]) take(a hotkey.Action) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[a]
	if !ok {
		return v, false
	}
	delete(r.items, a)
	for i, x := range r.order {
		if x == a {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return v, true
}

func (r *registry[T]) has(a hotkey.Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[a]
	return ok
}

func (r *registry[T]) each(fn func(hotkey.Action, T) bool) {
	r.mu.Lock()
	order := append([]hotkey.Action(nil), r.order...)
	items := make(map[hotkey.Action]T, len(r.items))
	for k, v := range r.items {
		items[k] = v
	}
	r.mu.Unlock()
	for _, a := range order {
		if !fn(a, items[a]) {
			return
		}
	}
}

// discard empties ch without blocking and returns how many values it read.
func discard[T any](ch <-chan T) int {
	n := 0
	for {
		select {
		case <-ch:
			n++
		default:
			return n
		}
	}
}
