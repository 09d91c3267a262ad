//go:build windows || darwin || (linux && x11hotkey)

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.klb.dev/clipbridge/internal/hotkey"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	var r registry[int]
	r.put(hotkey.ActionFullPath, 2)
	r.put(hotkey.ActionShortRef, 1)
	r.put(hotkey.ActionFullPath, 3)

	assert.True(t, r.has(hotkey.ActionShortRef))

	var seen []hotkey.Action
	r.each(func(a hotkey.Action, _ int) bool {
		seen = append(seen, a)
		return true
	})
	assert.Equal(t, []hotkey.Action{hotkey.ActionFullPath, hotkey.ActionShortRef}, seen, "registration order, no duplicates")

	v, ok := r.take(hotkey.ActionFullPath)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = r.take(hotkey.ActionFullPath)
	assert.False(t, ok)
	assert.False(t, r.has(hotkey.ActionFullPath))

	var first []hotkey.Action
	r.put(hotkey.ActionFullPath, 4)
	r.each(func(a hotkey.Action, _ int) bool {
		first = append(first, a)
		return false
	})
	assert.Equal(t, []hotkey.Action{hotkey.ActionShortRef}, first)
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	assert.Equal(t, 2, discard[int](ch))
	assert.Zero(t, discard[int](ch), "empty channel returns immediately")
	assert.Zero(t, discard[int](nil))
}
