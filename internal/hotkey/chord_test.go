package hotkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipbridge/internal/hotkey"
)

func TestParseChord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		wantMods []string
		wantKey  string
	}{
		{"shift+insert", []string{"shift"}, "insert"},
		{"Ctrl+Shift+Insert", []string{"ctrl", "shift"}, "insert"},
		{"shift + ctrl + ins", []string{"ctrl", "shift"}, "insert"},
		{"cmd+option+v", []string{"alt", "super"}, "v"},
		{"f9", nil, "f9"},
		{"control+ctrl+p", []string{"ctrl"}, "p"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			c, err := hotkey.ParseChord(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMods, c.Mods)
			assert.Equal(t, tt.wantKey, c.Key)
		})
	}
}

func TestParseChord_Errors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "ctrl+", "ctrl+shift", "hyper+v", "ctrl++v"} {
		_, err := hotkey.ParseChord(in)
		assert.Error(t, err, in)
	}

	_, err := hotkey.ParseChord("hyper+v")
	assert.ErrorIs(t, err, hotkey.ErrUnknownKey)
}

func TestChordString(t *testing.T) {
	t.Parallel()

	c, err := hotkey.ParseChord("Shift+Ctrl+Insert")
	require.NoError(t, err)
	assert.Equal(t, "ctrl+shift+insert", c.String())
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	a, err := hotkey.ParseAction("full")
	require.NoError(t, err)
	assert.Equal(t, hotkey.ActionFullPath, a)
	assert.True(t, a.FullPath())

	a, err = hotkey.ParseAction("")
	require.NoError(t, err)
	assert.Equal(t, hotkey.ActionShortRef, a)
	assert.False(t, a.FullPath())

	_, err = hotkey.ParseAction("copy")
	assert.Error(t, err)
}

func TestMergeAndQueue(t *testing.T) {
	t.Parallel()

	a, b := hotkey.NewQueue(2), hotkey.NewQueue(2)
	p := hotkey.Merge(a, nil, b)

	_, ok := p.Poll()
	assert.False(t, ok)

	require.True(t, b.Push(hotkey.Event{Kind: hotkey.EventQuit}))
	require.True(t, a.Push(hotkey.Event{Kind: hotkey.EventTrigger, Action: hotkey.ActionFullPath}))

	ev, ok := p.Poll()
	require.True(t, ok)
	assert.Equal(t, hotkey.EventTrigger, ev.Kind)

	ev, ok = p.Poll()
	require.True(t, ok)
	assert.Equal(t, hotkey.EventQuit, ev.Kind)

	_, ok = p.Poll()
	assert.False(t, ok)
}

func TestQueue_DropsWhenFull(t *testing.T) {
	t.Parallel()

	q := hotkey.NewQueue(1)
	assert.True(t, q.Push(hotkey.Event{Kind: hotkey.EventTrigger}))
	assert.False(t, q.Push(hotkey.Event{Kind: hotkey.EventTrigger}))
}
