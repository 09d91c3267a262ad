package retention_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipbridge/internal/retention"
	"go.klb.dev/clipbridge/internal/store"
)

func writeAged(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("png"), 0o644))
	require.NoError(t, os.Chtimes(p, mtime, mtime))
	return p
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Now()
	old := writeAged(t, dir, "old.png", now.Add(-10*time.Minute))
	young := writeAged(t, dir, "young.png", now.Add(-time.Minute))
	edge := writeAged(t, dir, "edge.png", now.Add(-5*time.Minute))
	other := writeAged(t, dir, "old.txt", now.Add(-time.Hour))

	sw := retention.New(store.New(dir), time.Second, 5*time.Minute, nil)
	removed, err := sw.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.NoFileExists(t, old)
	assert.NoFileExists(t, edge, "boundary is inclusive")
	assert.FileExists(t, young)
	assert.FileExists(t, other)
}

func TestSweep_YoungFileSurvivesUntilItAges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Now()
	p := writeAged(t, dir, "a.png", now)

	sw := retention.New(store.New(dir), 30*time.Second, 5*time.Minute, nil)
	for tick := now; tick.Before(now.Add(5 * time.Minute)); tick = tick.Add(30 * time.Second) {
		_, err := sw.Sweep(tick)
		require.NoError(t, err)
		require.FileExists(t, p)
	}

	removed, err := sw.Sweep(now.Add(5*time.Minute + 30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, p)
}

func TestSweep_MissingDirIsNoop(t *testing.T) {
	t.Parallel()

	sw := retention.New(store.New(filepath.Join(t.TempDir(), "gone")), 0, 0, nil)
	removed, err := sw.Sweep(time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
}

type flakyLister struct {
	images  []store.Image
	removed []string
}

func (f *flakyLister) List() ([]store.Image, error) { return f.images, nil }

func (f *flakyLister) Remove(name string) error {
	if name == "locked.png" {
		return errors.New("file in use")
	}
	f.removed = append(f.removed, name)
	return nil
}

func TestSweep_DeleteFailureSkipped(t *testing.T) {
	t.Parallel()

	now := time.Now()
	fl := &flakyLister{images: []store.Image{
		{Name: "locked.png", ModTime: now.Add(-time.Hour)},
		{Name: "free.png", ModTime: now.Add(-time.Hour)},
	}}

	sw := retention.New(fl, time.Second, time.Minute, nil)
	removed, err := sw.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"free.png"}, fl.removed)
}

func TestRun_StopsWithinOneInterval(t *testing.T) {
	t.Parallel()

	interval := 200 * time.Millisecond
	sw := retention.New(store.New(t.TempDir()), interval, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	time.Sleep(interval / 4)
	start := time.Now()
	cancel()

	select {
	case <-done:
		assert.Less(t, time.Since(start), interval)
	case <-time.After(2 * interval):
		t.Fatal("sweeper did not stop after cancellation")
	}
}

func TestRun_SweepsOnTick(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := writeAged(t, dir, "stale.png", time.Now().Add(-time.Hour))

	sw := retention.New(store.New(dir), 20*time.Millisecond, time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sw.Run(ctx)

	require.Eventually(t, func() bool {
		_, err := os.Stat(p)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)
}
