package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatch(t *testing.T, opts Options) (*int32, context.CancelFunc, <-chan error) {
	t.Helper()
	var count int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, opts, func(context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		})
	}()
	time.Sleep(100 * time.Millisecond)
	return &count, cancel, done
}

func TestWatch_RebuildsOnceForBurst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "works"), 0755))

	count, cancel, done := startWatch(t, Options{Paths: []string{dir}, Debounce: 150 * time.Millisecond})
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "works", "3001.xml"), []byte("<work/>"), 0644))
	}

	eventually(t, 3*time.Second, 25*time.Millisecond, func() bool {
		return atomic.LoadInt32(count) >= 1
	}, "no rebuild after change")
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(count))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_IgnoresCacheFile(t *testing.T) {
	dir := t.TempDir()
	count, cancel, _ := startWatch(t, Options{Paths: []string{dir}, Ignore: []string{"ORCID.json"}, Debounce: 50 * time.Millisecond})
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ORCID.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".person.xml.swp"), []byte("x"), 0644))
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(count))
}

func TestWatch_SingleFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	edits := filepath.Join(dir, "edits.yaml")
	require.NoError(t, os.WriteFile(edits, []byte("delete: []\n"), 0644))

	count, cancel, _ := startWatch(t, Options{Paths: []string{edits}, Debounce: 50 * time.Millisecond})
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(count))

	require.NoError(t, os.WriteFile(edits, []byte("delete: []\n# changed\n"), 0644))
	eventually(t, 3*time.Second, 25*time.Millisecond, func() bool {
		return atomic.LoadInt32(count) >= 1
	}, "no rebuild after edits change")
}

func TestWatch_MissingPath(t *testing.T) {
	err := Watch(context.Background(), Options{Paths: []string{filepath.Join(t.TempDir(), "missing")}}, func(context.Context) error { return nil })
	assert.Error(t, err)
}
