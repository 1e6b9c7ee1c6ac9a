package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentlink/agentlink/internal/config"
	"github.com/agentlink/agentlink/internal/integrations"
	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietConfig(cfg Config) Config {
	nop := zerolog.Nop()
	cfg.Logger = &nop
	if cfg.Debounce == 0 {
		cfg.Debounce = 50 * time.Millisecond
	}
	return cfg
}

// start runs w in the background and returns a stop function that waits for
// Run to return.
func start(t *testing.T, w *Watcher) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
	t.Cleanup(stop)
	return stop
}

func TestNewWithoutExistingPaths(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := New(quietConfig(Config{Dirs: []string{missing}}), nil)

	assert.ErrorIs(t, err, ErrNothingToWatch)
}

func TestRunTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	runs := make(chan string, 4)

	w, err := New(quietConfig(Config{Dirs: []string{dir}}), func(_ context.Context, id string) error {
		runs <- id
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "alpha"), 0755))

	select {
	case id := <-runs:
		assert.Len(t, id, 26, "run id should be a ULID")
	case <-time.After(5 * time.Second):
		t.Fatal("no run triggered")
	}
	stop()
}

func TestNewRunID(t *testing.T) {
	first, second := NewRunID(), NewRunID()

	_, err := ulid.ParseStrict(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRunDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int32

	w, err := New(quietConfig(Config{Dirs: []string{dir}, Debounce: 200 * time.Millisecond}), func(context.Context, string) error {
		count.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	require.Eventually(t, func() bool { return count.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
	stop()
}

func TestRunIgnoresUnrelatedSiblings(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "AGENTS.md")
	var count atomic.Int32

	w, err := New(quietConfig(Config{Files: []string{source}}), func(context.Context, string) error {
		count.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(base, "README.md"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, count.Load())

	require.NoError(t, os.WriteFile(source, []byte("# rules"), 0644))
	require.Eventually(t, func() bool { return count.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
	stop()
}

func TestRelevant(t *testing.T) {
	w := &Watcher{
		cfg:   Config{Dirs: []string{"/p/.agents/skills"}},
		files: map[string]bool{"/p/AGENTS.md": true},
	}

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/p/.agents/skills/alpha", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/p/.agents/skills/alpha", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/p/AGENTS.md", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/p/README.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(tt.ev), "%s %s", tt.ev.Op, tt.ev.Name)
	}
}

func TestTargets(t *testing.T) {
	cfg := config.Default()
	cfg.Targets[integrations.Pi] = config.Target{Skills: false, Instructions: true}

	got := Targets(cfg, "/p", integrations.ModeProject, "/p/.agents/agentlink.toml")

	assert.Equal(t, []string{"/p/.agents/skills", "/p/.claude/skills", "/p/.opencode/skills"}, got.Dirs)
	assert.Equal(t, []string{"/p/AGENTS.md", "/p/.agents/agentlink.toml"}, got.Files)
}
