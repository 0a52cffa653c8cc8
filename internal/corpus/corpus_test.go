package corpus

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sreader/internal/action"
	"sreader/internal/words"
)

func TestReadReturnsFileText(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/books/a.txt", []byte("one two  three\n"), 0o644))

	text, err := NewSource(fsys).Read(context.Background(), "/books/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "one two  three\n", text)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewSource(afero.NewMemMapFs()).Read(context.Background(), "/nope.txt")

	var le *words.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "/nope.txt", le.Source)
	assert.ErrorIs(t, err, words.ErrCorpusNotFound)
}

func TestReadDirectoryIsUnreadable(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/books", 0o755))

	_, err := NewSource(fsys).Read(context.Background(), "/books")
	assert.ErrorIs(t, err, words.ErrCorpusUnreadable)
}

func TestReadWithoutPath(t *testing.T) {
	_, err := NewSource(afero.NewMemMapFs()).Read(context.Background(), "")
	assert.ErrorIs(t, err, words.ErrCorpusNotFound)
}

func TestReadHonoursCancelledContext(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.txt", []byte("x"), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(fsys).Read(ctx, "/a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

type chanSink struct {
	mu  sync.Mutex
	got []action.Action
}

func (s *chanSink) Push(actions ...action.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, actions...)
	return nil
}

func (s *chanSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

func TestWatcherPushesLoadTextOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("a b"), 0o644))

	sink := &chanSink{}
	w := NewWatcher(path, sink, nil)
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a b c"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("z"), 0o644))

	require.Eventually(t, func() bool { return sink.Len() >= 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, sink.Len(), "burst collapses into one reload")

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, action.LoadText{}, sink.got[0])
}
