// Package words holds the tokenized corpus and the reading position.
package words

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrEmptyCorpus      = errors.New("corpus contains no words")
	ErrCorpusNotFound   = errors.New("corpus file not found")
	ErrCorpusUnreadable = errors.New("corpus file unreadable")
)

// LoadError reports a corpus that could not be loaded. Err is one of the
// sentinel errors above, possibly wrapping the underlying cause.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load corpus: %v", e.Err)
	}
	return fmt.Sprintf("load corpus %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store owns the words and the current index. Mutation is expected from a
// single goroutine; reads are safe from any goroutine.
type Store struct {
	mu     sync.RWMutex
	words  []string
	index  int
	word   string
	source string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load splits text on whitespace runs and resets the position to the first
// word. On failure the previous contents are kept.
func (s *Store) Load(source, text string) error {
	words := strings.Fields(text)
	if len(words) == 0 {
		return &LoadError{Source: source, Err: ErrEmptyCorpus}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = words
	s.index = 0
	s.word = words[0]
	s.source = source
	return nil
}

// Advance moves by delta words, clamping to the first and last word, and
// returns the new current word. An empty store is left unchanged.
func (s *Store) Advance(delta int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.words) == 0 {
		return s.word
	}

	last := len(s.words) - 1
	next := s.index + delta
	// saturate instead of wrapping on overflow
	if delta > 0 && next < s.index {
		next = last
	}
	if delta < 0 && next > s.index {
		next = 0
	}
	s.index = max(0, min(next, last))
	s.word = s.words[s.index]
	return s.word
}

// Position returns the current index and the number of words.
func (s *Store) Position() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, len(s.words)
}

// Word returns the current word, or "" before the first load.
func (s *Store) Word() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.word
}

// Len returns the number of loaded words.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Source returns the name the corpus was loaded from.
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// AtEnd reports whether playback has nothing left to show: the store is
// empty or positioned on the last word.
func (s *Store) AtEnd() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words) == 0 || s.index == len(s.words)-1
}
