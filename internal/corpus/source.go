// Package corpus reads corpus files and watches them for changes.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"sreader/internal/words"
)

// Source reads corpus text from a filesystem.
type Source struct {
	fs afero.Fs
}

// NewSource creates a source over fsys. A nil fsys means the OS filesystem.
func NewSource(fsys afero.Fs) *Source {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Source{fs: fsys}
}

// Read returns the whole file at path. Failures are reported as
// *words.LoadError wrapping words.ErrCorpusNotFound or
// words.ErrCorpusUnreadable.
func (s *Source) Read(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", &words.LoadError{Err: fmt.Errorf("%w: no path configured", words.ErrCorpusNotFound)}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return "", loadError(path, err)
	}
	if info.IsDir() {
		return "", &words.LoadError{Source: path, Err: fmt.Errorf("%w: is a directory", words.ErrCorpusUnreadable)}
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", loadError(path, err)
	}
	return string(data), nil
}

func loadError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &words.LoadError{Source: path, Err: words.ErrCorpusNotFound}
	}
	return &words.LoadError{Source: path, Err: fmt.Errorf("%w: %w", words.ErrCorpusUnreadable, err)}
}
