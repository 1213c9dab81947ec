package numbering

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	ierr "github.com/marketixlab/invoicegen/internal/errors"
	"github.com/marketixlab/invoicegen/internal/logger"
)

// FileStore keeps a single integer counter in a text file. Prefix and year are not part of
// the file, so one file serves one sequence.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, logger: log}
}

func (s *FileStore) LastValue(_ context.Context, _ string, _ int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Advance(_ context.Context, _ string, _ int, value int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return false, err
	}
	if current != value-1 {
		return false, nil
	}

	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(value, 10)), 0o644); err != nil {
		return false, ierr.WithError(err).
			WithMessage("writing invoice counter").
			WithHintf("Could not save the invoice counter to %s", s.path).
			Mark(ierr.ErrSystem)
	}
	return true, nil
}

// read treats a missing file or content that is not an integer as 0
func (s *FileStore) read() (int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, ierr.WithError(err).
			WithMessage("reading invoice counter").
			WithHintf("Could not read the invoice counter from %s", s.path).
			Mark(ierr.ErrSystem)
	}

	count, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		s.logger.Warnw("invoice counter is not a number, starting over", "path", s.path)
		return 0, nil
	}
	return count, nil
}
