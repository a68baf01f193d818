// Package resultsink batches combo-book comparison results to disk,
// grounded on utils.py's saveEveryNth: results accumulate in memory until
// SaveEveryN is reached, then get appended to a JSON array file. A
// corrupt or unreadable existing file is overwritten rather than blocking
// the run.
package resultsink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/chrisliatas/combobooks/internal/apperror"
	"github.com/chrisliatas/combobooks/internal/logger"
)

// Sink accumulates arbitrary JSON-serializable results and flushes them
// to disk once SaveEveryN are pending.
type Sink struct {
	mu         sync.Mutex
	dir        string
	filename   string
	saveEveryN int
	pending    []any
	log        logger.Logger
}

// New builds a Sink writing batches to <dir>/<filename>.
func New(dir, filename string, saveEveryN int, log logger.Logger) *Sink {
	return &Sink{dir: dir, filename: filename, saveEveryN: saveEveryN, log: log}
}

// Add queues one result. If the pending batch has reached saveEveryN, it
// is flushed immediately.
func (s *Sink) Add(result any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, result)
	if len(s.pending) < s.saveEveryN {
		return nil
	}
	return s.flushLocked()
}

// Flush writes any pending results regardless of batch size, for use at
// shutdown.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	return s.flushLocked()
}

func (s *Sink) flushLocked() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperror.New(apperror.CodeInternalError, apperror.WithCause(err))
	}
	path := filepath.Join(s.dir, s.filename)

	existing, err := s.readExisting(path)
	if err != nil {
		s.log.Warn(context.Background(), "result file unreadable, overwriting", "path", path, "error", err)
	}

	merged := append(existing, s.pending...)
	data, err := json.Marshal(merged)
	if err != nil {
		return apperror.New(apperror.CodeInternalError, apperror.WithCause(err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperror.New(apperror.CodeInternalError, apperror.WithCause(err))
	}

	n := len(s.pending)
	s.pending = s.pending[:0]
	s.log.Info(context.Background(), "saved results", "count", n, "total", len(merged), "path", path)
	return nil
}

func (s *Sink) readExisting(path string) ([]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var existing []any
	if err := json.Unmarshal(raw, &existing); err != nil {
		return nil, apperror.New(apperror.CodeSinkDecodeError, apperror.WithCause(err))
	}
	return existing, nil
}
