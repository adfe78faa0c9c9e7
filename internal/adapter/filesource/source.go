// Package filesource discovers EPW files in a directory. It implements
// pipeline.BatchExtractor by polling the directory and remembering which
// files have been committed.
package filesource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/epw-etl/internal/config"
	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Extension is the file suffix the source picks up, matched case-insensitively.
const Extension = ".epw"

// Source polls a directory for EPW files.
type Source struct {
	dir      string
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger

	mu        sync.Mutex
	processed map[string]time.Time // path -> modification time when committed
	scanned   bool
}

// New creates a Source watching the configured EPW directory.
func New(cfg *config.Config, logger *slog.Logger) *Source {
	return newSource(cfg.EPWDir, cfg.PollInterval, clockwork.NewRealClock(), logger)
}

func newSource(dir string, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Source {
	return &Source{
		dir:       dir,
		interval:  interval,
		clock:     clock,
		logger:    logger,
		processed: make(map[string]time.Time),
	}
}

// ExtractBatch returns up to batchSize pending files in name order. A file is
// pending until it is committed, and again after its modification time
// changes. When nothing is pending ExtractBatch waits one poll interval and
// returns an empty batch. The first successful scan returns at once, even
// when empty, so callers learn the directory is readable without waiting.
func (s *Source) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFile, error) {
	pending, first, err := s.scan()
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		if first {
			s.logger.Debug("initial scan found no files", "dir", s.dir)
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.clock.After(s.interval):
			return nil, nil
		}
	}
	if batchSize > 0 && len(pending) > batchSize {
		pending = pending[:batchSize]
	}
	s.logger.Debug("files extracted", "dir", s.dir, "count", len(pending))
	return pending, nil
}

// scan lists pending files and reports whether this was the first
// successful scan.
func (s *Source) scan() ([]domain.RawFile, bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, false, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	first := !s.scanned
	s.scanned = true

	var out []domain.RawFile
	for _, de := range entries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), Extension) {
			continue
		}
		info, err := de.Info()
		if err != nil { // removed since ReadDir
			continue
		}
		path := filepath.Join(s.dir, de.Name())
		if seen, ok := s.processed[path]; ok && seen.Equal(info.ModTime()) {
			continue
		}
		out = append(out, s.rawFile(path, info))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, first, nil
}

func (s *Source) rawFile(path string, info os.FileInfo) domain.RawFile {
	modTime := info.ModTime()
	return domain.RawFile{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: modTime,
		Commit: func(_ context.Context) error {
			s.mu.Lock()
			s.processed[path] = modTime
			s.mu.Unlock()
			return nil
		},
	}
}

// Processed returns the number of committed files.
func (s *Source) Processed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.processed)
}
