package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roadscope/api/internal/logger"
	"github.com/roadscope/api/internal/metrics"
)

// Sources identifies the two files a unified table is built from.
type Sources struct {
	AccidentsPath string
	VehiclesPath  string
}

// LoadObserver receives load progress per stage ("accidents", "vehicles").
// Purely informational; the pipeline does not depend on it.
type LoadObserver func(stage string, processed, total int)

// stamp captures a source file's identity. A change in size or mtime
// invalidates the cached table.
type stamp struct {
	size int64
	mod  time.Time
}

// Store owns the load-and-build lifecycle of the unified table. The table is
// built at most once per source identity and served from cache afterwards.
// A failed or cancelled load never exposes a partially built table.
type Store struct {
	src       Sources
	batchSize int
	log       *logger.Logger
	observe   LoadObserver

	// loadMu serializes loads. It is never held while answering cache
	// reads, so Table() stays responsive during a build.
	loadMu sync.Mutex

	mu     sync.Mutex // guards table and stamps
	table  *Table
	stamps [2]stamp
}

// NewStore creates a Store over the given source files. observe may be nil.
func NewStore(src Sources, batchSize int, log *logger.Logger, observe LoadObserver) *Store {
	return &Store{
		src:       src,
		batchSize: batchSize,
		log:       log,
		observe:   observe,
	}
}

// Table returns the currently cached table, if any, without triggering a
// load. Intended for readiness checks.
func (s *Store) Table() (*Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, s.table != nil
}

// Invalidate drops the cached table so the next Load rebuilds from disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
}

// Load returns the unified table, building it if the cache is empty or the
// source files changed since the cached build. Loads are serialized; the
// returned table is immutable and safe for concurrent readers.
func (s *Store) Load(ctx context.Context) (*Table, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	stamps, err := s.stat()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.table != nil && stamps == s.stamps {
		table := s.table
		s.mu.Unlock()
		return table, nil
	}
	// Source identity changed (or nothing cached): the old table, if any,
	// is stale and must not outlive its sources.
	s.table = nil
	s.mu.Unlock()

	table, err := s.build(ctx)
	if err != nil {
		metrics.LoadsTotal.Inc()
		metrics.LoadFailures.Inc()
		return nil, err
	}

	s.mu.Lock()
	s.table = table
	s.stamps = stamps
	s.mu.Unlock()

	metrics.LoadsTotal.Inc()
	metrics.UnifiedRows.Set(float64(table.Len()))
	return table, nil
}

// stat resolves the current identity of both source files.
func (s *Store) stat() ([2]stamp, error) {
	var out [2]stamp
	for i, path := range []string{s.src.AccidentsPath, s.src.VehiclesPath} {
		info, err := os.Stat(path)
		if err != nil {
			return out, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
		}
		out[i] = stamp{size: info.Size(), mod: info.ModTime()}
	}
	return out, nil
}

// build runs the full pipeline: chunked read of both sources (in parallel,
// they have no cross-dependency until the merge), left join, dictionary
// encoding, derived columns.
func (s *Store) build(ctx context.Context) (*Table, error) {
	start := time.Now()
	s.log.Info("Loading dataset", map[string]interface{}{
		"accidents": s.src.AccidentsPath,
		"vehicles":  s.src.VehiclesPath,
		"batch":     s.batchSize,
	})

	var (
		accidents []AccidentRecord
		vehicles  []VehicleRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		seen := make(map[string]struct{})
		return ReadAccidents(gctx, s.src.AccidentsPath, s.batchSize, s.stageObserver("accidents"), func(batch []AccidentRecord) error {
			for _, rec := range batch {
				if _, dup := seen[rec.Index]; dup {
					return fmt.Errorf("%w: duplicate accident index %q", ErrCorruptData, rec.Index)
				}
				seen[rec.Index] = struct{}{}
			}
			accidents = append(accidents, batch...)
			return nil
		})
	})

	g.Go(func() error {
		return ReadVehicles(gctx, s.src.VehiclesPath, s.batchSize, s.stageObserver("vehicles"), func(batch []VehicleRecord) error {
			vehicles = append(vehicles, batch...)
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Dataset load failed", err, map[string]interface{}{
			"accidents": s.src.AccidentsPath,
			"vehicles":  s.src.VehiclesPath,
		})
		return nil, err
	}

	merged := Merge(accidents, vehicles)
	table := BuildTable(merged)

	elapsed := time.Since(start)
	metrics.LoadDuration.Set(elapsed.Seconds())
	s.log.Info("Dataset loaded", map[string]interface{}{
		"accidents":    len(accidents),
		"vehicles":     len(vehicles),
		"unified_rows": table.Len(),
		"duration_ms":  elapsed.Milliseconds(),
	})

	return table, nil
}

// stageObserver adapts the store-level observer to the reader's callback.
func (s *Store) stageObserver(stage string) ProgressFunc {
	if s.observe == nil {
		return nil
	}
	return func(processed, total int) {
		s.observe(stage, processed, total)
	}
}
