package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/roadscope/api/internal/dataset"
	"github.com/roadscope/api/internal/logger"
)

// Limit bounds for top-N queries.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 10
)

// Service-level errors
var (
	ErrInvalidLimit = errors.New("limit must be between 1 and 50")
)

// TableSource provides the unified table. Load is expected to serve a cached
// instance when the source files are unchanged.
type TableSource interface {
	Load(ctx context.Context) (*dataset.Table, error)
}

// Service defines the aggregate statistics each dashboard page consumes.
// Every method recomputes over the immutable unified table; load failures
// (dataset.ErrSourceUnavailable and friends) propagate unchanged so callers
// can refuse to render rather than present partial data.
type Service interface {
	// Summary returns the cross-cutting dataset overview.
	Summary(ctx context.Context) (*Summary, error)

	// Hours returns the time-of-day statistics: hourly profile, hour by
	// day-of-week heatmap, weekday/weekend split and Time_Period counts.
	Hours(ctx context.Context) (*HourlyStats, error)

	// Demographics returns driver age band counts and the top-N journey
	// purposes. Returns ErrInvalidLimit when limit is out of range.
	Demographics(ctx context.Context, limit int) (*DemographicStats, error)

	// Geography returns urban/rural counts and severity plus the top-N
	// districts per area class. Returns ErrInvalidLimit when limit is out
	// of range.
	Geography(ctx context.Context, limit int) (*GeographyStats, error)

	// Junctions returns the junction safety statistics.
	Junctions(ctx context.Context) (*JunctionStats, error)

	// Risk returns the compound risk profile: rush hour, middle-aged
	// driver, urban, weekday shares and their intersection.
	Risk(ctx context.Context) (*RiskProfile, error)
}

// CategoryCount is one labelled bucket of a distribution.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CrossCount is one cell of a two-way crosstab.
type CrossCount struct {
	Row   string `json:"row"`
	Col   string `json:"col"`
	Count int    `json:"count"`
}

// Share is a count with its percentage of the unified row total.
type Share struct {
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

type service struct {
	source TableSource
	log    *logger.Logger
}

// NewService creates a Service over the given table source.
func NewService(source TableSource, log *logger.Logger) Service {
	return &service{source: source, log: log}
}

// table loads (or fetches the cached) unified table.
func (s *service) table(ctx context.Context) (*dataset.Table, error) {
	t, err := s.source.Load(ctx)
	if err != nil {
		s.log.Error("Unified table unavailable", err, nil)
		return nil, fmt.Errorf("load unified table: %w", err)
	}
	return t, nil
}

func validLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}

// countBy tallies a text column's values. Empty strings (absent vehicle
// fields on unmatched rows) are skipped, matching how the source pipeline
// drops nulls from value counts.
func countBy(col dataset.TextColumn) map[string]int {
	counts := make(map[string]int, col.Cardinality())
	for i := 0; i < col.Len(); i++ {
		v := col.Value(i)
		if v == "" {
			continue
		}
		counts[v]++
	}
	return counts
}

// topN returns the n highest-count buckets, ties broken by label so output
// order is deterministic.
func topN(counts map[string]int, n int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, CategoryCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// sortedByLabel returns every bucket ordered by label.
func sortedByLabel(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, CategoryCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// pct is a safe percentage.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
