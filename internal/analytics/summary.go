package analytics

import (
	"context"
)

// Severity label for fatal accidents as it appears in the source data.
const severityFatal = "Fatal"

// Summary is the cross-cutting dataset overview shown on every page.
type Summary struct {
	// UnifiedRows is the joined row count (one row per accident per
	// matching vehicle); Accidents is the distinct accident count, so
	// UnifiedRows >= Accidents always holds.
	UnifiedRows    int   `json:"unified_rows"`
	Accidents      int   `json:"accidents"`
	Casualties     int64 `json:"casualties"`
	FatalAccidents int   `json:"fatal_accidents"`
	YearMin        int   `json:"year_min"`
	YearMax        int   `json:"year_max"`
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		UnifiedRows: t.Len(),
		Accidents:   t.AccidentCount(),
	}

	for i := 0; i < t.Len(); i++ {
		// Casualty and severity figures are per accident, not per joined
		// row, so the vehicle fan-out does not inflate them.
		if !t.FirstOfAccident[i] {
			continue
		}
		out.Casualties += int64(t.Casualties[i])
		if t.Severity.Value(i) == severityFatal {
			out.FatalAccidents++
		}

		year := int(t.Year[i])
		if out.YearMin == 0 || year < out.YearMin {
			out.YearMin = year
		}
		if year > out.YearMax {
			out.YearMax = year
		}
	}

	return out, nil
}
