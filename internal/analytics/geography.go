package analytics

import (
	"context"
)

// Area class labels as they appear in the source data.
const (
	areaUrban = "Urban"
	areaRural = "Rural"
)

// AreaStats describes one area class (urban or rural).
type AreaStats struct {
	Accidents int     `json:"accidents"`
	Fatal     int     `json:"fatal"`
	FatalRate float64 `json:"fatal_rate"` // percent of the class's accidents
}

// GeographyStats is the geographic patterns page payload.
type GeographyStats struct {
	Urban    AreaStats       `json:"urban"`
	Rural    AreaStats       `json:"rural"`
	UrbanPct float64         `json:"urban_pct"`
	TopUrban []CategoryCount `json:"top_urban_districts"`
	TopRural []CategoryCount `json:"top_rural_districts"`
}

func (s *service) Geography(ctx context.Context, limit int) (*GeographyStats, error) {
	if err := validLimit(limit); err != nil {
		s.log.Warn("Invalid geography limit", map[string]interface{}{"limit": limit})
		return nil, err
	}

	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	urbanDistricts := make(map[string]int)
	ruralDistricts := make(map[string]int)

	out := &GeographyStats{}
	for i := 0; i < t.Len(); i++ {
		fatal := t.Severity.Value(i) == severityFatal
		switch t.UrbanRural.Value(i) {
		case areaUrban:
			out.Urban.Accidents++
			if fatal {
				out.Urban.Fatal++
			}
			urbanDistricts[t.District.Value(i)]++
		case areaRural:
			out.Rural.Accidents++
			if fatal {
				out.Rural.Fatal++
			}
			ruralDistricts[t.District.Value(i)]++
		}
	}

	out.Urban.FatalRate = pct(out.Urban.Fatal, out.Urban.Accidents)
	out.Rural.FatalRate = pct(out.Rural.Fatal, out.Rural.Accidents)
	out.UrbanPct = pct(out.Urban.Accidents, out.Urban.Accidents+out.Rural.Accidents)
	out.TopUrban = topN(urbanDistricts, limit)
	out.TopRural = topN(ruralDistricts, limit)

	return out, nil
}
