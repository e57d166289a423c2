package analytics

import (
	"context"
	"strings"
)

// rushHours are the commute peaks highlighted by the dashboard.
var rushHours = map[int16]bool{8: true, 9: true, 17: true, 18: true}

// middleAgedMarkers match the 26-35, 36-45 and 46-55 driver age bands. The
// source releases vary the band spelling, so matching is by decade marker.
var middleAgedMarkers = []string{"26", "36", "46"}

// RiskProfile is the compound-risk payload: the share of unified rows
// matching each risk factor and the share matching all four at once.
type RiskProfile struct {
	Total        int   `json:"total"`
	RushHour     Share `json:"rush_hour"`
	MiddleAged   Share `json:"middle_aged"`
	Urban        Share `json:"urban"`
	Weekday      Share `json:"weekday"`
	Intersection Share `json:"intersection"`
}

func (s *service) Risk(ctx context.Context) (*RiskProfile, error) {
	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	out := &RiskProfile{Total: t.Len()}
	for i := 0; i < t.Len(); i++ {
		rush := rushHours[t.Hour[i]]
		middle := isMiddleAged(t.AgeBand.Value(i))
		urban := t.UrbanRural.Value(i) == areaUrban
		weekday := !isWeekend(t.DayOfWeek.Value(i))

		if rush {
			out.RushHour.Count++
		}
		if middle {
			out.MiddleAged.Count++
		}
		if urban {
			out.Urban.Count++
		}
		if weekday {
			out.Weekday.Count++
		}
		if rush && middle && urban && weekday {
			out.Intersection.Count++
		}
	}

	out.RushHour.Pct = pct(out.RushHour.Count, out.Total)
	out.MiddleAged.Pct = pct(out.MiddleAged.Count, out.Total)
	out.Urban.Pct = pct(out.Urban.Count, out.Total)
	out.Weekday.Pct = pct(out.Weekday.Count, out.Total)
	out.Intersection.Pct = pct(out.Intersection.Count, out.Total)

	return out, nil
}

func isMiddleAged(band string) bool {
	for _, marker := range middleAgedMarkers {
		if strings.Contains(band, marker) {
			return true
		}
	}
	return false
}
