package analytics

import (
	"context"

	"github.com/roadscope/api/internal/dataset"
)

// dayOrder is the fixed Monday-first column order of the heatmap.
var dayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday",
	"Friday", "Saturday", "Sunday",
}

// HourlyStats is the time-of-day page payload.
type HourlyStats struct {
	// PerHour holds accident counts for hours 0-23; rows with an
	// unrecorded hour are tallied separately in UnknownHour. Recorded
	// values outside 0-23 appear in neither (the Time_Period counts
	// still carry them, as Night).
	PerHour     [24]int  `json:"per_hour"`
	UnknownHour int      `json:"unknown_hour"`
	PeakHour    int      `json:"peak_hour"`
	Days        []string `json:"days"`
	// Heatmap is indexed [hour][day], days in Days order.
	Heatmap     [24][7]int      `json:"heatmap"`
	Weekday     int             `json:"weekday"`
	Weekend     int             `json:"weekend"`
	TimePeriods []CategoryCount `json:"time_periods"`
}

func (s *service) Hours(ctx context.Context) (*HourlyStats, error) {
	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	dayIdx := make(map[string]int, len(dayOrder))
	for i, d := range dayOrder {
		dayIdx[d] = i
	}

	out := &HourlyStats{Days: dayOrder}
	for i := 0; i < t.Len(); i++ {
		hour := t.Hour[i]
		switch {
		case hour == dataset.HourUnknown:
			out.UnknownHour++
		case hour >= 0 && hour <= 23:
			out.PerHour[hour]++
			if d, ok := dayIdx[t.DayOfWeek.Value(i)]; ok {
				out.Heatmap[hour][d]++
			}
		}

		if isWeekend(t.DayOfWeek.Value(i)) {
			out.Weekend++
		} else {
			out.Weekday++
		}
	}

	for h, n := range out.PerHour {
		if n > out.PerHour[out.PeakHour] {
			out.PeakHour = h
		}
	}

	out.TimePeriods = topN(countBy(t.TimePeriod), len(periodOrder))
	orderPeriods(out.TimePeriods)

	return out, nil
}

// periodOrder pins the display order of Time_Period buckets.
var periodOrder = []string{
	dataset.PeriodMorning, dataset.PeriodAfternoon,
	dataset.PeriodEvening, dataset.PeriodNight, dataset.PeriodUnknown,
}

// orderPeriods rearranges counts into periodOrder, dropping nothing.
func orderPeriods(counts []CategoryCount) {
	rank := make(map[string]int, len(periodOrder))
	for i, p := range periodOrder {
		rank[p] = i
	}
	for i := 0; i < len(counts); i++ {
		for j := i + 1; j < len(counts); j++ {
			if rank[counts[j].Label] < rank[counts[i].Label] {
				counts[i], counts[j] = counts[j], counts[i]
			}
		}
	}
}

func isWeekend(day string) bool {
	return day == "Saturday" || day == "Sunday"
}
