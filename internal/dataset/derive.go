package dataset

// Time_Period categories.
const (
	PeriodMorning   = "Morning"
	PeriodAfternoon = "Afternoon"
	PeriodEvening   = "Evening"
	PeriodNight     = "Night"
	PeriodUnknown   = "Unknown"
)

// Season categories.
const (
	SeasonWinter = "Winter"
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonAutumn = "Autumn"
)

// TimePeriod buckets an hour of day into a Time_Period category. A missing
// hour maps to Unknown. Hours outside 0-23 fall through to Night; that
// matches the upstream pipeline and is relied on by the precomputed charts,
// so no range validation happens here.
func TimePeriod(hour int16) string {
	switch {
	case hour == HourUnknown:
		return PeriodUnknown
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18 && hour < 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// Season maps a month number to its season. Values outside 1-12 fall through
// to Autumn, again matching the upstream pipeline verbatim.
func Season(month int) string {
	switch month {
	case 12, 1, 2:
		return SeasonWinter
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}
