package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimePeriod(t *testing.T) {
	testCases := []struct {
		hour int16
		want string
	}{
		{hour: HourUnknown, want: PeriodUnknown},
		{hour: 6, want: PeriodMorning},
		{hour: 7, want: PeriodMorning},
		{hour: 11, want: PeriodMorning},
		{hour: 12, want: PeriodAfternoon},
		{hour: 13, want: PeriodAfternoon},
		{hour: 17, want: PeriodAfternoon},
		{hour: 18, want: PeriodEvening},
		{hour: 19, want: PeriodEvening},
		{hour: 21, want: PeriodEvening},
		{hour: 22, want: PeriodNight},
		{hour: 23, want: PeriodNight},
		{hour: 0, want: PeriodNight},
		{hour: 2, want: PeriodNight},
		{hour: 5, want: PeriodNight},
		// Out-of-range hours are kept verbatim upstream and land in Night.
		{hour: 24, want: PeriodNight},
		{hour: -3, want: PeriodNight},
		{hour: 99, want: PeriodNight},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, TimePeriod(tc.hour), "hour %d", tc.hour)
	}
}

func TestSeason(t *testing.T) {
	testCases := []struct {
		month int
		want  string
	}{
		{month: 12, want: SeasonWinter},
		{month: 1, want: SeasonWinter},
		{month: 2, want: SeasonWinter},
		{month: 3, want: SeasonSpring},
		{month: 4, want: SeasonSpring},
		{month: 5, want: SeasonSpring},
		{month: 6, want: SeasonSummer},
		{month: 7, want: SeasonSummer},
		{month: 8, want: SeasonSummer},
		{month: 9, want: SeasonAutumn},
		{month: 10, want: SeasonAutumn},
		{month: 11, want: SeasonAutumn},
		// Out-of-range months fall through to Autumn.
		{month: 0, want: SeasonAutumn},
		{month: 13, want: SeasonAutumn},
		{month: -1, want: SeasonAutumn},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Season(tc.month), "month %d", tc.month)
	}
}
