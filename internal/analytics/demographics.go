package analytics

import (
	"context"
)

// DemographicStats is the age-group page payload. Both figures cover only
// rows with a matched vehicle record, since the fields come from the vehicle
// side of the join.
type DemographicStats struct {
	AgeBands []CategoryCount `json:"age_bands"`
	Purposes []CategoryCount `json:"purposes"`
}

func (s *service) Demographics(ctx context.Context, limit int) (*DemographicStats, error) {
	if err := validLimit(limit); err != nil {
		s.log.Warn("Invalid demographics limit", map[string]interface{}{"limit": limit})
		return nil, err
	}

	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	return &DemographicStats{
		AgeBands: sortedByLabel(countBy(t.AgeBand)),
		Purposes: topN(countBy(t.JourneyPurpose), limit),
	}, nil
}
