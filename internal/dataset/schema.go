package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Source column names as they appear in the cleaned UK road accident releases.
// The offline chart artifacts were generated against these exact accident
// column names, so they must stay stable.
const (
	ColAccidentIndex   = "Accident_Index"
	ColLatitude        = "Latitude"
	ColLongitude       = "Longitude"
	ColDistrict        = "Local_Authority_(District)"
	ColUrbanRural      = "Urban_or_Rural_Area"
	ColSeverity        = "Accident_Severity"
	ColHour            = "Hour"
	ColMonth           = "Month"
	ColYear            = "Year"
	ColDayOfWeek       = "Day_of_Week"
	ColCasualties      = "Number_of_Casualties"
	ColJunctionDetail  = "Junction_Detail"
	ColJunctionControl = "Junction_Control"
	ColPedHuman        = "Pedestrian_Crossing-Human_Control"
	ColPedPhysical     = "Pedestrian_Crossing-Physical_Facilities"

	ColVehicleType    = "Vehicle_Type"
	ColAgeBand        = "Age_Band_of_Driver"
	ColJourneyPurpose = "Journey_Purpose_of_Driver"
	ColSexOfDriver    = "Sex_of_Driver"
)

// HourUnknown marks a missing Hour value. Hour cells are otherwise parsed
// verbatim, including out-of-range values.
const HourUnknown int16 = math.MinInt16

// vehicleSuffix disambiguates vehicle-table columns whose names collide with
// accident-table columns in the unified schema.
const vehicleSuffix = "_vehicle"

// AccidentRecord is one reported accident. Accident_Index is the join key
// and is unique within the accident table.
type AccidentRecord struct {
	Index           string
	District        string
	UrbanRural      string
	Severity        string
	DayOfWeek       string
	JunctionDetail  string
	JunctionControl string
	Latitude        float64
	Longitude       float64
	Month           int
	Year            int
	Casualties      int
	PedHuman        int
	PedPhysical     int
	Hour            int16
}

// VehicleRecord is one vehicle involved in an accident. Zero or more vehicle
// records may reference the same accident.
type VehicleRecord struct {
	Index          string
	VehicleType    string
	AgeBand        string
	JourneyPurpose string
	SexOfDriver    string
}

// MergedRow is one row of the left join of accidents with vehicles.
// HasVehicle is false when the accident had no matching vehicle record, in
// which case Vehicle is the zero value.
type MergedRow struct {
	Accident   AccidentRecord
	Vehicle    VehicleRecord
	HasVehicle bool
}

// accidentColumns is the full accident-table column set, in release order.
func accidentColumns() []string {
	return []string{
		ColAccidentIndex, ColLatitude, ColLongitude, ColDistrict,
		ColUrbanRural, ColSeverity, ColHour, ColMonth, ColYear,
		ColDayOfWeek, ColCasualties, ColJunctionDetail, ColJunctionControl,
		ColPedHuman, ColPedPhysical,
	}
}

// vehicleColumns is the full vehicle-table column set, in release order.
func vehicleColumns() []string {
	return []string{
		ColAccidentIndex, ColVehicleType, ColAgeBand,
		ColJourneyPurpose, ColSexOfDriver,
	}
}

// UnifiedColumns lists the column names of the unified table: every accident
// column, then every vehicle column, with colliding vehicle names suffixed.
// Accident columns are never renamed.
func UnifiedColumns() []string {
	acc := accidentColumns()
	taken := make(map[string]bool, len(acc))
	for _, name := range acc {
		taken[name] = true
	}

	out := make([]string, 0, len(acc)+len(vehicleColumns())+2)
	out = append(out, acc...)
	for _, name := range vehicleColumns() {
		if taken[name] {
			name += vehicleSuffix
		}
		out = append(out, name)
	}
	return out
}

// columnIndex resolves the position of each required column in a header row.
// Every required column must be present; anything missing is a schema
// mismatch, fatal for the load attempt.
func columnIndex(header, required []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}

	idx := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return idx, nil
}
