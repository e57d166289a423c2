package dataset

// Table is the unified in-memory dataset the dashboard aggregates over: the
// left join of accidents with vehicles plus the two derived columns. It is
// built once per load, is read-only afterwards, and may be read concurrently.
//
// Storage is columnar. Low-cardinality text columns are dictionary-encoded
// behind the TextColumn interface; reading a value back is always lossless.
type Table struct {
	// Accident-sourced columns.
	AccidentIndex   TextColumn
	District        TextColumn
	UrbanRural      TextColumn
	Severity        TextColumn
	DayOfWeek       TextColumn
	JunctionDetail  TextColumn
	JunctionControl TextColumn
	Latitude        []float64
	Longitude       []float64
	Hour            []int16
	Month           []int16
	Year            []int16
	Casualties      []int32
	PedHuman        []int8
	PedPhysical     []int8

	// Vehicle-sourced columns. Empty text / false HasVehicle on rows whose
	// accident had no matching vehicle record.
	VehicleType    TextColumn
	AgeBand        TextColumn
	JourneyPurpose TextColumn
	SexOfDriver    TextColumn
	HasVehicle     []bool

	// Derived columns.
	TimePeriod TextColumn
	Season     TextColumn

	// FirstOfAccident marks the first joined row of each accident, so
	// per-accident figures (casualty totals, accident counts) are not
	// inflated by the one-row-per-vehicle fan-out.
	FirstOfAccident []bool

	accidents int
}

// Len returns the number of unified rows.
func (t *Table) Len() int { return len(t.Hour) }

// AccidentCount returns the number of distinct accidents behind the table.
// Always <= Len().
func (t *Table) AccidentCount() int { return t.accidents }

// BuildTable converts merged rows into the columnar unified table, applying
// dictionary encoding to text columns and computing Time_Period and Season
// for every row.
func BuildTable(rows []MergedRow) *Table {
	n := len(rows)

	var (
		index       = make([]string, n)
		district    = make([]string, n)
		urbanRural  = make([]string, n)
		severity    = make([]string, n)
		dayOfWeek   = make([]string, n)
		juncDetail  = make([]string, n)
		juncControl = make([]string, n)
		vehicleType = make([]string, n)
		ageBand     = make([]string, n)
		purpose     = make([]string, n)
		sexOfDriver = make([]string, n)
		timePeriod  = make([]string, n)
		season      = make([]string, n)
	)

	t := &Table{
		Latitude:        make([]float64, n),
		Longitude:       make([]float64, n),
		Hour:            make([]int16, n),
		Month:           make([]int16, n),
		Year:            make([]int16, n),
		Casualties:      make([]int32, n),
		PedHuman:        make([]int8, n),
		PedPhysical:     make([]int8, n),
		HasVehicle:      make([]bool, n),
		FirstOfAccident: make([]bool, n),
	}

	prevIndex := ""
	for i, row := range rows {
		acc := row.Accident
		index[i] = acc.Index
		district[i] = acc.District
		urbanRural[i] = acc.UrbanRural
		severity[i] = acc.Severity
		dayOfWeek[i] = acc.DayOfWeek
		juncDetail[i] = acc.JunctionDetail
		juncControl[i] = acc.JunctionControl
		t.Latitude[i] = acc.Latitude
		t.Longitude[i] = acc.Longitude
		t.Hour[i] = acc.Hour
		t.Month[i] = int16(acc.Month)
		t.Year[i] = int16(acc.Year)
		t.Casualties[i] = int32(acc.Casualties)
		t.PedHuman[i] = int8(acc.PedHuman)
		t.PedPhysical[i] = int8(acc.PedPhysical)

		vehicleType[i] = row.Vehicle.VehicleType
		ageBand[i] = row.Vehicle.AgeBand
		purpose[i] = row.Vehicle.JourneyPurpose
		sexOfDriver[i] = row.Vehicle.SexOfDriver
		t.HasVehicle[i] = row.HasVehicle

		timePeriod[i] = TimePeriod(acc.Hour)
		season[i] = Season(acc.Month)

		// Merge emits every row of one accident contiguously, so a change
		// of index marks a new accident.
		if i == 0 || acc.Index != prevIndex {
			t.FirstOfAccident[i] = true
			t.accidents++
		}
		prevIndex = acc.Index
	}

	t.AccidentIndex = NewTextColumn(index)
	t.District = NewTextColumn(district)
	t.UrbanRural = NewTextColumn(urbanRural)
	t.Severity = NewTextColumn(severity)
	t.DayOfWeek = NewTextColumn(dayOfWeek)
	t.JunctionDetail = NewTextColumn(juncDetail)
	t.JunctionControl = NewTextColumn(juncControl)
	t.VehicleType = NewTextColumn(vehicleType)
	t.AgeBand = NewTextColumn(ageBand)
	t.JourneyPurpose = NewTextColumn(purpose)
	t.SexOfDriver = NewTextColumn(sexOfDriver)
	t.TimePeriod = NewTextColumn(timePeriod)
	t.Season = NewTextColumn(season)

	return t
}
