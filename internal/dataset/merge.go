package dataset

// Merge left-joins accidents with vehicles on Accident_Index using a hashed
// index over the vehicle table, so cost stays near-linear in combined row
// count. Every accident appears in the output: once per matching vehicle, or
// exactly once with HasVehicle=false when no vehicle references it. Output
// order is deterministic: accidents in input order, matches in vehicle input
// order. Neither input is mutated.
func Merge(accidents []AccidentRecord, vehicles []VehicleRecord) []MergedRow {
	byIndex := make(map[string][]int32, len(accidents))
	for i, v := range vehicles {
		byIndex[v.Index] = append(byIndex[v.Index], int32(i))
	}

	out := make([]MergedRow, 0, max(len(accidents), len(vehicles)))
	for _, acc := range accidents {
		matches := byIndex[acc.Index]
		if len(matches) == 0 {
			out = append(out, MergedRow{Accident: acc})
			continue
		}
		for _, vi := range matches {
			out = append(out, MergedRow{
				Accident:   acc,
				Vehicle:    vehicles[vi],
				HasVehicle: true,
			})
		}
	}
	return out
}
