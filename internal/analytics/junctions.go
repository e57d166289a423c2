package analytics

import (
	"context"
	"sort"
	"strings"
)

// junctionTypeLimit caps the junction-type bar chart, as in the source
// dashboard.
const junctionTypeLimit = 8

// tStaggeredJunction is the junction type singled out for the control
// breakdown, being the one with the most accidents.
const tStaggeredJunction = "T or staggered junction"

// Junction_Detail values that mean the accident was not at a junction.
var notAtJunction = map[string]bool{
	"":                                    true,
	"not at junction":                     true,
	"not at junction or within 20 metres": true,
	"data missing or out of range":        true,
}

// Pedestrian_Crossing-Human_Control code labels from the source releases.
var pedHumanLabels = map[int8]string{
	0:  "No physical crossing facilities within 50 metres",
	1:  "Control by school crossing patrol",
	2:  "Control by other authorised person",
	4:  "Pedestrian phase at traffic signal junction",
	5:  "Zebra",
	-1: "Data missing or out of range",
}

// Pedestrian_Crossing-Physical_Facilities code labels.
var pedPhysicalLabels = map[int8]string{
	0:  "No facilities",
	1:  "Zebra",
	4:  "Pelican, puffin, toucan or similar",
	5:  "Pedestrian phase at traffic signal junction",
	7:  "Footbridge or subway",
	8:  "Central refuge",
	9:  "Unknown (self reported)",
	-1: "Data missing or out of range",
}

const pedLabelUnknown = "Unknown"

// JunctionStats is the junction safety page payload. All crosstabs cover
// junction accidents only.
type JunctionStats struct {
	AtJunction    int     `json:"at_junction"`
	NotAtJunction int     `json:"not_at_junction"`
	AtJunctionPct float64 `json:"at_junction_pct"`

	Types []CategoryCount `json:"types"`

	// ControlByDetail crosses Junction_Control against Junction_Detail.
	ControlByDetail []CrossCount `json:"control_by_detail"`

	// TJunctionControls breaks the worst junction type down by control.
	TJunctionControls []CategoryCount `json:"t_junction_controls"`

	// Pedestrian crossing provision (human control / physical facilities)
	// crossed against Junction_Control.
	PedHumanByControl    []CrossCount `json:"ped_human_by_control"`
	PedPhysicalByControl []CrossCount `json:"ped_physical_by_control"`
}

func (s *service) Junctions(ctx context.Context) (*JunctionStats, error) {
	t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out           = &JunctionStats{}
		types         = make(map[string]int)
		controlDetail = make(map[[2]string]int)
		tJunction     = make(map[string]int)
		pedHuman      = make(map[[2]string]int)
		pedPhysical   = make(map[[2]string]int)
	)

	for i := 0; i < t.Len(); i++ {
		detail := t.JunctionDetail.Value(i)
		if !atJunction(detail) {
			out.NotAtJunction++
			continue
		}
		out.AtJunction++

		control := t.JunctionControl.Value(i)
		types[detail]++
		controlDetail[[2]string{control, detail}]++
		if detail == tStaggeredJunction {
			tJunction[control]++
		}
		pedHuman[[2]string{pedLabel(pedHumanLabels, t.PedHuman[i]), control}]++
		pedPhysical[[2]string{pedLabel(pedPhysicalLabels, t.PedPhysical[i]), control}]++
	}

	out.AtJunctionPct = pct(out.AtJunction, out.AtJunction+out.NotAtJunction)
	out.Types = topN(types, junctionTypeLimit)
	out.ControlByDetail = crosstab(controlDetail)
	out.TJunctionControls = topN(tJunction, len(tJunction))
	out.PedHumanByControl = crosstab(pedHuman)
	out.PedPhysicalByControl = crosstab(pedPhysical)

	return out, nil
}

// atJunction classifies a Junction_Detail value. Missing values and the
// explicit not-at-junction labels count as No.
func atJunction(detail string) bool {
	return !notAtJunction[strings.ToLower(strings.TrimSpace(detail))]
}

func pedLabel(labels map[int8]string, code int8) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return pedLabelUnknown
}

// crosstab flattens a two-way count map into deterministic row/col order.
func crosstab(cells map[[2]string]int) []CrossCount {
	out := make([]CrossCount, 0, len(cells))
	for key, count := range cells {
		out = append(out, CrossCount{Row: key[0], Col: key[1], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
