package dataset

// categoricalThreshold is the distinct-to-total ratio below which a text
// column is worth dictionary-encoding.
const categoricalThreshold = 0.5

// TextColumn is a read-only, row-aligned column of strings. Whether the
// backing storage is plain or dictionary-encoded is not observable through
// this interface: Value always returns the original text.
type TextColumn interface {
	// Len returns the number of rows.
	Len() int
	// Value returns the text at row i.
	Value(i int) string
	// Cardinality returns the number of distinct values.
	Cardinality() int
}

// NewTextColumn builds a column over values, dictionary-encoding it when the
// distinct-to-total ratio is below the categorical threshold. A column with
// zero rows is left unconverted. The input slice is not retained by the
// encoded form.
func NewTextColumn(values []string) TextColumn {
	if len(values) == 0 {
		return rawColumn(values)
	}

	index := make(map[string]int32)
	for _, v := range values {
		if _, ok := index[v]; !ok {
			index[v] = int32(len(index))
		}
	}
	if float64(len(index))/float64(len(values)) >= categoricalThreshold {
		return rawColumn(values)
	}

	dict := make([]string, len(index))
	for v, code := range index {
		dict[code] = v
	}
	codes := make([]int32, len(values))
	for i, v := range values {
		codes[i] = index[v]
	}
	return &dictColumn{codes: codes, dict: dict}
}

// rawColumn stores every value verbatim. Used for high-cardinality text such
// as accident identifiers.
type rawColumn []string

func (c rawColumn) Len() int           { return len(c) }
func (c rawColumn) Value(i int) string { return c[i] }

func (c rawColumn) Cardinality() int {
	seen := make(map[string]struct{}, len(c))
	for _, v := range c {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// dictColumn stores one int32 code per row plus the distinct value set.
type dictColumn struct {
	codes []int32
	dict  []string
}

func (c *dictColumn) Len() int           { return len(c.codes) }
func (c *dictColumn) Value(i int) string { return c.dict[c.codes[i]] }
func (c *dictColumn) Cardinality() int   { return len(c.dict) }
