package layout

// FieldSize is the coarse width class of a field.
type FieldSize string

const (
	FieldSizeSmall      FieldSize = "sm"
	FieldSizeMedium     FieldSize = "md"
	FieldSizeLarge      FieldSize = "lg"
	FieldSizeExtraLarge FieldSize = "xl"
)

// GridColumns is the number of columns in a row grid.
const GridColumns = 12

// MaxRowPercent is the width budget of a single row.
const MaxRowPercent = 100

var sizeTable = map[FieldSize]struct {
	percent int
	span    int
	label   string
}{
	FieldSizeSmall:      {percent: 33, span: 4, label: "Small (33%)"},
	FieldSizeMedium:     {percent: 50, span: 6, label: "Medium (50%)"},
	FieldSizeLarge:      {percent: 66, span: 8, label: "Large (66%)"},
	FieldSizeExtraLarge: {percent: 100, span: 12, label: "Extra-large (100%)"},
}

// FieldSizes returns the supported sizes from narrowest to widest.
func FieldSizes() []FieldSize {
	return []FieldSize{FieldSizeSmall, FieldSizeMedium, FieldSizeLarge, FieldSizeExtraLarge}
}

// Valid reports whether s is a known size.
func (s FieldSize) Valid() bool {
	_, ok := sizeTable[s]
	return ok
}

// Percent returns the share of the row width the size occupies. Unknown sizes
// count as zero.
func (s FieldSize) Percent() int {
	return sizeTable[s].percent
}

// Span returns the number of grid columns the size occupies. Unknown sizes
// take the full row.
func (s FieldSize) Span() int {
	if entry, ok := sizeTable[s]; ok {
		return entry.span
	}
	return GridColumns
}

// Label returns the human readable size name shown in builder selects.
func (s FieldSize) Label() string {
	if entry, ok := sizeTable[s]; ok {
		return entry.label
	}
	return string(s)
}

// RowPercent sums the size percentages of every field in the row.
func RowPercent(row Row) int {
	total := 0
	for _, field := range row.Fields {
		total += field.Size.Percent()
	}
	return total
}
