package export

import (
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	// MissingValue replaces nil and empty values.
	MissingValue = "-"
	// DefaultTitle is used when the form has no label.
	DefaultTitle = "Form"
	// DefaultSectionTitle is used for unlabeled sections.
	DefaultSectionTitle = "Section"
	// DefaultFieldLabel is used for unlabeled fields.
	DefaultFieldLabel = "Field"
	// DefaultFileStem is used by FileName when the form has no label.
	DefaultFileStem = "form"
)

// Document is a printable rendition of one submission.
type Document struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`
	Sections    []Section `json:"sections"`
}

// Section groups rows under a title.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Row is one line of cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell is a labelled value. Span counts grid columns out of 12, Width is the
// matching percentage.
type Cell struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Span  int    `json:"span"`
	Width int    `json:"width"`
}

// Build walks cfg section by section and pairs every field with its value.
// All sections are included whether or not the builder has them enabled.
func Build(cfg layout.FormConfig, values layout.Values) Document {
	doc := Document{
		Title:    cfg.Label,
		Sections: make([]Section, 0, len(cfg.Sections)),
	}
	if doc.Title == "" {
		doc.Title = DefaultTitle
	}

	for _, section := range cfg.Sections {
		out := Section{Title: section.Label, Rows: make([]Row, 0, len(section.Rows))}
		if out.Title == "" {
			out.Title = DefaultSectionTitle
		}
		for _, row := range section.Rows {
			cells := make([]Cell, 0, len(row.Fields))
			for _, field := range row.Fields {
				cells = append(cells, buildCell(field, values))
			}
			out.Rows = append(out.Rows, Row{Cells: cells})
		}
		doc.Sections = append(doc.Sections, out)
	}
	return doc
}

// At returns a copy of d stamped with t.
func (d Document) At(t time.Time) Document {
	d.GeneratedAt = t
	return d
}

func buildCell(field layout.Field, values layout.Values) Cell {
	cell := Cell{
		Label: field.Label,
		Value: formatValue(values[field.Name]),
		Span:  field.Size.Span(),
		Width: field.Size.Percent(),
	}
	if cell.Label == "" {
		cell.Label = DefaultFieldLabel
	}
	if cell.Width == 0 {
		cell.Width = layout.MaxRowPercent
	}
	return cell
}

func formatValue(value any) string {
	if value == nil {
		return MissingValue
	}
	text := render.ValueText(value)
	if text == "" {
		return MissingValue
	}
	return text
}

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)

// FileName derives a download name from the form label: lower-cased with
// every whitespace run replaced by an underscore. ext may carry a leading
// dot.
func FileName(cfg layout.FormConfig, ext string) string {
	stem := cfg.Label
	if stem == "" {
		stem = DefaultFileStem
	}
	stem = whitespaceRun.ReplaceAllString(strings.ToLower(stem), "_")

	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}
