package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

// TextColumnWidth is the number of characters a single grid column gets in
// the text layout. A full row is twelve of them.
const TextColumnWidth = 6

// TextExporter writes a fixed-width plain text rendition.
type TextExporter struct{}

func (TextExporter) Format() string      { return FormatText }
func (TextExporter) Extension() string   { return "txt" }
func (TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (TextExporter) Export(w io.Writer, doc Document) error {
	return WriteText(w, doc)
}

// WriteText lays doc out on a 72 character grid. Each row prints its labels
// on one line and the values below, each cell padded to its span.
func WriteText(w io.Writer, doc Document) error {
	bw := bufio.NewWriter(w)
	total := TextColumnWidth * 12

	fmt.Fprintln(bw, doc.Title)
	if !doc.GeneratedAt.IsZero() {
		fmt.Fprintf(bw, "Generated: %s\n", doc.GeneratedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(bw, strings.Repeat("=", total))

	for _, section := range doc.Sections {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, section.Title)
		fmt.Fprintln(bw, strings.Repeat("-", total))
		for _, row := range section.Rows {
			labels := make([]string, len(row.Cells))
			values := make([]string, len(row.Cells))
			for i, cell := range row.Cells {
				width := cell.Span * TextColumnWidth
				labels[i] = fit(cell.Label, width)
				values[i] = fit(cell.Value, width)
			}
			fmt.Fprintln(bw, strings.TrimRight(strings.Join(labels, ""), " "))
			fmt.Fprintln(bw, strings.TrimRight(strings.Join(values, ""), " "))
			fmt.Fprintln(bw)
		}
	}
	return bw.Flush()
}

// fit pads s to width, truncating with "~" when it does not fit. One column
// of space is kept between neighbouring cells.
func fit(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	room := width - 1
	if room < 1 {
		room = 1
	}
	if n := utf8.RuneCountInString(s); n > room {
		runes := []rune(s)
		s = string(runes[:room-1]) + "~"
	}
	if pad := width - utf8.RuneCountInString(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
