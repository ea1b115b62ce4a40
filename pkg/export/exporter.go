package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	FormatText = "text"
	FormatHTML = "html"
)

// ErrUnknownFormat is returned by ForFormat for unsupported names.
var ErrUnknownFormat = errors.New("export: unknown format")

// Exporter writes a Document in one output format.
type Exporter interface {
	Format() string
	Extension() string
	ContentType() string
	Export(w io.Writer, doc Document) error
}

// Formats lists the built-in export formats.
func Formats() []string {
	return []string{FormatText, FormatHTML}
}

// ForFormat returns the built-in exporter for name ("text"/"txt" or
// "html"/"htm").
func ForFormat(name string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatText, "txt", "":
		return TextExporter{}, nil
	case FormatHTML, "htm":
		return NewHTMLExporter()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}
