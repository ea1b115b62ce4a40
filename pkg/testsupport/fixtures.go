package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// FixedTime is the clock used by NewStore.
var FixedTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ContactForm returns a small two-section config exercising every field
// type. Ids are stable so tests can address nodes directly.
func ContactForm() layout.FormConfig {
	return layout.FormConfig{
		ID:              "form-1",
		Label:           "Contact Us",
		ViewType:        layout.ViewTypeCreate,
		SectionsEnabled: true,
		Sections: []layout.Section{
			{
				ID:    "sec-details",
				Label: "Details",
				Rows: []layout.Row{
					{
						ID: "row-name",
						Fields: []layout.Field{
							{ID: "fld-name", Name: "full_name", Label: "Full name", Type: layout.FieldTypeText, Size: layout.FieldSizeMedium, Required: true},
							{ID: "fld-age", Name: "age", Label: "Age", Type: layout.FieldTypeNumber, Size: layout.FieldSizeSmall},
						},
					},
					{
						ID: "row-topic",
						Fields: []layout.Field{
							{ID: "fld-topic", Name: "topic", Label: "Topic", Type: layout.FieldTypeSelect, Size: layout.FieldSizeLarge, Options: []string{"Sales", "Support"}},
							{ID: "fld-date", Name: "visit", Label: "Visit date", Type: layout.FieldTypeDate, Size: layout.FieldSizeSmall},
						},
					},
				},
			},
			{
				ID:    "sec-message",
				Label: "Message",
				Rows: []layout.Row{
					{
						ID: "row-message",
						Fields: []layout.Field{
							{ID: "fld-message", Name: "message", Label: "Message", Type: layout.FieldTypeTextarea, Size: layout.FieldSizeExtraLarge, Required: true},
						},
					},
					{
						ID: "row-consent",
						Fields: []layout.Field{
							{ID: "fld-consent", Name: "consent", Label: "I agree", Type: layout.FieldTypeCheckbox, Size: layout.FieldSizeMedium, Required: true},
						},
					},
				},
			},
		},
	}
}

// ContactValues returns a complete set of values for ContactForm.
func ContactValues() layout.Values {
	return layout.Values{
		"full_name": "Ada Lovelace",
		"age":       float64(36),
		"topic":     "Support",
		"visit":     "2024-01-02",
		"message":   "Hello",
		"consent":   true,
	}
}

// NewStore returns a history store with a fixed clock and sequential ids
// (sub-1, sub-2, ...).
func NewStore() *history.Store {
	n := 0
	return history.New(
		history.WithClock(func() time.Time { return FixedTime }),
		history.WithIDGenerator(func() string {
			n++
			return "sub-" + strconv.Itoa(n)
		}),
	)
}

// MustLoadConfig reads a JSON or YAML config fixture, picking the codec from
// the file extension.
func MustLoadConfig(t *testing.T, path string) layout.FormConfig {
	t.Helper()

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// LoadConfig reads a config fixture without requiring testing.T.
func LoadConfig(path string) (layout.FormConfig, error) {
	if path == "" {
		return layout.FormConfig{}, errors.New("testsupport: config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.FormConfig{}, fmt.Errorf("testsupport: read config: %w", err)
	}
	cfg, err := layout.Decode(layout.FormatFromPath(path), data)
	if err != nil {
		return layout.FormConfig{}, fmt.Errorf("testsupport: decode config: %w", err)
	}
	return cfg, nil
}

// DiffConfig returns a cmp diff between two configs, treating nil and empty
// slices as equal.
func DiffConfig(want, got layout.FormConfig) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
