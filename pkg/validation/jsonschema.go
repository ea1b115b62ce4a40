package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/form_config.schema.json
var formConfigSchema []byte

const formConfigSchemaURL = "https://schemas.goliatone.dev/formbuilder/form-config.schema.json"

// FormConfigSchema returns the JSON Schema document used by ValidateDocument.
func FormConfigSchema() []byte {
	return append([]byte(nil), formConfigSchema...)
}

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes for imports.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(formConfigSchemaURL, bytes.NewReader(formConfigSchema)); err != nil {
			compileErr = fmt.Errorf("validation: load form config schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(formConfigSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("validation: compile form config schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks a JSON encoded form config against the embedded
// schema before it is decoded. Issues are sorted by path.
func ValidateDocument(data []byte) []SchemaIssue {
	return CheckDocument(data).Issues
}

// CheckDocument is ValidateDocument wrapped in a result value.
func CheckDocument(data []byte) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}

	schema, err := documentSchema()
	if err != nil {
		result.Valid = false
		result.Issues = []SchemaIssue{issueFromError(err)}
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Valid = false
		result.Issues = []SchemaIssue{{Message: "document is empty"}}
		return result
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		result.Valid = false
		result.Issues = []SchemaIssue{{Message: "invalid JSON: " + strings.TrimSpace(err.Error())}}
		return result
	}
	if _, err := decoder.Token(); err != io.EOF {
		result.Valid = false
		result.Issues = []SchemaIssue{{Message: "invalid JSON: trailing data after document"}}
		return result
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		result.Issues = issuesFromError(err)
	}
	return result
}

func issuesFromError(err error) []SchemaIssue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []SchemaIssue{issueFromError(err)}
	}

	var issues []SchemaIssue
	collectLeaves(validationErr, &issues)
	if len(issues) == 0 {
		issues = append(issues, issueFromError(err))
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return dedupeIssues(issues)
}

func collectLeaves(err *jsonschema.ValidationError, out *[]SchemaIssue) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*out = append(*out, SchemaIssue{
			Path:    err.InstanceLocation,
			Field:   fieldPathFromPointer(err.InstanceLocation),
			Message: strings.TrimSpace(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectLeaves(cause, out)
	}
}

func dedupeIssues(issues []SchemaIssue) []SchemaIssue {
	seen := make(map[SchemaIssue]struct{}, len(issues))
	out := issues[:0]
	for _, issue := range issues {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		out = append(out, issue)
	}
	return out
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}

	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.Replace(msg, " at "+path, "", 1)
	}
	msg = strings.TrimPrefix(msg, "jsonschema: ")
	msg = strings.TrimPrefix(msg, "validation: ")
	msg = strings.TrimSpace(msg)

	return SchemaIssue{
		Path:    path,
		Field:   fieldPathFromPointer(path),
		Message: msg,
	}
}

func extractJSONPointer(message string) string {
	if message == "" {
		return ""
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		return trimPointer(strings.TrimSpace(message[idx:]))
	}
	return ""
}

func trimPointer(pointer string) string {
	if pointer == "" {
		return ""
	}
	trimmed := strings.TrimRight(pointer, ".)];,'")
	return strings.TrimSpace(trimmed)
}

// fieldPathFromPointer turns an instance pointer such as
// /sections/0/rows/1/fields/2/size into sections.0.rows.1.fields.2.size.
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.ReplaceAll(part, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return strings.Join(out, ".")
}
