package validation

import (
	"strings"
	"testing"
)

const validDocument = `{
  "id": "form-1",
  "label": "Contact",
  "viewType": "create",
  "sectionsEnabled": true,
  "sections": [{
    "id": "s1",
    "label": "Details",
    "collapsed": false,
    "rows": [{
      "id": "r1",
      "fields": [
        {"id": "f1", "name": "email", "label": "Email", "type": "text", "size": "md", "required": true},
        {"id": "f2", "name": "topic", "label": "Topic", "type": "select", "size": "md", "required": false, "options": ["Sales"]}
      ]
    }]
  }]
}`

func TestValidateDocument_Valid(t *testing.T) {
	if issues := ValidateDocument([]byte(validDocument)); len(issues) != 0 {
		t.Fatalf("expected document to be valid: %#v", issues)
	}
}

func TestValidateDocument_FieldPath(t *testing.T) {
	doc := strings.Replace(validDocument, `"size": "md", "required": true`, `"size": "huge", "required": true`, 1)

	issues := ValidateDocument([]byte(doc))
	if len(issues) == 0 {
		t.Fatalf("expected validation issues")
	}
	found := false
	for _, issue := range issues {
		if issue.Field == "sections.0.rows.0.fields.0.size" {
			found = true
			if issue.Path != "/sections/0/rows/0/fields/0/size" {
				t.Fatalf("unexpected pointer %q", issue.Path)
			}
		}
	}
	if !found {
		t.Fatalf("expected an issue on the field size, got %#v", issues)
	}
}

func TestValidateDocument_OptionsOnlyOnSelect(t *testing.T) {
	doc := strings.Replace(validDocument, `"type": "text", "size": "md", "required": true}`, `"type": "text", "size": "md", "required": true, "options": ["x"]}`, 1)

	result := CheckDocument([]byte(doc))
	if result.Valid {
		t.Fatalf("expected options on a text field to be rejected")
	}
}

func TestValidateDocument_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":       "  ",
		"not json":    "{",
		"wrong shape": `[]`,
		"missing ids": `{"label": "x", "viewType": "create", "sectionsEnabled": true, "sections": []}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			result := CheckDocument([]byte(doc))
			if result.Valid || len(result.Issues) == 0 {
				t.Fatalf("expected invalid result, got %#v", result)
			}
			for _, issue := range result.Issues {
				if strings.TrimSpace(issue.Message) == "" {
					t.Fatalf("issue without message: %#v", issue)
				}
			}
		})
	}
}

func TestFieldPathFromPointer(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"/":                 "",
		"/sections/0/label": "sections.0.label",
		"#/a~1b/c~0d":       "a/b.c~d",
	}
	for pointer, want := range cases {
		if got := fieldPathFromPointer(pointer); got != want {
			t.Fatalf("fieldPathFromPointer(%q) = %q, want %q", pointer, got, want)
		}
	}
}

func TestValidateDocument_NumbersAndTrailingData(t *testing.T) {
	numeric := strings.Replace(validDocument, `"label": "Contact"`, `"label": 12.5`, 1)
	issues := ValidateDocument([]byte(numeric))
	found := false
	for _, issue := range issues {
		if issue.Path == "/label" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type issue at /label, got %#v", issues)
	}

	result := CheckDocument([]byte(validDocument + ` {"id": "x"}`))
	if result.Valid || len(result.Issues) != 1 {
		t.Fatalf("expected trailing data to be rejected, got %#v", result)
	}
	if !strings.HasPrefix(result.Issues[0].Message, "invalid JSON:") {
		t.Fatalf("unexpected message %q", result.Issues[0].Message)
	}
}
