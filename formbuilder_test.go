package formbuilder

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), testsupport.ContactForm(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`id="form-1"`, `data-mode="create"`, "Full name"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, html)
		}
	}
}

func TestGenerateHTMLFromDocument_Themed(t *testing.T) {
	data, err := layout.Encode(layout.FormatYAML, testsupport.ContactForm())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := GenerateHTMLFromDocument(context.Background(), data, "html",
		WithThemeManifests(orchestrator.DefaultManifest()),
	)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `data-theme="formbuilder"`) {
		t.Fatalf("expected theme attribute, got:\n%s", out)
	}
}

func TestGenerateHTMLFromDocument_RejectsInvalid(t *testing.T) {
	if _, err := GenerateHTMLFromDocument(context.Background(), []byte(`{"sections": 3}`), ""); err == nil {
		t.Fatal("expected invalid document to fail")
	}
}

func TestExportSubmission(t *testing.T) {
	artifact, err := ExportSubmission(testsupport.ContactForm(), testsupport.ContactValues(), "text")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.FileName != "contact_us.txt" {
		t.Fatalf("unexpected file name %q", artifact.FileName)
	}
	if !strings.Contains(string(artifact.Body), "Ada Lovelace") {
		t.Fatalf("expected values in export, got:\n%s", artifact.Body)
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.ReadFile(StylesheetFS(), "formbuilder.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}
