package orchestrator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/export"
)

// ExporterRegistry stores document exporters by format name.
type ExporterRegistry struct {
	mu        sync.RWMutex
	exporters map[string]export.Exporter
	aliases   map[string]string
}

// NewExporterRegistry creates an empty exporter registry.
func NewExporterRegistry() *ExporterRegistry {
	return &ExporterRegistry{
		exporters: make(map[string]export.Exporter),
		aliases:   make(map[string]string),
	}
}

// DefaultExporters returns a registry holding the text and html exporters.
// The empty format resolves to text.
func DefaultExporters() *ExporterRegistry {
	r := NewExporterRegistry()
	for _, format := range export.Formats() {
		exporter, err := export.ForFormat(format)
		if err != nil {
			panic(err)
		}
		r.MustRegister(exporter)
	}
	r.Alias("", export.FormatText)
	r.Alias("txt", export.FormatText)
	r.Alias("htm", export.FormatHTML)
	return r
}

// Register adds an exporter by its Format(). Duplicate names return an
// error.
func (r *ExporterRegistry) Register(exporter export.Exporter) error {
	if exporter == nil {
		return fmt.Errorf("orchestrator: exporter is required")
	}
	name := normalizeFormatName(exporter.Format())
	if name == "" {
		return fmt.Errorf("orchestrator: exporter format is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[name]; exists {
		return fmt.Errorf("orchestrator: exporter %q already registered", name)
	}
	r.exporters[name] = exporter
	return nil
}

// MustRegister panics on registration failure.
func (r *ExporterRegistry) MustRegister(exporter export.Exporter) {
	if err := r.Register(exporter); err != nil {
		panic(err)
	}
}

// Alias makes alias resolve to the exporter registered as format.
func (r *ExporterRegistry) Alias(alias, format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[normalizeFormatName(alias)] = normalizeFormatName(format)
}

// Get retrieves an exporter by format name or alias.
func (r *ExporterRegistry) Get(name string) (export.Exporter, error) {
	key := normalizeFormatName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[key]; ok {
		key = target
	}
	exporter, ok := r.exporters[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", export.ErrUnknownFormat, name)
	}
	return exporter, nil
}

// List returns a sorted list of format names, aliases excluded.
func (r *ExporterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeFormatName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Artifact is an exported submission ready to be saved or served.
type Artifact struct {
	FileName    string
	ContentType string
	Body        []byte
}

// Export renders submission id as a document in format.
func (o *Orchestrator) Export(id, format string) (Artifact, error) {
	submission, ok := o.history.Get(id)
	if !ok {
		return Artifact{}, fmt.Errorf("orchestrator: export: %w: %q", ErrSubmissionNotFound, id)
	}
	exporter, err := o.exporters.Get(format)
	if err != nil {
		return Artifact{}, fmt.Errorf("orchestrator: export: %w", err)
	}

	doc := export.Build(submission.Config, submission.Values).At(o.now())
	var buf bytes.Buffer
	if err := exporter.Export(&buf, doc); err != nil {
		return Artifact{}, fmt.Errorf("orchestrator: export %s: %w", exporter.Format(), err)
	}
	return Artifact{
		FileName:    export.FileName(submission.Config, exporter.Extension()),
		ContentType: exporter.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
