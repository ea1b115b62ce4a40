package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

const (
	// Version is the OpenAPI version emitted by Document.
	Version = "3.0.3"
	// SubmissionsPath is the collection path published by Document.
	SubmissionsPath = "/submissions"
	// ValuesSchemaName names the values schema under components.
	ValuesSchemaName = "FormValues"
)

// Document publishes the values schema as the request body of
// POST /submissions and PUT /submissions/{id}.
func Document(cfg layout.FormConfig) *openapi3.T {
	title := cfg.Label
	if title == "" {
		title = "Form"
	}
	values := ValuesSchema(cfg)
	ref := openapi3.NewSchemaRef("#/components/schemas/"+ValuesSchemaName, values)

	created := openapi3.NewObjectSchema().WithProperty("id", openapi3.NewStringSchema())
	created.Required = []string{"id"}

	create := openapi3.NewOperation()
	create.OperationID = "createSubmission"
	create.Summary = "Submit values for " + title
	create.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithSchemaRef(ref, []string{"application/json"})}
	create.Responses = openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission stored").WithJSONSchema(created)}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Missing or invalid values")}),
	)

	update := openapi3.NewOperation()
	update.OperationID = "updateSubmission"
	update.Summary = "Replace the values of a stored submission"
	update.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()))
	update.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithSchemaRef(ref, []string{"application/json"})}
	update.Responses = openapi3.NewResponses(
		openapi3.WithStatus(204, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Values replaced")}),
		openapi3.WithStatus(404, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Unknown submission")}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Missing or invalid values")}),
	)

	return &openapi3.T{
		OpenAPI: Version,
		Info:    &openapi3.Info{Title: title, Version: "1.0.0"},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(SubmissionsPath, &openapi3.PathItem{Post: create}),
			openapi3.WithPath(SubmissionsPath+"/{id}", &openapi3.PathItem{Put: update}),
		),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{ValuesSchemaName: openapi3.NewSchemaRef("", values)},
		},
	}
}

// Encode serialises doc as JSON (indented) or YAML.
func Encode(doc *openapi3.T, format layout.Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal: %w", err)
	}
	switch format {
	case layout.FormatJSON, "":
		return data, nil
	case layout.FormatYAML:
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("openapi: convert to yaml: %w", err)
		}
		return yaml.Marshal(tree)
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}

// Load parses and validates an OpenAPI document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("openapi: document is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}
