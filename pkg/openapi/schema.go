package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// DatePattern restricts date values to YYYY-MM-DD.
const DatePattern = `^\d{4}-\d{2}-\d{2}$`

// ValuesSchema returns the object schema of a submission for cfg. Every
// field becomes a property keyed by its name; required fields are listed in
// Required. Unknown keys are tolerated.
func ValuesSchema(cfg layout.FormConfig) *openapi3.Schema {
	return valuesSchema(cfg, true)
}

func valuesSchema(cfg layout.FormConfig, withRequired bool) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = cfg.Label
	for _, field := range cfg.Fields() {
		schema.WithProperty(field.Name, FieldSchema(field))
		if withRequired && field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

// FieldSchema maps a single field to its value schema.
func FieldSchema(field layout.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case layout.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case layout.FieldTypeCheckbox:
		schema = openapi3.NewBoolSchema()
	case layout.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date").WithPattern(DatePattern)
	case layout.FieldTypeSelect:
		enum := make([]any, 0, len(field.Options)+1)
		enum = append(enum, "")
		for _, opt := range field.Options {
			enum = append(enum, opt)
		}
		schema = openapi3.NewStringSchema().WithEnum(enum...)
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	schema.Nullable = !field.Required
	return schema
}
