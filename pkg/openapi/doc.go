// Package openapi describes the values payload of a form as an OpenAPI 3
// schema and type-checks submitted values against it with kin-openapi.
package openapi
