// Package template defines the engine contract used by the HTML preview
// renderer and the document exporter. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
