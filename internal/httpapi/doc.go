// Package httpapi exposes one orchestrator over HTTP: builder actions,
// previews, the submission history and document export.
package httpapi
