// Package orchestrator composes one builder session, its submission history,
// and the renderer registry behind a single handle. Hosts (the HTTP API, the
// CLI) create one Orchestrator per editing session instead of sharing
// package-level state.
package orchestrator
