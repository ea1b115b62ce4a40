// Package builder implements the layout reducer: a pure transition function
// over layout.FormConfig driven by typed structural edit actions, plus a
// Session handle that owns the authoritative snapshot for one builder session.
//
// Actions that target ids which do not exist are absorbed as no-ops and
// return the input config unchanged. Field updates are typed partial patches
// validated against the target field's type before they are applied.
package builder
