package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the plan.
type RenderOptions struct {
	// Errors surfaces per-field messages keyed by field name, typically the
	// result of ErrorsFrom on a rejected submit.
	Errors map[string][]string
	// FormErrors are shown above the form.
	FormErrors []string
	// Hidden adds hidden inputs next to the ones derived from the plan.
	Hidden map[string]string
	// Subset limits rendering to some sections or fields.
	Subset FieldSubset
	// Theme carries resolved tokens and CSS variables.
	Theme *theme.RendererConfig
	// Locale and Translator localise the fixed captions of a plan.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Prepare applies the subset and localisation options to a copy of plan.
// Renderers call it before drawing.
func Prepare(plan Plan, options RenderOptions) Plan {
	out := ApplySubset(plan.Clone(), options.Subset)
	if options.Translator != nil || options.OnMissing != nil {
		LocalizePlan(&out, options.Locale, options.Translator, options.OnMissing)
	}
	return out
}
