package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MissingTranslationHandler decides what to show when a key has no
// translation. fallback is the untranslated caption.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Message keys used by LocalizePlan.
const (
	KeyBanner            = "preview.%s.banner"
	KeySubmit            = "preview.%s.submit"
	KeyClose             = "preview.close"
	KeySelectPlaceholder = "preview.select.placeholder"
	KeyRequired          = "preview.field.required"
)

// LocalizePlan translates the fixed captions of plan in place: banner,
// submit and close buttons, and the select placeholder. Form, section and
// field labels are user content and stay as typed.
func LocalizePlan(plan *Plan, locale string, t Translator, onMissing MissingTranslationHandler) {
	if plan == nil {
		return
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	mode := plan.ModeName
	plan.Banner = translate(locale, strings.Replace(KeyBanner, "%s", mode, 1), plan.Banner, t, onMissing)
	if plan.Submit != "" {
		plan.Submit = translate(locale, strings.Replace(KeySubmit, "%s", mode, 1), plan.Submit, t, onMissing)
	}
	plan.Close = translate(locale, KeyClose, plan.Close, t, onMissing)

	placeholder := ""
	for si := range plan.Sections {
		for ri := range plan.Sections[si].Rows {
			cells := plan.Sections[si].Rows[ri].Cells
			for ci := range cells {
				if len(cells[ci].Options) == 0 || cells[ci].Options[0].Value != "" {
					continue
				}
				if placeholder == "" {
					placeholder = translate(locale, KeySelectPlaceholder, cells[ci].Options[0].Label, t, onMissing)
				}
				cells[ci].Options[0].Label = placeholder
			}
		}
	}
}

// LocalizeErrors translates required-field messages produced by
// MissingRequired. Other messages pass through.
func LocalizeErrors(labels map[string]string, errs map[string][]string, locale string, t Translator) map[string][]string {
	if t == nil || len(errs) == 0 {
		return errs
	}
	out := make(map[string][]string, len(errs))
	for name, messages := range errs {
		label := labels[name]
		for _, message := range messages {
			if label != "" && message == RequiredMessage(label) {
				if translated, err := t.Translate(locale, KeyRequired, label); err == nil && strings.TrimSpace(translated) != "" {
					message = translated
				}
			}
			out[name] = append(out[name], message)
		}
	}
	return out
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

// TemplateFuncs returns helpers for template engines: translate(key,
// fallback) bound to locale, and current_locale().
func TemplateFuncs(locale string, t Translator, onMissing MissingTranslationHandler) map[string]any {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return map[string]any{
		"translate": func(key string, fallback ...string) string {
			fb := ""
			if len(fallback) > 0 {
				fb = fallback[0]
			}
			return translate(locale, key, fb, t, onMissing)
		},
		"current_locale": func() string {
			return locale
		},
	}
}
