package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "fb-form"
	ClassHeader  ChromeClass = "fb-header"
	ClassBanner  ChromeClass = "fb-banner"
	ClassSection ChromeClass = "fb-section"
	ClassGrid    ChromeClass = "fb-grid"
	ClassField   ChromeClass = "fb-field"
	ClassActions ChromeClass = "fb-actions"
	ClassErrors  ChromeClass = "fb-errors"
)

// Classes overrides the chrome classes emitted by the renderer. Empty entries
// keep the defaults.
type Classes struct {
	Form    string
	Header  string
	Banner  string
	Section string
	Grid    string
	Field   string
	Actions string
	Errors  string
}

func defaultClasses() Classes {
	return Classes{
		Form:    string(ClassForm),
		Header:  string(ClassHeader),
		Banner:  string(ClassBanner),
		Section: string(ClassSection),
		Grid:    string(ClassGrid),
		Field:   string(ClassField),
		Actions: string(ClassActions),
		Errors:  string(ClassErrors),
	}
}

func (c Classes) merge(override Classes) Classes {
	pick := func(base, value string) string {
		if cleaned := sanitizeClassList(value); cleaned != "" {
			return cleaned
		}
		return base
	}
	return Classes{
		Form:    pick(c.Form, override.Form),
		Header:  pick(c.Header, override.Header),
		Banner:  pick(c.Banner, override.Banner),
		Section: pick(c.Section, override.Section),
		Grid:    pick(c.Grid, override.Grid),
		Field:   pick(c.Field, override.Field),
		Actions: pick(c.Actions, override.Actions),
		Errors:  pick(c.Errors, override.Errors),
	}
}
