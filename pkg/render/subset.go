package render

import "strings"

// FieldSubset narrows a plan to some sections (by id or label) and/or some
// fields (by name). Empty filters match everything.
type FieldSubset struct {
	Sections []string `json:"sections,omitempty"`
	Fields   []string `json:"fields,omitempty"`
}

// Empty reports whether the subset filters nothing.
func (s FieldSubset) Empty() bool {
	return len(normaliseTokens(s.Sections)) == 0 && len(normaliseTokens(s.Fields)) == 0
}

// ApplySubset returns a copy of plan keeping only matching sections and
// fields. Rows and sections left empty by the filter are pruned.
func ApplySubset(plan Plan, subset FieldSubset) Plan {
	sections := normaliseTokens(subset.Sections)
	fields := normaliseTokens(subset.Fields)
	if len(sections) == 0 && len(fields) == 0 {
		return plan
	}

	out := plan
	out.Sections = make([]SectionPlan, 0, len(plan.Sections))
	for _, section := range plan.Sections {
		if len(sections) > 0 && !matchesAny(sections, section.ID, section.Label) {
			continue
		}
		kept := SectionPlan{ID: section.ID, Label: section.Label}
		for _, row := range section.Rows {
			cells := make([]FieldView, 0, len(row.Cells))
			for _, cell := range row.Cells {
				if len(fields) > 0 && !matchesAny(fields, cell.Name) {
					continue
				}
				cells = append(cells, cell)
			}
			if len(cells) == 0 && len(fields) > 0 {
				continue
			}
			kept.Rows = append(kept.Rows, RowPlan{ID: row.ID, Cells: cells})
		}
		if len(kept.Rows) == 0 && len(fields) > 0 {
			continue
		}
		out.Sections = append(out.Sections, kept)
	}
	return out
}

func matchesAny(tokens map[string]struct{}, candidates ...string) bool {
	for _, candidate := range candidates {
		if _, ok := tokens[normaliseToken(candidate)]; ok {
			return true
		}
	}
	return false
}

// ParseTokenList splits comma or whitespace separated query values.
func ParseTokenList(raw ...string) []string {
	var out []string
	for _, value := range raw {
		for _, part := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		}) {
			if token := strings.TrimSpace(part); token != "" {
				out = append(out, token)
			}
		}
	}
	return out
}

func normaliseTokens(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		token := normaliseToken(value)
		if token == "" {
			continue
		}
		result[token] = struct{}{}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func normaliseToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
