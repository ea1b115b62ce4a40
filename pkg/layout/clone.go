package layout

// Clone returns a deep copy of the config; the result shares no slices with
// the receiver.
func (c FormConfig) Clone() FormConfig {
	out := c
	out.Sections = nil
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, section := range c.Sections {
			out.Sections[i] = section.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Rows = nil
	if s.Rows != nil {
		out.Rows = make([]Row, len(s.Rows))
		for i, row := range s.Rows {
			out.Rows[i] = row.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := r
	out.Fields = nil
	if r.Fields != nil {
		out.Fields = make([]Field, len(r.Fields))
		for i, field := range r.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = make([]string, len(f.Options))
		copy(out.Options, f.Options)
	}
	return out
}

// Clone returns a deep copy of the values map. Nested maps and slices are
// copied recursively.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = deepCopy(value)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case Values:
		return typed.Clone()
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
