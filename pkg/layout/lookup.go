package layout

// FindSection returns the index of the section with the given id or -1.
func (c FormConfig) FindSection(sectionID string) int {
	for i, section := range c.Sections {
		if section.ID == sectionID {
			return i
		}
	}
	return -1
}

// FindRow returns the index of the row with the given id or -1.
func (s Section) FindRow(rowID string) int {
	for i, row := range s.Rows {
		if row.ID == rowID {
			return i
		}
	}
	return -1
}

// FindField returns the index of the field with the given id or -1.
func (r Row) FindField(fieldID string) int {
	for i, field := range r.Fields {
		if field.ID == fieldID {
			return i
		}
	}
	return -1
}

// Fields flattens the tree into section -> row -> field traversal order.
func (c FormConfig) Fields() []Field {
	var out []Field
	for _, section := range c.Sections {
		for _, row := range section.Rows {
			out = append(out, row.Fields...)
		}
	}
	return out
}

// FieldNames returns every field name in traversal order.
func (c FormConfig) FieldNames() []string {
	fields := c.Fields()
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return names
}

// HasFieldName reports whether any field already uses name.
func (c FormConfig) HasFieldName(name string) bool {
	for _, section := range c.Sections {
		for _, row := range section.Rows {
			for _, field := range row.Fields {
				if field.Name == name {
					return true
				}
			}
		}
	}
	return false
}

// IDs collects every entity id in the tree, including the form id.
func (c FormConfig) IDs() map[string]struct{} {
	ids := make(map[string]struct{})
	if c.ID != "" {
		ids[c.ID] = struct{}{}
	}
	for _, section := range c.Sections {
		ids[section.ID] = struct{}{}
		for _, row := range section.Rows {
			ids[row.ID] = struct{}{}
			for _, field := range row.Fields {
				ids[field.ID] = struct{}{}
			}
		}
	}
	return ids
}
