package builder

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// script replays a sequence of op codes against the first reachable
// section/row so generated inputs always hit real targets. Renames and
// loads alternate between fresh names and names already in use.
func script(reducer *Reducer, state layout.FormConfig, ops []int) layout.FormConfig {
	for _, op := range ops {
		if len(state.Sections) == 0 {
			state = reducer.Apply(state, AddSection{})
			continue
		}
		section := state.Sections[len(state.Sections)-1]
		switch op % 8 {
		case 0:
			state = reducer.Apply(state, AddSection{})
		case 1:
			state = reducer.Apply(state, AddRow{SectionID: section.ID})
		case 2:
			if len(section.Rows) > 0 {
				row := section.Rows[0]
				types := layout.FieldTypes()
				state = reducer.Apply(state, AddField{SectionID: section.ID, RowID: row.ID, FieldType: types[op%len(types)]})
			}
		case 3:
			if len(section.Rows) > 0 && len(section.Rows[0].Fields) > 0 {
				row := section.Rows[0]
				state = reducer.Apply(state, DeleteField{SectionID: section.ID, RowID: row.ID, FieldID: row.Fields[0].ID})
			}
		case 4:
			if len(section.Rows) > 0 {
				state = reducer.Apply(state, DeleteRow{SectionID: section.ID, RowID: section.Rows[0].ID})
			}
		case 5:
			state = reducer.Apply(state, DeleteSection{SectionID: state.Sections[0].ID})
		case 6:
			if len(section.Rows) > 0 && len(section.Rows[0].Fields) > 1 {
				row := section.Rows[0]
				name := "renamed_" + strconv.Itoa(op)
				if op%2 == 0 {
					name = row.Fields[0].Name
				}
				state = reducer.Apply(state, UpdateField{SectionID: section.ID, RowID: row.ID, FieldID: row.Fields[1].ID, Patch: PatchName(name)})
			}
		case 7:
			loaded := state.Clone()
			if fields := loaded.Fields(); len(fields) > 1 && op%2 == 0 {
				last := &loaded.Sections[len(loaded.Sections)-1]
				for i := range last.Rows {
					if n := len(last.Rows[i].Fields); n > 0 {
						last.Rows[i].Fields[n-1].Name = fields[0].Name
						if last.Rows[i].Fields[n-1].ID == fields[0].ID {
							last.Rows[i].Fields[n-1].Name = fields[1].Name
						}
						break
					}
				}
			}
			state = reducer.Apply(state, LoadConfig{Config: loaded})
		}
	}
	return state
}

func TestReducerKeepsNamesAndIDsUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("field names and ids stay unique", prop.ForAll(
		func(ops []int) bool {
			ids := UUIDGenerator()
			reducer := NewReducer(ids)
			state := script(reducer, InitialConfig(ids), ops)

			names := map[string]struct{}{}
			seen := map[string]struct{}{state.ID: {}}
			for _, section := range state.Sections {
				if _, dup := seen[section.ID]; dup {
					return false
				}
				seen[section.ID] = struct{}{}
				for _, row := range section.Rows {
					if _, dup := seen[row.ID]; dup {
						return false
					}
					seen[row.ID] = struct{}{}
					for _, field := range row.Fields {
						if _, dup := seen[field.ID]; dup {
							return false
						}
						seen[field.ID] = struct{}{}
						if _, dup := names[field.Name]; dup {
							return false
						}
						names[field.Name] = struct{}{}
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.Property("select fields always carry options, others never do", prop.ForAll(
		func(ops []int) bool {
			ids := CounterGenerator("p")
			reducer := NewReducer(ids)
			state := script(reducer, InitialConfig(ids), ops)
			for _, field := range state.Fields() {
				if field.Type == layout.FieldTypeSelect && len(field.Options) == 0 {
					return false
				}
				if field.Type != layout.FieldTypeSelect && field.Options != nil {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.Property("applying never mutates the input", prop.ForAll(
		func(ops []int, extra int) bool {
			ids := CounterGenerator("m")
			reducer := NewReducer(ids)
			state := script(reducer, InitialConfig(ids), ops)
			before := state.Clone()
			_ = script(reducer, state, []int{extra, extra + 1, extra + 2})
			return layoutEqual(before, state)
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func layoutEqual(a, b layout.FormConfig) bool {
	ea, err := layout.Encode(layout.FormatJSON, a)
	if err != nil {
		return false
	}
	eb, err := layout.Encode(layout.FormatJSON, b)
	if err != nil {
		return false
	}
	return string(ea) == string(eb)
}
