package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// ErrMalformedEnvelope is returned when an action envelope cannot be decoded.
var ErrMalformedEnvelope = errors.New("builder: malformed action envelope")

// Envelope is the wire shape of an action, as posted by HTTP clients.
type Envelope struct {
	Type      string             `json:"type"`
	Label     *string            `json:"label,omitempty"`
	ViewType  layout.ViewType    `json:"viewType,omitempty"`
	Enabled   *bool              `json:"enabled,omitempty"`
	SectionID string             `json:"sectionId,omitempty"`
	RowID     string             `json:"rowId,omitempty"`
	FieldID   string             `json:"fieldId,omitempty"`
	FieldType layout.FieldType   `json:"fieldType,omitempty"`
	Patch     *FieldPatch        `json:"patch,omitempty"`
	Config    *layout.FormConfig `json:"config,omitempty"`
}

// DecodeAction parses a JSON envelope into an Action.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return env.Action()
}

// Action converts the envelope into its typed action.
func (e Envelope) Action() (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(e.Type)) {
	case KindSetLabel:
		if e.Label == nil {
			return nil, missing(e.Type, "label")
		}
		return SetLabel{Label: *e.Label}, nil
	case KindSetViewType:
		return SetViewType{ViewType: e.ViewType}, nil
	case KindSetSectionsEnabled:
		if e.Enabled == nil {
			return nil, missing(e.Type, "enabled")
		}
		return SetSectionsEnabled{Enabled: *e.Enabled}, nil
	case KindAddSection:
		return AddSection{}, nil
	case KindDeleteSection:
		return DeleteSection{SectionID: e.SectionID}, nil
	case KindToggleSectionCollapse:
		return ToggleSectionCollapse{SectionID: e.SectionID}, nil
	case KindUpdateSectionLabel:
		if e.Label == nil {
			return nil, missing(e.Type, "label")
		}
		return UpdateSectionLabel{SectionID: e.SectionID, Label: *e.Label}, nil
	case KindAddRow:
		return AddRow{SectionID: e.SectionID}, nil
	case KindDeleteRow:
		return DeleteRow{SectionID: e.SectionID, RowID: e.RowID}, nil
	case KindAddField:
		return AddField{SectionID: e.SectionID, RowID: e.RowID, FieldType: e.FieldType}, nil
	case KindDeleteField:
		return DeleteField{SectionID: e.SectionID, RowID: e.RowID, FieldID: e.FieldID}, nil
	case KindUpdateField:
		if e.Patch == nil {
			return nil, missing(e.Type, "patch")
		}
		return UpdateField{SectionID: e.SectionID, RowID: e.RowID, FieldID: e.FieldID, Patch: *e.Patch}, nil
	case KindLoadConfig:
		if e.Config == nil {
			return nil, missing(e.Type, "config")
		}
		return LoadConfig{Config: *e.Config}, nil
	case "":
		return nil, fmt.Errorf("%w: type is required", ErrMalformedEnvelope)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
	}
}

func missing(kind, member string) error {
	return fmt.Errorf("%w: %s requires %q", ErrMalformedEnvelope, kind, member)
}
