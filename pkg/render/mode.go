package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// Mode selects how a preview behaves. The set is closed: Create, Edit, View
// and LayoutEdit.
type Mode interface {
	modeName() string
}

// Create renders an empty, editable form whose submission is recorded as a
// new history entry.
type Create struct{}

// Edit pre-fills the values of a stored submission and replaces only those
// values on submit.
type Edit struct {
	SubmissionID string
}

// View pre-fills a stored submission read-only; submitting just closes.
type View struct {
	SubmissionID string
}

// LayoutEdit shows ExistingValues locked while the structure is edited in the
// builder. Submitting writes the current config into the submission.
type LayoutEdit struct {
	SubmissionID   string
	ExistingValues layout.Values
}

const (
	ModeCreate     = "create"
	ModeEdit       = "edit"
	ModeView       = "view"
	ModeLayoutEdit = "layout-edit"
)

func (Create) modeName() string     { return ModeCreate }
func (Edit) modeName() string       { return ModeEdit }
func (View) modeName() string       { return ModeView }
func (LayoutEdit) modeName() string { return ModeLayoutEdit }

// ModeName returns the wire name of mode, or "" for nil.
func ModeName(mode Mode) string {
	if mode == nil {
		return ""
	}
	return mode.modeName()
}

// SubmissionID returns the submission targeted by mode, "" for Create.
func SubmissionID(mode Mode) string {
	switch m := mode.(type) {
	case Edit:
		return m.SubmissionID
	case View:
		return m.SubmissionID
	case LayoutEdit:
		return m.SubmissionID
	default:
		return ""
	}
}

// ParseMode builds a mode from its wire name. Edit, View and LayoutEdit
// require a submission id.
func ParseMode(name, submissionID string) (Mode, error) {
	id := strings.TrimSpace(submissionID)
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModeCreate:
		return Create{}, nil
	case ModeEdit:
		if id == "" {
			return nil, fmt.Errorf("%w: %s requires a submission id", ErrUnknownMode, ModeEdit)
		}
		return Edit{SubmissionID: id}, nil
	case ModeView:
		if id == "" {
			return nil, fmt.Errorf("%w: %s requires a submission id", ErrUnknownMode, ModeView)
		}
		return View{SubmissionID: id}, nil
	case ModeLayoutEdit, "layout-edit-builder":
		if id == "" {
			return nil, fmt.Errorf("%w: %s requires a submission id", ErrUnknownMode, ModeLayoutEdit)
		}
		return LayoutEdit{SubmissionID: id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// ModeForViewType maps the config's default view type onto a mode.
func ModeForViewType(viewType layout.ViewType, submissionID string) (Mode, error) {
	return ParseMode(string(viewType), submissionID)
}

// ReadOnly reports whether inputs are locked in mode.
func ReadOnly(mode Mode) bool {
	switch mode.(type) {
	case View, LayoutEdit:
		return true
	default:
		return false
	}
}

// EnforcesRequired reports whether required fields block a submit.
func EnforcesRequired(mode Mode) bool {
	switch mode.(type) {
	case Create, Edit:
		return true
	default:
		return false
	}
}

// Describe returns the banner shown above a preview.
func Describe(mode Mode) string {
	switch mode.(type) {
	case Create:
		return "Mode: Create - Submit new form"
	case Edit:
		return "Mode: Edit - Modify existing form values"
	case View:
		return "Mode: View - Read only"
	case LayoutEdit:
		return "Mode: Edit Layout - Only form structure can be changed; values are visible but locked"
	default:
		return ""
	}
}

// SubmitLabel returns the submit button caption, "" when mode has none.
func SubmitLabel(mode Mode) string {
	switch mode.(type) {
	case Create:
		return "Submit"
	case Edit:
		return "Save"
	case LayoutEdit:
		return "Save Edited Layout"
	default:
		return ""
	}
}
