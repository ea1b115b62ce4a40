package history

import (
	"time"

	"github.com/goliatone/go-formbuilder/pkg/layout"
)

// Submission is one recorded fill of a form.
type Submission struct {
	ID        string            `json:"id" yaml:"id" msgpack:"id"`
	Config    layout.FormConfig `json:"config" yaml:"config" msgpack:"config"`
	Values    layout.Values     `json:"values" yaml:"values" msgpack:"values"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt" msgpack:"createdAt"`
}

// Clone returns a deep copy of the submission.
func (s Submission) Clone() Submission {
	out := s
	out.Config = s.Config.Clone()
	out.Values = s.Values.Clone()
	return out
}

// Action is a change to the submission log.
type Action interface {
	historyAction()
}

// AddSubmission prepends a fully built submission.
type AddSubmission struct {
	Submission Submission
}

// UpdateValues replaces the values of one submission.
type UpdateValues struct {
	ID     string
	Values layout.Values
}

// UpdateLayout replaces the config snapshot of one submission.
type UpdateLayout struct {
	ID     string
	Config layout.FormConfig
}

// DeleteSubmission removes one submission.
type DeleteSubmission struct {
	ID string
}

// ClearAll drops every submission.
type ClearAll struct{}

func (AddSubmission) historyAction()    {}
func (UpdateValues) historyAction()     {}
func (UpdateLayout) historyAction()     {}
func (DeleteSubmission) historyAction() {}
func (ClearAll) historyAction()         {}

// Reduce applies action to the log, most recent first, without mutating
// list. Actions naming a missing id return list unchanged.
func Reduce(list []Submission, action Action) []Submission {
	switch a := action.(type) {
	case AddSubmission:
		out := make([]Submission, 0, len(list)+1)
		out = append(out, a.Submission.Clone())
		return append(out, list...)

	case UpdateValues:
		idx := indexOf(list, a.ID)
		if idx < 0 {
			return list
		}
		out := append([]Submission(nil), list...)
		out[idx].Values = a.Values.Clone()
		return out

	case UpdateLayout:
		idx := indexOf(list, a.ID)
		if idx < 0 {
			return list
		}
		out := append([]Submission(nil), list...)
		out[idx].Config = a.Config.Clone()
		return out

	case DeleteSubmission:
		idx := indexOf(list, a.ID)
		if idx < 0 {
			return list
		}
		out := make([]Submission, 0, len(list)-1)
		out = append(out, list[:idx]...)
		return append(out, list[idx+1:]...)

	case ClearAll:
		return []Submission{}

	default:
		return list
	}
}

func indexOf(list []Submission, id string) int {
	for i, submission := range list {
		if submission.ID == id {
			return i
		}
	}
	return -1
}
