package flow

import (
	"placementwiz/internal/posting"
	"placementwiz/internal/wizard"
)

// Section is one step of a posting wizard: a named group of form fields.
type Section struct {
	// Name identifies the section and doubles as the wizard step name.
	Name string

	// Label and Icon are display metadata shown in the progress header.
	Label string
	Icon  string

	// Fields are the inputs collected on this step, in display order.
	Fields []posting.Field
}

// StepDefs converts sections into wizard step definitions.
//
// validateFor is called once per section to build that step's validate
// handler; pass nil to register no handlers.
func StepDefs(sections []Section, validateFor func(Section) wizard.ValidateFunc) []wizard.StepDef {
	defs := make([]wizard.StepDef, len(sections))
	for i, s := range sections {
		defs[i] = wizard.StepDef{
			Name:  s.Name,
			Label: s.Label,
			Icon:  s.Icon,
		}
		if validateFor != nil {
			defs[i].Validate = validateFor(s)
		}
	}
	return defs
}

func cloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = s
		out[i].Fields = append([]posting.Field(nil), s.Fields...)
	}
	return out
}
