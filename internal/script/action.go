// Package script replays JSON-lines answer scripts against a posting session.
//
// A script fills in a posting without the interactive wizard, which is how
// placement cells bulk-load postings and how the wizard flows are tested end
// to end. Each line is one action:
//
//	{"action":"set","field":"role","value":"SDE"}
//	{"action":"next"}
//	{"action":"back"}
//	{"action":"submit"}
//
// Key types:
//   - [Action]: One parsed script line
//   - [Parser]: Streams actions from a reader
//   - [Play]: Drives a [session.Session] with a stream of actions
package script

import "fmt"

// ActionType names what a script line asks the session to do.
type ActionType string

// Supported action types.
const (
	ActionSet    ActionType = "set"
	ActionNext   ActionType = "next"
	ActionBack   ActionType = "back"
	ActionSubmit ActionType = "submit"
)

// IsValid reports whether t is a supported action type.
func (t ActionType) IsValid() bool {
	switch t {
	case ActionSet, ActionNext, ActionBack, ActionSubmit:
		return true
	}
	return false
}

// Action is a single script line.
//
// Field and Value are only used by [ActionSet]. Line is the 1-based line
// number in the script and is filled in by the parser. Err is set by the
// parser for a line it could not read; such an action carries no Type.
type Action struct {
	Type  ActionType `json:"action"`
	Field string     `json:"field,omitempty"`
	Value string     `json:"value,omitempty"`
	Line  int        `json:"-"`
	Err   error      `json:"-"`
}

// String renders the action for progress output.
func (a Action) String() string {
	if a.Type == ActionSet {
		return fmt.Sprintf("set %s=%q", a.Field, a.Value)
	}
	return string(a.Type)
}
