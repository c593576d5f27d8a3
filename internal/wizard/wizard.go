// Package wizard tracks progress through a fixed, ordered sequence of form steps.
//
// A [Wizard] owns the step order and each step's [Status]. It knows nothing
// about form field contents: forward navigation is gated on a caller-supplied
// [ValidateFunc], and backward navigation resets all progress at and after the
// step being left so downstream steps are re-validated from scratch.
//
// Invariants held after every operation:
//   - exactly one step is [StatusActive];
//   - the completed steps are exactly those before the active step.
//
// Key types:
//   - [Wizard] - the stateful controller owned by one hosting form
//   - [StepDef] - construction input: name, display metadata, validate handler
//   - [Step] - read-only snapshot of a step and its status
//
// [Reduce] exposes the same transitions as a pure function over a status slice.
//
// A Wizard is not safe for concurrent use; it belongs to a single form.
package wizard

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned by [New] when the step definitions
// cannot form a wizard (no steps, or empty or duplicate names).
var ErrInvalidConfiguration = errors.New("invalid wizard configuration")

// StepDef describes one step at construction time.
type StepDef struct {
	// Name uniquely identifies the step.
	Name string

	// Label and Icon are display metadata. They are passed through untouched.
	Label string
	Icon  string

	// Validate gates [Wizard.Next] while this step is active. Optional.
	Validate ValidateFunc
}

// Step is a snapshot of one step and its current status.
type Step struct {
	Name   string
	Label  string
	Icon   string
	Status Status
}

// Wizard is the step controller for a single multi-step form.
//
// Create with [New]. The first step starts active and all others unvisited.
type Wizard struct {
	steps      []Step
	validators []ValidateFunc
}

// New creates a [Wizard] from an ordered list of step definitions.
//
// Returns [ErrInvalidConfiguration] when defs is empty or when a step name is
// empty or repeated.
func New(defs []StepDef) (*Wizard, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: at least one step is required", ErrInvalidConfiguration)
	}

	seen := make(map[string]bool, len(defs))
	w := &Wizard{
		steps:      make([]Step, len(defs)),
		validators: make([]ValidateFunc, len(defs)),
	}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: step %d has no name", ErrInvalidConfiguration, i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: duplicate step name %q", ErrInvalidConfiguration, d.Name)
		}
		seen[d.Name] = true

		w.steps[i] = Step{Name: d.Name, Label: d.Label, Icon: d.Icon}
		w.validators[i] = d.Validate
	}
	w.steps[0].Status = StatusActive

	return w, nil
}

// Advance moves to the next step when validate returns true.
//
// A false result leaves the wizard unchanged; surfacing the reason to the
// user is the caller's job. On the final step a passing validation is also a
// no-op, since finishing goes through the caller's submit path.
//
// Returns true if the active step moved.
func (w *Wizard) Advance(validate ValidateFunc) bool {
	return w.apply(ActionAdvance, validate)
}

// Next is [Wizard.Advance] using the Validate handler registered for the
// active step at construction.
func (w *Wizard) Next() bool {
	return w.Advance(w.validators[w.ActiveIndex()])
}

// Retreat moves back one step. The previous step becomes active and the
// step being left, plus everything after it, becomes unvisited.
//
// Returns false, changing nothing, on the first step.
func (w *Wizard) Retreat() bool {
	return w.apply(ActionRetreat, nil)
}

func (w *Wizard) apply(action Action, validate ValidateFunc) bool {
	before := w.ActiveIndex()

	statuses := make([]Status, len(w.steps))
	for i, s := range w.steps {
		statuses[i] = s.Status
	}
	for i, s := range Reduce(statuses, action, validate) {
		w.steps[i].Status = s
	}

	return w.ActiveIndex() != before
}

// IsFirstStep reports whether the first step is active.
func (w *Wizard) IsFirstStep() bool {
	return w.ActiveIndex() == 0
}

// IsFinalStep reports whether the last step is active.
func (w *Wizard) IsFinalStep() bool {
	return w.ActiveIndex() == len(w.steps)-1
}

// ActiveIndex returns the index of the active step.
func (w *Wizard) ActiveIndex() int {
	for i, s := range w.steps {
		if s.Status == StatusActive {
			return i
		}
	}
	return -1
}

// ActiveStep returns a snapshot of the active step.
func (w *Wizard) ActiveStep() Step {
	return w.steps[w.ActiveIndex()]
}

// Len returns the number of steps.
func (w *Wizard) Len() int {
	return len(w.steps)
}

// StatusAt returns the status of the step at index i.
// It panics if i is out of range.
func (w *Wizard) StatusAt(i int) Status {
	return w.steps[i].Status
}

// Steps returns a copy of all steps in order.
func (w *Wizard) Steps() []Step {
	out := make([]Step, len(w.steps))
	copy(out, w.steps)
	return out
}
