package wizard

import "fmt"

// Status is the progress state of a single wizard step.
type Status int

// Step statuses. The zero value is StatusUnvisited.
const (
	// StatusUnvisited marks a step not yet reached, or reset by a retreat.
	StatusUnvisited Status = iota

	// StatusActive marks the single step currently presented to the user.
	StatusActive

	// StatusCompleted marks a step passed forward since it was last reset.
	StatusCompleted
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnvisited:
		return "unvisited"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
