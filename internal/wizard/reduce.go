package wizard

// Action is a navigation request applied by [Reduce].
type Action int

const (
	// ActionAdvance moves forward one step when validation passes.
	ActionAdvance Action = iota

	// ActionRetreat moves back one step and resets everything after it.
	ActionRetreat
)

// ValidateFunc gates forward navigation. It returns false to keep the
// wizard on the current step. A nil ValidateFunc always passes.
type ValidateFunc func() bool

// Reduce applies action to statuses and returns the resulting statuses.
//
// The input slice is never modified. When the action does not change the
// state (failed validation, advance on the last step, retreat on the first)
// the returned slice holds the same values as the input.
//
// validate is only consulted for [ActionAdvance].
func Reduce(statuses []Status, action Action, validate ValidateFunc) []Status {
	next := make([]Status, len(statuses))
	copy(next, statuses)

	active := activeIndex(next)
	if active < 0 {
		return next
	}

	switch action {
	case ActionAdvance:
		if validate != nil && !validate() {
			return next
		}
		if active == len(next)-1 {
			return next
		}
		next[active] = StatusCompleted
		next[active+1] = StatusActive

	case ActionRetreat:
		if active == 0 {
			return next
		}
		next[active-1] = StatusActive
		for i := active; i < len(next); i++ {
			next[i] = StatusUnvisited
		}
	}

	return next
}

func activeIndex(statuses []Status) int {
	for i, s := range statuses {
		if s == StatusActive {
			return i
		}
	}
	return -1
}
