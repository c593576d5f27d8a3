package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	U, A, C := StatusUnvisited, StatusActive, StatusCompleted

	tests := []struct {
		name     string
		in       []Status
		action   Action
		validate ValidateFunc
		want     []Status
	}{
		{
			name:     "advance from first",
			in:       []Status{A, U, U},
			action:   ActionAdvance,
			validate: pass,
			want:     []Status{C, A, U},
		},
		{
			name:     "advance rejected",
			in:       []Status{C, A, U},
			action:   ActionAdvance,
			validate: fail,
			want:     []Status{C, A, U},
		},
		{
			name:     "advance on last",
			in:       []Status{C, C, A},
			action:   ActionAdvance,
			validate: pass,
			want:     []Status{C, C, A},
		},
		{
			name:   "retreat on first",
			in:     []Status{A, U, U},
			action: ActionRetreat,
			want:   []Status{A, U, U},
		},
		{
			name:   "retreat from last",
			in:     []Status{C, C, A},
			action: ActionRetreat,
			want:   []Status{C, A, U},
		},
		{
			name:   "retreat ignores validate",
			in:     []Status{C, A},
			action: ActionRetreat,
			validate: func() bool {
				t.Fatal("validate must not be called on retreat")
				return false
			},
			want: []Status{A, U},
		},
		{
			name:     "no active step is left alone",
			in:       []Status{U, U},
			action:   ActionAdvance,
			validate: pass,
			want:     []Status{U, U},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]Status(nil), tt.in...)
			got := Reduce(in, tt.action, tt.validate)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, in, "input must not be modified")
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "unvisited", StatusUnvisited.String())
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "completed", StatusCompleted.String())
	assert.Equal(t, "status(7)", Status(7).String())
}
