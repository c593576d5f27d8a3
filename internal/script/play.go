package script

import (
	"context"
	"errors"
	"fmt"

	"placementwiz/internal/posting"
	"placementwiz/internal/session"
)

// ErrNoSubmit is returned when a script ends before submitting.
var ErrNoSubmit = errors.New("script ended without a submit action")

// Observer is told about every action after it has been applied.
//
// moved reports whether a next or back action changed the active section;
// after a blocked next the field errors are available from the session.
type Observer func(a Action, sess *session.Session, moved bool)

// Play applies actions to sess until the first submit.
//
// A line the parser rejected, a set for a field outside the active section,
// an unknown action and a failed submit stop the script with an error that
// names the line. Blocked
// next and back actions are reported to the observer and the script carries
// on, so a script may fix a field and try again.
//
// Remaining actions are drained in the background when Play returns early so
// the parser goroutine can finish.
func Play(ctx context.Context, sess *session.Session, actions <-chan Action, observer Observer) (*posting.Posting, error) {
	defer func() {
		go func() {
			for range actions {
			}
		}()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case a, ok := <-actions:
			if !ok {
				return nil, ErrNoSubmit
			}
			if a.Err != nil {
				return nil, fmt.Errorf("script line %d: %w", a.Line, a.Err)
			}

			moved := false
			switch a.Type {
			case ActionSet:
				if err := sess.Set(a.Field, a.Value); err != nil {
					return nil, fmt.Errorf("script line %d: %w", a.Line, err)
				}
			case ActionNext:
				moved = sess.Next()
			case ActionBack:
				moved = sess.Back()
			case ActionSubmit:
				p, err := sess.Submit(ctx)
				if err != nil {
					return nil, fmt.Errorf("script line %d: %w", a.Line, err)
				}
				if observer != nil {
					observer(a, sess, false)
				}
				return p, nil
			default:
				return nil, fmt.Errorf("script line %d: %w: %q", a.Line, ErrUnknownAction, a.Type)
			}

			if observer != nil {
				observer(a, sess, moved)
			}
		}
	}
}
