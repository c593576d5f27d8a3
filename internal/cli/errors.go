package cli

import (
	"errors"
	"fmt"
)

// ExitError carries a process exit code out of a cobra RunE function.
//
// Commands report the failure to the user themselves and then return
// NewExitError(code); [RunWithConfig] turns it into an [ExecuteResult] so
// tests can assert on the code without the process exiting.
type ExitError struct {
	// Code is the exit code to return to the shell.
	Code int
}

// Error returns "exit status N".
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
//
//	if err := app.Store.SetApproval(ctx, id, a); err != nil {
//	    return app.fail(err) // prints, then NewExitError(1)
//	}
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError extracts the code from an [ExitError] anywhere in err's chain.
// Returns (0, false) for nil and for other errors.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
