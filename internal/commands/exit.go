package commands

import "errors"

// ExitError marks an error that was already shown to the user and only needs
// to end the process with Code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Reported wraps err as an already printed failure with status 1.
func Reported(err error) error {
	return &ExitError{Code: 1, Err: err}
}

// ExitCode maps an error returned by a command to a process status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// IsReported reports whether err has already been printed.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
