package domain

import "errors"

// exitStatusError carries a literal process exit status through an error chain.
type exitStatusError struct {
	err  error
	code int
}

func (e *exitStatusError) Error() string { return e.err.Error() }

func (e *exitStatusError) Unwrap() error { return e.err }

// WithExitCode attaches a literal exit status to err. The status survives
// further wrapping and can be recovered with ExitCode.
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitStatusError{err: err, code: code}
}

// ExitCode maps an error to the workflow's final process exit status: 0 for
// nil, the carried status when one was attached (test failures forward the
// runner's literal code), and 1 for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ese *exitStatusError
	if errors.As(err, &ese) && ese.code != 0 {
		return ese.code
	}
	return 1
}
