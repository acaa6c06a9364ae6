package entry

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidSubmission is the parent of every form validation failure.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrWriteFailed means the row was not appended; the user must resubmit.
	ErrWriteFailed = errors.New("write failed")
)

// ValidationError lists every problem found on one submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidSubmission.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSubmission }

type problems []string

func (p *problems) when(cond bool, msg string) {
	if cond {
		*p = append(*p, msg)
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}
