package cryptoerr

import (
	"errors"

	"go.uber.org/multierr"
)

// Queue collects backend diagnostics for one cipher or signature instance.
// It is not safe for concurrent use, matching the instances that own it.
type Queue struct {
	pending []error
}

// Push appends a diagnostic. Nil errors are ignored.
func (q *Queue) Push(err error) {
	if err == nil {
		return
	}

	q.pending = append(q.pending, err)
}

// Len returns the number of pending diagnostics.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain empties the queue and returns the pending diagnostics as one CryptoOperationError.
// It returns nil when nothing is pending.
func (q *Queue) Drain(op string) error {
	if len(q.pending) == 0 {
		return nil
	}

	err := multierr.Combine(q.pending...)

	clear(q.pending)
	q.pending = q.pending[:0]

	return &CryptoOperationError{Op: op, Err: err}
}

// Fail is Drain for a backend that is known to have failed: an empty queue yields ErrUnspecified.
func (q *Queue) Fail(op string) error {
	if len(q.pending) == 0 {
		q.Push(ErrUnspecified)
	}

	return q.Drain(op)
}

// Diagnostics returns the individual errors aggregated in err, in queue order.
func Diagnostics(err error) []error {
	var opErr *CryptoOperationError
	if errors.As(err, &opErr) {
		return multierr.Errors(opErr.Err)
	}

	return multierr.Errors(err)
}
