// Package errorsx defines the sentinel error taxonomy shared by every
// service and connector in the pipeline and a small wrapping helper for
// attaching context without losing the underlying sentinel.
package errorsx

import "github.com/yanun0323/errors"

var (
	// ErrNotFound is returned by a Service.GetData lookup that has no
	// entry for the requested key.
	ErrNotFound = errors.New("not found")

	// ErrUnknownProduct is returned when an input line references a
	// CUSIP absent from the static product table.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrMalformedInput is returned when a connector cannot parse an
	// input line into its expected fields.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvariantViolation is returned when a caller breaks a data
	// model invariant, e.g. querying best bid/offer on an empty side.
	ErrInvariantViolation = errors.New("invariant violation")
)

type wrapped struct {
	err error
	msg string
}

const sep = ", err: "

// Wrap attaches msg as context ahead of err, preserving err for errors.Is
// and errors.As via Unwrap. Wrap(nil, msg) returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if len(msg) == 0 {
		return err
	}
	return &wrapped{err: err, msg: msg}
}

func (w *wrapped) Error() string {
	if w.err == nil {
		return w.msg
	}
	return w.msg + sep + w.err.Error()
}

func (w *wrapped) Unwrap() error {
	return w.err
}
