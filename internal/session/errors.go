package session

import (
	"errors"
	"fmt"
)

// ErrStaleReference matches any StaleReferenceError.
var ErrStaleReference = errors.New("stale navigation state")

// StaleReferenceError reports a state that can no longer be used, either
// because its dictionary was removed by a reload or because a serialized
// token could not be decoded.
type StaleReferenceError struct {
	Dictionary string
	Err        error
}

func (e *StaleReferenceError) Error() string {
	switch {
	case e.Err != nil && e.Dictionary != "":
		return fmt.Sprintf("dictionary %q: %v", e.Dictionary, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", ErrStaleReference, e.Err)
	default:
		return fmt.Sprintf("dictionary %q is no longer loaded", e.Dictionary)
	}
}

// Is lets errors.Is match ErrStaleReference.
func (e *StaleReferenceError) Is(target error) bool {
	return target == ErrStaleReference
}

func (e *StaleReferenceError) Unwrap() error {
	return e.Err
}
