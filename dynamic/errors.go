package dynamic

import (
	"fmt"
	"sync"
)

// CastError is a decode failure. Its message is built on first use, not at
// the point of failure, which keeps the success path free of string
// building in deeply recursive decodes.
type CastError struct {
	once sync.Once
	make func() string
	text string
}

// Error returns the failure message, building and memoizing it on first
// call.
func (e *CastError) Error() string {
	e.once.Do(func() {
		if e.make != nil {
			e.text = e.make()
			e.make = nil
		}
	})
	return e.text
}

// castError creates a failure with an already-known message.
func castError(msg string) *CastError {
	return &CastError{text: msg}
}

// castErrorf creates a failure whose message formats lazily.
func castErrorf(format string, args ...any) *CastError {
	return &CastError{make: func() string {
		return fmt.Sprintf(format, args...)
	}}
}

// cannotCast is the generic shape-mismatch failure, naming both sides.
func cannotCast(v *Value, target fmt.Stringer) *CastError {
	return &CastError{make: func() string {
		return fmt.Sprintf("dynamic: cannot cast %s to %s", v.describe(), target.String())
	}}
}
