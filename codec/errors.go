// Package codec provides the little-endian byte cursor and writer shared by
// the record, drawing and container layers, together with the error
// taxonomy every layer reports through.
package codec

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to classify a failure.
var (
	// ErrTruncatedInput means fewer bytes were available than a fixed-width
	// field required.
	ErrTruncatedInput = errors.New("truncated input")

	// ErrMalformedContainer means a compound file or zip package is
	// structurally inconsistent, or a required entry is missing.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrUnsupportedFeature marks a recognized but unimplemented variant.
	ErrUnsupportedFeature = errors.New("unsupported feature")

	// ErrEncryption covers bad credentials and unsupported ciphers.
	ErrEncryption = errors.New("encryption error")

	// ErrCorruptRecord means a record body disagreed with its frame.
	ErrCorruptRecord = errors.New("corrupt record")
)

// Error is a failure of a given kind with a human readable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Kind == nil {
		return e.Message
	}
	return e.Kind.Error() + ": " + e.Message
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf creates a new Error of the given kind.
func Errorf(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
