// Package errors provides error handling for langkit.
//
// This package re-exports github.com/cockroachdb/errors so that every error
// leaving an I/O boundary (corpus files, snapshot store, ARPA export, config)
// carries a stack trace and, where useful, a user-facing hint.
//
// Usage:
//
//	if err := reader.Rewind(); err != nil {
//	    return errors.Wrap(err, "failed to rewind corpus")
//	}
//
//	return errors.WithHint(err, "check the corpus path in am.toml")
//
// The counting core (trie, key, ngram) never returns errors: its operations
// are total over their inputs.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
	// CombineErrors keeps the first error and attaches the second as secondary.
	CombineErrors = crdb.CombineErrors
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors. Wrap them to add context while keeping errors.Is working.
var (
	// ErrNotFound indicates the requested run, file or entry does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates malformed input such as an unknown backend name
	ErrInvalidRequest = New("invalid request")

	// ErrEmptyModel indicates an operation that needs training data was given none
	ErrEmptyModel = New("empty model")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
