// Package errors provides centralized error definitions and error handling
// utilities for the evaluation pipeline. It defines the validation error
// class that aborts a run, metadata errors for submission meta.yaml
// problems, and classification helpers used by the top-level CLI handler.
//
// # Error Types
//
//   - ValidationError: invalid pipeline input (bad dataset root, bad
//     submission path, uncreatable output directory). Exactly one layer of
//     the program catches these: the command handler, which reports a single
//     diagnostic line and exits non-zero.
//   - MetadataError: missing or malformed submission metadata (meta.yaml
//     absent, required parameter keys missing).
//   - NotFoundError: a required gold or submission artifact is absent.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewValidationError("dataset not found").WithPath(root)
//	err := errors.NewMetadataError("meta.yaml", "parameters.semantic.pooling")
//
// Checking errors:
//
//	if errors.IsValidation(err) { ... }
//
//	var metaErr *errors.MetadataError
//	if errors.As(err, &metaErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the evaluation pipeline.
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrMetadataMissing indicates that the submission metadata record is absent.
	ErrMetadataMissing = New("submission metadata missing")
	// ErrArtifactMissing indicates that a gold or submission artifact is absent.
	ErrArtifactMissing = New("artifact missing")
)

// ValidationError represents invalid pipeline input. It is the error class
// the driver maps to a one-line diagnostic and a non-zero exit code.
//
// Example:
//
//	err := errors.NewValidationError("dataset not found").WithPath("/data/zr2021")
type ValidationError struct {
	message string
	cause   error

	// Path is the offending filesystem location, when there is one.
	Path string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

// WithPath adds the offending path to the error context.
func (e *ValidationError) WithPath(path string) *ValidationError {
	e.Path = path
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.message)
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Is reports whether this error matches the target. Every ValidationError
// matches ErrInvalidInput, so callers can test the class without naming the
// concrete type.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// MetadataError represents a missing or malformed submission metadata record.
//
// Example:
//
//	err := errors.NewMetadataError("meta.yaml", "parameters.semantic.metric")
type MetadataError struct {
	cause error

	// File is the metadata file involved, relative to the submission root.
	File string
	// Key is the missing or malformed key, in dotted notation.
	Key string
}

// NewMetadataError creates a new MetadataError for a missing key. Key may be
// empty when the whole record is missing or unparseable.
func NewMetadataError(file, key string) *MetadataError {
	return &MetadataError{File: file, Key: key}
}

// WithCause adds a cause to the error.
func (e *MetadataError) WithCause(cause error) *MetadataError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *MetadataError) Error() string {
	switch {
	case e.Key != "" && e.cause != nil:
		return fmt.Sprintf("metadata error [%s]: key %q: %v", e.File, e.Key, e.cause)
	case e.Key != "":
		return fmt.Sprintf("metadata error [%s]: missing required key %q", e.File, e.Key)
	case e.cause != nil:
		return fmt.Sprintf("metadata error [%s]: %v", e.File, e.cause)
	default:
		return fmt.Sprintf("metadata error [%s]", e.File)
	}
}

// Unwrap returns the underlying error.
func (e *MetadataError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *MetadataError) Is(target error) bool {
	if _, ok := target.(*MetadataError); ok {
		return true
	}
	if errors.Is(target, ErrMetadataMissing) {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// NotFoundError represents a required gold or submission artifact that could
// not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("gold file", "lexical/dev/gold.csv")
//	fmt.Println(err) // `gold file "lexical/dev/gold.csv" not found`
type NotFoundError struct {
	cause error

	// Kind names the kind of artifact (gold file, submission file, ...).
	Kind string
	// Path is the location that was expected to exist.
	Path string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind, path string) *NotFoundError {
	return &NotFoundError{Kind: kind, Path: path}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %q not found: %v", e.Kind, e.Path, e.cause)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Path)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if errors.Is(target, ErrArtifactMissing) {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsValidation returns true if the error is a pipeline input validation
// failure, the class that the CLI reports as a single ERROR line. Missing
// artifacts discovered by the driver's fail-fast checks count as validation
// failures too.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validation *ValidationError
	var notFound *NotFoundError
	return As(err, &validation) || As(err, &notFound)
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to read gold file")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to evaluate %s", track)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
