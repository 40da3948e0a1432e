// Package errors defines the typed failures surfaced by the pipeline.
package errors

import (
	"errors"
	"fmt"
)

// PipelineError is a structured pipeline failure with a stable code.
type PipelineError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *PipelineError) Unwrap() error { return e.Err }

// Is matches two pipeline errors by code, so sentinel comparisons like
// errors.Is(err, ErrNoInput) work regardless of wrapping detail.
func (e *PipelineError) Is(target error) bool {
	var pe *PipelineError
	if errors.As(target, &pe) {
		return e.Code == pe.Code
	}
	return false
}

// New creates a PipelineError with the given code and message.
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Wrap creates a PipelineError wrapping an underlying cause.
func Wrap(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// Error codes for the failure kinds the pipeline can report.
const (
	CodeDirectorySetup = "DIRECTORY_SETUP"
	CodeFileRead       = "FILE_READ"
	CodeNoInput        = "NO_INPUT"
	CodeDateProcessing = "DATE_PROCESSING"
	CodeExport         = "EXPORT"
)

// Sentinel errors for errors.Is checks.
var (
	ErrDirectorySetup = New(CodeDirectorySetup, "cannot create or access directory")
	ErrFileRead       = New(CodeFileRead, "spreadsheet unreadable or missing required worksheet")
	ErrNoInput        = New(CodeNoInput, "no readable input files found")
	ErrDateProcessing = New(CodeDateProcessing, "date reconciliation failed")
	ErrExport         = New(CodeExport, "one or more output formats failed")
)

// DirectorySetupError wraps a directory creation/access failure.
func DirectorySetupError(dir string, err error) *PipelineError {
	return Wrap(CodeDirectorySetup, fmt.Sprintf("cannot create or access %s", dir), err)
}

// FileReadError wraps a single-spreadsheet read failure.
func FileReadError(file string, err error) *PipelineError {
	return Wrap(CodeFileRead, fmt.Sprintf("cannot read %s", file), err)
}

// NoInputError reports that a source directory yielded no usable files.
func NoInputError(dir string) *PipelineError {
	return New(CodeNoInput, fmt.Sprintf("no readable spreadsheet files in %s", dir))
}

// DateProcessingError wraps an unexpected date reconciliation failure.
func DateProcessingError(msg string, err error) *PipelineError {
	return Wrap(CodeDateProcessing, msg, err)
}

// ExportError wraps output-format failures; err is typically an
// errors.Join of the individual format errors.
func ExportError(err error) *PipelineError {
	return Wrap(CodeExport, "one or more output formats failed", err)
}
