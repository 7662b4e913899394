package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ProcessingError is a structured error with a stable code, used so the
// batch runner can decide between skip-index and drop-row policies and so
// log output carries a machine-readable kind.
type ProcessingError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Error codes for the processing pipeline.
const (
	CodeFileNotFound   = "FILE_NOT_FOUND"
	CodeUnknownDialect = "UNKNOWN_DIALECT"
	CodeEmptySource    = "EMPTY_SOURCE"
	CodeParseError     = "PARSE_ERROR"
	CodeExportFailed   = "EXPORT_FAILED"
	CodeInvalidConfig  = "INVALID_CONFIG"
)

// New creates a ProcessingError with the given code and message.
func New(code, message string) *ProcessingError {
	return &ProcessingError{Code: code, Message: message}
}

// Wrap creates a ProcessingError wrapping an underlying cause.
func Wrap(code, message string, err error) *ProcessingError {
	return &ProcessingError{Code: code, Message: message, Err: err}
}

// FileNotFound reports a missing source file. The run skips the index
// and continues.
func FileNotFound(path string, err error) *ProcessingError {
	return Wrap(CodeFileNotFound, fmt.Sprintf("source file %s not found", path), err)
}

// UnknownDialect reports a source header that matches no known format.
func UnknownDialect(header []string) *ProcessingError {
	return New(CodeUnknownDialect, fmt.Sprintf("unrecognized source header: %s", strings.Join(header, ",")))
}

// EmptySource reports a source with no data rows.
func EmptySource(path string) *ProcessingError {
	return New(CodeEmptySource, fmt.Sprintf("source file %s has no rows", path))
}

// ParseError reports an unusable row. The row is dropped; the index
// continues.
func ParseError(line int, reason string) *ProcessingError {
	return New(CodeParseError, fmt.Sprintf("row %d: %s", line, reason))
}

// ExportFailed reports a failure writing normalized output.
func ExportFailed(path string, err error) *ProcessingError {
	return Wrap(CodeExportFailed, fmt.Sprintf("failed to write %s", path), err)
}

// InvalidConfig reports a configuration problem. This is fatal to the run.
func InvalidConfig(message string, err error) *ProcessingError {
	return Wrap(CodeInvalidConfig, message, err)
}

// Code extracts the processing error code from err, or "" when err is not
// a ProcessingError.
func Code(err error) string {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// HasCode reports whether err carries the given processing error code.
func HasCode(err error, code string) bool {
	return Code(err) == code
}
