package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed indicates the configuration has invalid values.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes one invalid setting.
type FieldError struct {
	// Path is the dotted setting path, e.g. "log.level".
	Path string
	// Rule is the validation rule that failed.
	Rule string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: failed %q (value: %v)", f.Path, f.Rule, f.Value)
	}
	return fmt.Sprintf("%v: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// newValidationError converts validator output.
func newValidationError(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make([]FieldError, len(errs))}
	for i, fe := range errs {
		// Namespace is "Config.log.level"; drop the root struct name.
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out.Fields[i] = FieldError{Path: path, Rule: fe.Tag(), Value: fe.Value()}
	}
	return out
}
