package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration data files.
var (
	// ErrIO is returned when a data file cannot be opened or read.
	ErrIO = errors.New("config file unreadable")

	// ErrParse is returned when a data file contains an entry that cannot be
	// interpreted.
	ErrParse = errors.New("config parse error")
)

// FileError describes a failure tied to a data file and, when known, a line.
type FileError struct {
	// Path is the file being read.
	Path string

	// Line is the 1-based line number, or 0 when the error is not tied to a line.
	Line int

	// Err is the underlying error. It wraps ErrIO or ErrParse.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// IOError wraps err as an ErrIO failure for path.
func IOError(path string, err error) *FileError {
	return &FileError{Path: path, Err: fmt.Errorf("%w: %v", ErrIO, err)}
}

// ParseError builds an ErrParse failure for path and line.
func ParseError(path string, line int, format string, args ...any) *FileError {
	return &FileError{Path: path, Line: line, Err: fmt.Errorf("%w: "+format, append([]any{ErrParse}, args...)...)}
}
