// Package errors defines the filesystem error kinds surfaced by a run.
// Both kinds are fatal; the kind only records which phase produced the error.
package errors

import (
	"errors"
	"fmt"
)

var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ErrorKind represents the kind of error
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// ListFailed means a directory's children could not be enumerated.
	ListFailed
	// DeleteFailed means a file or directory entry could not be removed.
	DeleteFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ListFailed:
		return "list"
	case DeleteFailed:
		return "delete"
	default:
		return "unknown"
	}
}

// FileError wraps the native error of a failed filesystem operation.
type FileError struct {
	kind ErrorKind
	path string
	err  error
}

// NewFileError creates a new file error
func NewFileError(kind ErrorKind, path string, err error) *FileError {
	return &FileError{kind: kind, path: path, err: err}
}

// ListError wraps err as a listing failure of path.
func ListError(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewFileError(ListFailed, path, err)
}

// DeleteError wraps err as a deletion failure of path.
func DeleteError(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewFileError(DeleteFailed, path, err)
}

func (e *FileError) Error() string {
	var verb string
	switch e.kind {
	case ListFailed:
		verb = "cannot list"
	case DeleteFailed:
		verb = "cannot delete"
	default:
		verb = "failed on"
	}
	if e.err != nil {
		return fmt.Sprintf("%s %s: %v", verb, e.path, e.err)
	}
	return fmt.Sprintf("%s %s", verb, e.path)
}

func (e *FileError) Unwrap() error { return e.err }

// Kind returns the kind of error
func (e *FileError) Kind() ErrorKind { return e.kind }

// Path returns the path the failed operation was applied to.
func (e *FileError) Path() string { return e.path }

// IsListFailure checks if the error is a listing failure
func IsListFailure(err error) bool {
	var fe *FileError
	return errors.As(err, &fe) && fe.kind == ListFailed
}

// IsDeleteFailure checks if the error is a deletion failure
func IsDeleteFailure(err error) bool {
	var fe *FileError
	return errors.As(err, &fe) && fe.kind == DeleteFailed
}
