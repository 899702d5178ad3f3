package service

import (
	"errors"
	"fmt"
)

// Error taxonomy of the operation surface. Every remote-call failure is
// caught at the operation boundary and mapped onto one of these, so nothing
// upstream-shaped leaks into the render layer.
var (
	// ErrNotFound: the addressed path does not exist. User-visible, not
	// fatal.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a create or rename target already exists, or a
	// concurrent save won the revision race. Rejected before any remote
	// mutation.
	ErrConflict = errors.New("conflict")
	// ErrInvalidPath: the path fails slug syntax. Rejected up front, never
	// partially applied.
	ErrInvalidPath = errors.New("invalid path")
	// ErrUpstream: the backing store is unreachable or rate-limited. The
	// operation is aborted with prior state untouched; retrying is left to
	// the user.
	ErrUpstream = errors.New("backing store unavailable")
)

// OpError reports which step of a multi-step operation failed, with enough
// detail to retry by hand. No automatic rollback is attempted.
type OpError struct {
	Op   string // operation, e.g. "rename-folder"
	Step string // failed step, e.g. "copy-destination"
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: step %s failed for %s: %v", e.Op, e.Step, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op, step, path string, err error) error {
	return &OpError{Op: op, Step: step, Path: path, Err: err}
}
