package store

import "fmt"

// ValidationError reports a rejected operation: an empty description or a
// position outside [1, len]. The task list and the backing file are left
// untouched.
type ValidationError struct {
	Op     string // "add", "done" or "delete"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ParseError reports a backing file whose contents are not a valid task list.
// It is fatal for the invocation; nothing attempts to repair the file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse tasks file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
