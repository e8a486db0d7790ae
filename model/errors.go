package model

import "fmt"

// ParseError reports a malformed or unsupported container. It aborts
// processing of the offending document only; batch callers continue
// with the remaining documents.
type ParseError struct {
	Path   string // container path or entry that failed, if known
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parse"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// SerializeError reports that a required native structure could not be
// rebuilt on save. The original input is left untouched.
type SerializeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SerializeError) Error() string {
	msg := "serialize"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *SerializeError) Unwrap() error { return e.Err }
