package resfile

import "fmt"

// InputNotFoundError indicates that no file matched the input pattern.
type InputNotFoundError struct {
	Pattern string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("no result files match %q", e.Pattern)
}

// ParseError reports a row that does not fit Schema.
type ParseError struct {
	File   string
	Line   int
	Column string // empty for field-count mismatches
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Column != "" {
		if e.Err != nil {
			return fmt.Sprintf("parse %s: column %s: %s: %v", loc, e.Column, e.Msg, e.Err)
		}
		return fmt.Sprintf("parse %s: column %s: %s", loc, e.Column, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
