// Package parsererror defines the typed errors returned while loading snapshots and summaries.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError is a record that could not be decoded.
// Index is the zero-based position of the record in its file, or -1 for a whole-file failure.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Index  int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: record %d: failed to parse %s='%s': %v",
			e.Parser, e.Index, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is a document that decoded but lacks expected content
type ValidationError struct {
	FilePath string
	Reason   string
	Missing  []string
}

func (e *ValidationError) Error() string {
	target := e.FilePath
	if target == "" {
		target = "daily summary"
	}
	if len(e.Missing) > 0 {
		return fmt.Sprintf("validation failed for %s: %s: %s", target, e.Reason, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("validation failed for %s: %s", target, e.Reason)
}

// InvalidFormatError is a file whose content or extension does not match any supported format
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
