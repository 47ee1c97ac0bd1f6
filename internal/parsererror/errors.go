// Package parsererror defines the error taxonomy of the spending pipeline.
//
// ParseError is row scoped: the offending row is dropped and the batch
// continues. FetchError and InvalidFormatError are source scoped and are
// surfaced to the caller, which decides whether a partial table is acceptable.
package parsererror

import (
	"fmt"
	"strings"
)

// ParseError represents a malformed field in a single raw row.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FetchError represents a source table that could not be retrieved or decoded.
type FetchError struct {
	Source string
	Sheet  string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %v", e.Source, e.Sheet, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents a fetched table whose column layout does not
// match what the source's adapter expects.
type InvalidFormatError struct {
	Source  string
	Sheet   string
	Missing []string
	Msg     string
}

func (e *InvalidFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid format in %s/%s: %s (missing columns: %s)",
			e.Source, e.Sheet, e.Msg, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid format in %s/%s: %s", e.Source, e.Sheet, e.Msg)
}

// CategorizationError represents a failed tag suggestion request.
type CategorizationError struct {
	Merchant string
	Strategy string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %s using %s: %v",
		e.Merchant, e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
