// Package dateutils splits the raw date fields of the sources into the
// canonical (month, day) pair.
package dateutils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bujichang/spending/internal/parsererror"
)

// Order is the field order of a delimited date string.
type Order int

const (
	// YearFirst dates look like 2022/08/05; the day is the last segment.
	YearFirst Order = iota
	// DayFirst dates look like 05/08/2022; the day is the first segment.
	DayFirst
)

func (o Order) String() string {
	if o == DayFirst {
		return "day-first"
	}
	return "year-first"
}

var (
	errTooFewSegments = errors.New("need at least 2 delimited segments")
	errBadMonth       = errors.New("expected a bare month or YYYY/MM")
)

// SplitDate returns the canonical month and the day of a delimited date.
// Accepted separators are '/', '-' and '.'. No calendar validation is
// performed beyond parsing the day as an integer.
func SplitDate(s string, order Order) (string, int, error) {
	segments := splitSegments(s)
	if len(segments) < 2 {
		return "", 0, &parsererror.ParseError{Parser: "dateutils", Field: "date", Value: s, Err: errTooFewSegments}
	}

	var dayPart string
	var monthParts []string
	switch order {
	case DayFirst:
		dayPart = segments[0]
		rest := segments[1:]
		monthParts = make([]string, 0, len(rest))
		for i := len(rest) - 1; i >= 0; i-- {
			monthParts = append(monthParts, rest[i])
		}
	default:
		dayPart = segments[len(segments)-1]
		monthParts = append([]string(nil), segments[:len(segments)-1]...)
	}

	day, err := strconv.Atoi(dayPart)
	if err != nil {
		return "", 0, &parsererror.ParseError{Parser: "dateutils", Field: "date", Value: s, Err: err}
	}

	last := len(monthParts) - 1
	monthParts[last] = padMonth(monthParts[last])
	return strings.Join(monthParts, "/"), day, nil
}

// PrefixYear prefixes a bare month ("8", "08") with year, yielding "2022/08".
// A month that already carries a year is normalized instead.
func PrefixYear(year, month string) (string, error) {
	segments := splitSegments(month)
	switch len(segments) {
	case 1:
		if _, err := strconv.Atoi(segments[0]); err != nil {
			return "", &parsererror.ParseError{Parser: "dateutils", Field: "month", Value: month, Err: err}
		}
		return fmt.Sprintf("%s/%s", strings.TrimSpace(year), padMonth(segments[0])), nil
	case 2:
		return fmt.Sprintf("%s/%s", segments[0], padMonth(segments[1])), nil
	default:
		return "", &parsererror.ParseError{Parser: "dateutils", Field: "month", Value: month, Err: errBadMonth}
	}
}

func splitSegments(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func padMonth(m string) string {
	if len(m) == 1 {
		return "0" + m
	}
	return m
}
