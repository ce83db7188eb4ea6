package validator

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire format for date-only fields (check-in dates,
// miqaat start/end dates, registration dates).
const DateLayout = "2006-01-02"

// datetimeLayouts are accepted formats for timestamp fields, tried in order.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	DateLayout,
}

// Errors collects field-level validation failures keyed by field name.
// It serializes to the `errors` object of a 422 response.
type Errors map[string][]string

// New returns an empty error bag.
func New() Errors {
	return Errors{}
}

// Add records a failure message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether at least one failure has been recorded.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Require records a failure if value is empty.
func (e Errors) Require(field, value string) {
	if value == "" {
		e.Add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

// MaxLen records a failure if value exceeds max characters. Length is
// counted in runes, so multibyte names are not penalized.
func (e Errors) MaxLen(field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		e.Add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, max))
	}
}

// InList records a failure if value is not one of allowed.
func (e Errors) InList(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
}

// Date parses a date-only value, recording a failure on bad input.
// The zero time is returned when parsing fails.
func (e Errors) Date(field, value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		e.Add(field, fmt.Sprintf("The %s is not a valid date.", field))
	}
	return t
}

// Datetime parses a timestamp value, recording a failure on bad input.
func (e Errors) Datetime(field, value string) time.Time {
	t, err := ParseDatetime(value)
	if err != nil {
		e.Add(field, fmt.Sprintf("The %s is not a valid date.", field))
	}
	return t
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDatetime parses a timestamp in any of the accepted layouts.
func ParseDatetime(value string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime format: %q", value)
}
