// Package validation implements the declarative field checking shared by
// every mutating endpoint. Callers declare fields with an ordered rule set;
// evaluation stops at the first failing rule of the first failing field, and
// only that single message is surfaced to the client.
package validation

import (
	"context"
	"strings"
	"time"
)

// Failure carries the single validation message surfaced for a request.
type Failure struct {
	Field   string
	Message string
}

// Rule checks one declared value. It returns a failure message, or "" when
// the value passes. A non-nil error means the rule itself could not run
// (e.g. a store lookup failed) and must not be reported as a validation
// failure.
type Rule interface {
	check(ctx context.Context, attr string, value any) (string, error)
}

// Field pairs a named value with its ordered rule set.
type Field struct {
	name  string
	value any
	rules []Rule
}

// NewField declares a field. Declaration order is evaluation order.
func NewField(name string, value any, rules ...Rule) Field {
	return Field{name: name, value: value, rules: rules}
}

// First evaluates the declared fields in order and returns the first
// failure, or nil when everything passes. Passing fields have no side
// effects.
func First(ctx context.Context, fields ...Field) (*Failure, error) {
	for _, f := range fields {
		attr := humanize(f.name)
		for _, r := range f.rules {
			if _, optional := r.(nullableRule); optional {
				if isEmpty(f.value) {
					break
				}
				continue
			}
			msg, err := r.check(ctx, attr, f.value)
			if err != nil {
				return nil, err
			}
			if msg != "" {
				return &Failure{Field: f.name, Message: msg}, nil
			}
		}
	}
	return nil, nil
}

// dateFormats lists the accepted date inputs, most common first.
var dateFormats = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a date input string. Handlers reuse it after validation
// so both sides agree on the accepted formats.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func humanize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}
