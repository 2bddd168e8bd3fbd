package domain

import (
	"errors"
	"strings"
)

// ErrSurveyNotFound is returned when an operation references an unknown survey id.
var ErrSurveyNotFound = errors.New("survey not found")

// FieldViolation describes one field that failed validation.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError carries every violated field of a rejected survey.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Put records a violation for field, replacing an earlier one for the same field.
func (e *ValidationError) Put(field, message string) {
	for i := range e.Violations {
		if e.Violations[i].Field == field {
			e.Violations[i].Message = message
			return
		}
	}
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// Has reports whether field has a violation.
func (e *ValidationError) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the violated field names in report order.
func (e *ValidationError) Fields() []string {
	if e == nil {
		return nil
	}
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}
