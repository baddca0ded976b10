package domain

import "strings"

// ValidationErrors aggregates field-level validation messages. It is returned
// as a structured result so handlers can surface the full list in a 400 body
// instead of leaking internal errors.
type ValidationErrors struct {
	Errors []string
}

func (v *ValidationErrors) Add(msg string) {
	v.Errors = append(v.Errors, msg)
}

func (v *ValidationErrors) Any() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return strings.Join(v.Errors, "; ")
}
