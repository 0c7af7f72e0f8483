package domain

import (
	"fmt"
)

// InvalidResourceRequirementError is returned when a requirement is built with
// a negative (or non-finite) quantity.
type InvalidResourceRequirementError struct {
	Field string
	Value string
}

func (e *InvalidResourceRequirementError) Error() string {
	return fmt.Sprintf("invalid resource requirement: %s must be a non-negative number, got %s", e.Field, e.Value)
}

// InvalidJobError is returned by NewJob for a job that cannot be queued.
type InvalidJobError struct {
	Reason string
}

func (e *InvalidJobError) Error() string {
	return "invalid job: " + e.Reason
}
