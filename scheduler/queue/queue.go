// Package queue defines the job dispatch queue a scheduler driver matches
// against resource offers. Pending jobs are grouped by their exact resource
// requirement; the groups are listed in priority order and each group is
// drained first-in-first-out.
package queue

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/twitter/offerqueue/scheduler/domain"
)

// Queue holds pending jobs bucketed by resource requirement.
// Insert and NextJobOfType are the only mutators.
type Queue interface {
	// Appends job to the bucket for resources, which must equal job.Resources().
	Insert(job *domain.Job, resources domain.ResourceRequirement) error

	// Distinct requirement types with at least one queued job, non-preemptable
	// types first, then by footprint in the configured direction.
	Sorted() []domain.ResourceRequirement

	// Snapshot of the queued jobs of a type, oldest first. Empty if none.
	JobsOfType(resources domain.ResourceRequirement) []*domain.Job

	// Removes and returns the oldest job of a type. Returns a
	// *NoJobOfTypeError if none is queued.
	NextJobOfType(resources domain.ResourceRequirement) (*domain.Job, error)

	// Ids of every queued job.
	JobIDs() []string

	// True if no job of this type is queued.
	TypeEmpty(resources domain.ResourceRequirement) bool

	// True if a job with this id is queued.
	Contains(jobID string) bool

	// Number of queued jobs.
	Len() int
}

// Config for a Queue.
type Config struct {
	// Direction of the cores/memory/disk ordering within a preemptability class.
	Order domain.FootprintOrder
}

// ResourceMismatchError is returned by Insert when the bucket key differs from
// the job's own resource requirement.
type ResourceMismatchError struct {
	JobID     string
	Job       domain.ResourceRequirement
	Requested domain.ResourceRequirement
}

func (e *ResourceMismatchError) Error() string {
	return fmt.Sprintf("job %s requires {%s} but was inserted as {%s}", e.JobID, e.Job, e.Requested)
}

// DuplicateJobError is returned by Insert when a job with the same id is
// already queued.
type DuplicateJobError struct {
	JobID string
}

func (e *DuplicateJobError) Error() string {
	return fmt.Sprintf("job %s is already queued", e.JobID)
}

// NoJobOfTypeError is returned by NextJobOfType when nothing of that type is
// queued. This is routine: the type may have been drained by another caller.
type NoJobOfTypeError struct {
	Resources domain.ResourceRequirement
}

func (e *NoJobOfTypeError) Error() string {
	return fmt.Sprintf("no queued job of type {%s}", e.Resources)
}

// IsNoJobOfType reports whether err, or the error it wraps, is a *NoJobOfTypeError.
func IsNoJobOfType(err error) bool {
	_, ok := errors.Cause(err).(*NoJobOfTypeError)
	return ok
}

// IsResourceMismatch reports whether err, or the error it wraps, is a *ResourceMismatchError.
func IsResourceMismatch(err error) bool {
	_, ok := errors.Cause(err).(*ResourceMismatchError)
	return ok
}

// IsDuplicateJob reports whether err, or the error it wraps, is a *DuplicateJobError.
func IsDuplicateJob(err error) bool {
	_, ok := errors.Cause(err).(*DuplicateJobError)
	return ok
}
