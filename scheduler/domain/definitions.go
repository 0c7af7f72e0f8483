// Package domain provides definitions for the jobs a cluster scheduler matches
// against resource offers, and the resource signatures used to group them.
package domain

import (
	"fmt"
)

// Job is a unit of work waiting for a resource offer. It is an immutable handle:
// once built, none of its fields change, and queues hand back the same *Job
// that was inserted.
type Job struct {
	id  string
	def JobDefinition
}

// JobDefinition is what the submitter describes about a job.
// UserScript and WorkerCleanupInfo are carried for the worker side and are
// never inspected by the scheduler.
type JobDefinition struct {
	Name              string
	Resources         ResourceRequirement
	Command           string
	UserScript        interface{}
	Environment       map[string]string
	WorkerCleanupInfo interface{}
}

// NewJob builds a Job. The job ID must be non-empty; the environment is copied
// so later changes to the caller's map are not visible through the Job.
func NewJob(id string, def JobDefinition) (*Job, error) {
	if id == "" {
		return nil, &InvalidJobError{Reason: "job id must be set"}
	}
	if def.Environment != nil {
		env := make(map[string]string, len(def.Environment))
		for k, v := range def.Environment {
			env[k] = v
		}
		def.Environment = env
	}
	return &Job{id: id, def: def}, nil
}

func (j *Job) ID() string                     { return j.id }
func (j *Job) Name() string                   { return j.def.Name }
func (j *Job) Resources() ResourceRequirement { return j.def.Resources }
func (j *Job) Command() string                { return j.def.Command }
func (j *Job) UserScript() interface{}        { return j.def.UserScript }
func (j *Job) WorkerCleanupInfo() interface{} { return j.def.WorkerCleanupInfo }

// Environment returns a copy of the job's environment, nil if it has none.
func (j *Job) Environment() map[string]string {
	if j.def.Environment == nil {
		return nil
	}
	env := make(map[string]string, len(j.def.Environment))
	for k, v := range j.def.Environment {
		env[k] = v
	}
	return env
}

func (j *Job) String() string {
	return fmt.Sprintf("id:%s, name:%s, resources:{%s}", j.id, j.def.Name, j.def.Resources)
}
