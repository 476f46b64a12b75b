package responses

import (
	"strings"

	"github.com/pkg/errors"
)

// JobStatus - state of a background job
type JobStatus string

const (
	JobStatusWaiting  JobStatus = "WAITING"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusCanceled JobStatus = "CANCELED"
	JobStatusError    JobStatus = "ERROR"
	JobStatusComplete JobStatus = "COMPLETE"
)

// ParseJobStatus looks a status up by its alias
func ParseJobStatus(alias string) (JobStatus, error) {
	s := JobStatus(strings.ToUpper(strings.TrimSpace(alias)))
	switch s {
	case JobStatusWaiting, JobStatusRunning, JobStatusCanceled, JobStatusError, JobStatusComplete:
		return s, nil
	default:
		return "", errors.Errorf("unknown job status %q", alias)
	}
}

// Final is true once the job will not change anymore
func (s JobStatus) Final() bool {
	return s == JobStatusCanceled || s == JobStatusError || s == JobStatusComplete
}

// JobParameter - a name value pair describing the job
type JobParameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// GetJobStatus - state of a job
type GetJobStatus struct {
	JobID       int64          `json:"jobId" yaml:"jobId"`
	Status      JobStatus      `json:"status" yaml:"status"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []JobParameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}
