package undetectable

import "strings"

// JobStatus is the two-state lifecycle of a submitted document.
type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobComplete JobStatus = "complete"
)

// Job tracks one submitted document for the lifetime of a single poll loop.
type Job struct {
	ID     string
	Status JobStatus
	Output string
}

func newJob(id string) *Job {
	return &Job{ID: id, Status: JobPending}
}

// apply transitions the job to complete once the provider reports a finished status
// and a non-empty output. Any other response leaves the job pending.
func (j *Job) apply(resp documentResponse) {
	if j.Status == JobComplete {
		return
	}
	output := strings.TrimSpace(resp.Output)
	if output == "" {
		return
	}
	switch strings.ToLower(strings.TrimSpace(resp.Status)) {
	case "complete", "completed", "done", "":
		j.Status = JobComplete
		j.Output = output
	}
}

// Done reports whether the job reached its terminal state.
func (j *Job) Done() bool {
	return j.Status == JobComplete
}
