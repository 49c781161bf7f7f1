package job

import (
	"fmt"
	"time"

	"github.com/phrazzld/vizgen/internal/domain"
)

// Status is the lifecycle state of a job.
type Status string

// Job statuses.
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether s is succeeded or failed.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusSucceeded || next == StatusFailed
	default:
		return false
	}
}

// Job is one visualization request and its outcome.
//
// Content and Metadata are set only when Status is succeeded; Error only when
// Status is failed.
type Job struct {
	ID        string
	Kind      domain.Kind
	Question  string
	Options   domain.GenerationOptions
	Status    Status
	Content   *string
	Metadata  map[string]any
	Error     *string
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the job's expiry window has passed at now.
func (j *Job) IsExpired(now time.Time) bool {
	return !now.Before(j.ExpiresAt)
}

// clone returns a deep copy safe to hand to readers.
func (j *Job) clone() Job {
	out := *j
	if j.Content != nil {
		content := *j.Content
		out.Content = &content
	}
	if j.Error != nil {
		msg := *j.Error
		out.Error = &msg
	}
	out.Metadata = domain.CloneMetadata(j.Metadata)
	return out
}

func (j *Job) transition(next Status, now time.Time) error {
	if !j.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, next)
	}
	j.Status = next
	j.UpdatedAt = now
	return nil
}

func (j *Job) succeed(result *domain.GenerationResult, now time.Time) error {
	if err := j.transition(StatusSucceeded, now); err != nil {
		return err
	}
	content := result.Content
	j.Content = &content
	j.Metadata = domain.CloneMetadata(result.Metadata)
	if j.Metadata == nil {
		j.Metadata = map[string]any{}
	}
	return nil
}

func (j *Job) fail(summary string, now time.Time) error {
	if err := j.transition(StatusFailed, now); err != nil {
		return err
	}
	j.Error = &summary
	return nil
}
