package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a job lifecycle transition.
type EventType string

// Lifecycle event types, in the order a job normally produces them.
const (
	JobSubmitted     EventType = "job.submitted"
	JobStarted       EventType = "job.started"
	JobAttemptFailed EventType = "job.attempt_failed"
	JobSucceeded     EventType = "job.succeeded"
	JobFailed        EventType = "job.failed"
	JobEvicted       EventType = "job.evicted"
)

// JobEvent describes one transition of a visualization job.
type JobEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type  EventType `json:"type"`
	JobID string    `json:"job_id"`
	Kind  string    `json:"visualization_type"`

	// Attempt is the attempt number the event refers to, zero when not applicable.
	Attempt int `json:"attempt,omitempty"`

	// Payload carries event-specific details serialized as JSON.
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *JobEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewJobEvent creates a JobEvent. payload may be nil.
func NewJobEvent(eventType EventType, jobID, kind string, attempt int, payload any) (*JobEvent, error) {
	event := &JobEvent{
		ID:        uuid.New(),
		Type:      eventType,
		JobID:     jobID,
		Kind:      kind,
		Attempt:   attempt,
		CreatedAt: time.Now().UTC(),
	}

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		event.Payload = payloadBytes
	}

	return event, nil
}

// AttemptFailure is the payload of JobAttemptFailed events.
type AttemptFailure struct {
	Transient bool          `json:"transient"`
	Backoff   time.Duration `json:"backoff_ns,omitempty"`
	Error     string        `json:"error"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *JobEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *JobEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *JobEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the orchestrator to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *JobEvent) error
}
