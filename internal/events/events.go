package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the registrar.
const (
	TypeStudentRegistered = "student.registered"
	TypeCourseCreated     = "course.created"
	TypeCourseOpened      = "course.opened"
	TypeCourseClosed      = "course.closed"
	TypeEnrollmentAdded   = "enrollment.added"
	TypeEnrollmentDropped = "enrollment.dropped"
	TypeGradeRecorded     = "grade.recorded"
)

// Event describes one change to the registration state.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	CourseID  string `json:"course_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`

	// Payload carries type-specific detail serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates an Event. A nil payload leaves Payload empty.
func NewEvent(eventType, courseID, studentID string, payload interface{}) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		CourseID:  courseID,
		StudentID: studentID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the registrar to publish changes without knowing the handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
