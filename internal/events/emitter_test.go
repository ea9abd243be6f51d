package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	HandledCount int
	LastEvent    *Event
	HandlerError error
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		event, err := NewEvent(TypeCourseOpened, "CS101", "", nil)
		require.NoError(t, err)

		// Should not error even with no handlers
		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event, err := NewEvent(TypeEnrollmentAdded, "CS101", "S1", nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.NoError(t, err)

		// Verify both handlers received the event
		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{
			HandlerError: errors.New("handler error"),
		}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		event, err := NewEvent(TypeGradeRecorded, "CS101", "S1", map[string]float64{"grade": 90})
		require.NoError(t, err)

		// Should return an error from the failing handler
		err = emitter.EmitEvent(context.Background(), event)
		assert.Error(t, err)
		assert.Equal(t, "handler error", err.Error())

		// Both handlers should still have received the event
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
	})
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(TypeGradeRecorded, "CS101", "S1", map[string]float64{"grade": 88.5})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeGradeRecorded, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var payload map[string]float64
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, 88.5, payload["grade"])

	bare, err := NewEvent(TypeCourseClosed, "CS101", "", nil)
	require.NoError(t, err)
	assert.Empty(t, bare.Payload)

	_, err = NewEvent(TypeCourseClosed, "CS101", "", make(chan int))
	assert.Error(t, err)
}

func TestAuditLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	event, err := NewEvent(TypeEnrollmentAdded, "CS101", "S1", nil)
	require.NoError(t, err)
	require.NoError(t, NewAuditLogHandler(logger).HandleEvent(context.Background(), event))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "registration changed", entry["msg"])
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, TypeEnrollmentAdded, entry["event_type"])
	assert.Equal(t, "CS101", entry["course_id"])
	assert.Equal(t, "S1", entry["student_id"])
	assert.Equal(t, event.ID.String(), entry["event_id"])
	assert.NotContains(t, entry, "payload")
}
