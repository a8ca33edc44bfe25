package services

import "time"

// Event types published on booking and session lifecycle changes.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventSessionStarted   = "session.started"
	EventSessionCompleted = "session.completed"
	EventSessionCancelled = "session.cancelled"
)

// Event is a fire-and-forget notification addressed to both sides of an
// engagement.
type Event struct {
	Type       string    `json:"type"`
	LearnerID  int64     `json:"learner_id"`
	MentorID   int64     `json:"mentor_id"`
	BookingID  int64     `json:"booking_id,omitempty"`
	SessionID  int64     `json:"session_id,omitempty"`
	StartAt    time.Time `json:"start_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier delivers lifecycle events. Implementations must never block the
// calling request and must swallow delivery failures.
type Notifier interface {
	Publish(event Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Publish(Event) {}
