package models

import "time"

const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)

// Session is a confirmed mentorship engagement, created only from a confirmed
// Booking.
type Session struct {
	ID              int64     `json:"id"`
	MentorID        int64     `json:"mentor_id"`
	LearnerID       int64     `json:"learner_id"`
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Topic           string    `json:"topic"`
	PriceCents      int64     `json:"price_cents"`
	Status          string    `json:"status"`
	Rating          *int      `json:"rating"`
	Feedback        *string   `json:"feedback"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *Session) Span() TimeSpan {
	return TimeSpan{Start: s.StartAt, DurationMinutes: s.DurationMinutes}
}

// Terminal reports whether the session has reached a final state.
func (s *Session) Terminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusCancelled
}
