package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusCancelled = "cancelled"
)

// Booking is a reservation request that has claimed a slot but has not been
// finalized. A confirmed booking is transformed into a Session and the
// booking row is removed in the same transaction.
type Booking struct {
	ID              int64     `json:"id"`
	MentorID        int64     `json:"mentor_id"`
	LearnerID       int64     `json:"learner_id"`
	StartAt         time.Time `json:"start_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Topic           string    `json:"topic"`
	PriceCents      int64     `json:"price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b *Booking) Span() TimeSpan {
	return TimeSpan{Start: b.StartAt, DurationMinutes: b.DurationMinutes}
}
