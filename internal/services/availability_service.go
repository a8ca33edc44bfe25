package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medet-a/MentorLinkBack/internal/models"
)

// SlotMinutes is the booking granularity: every bookable slot starts on the
// hour and lasts one hour.
const SlotMinutes = 60

type mentorReader interface {
	GetByID(ctx context.Context, mentorID int64) (*models.Mentor, error)
}

type windowReader interface {
	ListForWeekday(ctx context.Context, mentorID int64, weekday time.Weekday) ([]models.AvailabilityWindow, error)
}

type bookingSpanReader interface {
	ListPendingSpans(ctx context.Context, mentorID int64, from, to time.Time) ([]models.TimeSpan, error)
}

type sessionSpanReader interface {
	ListActiveSpans(ctx context.Context, mentorID int64, from, to time.Time) ([]models.TimeSpan, error)
}

type AvailabilityService struct {
	mentorRepo       mentorReader
	availabilityRepo windowReader
	bookingRepo      bookingSpanReader
	sessionRepo      sessionSpanReader
	clock            Clock
}

func NewAvailabilityService(
	mentorRepo mentorReader,
	availabilityRepo windowReader,
	bookingRepo bookingSpanReader,
	sessionRepo sessionSpanReader,
	clock Clock,
) *AvailabilityService {
	return &AvailabilityService{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		sessionRepo:      sessionRepo,
		clock:            clock,
	}
}

// ResolveSlots returns the ascending bookable start times for a mentor on a
// date. Past dates, unknown or unverified mentors, and weekdays without
// declared windows all yield an empty list: "no slots" is a valid answer,
// not a failure.
func (s *AvailabilityService) ResolveSlots(
	ctx context.Context,
	mentorID int64,
	date time.Time,
) ([]time.Time, error) {
	now := s.clock.Now()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dayStart.Before(today) {
		return []time.Time{}, nil
	}

	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []time.Time{}, nil
		}
		return nil, err
	}
	if !mentor.IsVerified {
		return []time.Time{}, nil
	}

	windows, err := s.availabilityRepo.ListForWeekday(ctx, mentorID, dayStart.Weekday())
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []time.Time{}, nil
	}

	dayEnd := dayStart.Add(24 * time.Hour)
	bookingSpans, err := s.bookingRepo.ListPendingSpans(ctx, mentorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	sessionSpans, err := s.sessionRepo.ListActiveSpans(ctx, mentorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	busy := append(bookingSpans, sessionSpans...)
	return slotsForDay(windows, busy, dayStart, now), nil
}

// slotsForDay enumerates SlotMinutes-sized candidate slots inside the given
// windows and drops any slot that has already started or intersects a busy
// interval.
func slotsForDay(
	windows []models.AvailabilityWindow,
	busy []models.TimeSpan,
	dayStart time.Time,
	now time.Time,
) []time.Time {
	slots := make([]time.Time, 0)
	for _, window := range windows {
		for minute := window.StartMinute; minute+SlotMinutes <= window.EndMinute; minute += SlotMinutes {
			start := dayStart.Add(time.Duration(minute) * time.Minute)
			if start.Before(now) {
				continue
			}
			candidate := models.TimeSpan{Start: start, DurationMinutes: SlotMinutes}
			if overlapsAny(candidate, busy) {
				continue
			}
			slots = append(slots, start)
		}
	}
	return slots
}

func overlapsAny(candidate models.TimeSpan, busy []models.TimeSpan) bool {
	for _, span := range busy {
		if candidate.Overlaps(span) {
			return true
		}
	}
	return false
}
