package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medet-a/MentorLinkBack/internal/models"
)

func newBookingServiceForValidation(
	mentor *stubMentorReader,
	windows *stubWindowReader,
	now time.Time,
) *BookingService {
	// Validation failures return before any database work, so the pool and
	// the transactional repos are never touched.
	return NewBookingService(nil, nil, nil, mentor, windows, fixedClock{now: now}, NopNotifier{})
}

func TestPriceCents(t *testing.T) {
	tests := []struct {
		name            string
		hourlyRateCents int64
		durationMinutes int
		want            int64
	}{
		{"one hour", 12000, 60, 12000},
		{"two hours", 12000, 120, 24000},
		{"odd rate one hour", 9999, 60, 9999},
		{"ninety minutes rounds", 5001, 90, 7502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceCents(tt.hourlyRateCents, tt.durationMinutes)
			if got != tt.want {
				t.Fatalf("PriceCents(%d, %d) = %d, want %d",
					tt.hourlyRateCents, tt.durationMinutes, got, tt.want)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	for _, minutes := range []int{60, 120, 180, 240} {
		if err := validateDuration(minutes); err != nil {
			t.Fatalf("expected %d minutes to be valid, got %v", minutes, err)
		}
	}
	for _, minutes := range []int{0, -60, 30, 90, 300} {
		if err := validateDuration(minutes); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %d minutes, got %v", minutes, err)
		}
	}
}

func TestWindowsCover(t *testing.T) {
	windows := []models.AvailabilityWindow{
		mondayWindow(8*60, 12*60),
		mondayWindow(14*60, 16*60),
	}
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	if !windowsCover(windows, start, 120) {
		t.Fatal("expected 09:00-11:00 to be covered")
	}
	if windowsCover(windows, start.Add(2*time.Hour), 120) {
		t.Fatal("expected 11:00-13:00 to spill past the window")
	}
	if windowsCover(windows, start.Add(4*time.Hour), 60) {
		t.Fatal("expected 13:00-14:00 to fall in the gap")
	}
	if !windowsCover(windows, start.Add(5*time.Hour), 60) {
		t.Fatal("expected 14:00-15:00 to be covered by the afternoon window")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	validStart := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	service := newBookingServiceForValidation(
		&stubMentorReader{mentor: verifiedMentor()},
		&stubWindowReader{windows: []models.AvailabilityWindow{mondayWindow(8*60, 12*60)}},
		now,
	)

	tests := []struct {
		name      string
		learnerID int64
		input     CreateBookingInput
	}{
		{
			name:      "missing mentor id",
			learnerID: 42,
			input:     CreateBookingInput{StartAt: validStart, DurationMinutes: 60, Topic: "go basics"},
		},
		{
			name:      "bad duration",
			learnerID: 42,
			input:     CreateBookingInput{MentorID: 7, StartAt: validStart, DurationMinutes: 45, Topic: "go basics"},
		},
		{
			name:      "blank topic",
			learnerID: 42,
			input:     CreateBookingInput{MentorID: 7, StartAt: validStart, DurationMinutes: 60, Topic: "   "},
		},
		{
			name:      "unaligned start",
			learnerID: 42,
			input: CreateBookingInput{
				MentorID:        7,
				StartAt:         validStart.Add(15 * time.Minute),
				DurationMinutes: 60,
				Topic:           "go basics",
			},
		},
		{
			name:      "start in the past",
			learnerID: 42,
			input: CreateBookingInput{
				MentorID:        7,
				StartAt:         now.Add(-24 * time.Hour).Truncate(time.Hour),
				DurationMinutes: 60,
				Topic:           "go basics",
			},
		},
		{
			name:      "self booking",
			learnerID: 7,
			input:     CreateBookingInput{MentorID: 7, StartAt: validStart, DurationMinutes: 60, Topic: "go basics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateBooking(context.Background(), tt.learnerID, tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateBookingUnknownMentor(t *testing.T) {
	service := newBookingServiceForValidation(
		&stubMentorReader{err: pgx.ErrNoRows},
		&stubWindowReader{},
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingInput{
		MentorID:        404,
		StartAt:         time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Topic:           "go basics",
	})
	if !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected mentor not found, got %v", err)
	}
}

func TestCreateBookingUnverifiedMentor(t *testing.T) {
	mentor := verifiedMentor()
	mentor.IsVerified = false

	service := newBookingServiceForValidation(
		&stubMentorReader{mentor: mentor},
		&stubWindowReader{windows: []models.AvailabilityWindow{mondayWindow(8*60, 12*60)}},
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	)

	_, err := service.CreateBooking(context.Background(), 42, CreateBookingInput{
		MentorID:        7,
		StartAt:         time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Topic:           "go basics",
	})
	if !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected mentor not found for unverified mentor, got %v", err)
	}
}

func TestCreateBookingOutsideWindows(t *testing.T) {
	service := newBookingServiceForValidation(
		&stubMentorReader{mentor: verifiedMentor()},
		&stubWindowReader{windows: []models.AvailabilityWindow{mondayWindow(8*60, 12*60)}},
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	)

	// 18:00 on a Monday, well outside the 08:00-12:00 window.
	_, err := service.CreateBooking(context.Background(), 42, CreateBookingInput{
		MentorID:        7,
		StartAt:         time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Topic:           "go basics",
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected slot unavailable, got %v", err)
	}
}

func TestCreateBookingDurationSpillsPastWindow(t *testing.T) {
	service := newBookingServiceForValidation(
		&stubMentorReader{mentor: verifiedMentor()},
		&stubWindowReader{windows: []models.AvailabilityWindow{mondayWindow(8*60, 12*60)}},
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	)

	// Starts inside the window but the 3-hour duration ends at 14:00.
	_, err := service.CreateBooking(context.Background(), 42, CreateBookingInput{
		MentorID:        7,
		StartAt:         time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 180,
		Topic:           "go basics",
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected slot unavailable, got %v", err)
	}
}
