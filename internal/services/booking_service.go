package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medet-a/MentorLinkBack/internal/models"
	"github.com/medet-a/MentorLinkBack/internal/repository"
)

const (
	minBookingMinutes = SlotMinutes
	maxBookingMinutes = 4 * SlotMinutes
)

type BookingService struct {
	db               *pgxpool.Pool
	bookingRepo      *repository.BookingRepository
	sessionRepo      *repository.SessionRepository
	mentorRepo       mentorReader
	availabilityRepo windowReader
	clock            Clock
	notifier         Notifier
}

func NewBookingService(
	db *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	sessionRepo *repository.SessionRepository,
	mentorRepo mentorReader,
	availabilityRepo windowReader,
	clock Clock,
	notifier Notifier,
) *BookingService {
	return &BookingService{
		db:               db,
		bookingRepo:      bookingRepo,
		sessionRepo:      sessionRepo,
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		clock:            clock,
		notifier:         notifier,
	}
}

type CreateBookingInput struct {
	MentorID        int64
	StartAt         time.Time
	DurationMinutes int
	Topic           string
}

// CreateBooking claims a slot for a learner. The requested interval is
// re-validated server-side against the mentor's declared windows, and the
// overlap check plus insert run as one atomic unit under a per-mentor
// advisory lock, so exactly one of two racing claims wins.
func (s *BookingService) CreateBooking(
	ctx context.Context,
	learnerID int64,
	input CreateBookingInput,
) (*models.Booking, error) {
	if input.MentorID <= 0 {
		return nil, fmt.Errorf("%w: mentor_id must be a positive id", ErrValidation)
	}
	if err := validateDuration(input.DurationMinutes); err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic must not be empty", ErrValidation)
	}
	startAt := input.StartAt.UTC()
	if !startAt.Equal(startAt.Truncate(time.Hour)) {
		return nil, fmt.Errorf("%w: start_at must begin on the hour", ErrValidation)
	}
	if !startAt.After(s.clock.Now()) {
		return nil, fmt.Errorf("%w: start_at must be in the future", ErrValidation)
	}
	if learnerID == input.MentorID {
		return nil, fmt.Errorf("%w: mentors cannot book themselves", ErrValidation)
	}

	mentor, err := s.mentorRepo.GetByID(ctx, input.MentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mentor %d", ErrMentorNotFound, input.MentorID)
		}
		return nil, err
	}
	if !mentor.IsVerified {
		return nil, fmt.Errorf("%w: mentor %d is not accepting bookings", ErrMentorNotFound, mentor.ID)
	}

	windows, err := s.availabilityRepo.ListForWeekday(ctx, mentor.ID, startAt.Weekday())
	if err != nil {
		return nil, err
	}
	if !windowsCover(windows, startAt, input.DurationMinutes) {
		return nil, fmt.Errorf(
			"%w: mentor %d has no availability window covering %s",
			ErrSlotUnavailable, mentor.ID, startAt.Format(time.RFC3339),
		)
	}

	price := PriceCents(mentor.HourlyRateCents, input.DurationMinutes)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)
	txSessionRepo := repository.NewSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", mentor.ID); err != nil {
		return nil, err
	}

	bookingOverlap, err := txBookingRepo.HasOverlap(ctx, mentor.ID, startAt, input.DurationMinutes)
	if err != nil {
		return nil, err
	}
	sessionOverlap, err := txSessionRepo.HasOverlap(ctx, mentor.ID, startAt, input.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if bookingOverlap || sessionOverlap {
		return nil, fmt.Errorf(
			"%w: slot %s for mentor %d is already claimed",
			ErrConflict, startAt.Format(time.RFC3339), mentor.ID,
		)
	}

	booking, err := txBookingRepo.Create(ctx, repository.CreateBookingInput{
		MentorID:        mentor.ID,
		LearnerID:       learnerID,
		StartAt:         startAt,
		DurationMinutes: input.DurationMinutes,
		Topic:           topic,
		PriceCents:      price,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.Publish(Event{
		Type:       EventBookingCreated,
		LearnerID:  booking.LearnerID,
		MentorID:   booking.MentorID,
		BookingID:  booking.ID,
		StartAt:    booking.StartAt,
		OccurredAt: s.clock.Now(),
	})

	return booking, nil
}

// ConfirmBooking turns a pending booking into a scheduled session. The caller
// is expected to have completed external authorization (payment) already.
// Session insert and booking delete commit together or not at all.
func (s *BookingService) ConfirmBooking(
	ctx context.Context,
	bookingID int64,
) (*models.Session, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)
	txSessionRepo := repository.NewSessionRepository(tx)

	booking, err := txBookingRepo.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrBookingNotFound, bookingID)
		}
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking %d is cancelled", ErrBookingNotFound, bookingID)
	}
	if !booking.StartAt.After(s.clock.Now()) {
		return nil, fmt.Errorf(
			"%w: booking %d expired before confirmation", ErrValidation, bookingID,
		)
	}

	session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
		MentorID:        booking.MentorID,
		LearnerID:       booking.LearnerID,
		StartAt:         booking.StartAt,
		DurationMinutes: booking.DurationMinutes,
		Topic:           booking.Topic,
		PriceCents:      booking.PriceCents,
	})
	if err != nil {
		return nil, err
	}
	if err := txBookingRepo.Delete(ctx, booking.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifier.Publish(Event{
		Type:       EventBookingConfirmed,
		LearnerID:  session.LearnerID,
		MentorID:   session.MentorID,
		SessionID:  session.ID,
		StartAt:    session.StartAt,
		OccurredAt: s.clock.Now(),
	})

	return session, nil
}

// CancelBooking releases a pending slot. Only the booking's learner or
// mentor may cancel.
func (s *BookingService) CancelBooking(
	ctx context.Context,
	actorID int64,
	bookingID int64,
) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: booking %d", ErrBookingNotFound, bookingID)
		}
		return err
	}
	if actorID != booking.LearnerID && actorID != booking.MentorID {
		return fmt.Errorf(
			"%w: actor %d is neither learner nor mentor of booking %d",
			ErrUnauthorized, actorID, bookingID,
		)
	}
	if booking.Status != models.BookingStatusPending {
		return fmt.Errorf(
			"%w: booking %d is already %s", ErrInvalidStateTransition, bookingID, booking.Status,
		)
	}

	cancelled, err := s.bookingRepo.UpdateStatusIfCurrent(
		ctx,
		bookingID,
		models.BookingStatusPending,
		models.BookingStatusCancelled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: booking %d", ErrBookingNotFound, bookingID)
		}
		return err
	}

	s.notifier.Publish(Event{
		Type:       EventBookingCancelled,
		LearnerID:  cancelled.LearnerID,
		MentorID:   cancelled.MentorID,
		BookingID:  cancelled.ID,
		StartAt:    cancelled.StartAt,
		OccurredAt: s.clock.Now(),
	})

	return nil
}

func (s *BookingService) GetBooking(
	ctx context.Context,
	actorID int64,
	bookingID int64,
) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking %d", ErrBookingNotFound, bookingID)
		}
		return nil, err
	}
	if actorID != booking.LearnerID && actorID != booking.MentorID {
		return nil, fmt.Errorf(
			"%w: actor %d is neither learner nor mentor of booking %d",
			ErrUnauthorized, actorID, bookingID,
		)
	}
	return booking, nil
}

// PriceCents computes hourly_rate × duration/60, rounded to the nearest cent.
func PriceCents(hourlyRateCents int64, durationMinutes int) int64 {
	return (hourlyRateCents*int64(durationMinutes) + 30) / 60
}

func validateDuration(durationMinutes int) error {
	if durationMinutes < minBookingMinutes ||
		durationMinutes > maxBookingMinutes ||
		durationMinutes%SlotMinutes != 0 {
		return fmt.Errorf(
			"%w: duration_minutes must be a multiple of %d between %d and %d",
			ErrValidation, SlotMinutes, minBookingMinutes, maxBookingMinutes,
		)
	}
	return nil
}

// windowsCover reports whether [startAt, startAt+duration) lies inside one of
// the mentor's declared windows for that weekday.
func windowsCover(windows []models.AvailabilityWindow, startAt time.Time, durationMinutes int) bool {
	startMinute := startAt.Hour()*60 + startAt.Minute()
	endMinute := startMinute + durationMinutes
	for _, window := range windows {
		if window.Covers(startMinute, endMinute) {
			return true
		}
	}
	return false
}
