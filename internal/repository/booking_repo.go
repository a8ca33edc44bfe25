package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medet-a/MentorLinkBack/internal/models"
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

type CreateBookingInput struct {
	MentorID        int64
	LearnerID       int64
	StartAt         time.Time
	DurationMinutes int
	Topic           string
	PriceCents      int64
}

const bookingColumns = `id, mentor_id, learner_id, start_at, duration_min,
	topic, price_cents, status, created_at, updated_at`

func (r *BookingRepository) Create(
	ctx context.Context,
	input CreateBookingInput,
) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (mentor_id, learner_id, start_at, duration_min, topic, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + bookingColumns

	return scanBooking(r.db.QueryRow(
		ctx,
		query,
		input.MentorID,
		input.LearnerID,
		input.StartAt,
		input.DurationMinutes,
		input.Topic,
		input.PriceCents,
	))
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(ctx, query, bookingID))
}

func (r *BookingRepository) GetByIDForUpdate(
	ctx context.Context,
	bookingID int64,
) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(r.db.QueryRow(ctx, query, bookingID))
}

func (r *BookingRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	bookingID int64,
	currentStatus string,
	nextStatus string,
) (*models.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + bookingColumns

	return scanBooking(r.db.QueryRow(ctx, query, bookingID, currentStatus, nextStatus))
}

// Delete removes a booking row; used by confirmation, which replaces the
// booking with a session in the same transaction.
func (r *BookingRepository) Delete(ctx context.Context, bookingID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// HasOverlap reports whether any pending booking for the mentor intersects
// the [startAt, startAt+duration) interval.
func (r *BookingRepository) HasOverlap(
	ctx context.Context,
	mentorID int64,
	startAt time.Time,
	durationMinutes int,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE mentor_id = $1
			  AND status = 'pending'
			  AND start_at < ($2::timestamptz + ($3::int * INTERVAL '1 minute'))
			  AND (start_at + (duration_min * INTERVAL '1 minute')) > $2::timestamptz
		)
	`
	var hasOverlap bool
	if err := r.db.QueryRow(ctx, query, mentorID, startAt, durationMinutes).Scan(&hasOverlap); err != nil {
		return false, err
	}
	return hasOverlap, nil
}

// ListPendingSpans returns the occupied intervals of pending bookings for a
// mentor between from (inclusive) and to (exclusive).
func (r *BookingRepository) ListPendingSpans(
	ctx context.Context,
	mentorID int64,
	from time.Time,
	to time.Time,
) ([]models.TimeSpan, error) {
	query := `
		SELECT start_at, duration_min
		FROM bookings
		WHERE mentor_id = $1
		  AND status = 'pending'
		  AND start_at >= $2
		  AND start_at < $3
		ORDER BY start_at ASC
	`
	return listSpans(ctx, r.db, query, mentorID, from, to)
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	err := row.Scan(
		&booking.ID,
		&booking.MentorID,
		&booking.LearnerID,
		&booking.StartAt,
		&booking.DurationMinutes,
		&booking.Topic,
		&booking.PriceCents,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func listSpans(
	ctx context.Context,
	db DBTX,
	query string,
	args ...any,
) ([]models.TimeSpan, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spans := make([]models.TimeSpan, 0)
	for rows.Next() {
		var span models.TimeSpan
		if err := rows.Scan(&span.Start, &span.DurationMinutes); err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return spans, nil
}
