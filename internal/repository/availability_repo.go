package repository

import (
	"context"
	"time"

	"github.com/medet-a/MentorLinkBack/internal/models"
)

type AvailabilityRepository struct {
	db DBTX
}

func NewAvailabilityRepository(db DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type WindowInput struct {
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
}

// Replace swaps a mentor's whole weekly schedule. The caller wraps it in a
// transaction together with any other directory writes.
func (r *AvailabilityRepository) Replace(
	ctx context.Context,
	mentorID int64,
	windows []WindowInput,
) error {
	if _, err := r.db.Exec(
		ctx,
		`DELETE FROM availability_windows WHERE mentor_id = $1`,
		mentorID,
	); err != nil {
		return err
	}

	for _, window := range windows {
		if _, err := r.db.Exec(
			ctx,
			`INSERT INTO availability_windows (mentor_id, weekday, start_minute, end_minute)
			 VALUES ($1, $2, $3, $4)`,
			mentorID,
			int(window.Weekday),
			window.StartMinute,
			window.EndMinute,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *AvailabilityRepository) ListForMentor(
	ctx context.Context,
	mentorID int64,
) ([]models.AvailabilityWindow, error) {
	query := `
		SELECT id, mentor_id, weekday, start_minute, end_minute
		FROM availability_windows
		WHERE mentor_id = $1
		ORDER BY weekday ASC, start_minute ASC
	`
	return r.list(ctx, query, mentorID)
}

func (r *AvailabilityRepository) ListForWeekday(
	ctx context.Context,
	mentorID int64,
	weekday time.Weekday,
) ([]models.AvailabilityWindow, error) {
	query := `
		SELECT id, mentor_id, weekday, start_minute, end_minute
		FROM availability_windows
		WHERE mentor_id = $1 AND weekday = $2
		ORDER BY start_minute ASC
	`
	return r.list(ctx, query, mentorID, int(weekday))
}

func (r *AvailabilityRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.AvailabilityWindow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]models.AvailabilityWindow, 0)
	for rows.Next() {
		var window models.AvailabilityWindow
		var weekday int
		if err := rows.Scan(
			&window.ID,
			&window.MentorID,
			&weekday,
			&window.StartMinute,
			&window.EndMinute,
		); err != nil {
			return nil, err
		}
		window.Weekday = time.Weekday(weekday)
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}
