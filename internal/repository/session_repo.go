package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/medet-a/MentorLinkBack/internal/models"
)

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

type CreateSessionInput struct {
	MentorID        int64
	LearnerID       int64
	StartAt         time.Time
	DurationMinutes int
	Topic           string
	PriceCents      int64
}

type SessionListFilter struct {
	ActorID   int64
	Status    string
	Timeframe string
}

const sessionColumns = `id, mentor_id, learner_id, start_at, duration_min,
	topic, price_cents, status, rating, feedback, created_at, updated_at`

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := `
		INSERT INTO sessions (mentor_id, learner_id, start_at, duration_min, topic, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled')
		RETURNING ` + sessionColumns

	return scanSession(r.db.QueryRow(
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

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) GetByIDForUpdate(
	ctx context.Context,
	sessionID int64,
) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

// List returns sessions where the actor is either side of the engagement,
// optionally narrowed by status and timeframe.
func (r *SessionRepository) List(
	ctx context.Context,
	filter SessionListFilter,
) ([]models.Session, error) {
	args := []any{filter.ActorID}
	whereParts := []string{"(learner_id = $1 OR mentor_id = $1)"}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}

	switch strings.TrimSpace(filter.Timeframe) {
	case "upcoming":
		whereParts = append(
			whereParts,
			"(start_at + (duration_min * INTERVAL '1 minute')) > NOW()",
		)
	case "past":
		whereParts = append(
			whereParts,
			"(start_at + (duration_min * INTERVAL '1 minute')) <= NOW()",
		)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sessions
		WHERE %s
		ORDER BY start_at ASC, id ASC
	`, sessionColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *SessionRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + sessionColumns

	return scanSession(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus))
}

// Finish marks an in-progress session completed and records the settlement
// feedback in the same statement.
func (r *SessionRepository) Finish(
	ctx context.Context,
	sessionID int64,
	rating *int,
	feedback *string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = 'completed', rating = $2, feedback = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'in_progress'
		RETURNING ` + sessionColumns

	return scanSession(r.db.QueryRow(ctx, query, sessionID, rating, feedback))
}

// UpdateDetails mutates topic and feedback without touching status; terminal
// sessions are excluded by the WHERE clause.
func (r *SessionRepository) UpdateDetails(
	ctx context.Context,
	sessionID int64,
	topic *string,
	feedback *string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET topic = COALESCE($2, topic),
			feedback = COALESCE($3, feedback),
			updated_at = NOW()
		WHERE id = $1 AND status IN ('scheduled', 'in_progress')
		RETURNING ` + sessionColumns

	return scanSession(r.db.QueryRow(ctx, query, sessionID, topic, feedback))
}

// HasOverlap reports whether any scheduled or in-progress session for the
// mentor intersects the [startAt, startAt+duration) interval.
func (r *SessionRepository) HasOverlap(
	ctx context.Context,
	mentorID int64,
	startAt time.Time,
	durationMinutes int,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE mentor_id = $1
			  AND status IN ('scheduled', 'in_progress')
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

// ListActiveSpans returns the occupied intervals of scheduled and in-progress
// sessions for a mentor between from (inclusive) and to (exclusive).
func (r *SessionRepository) ListActiveSpans(
	ctx context.Context,
	mentorID int64,
	from time.Time,
	to time.Time,
) ([]models.TimeSpan, error) {
	query := `
		SELECT start_at, duration_min
		FROM sessions
		WHERE mentor_id = $1
		  AND status IN ('scheduled', 'in_progress')
		  AND start_at >= $2
		  AND start_at < $3
		ORDER BY start_at ASC
	`
	return listSpans(ctx, r.db, query, mentorID, from, to)
}

func scanSession(row rowScanner) (*models.Session, error) {
	var session models.Session
	err := row.Scan(
		&session.ID,
		&session.MentorID,
		&session.LearnerID,
		&session.StartAt,
		&session.DurationMinutes,
		&session.Topic,
		&session.PriceCents,
		&session.Status,
		&session.Rating,
		&session.Feedback,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
