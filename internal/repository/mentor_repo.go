package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/medet-a/MentorLinkBack/internal/models"
)

type MentorRepository struct {
	db DBTX
}

func NewMentorRepository(db DBTX) *MentorRepository {
	return &MentorRepository{db: db}
}

type CreateMentorInput struct {
	ID              int64
	FullName        string
	Bio             *string
	Specialties     []string
	HourlyRateCents int64
}

type MentorListFilter struct {
	Specialty    string
	MaxRateCents int64
	MinRating    float64
	Offset       int
	Limit        int
}

const mentorColumns = `id, full_name, bio, specialties, hourly_rate_cents,
	is_verified, rating_sum, rating_count, total_sessions, created_at, updated_at`

func (r *MentorRepository) Create(ctx context.Context, input CreateMentorInput) (*models.Mentor, error) {
	query := fmt.Sprintf(`
		INSERT INTO mentors (id, full_name, bio, specialties, hourly_rate_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, mentorColumns)

	return r.scanMentor(r.db.QueryRow(
		ctx,
		query,
		input.ID,
		input.FullName,
		input.Bio,
		input.Specialties,
		input.HourlyRateCents,
	))
}

func (r *MentorRepository) GetByID(ctx context.Context, mentorID int64) (*models.Mentor, error) {
	query := fmt.Sprintf(`SELECT %s FROM mentors WHERE id = $1`, mentorColumns)
	return r.scanMentor(r.db.QueryRow(ctx, query, mentorID))
}

func (r *MentorRepository) List(
	ctx context.Context,
	filter MentorListFilter,
) ([]models.Mentor, int, error) {
	args := []any{}
	whereParts := []string{"is_verified"}

	if specialty := strings.TrimSpace(filter.Specialty); specialty != "" {
		args = append(args, specialty)
		whereParts = append(whereParts, fmt.Sprintf("$%d = ANY(specialties)", len(args)))
	}
	if filter.MaxRateCents > 0 {
		args = append(args, filter.MaxRateCents)
		whereParts = append(whereParts, fmt.Sprintf("hourly_rate_cents <= $%d", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		whereParts = append(
			whereParts,
			fmt.Sprintf("rating_count > 0 AND rating_sum::float8 / rating_count >= $%d", len(args)),
		)
	}

	where := strings.Join(whereParts, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM mentors WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM mentors
		WHERE %s
		ORDER BY rating_count DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, mentorColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	mentors := make([]models.Mentor, 0)
	for rows.Next() {
		mentor, err := r.scanMentor(rows)
		if err != nil {
			return nil, 0, err
		}
		mentors = append(mentors, *mentor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return mentors, total, nil
}

func (r *MentorRepository) ListVerified(ctx context.Context) ([]models.Mentor, error) {
	query := fmt.Sprintf(`SELECT %s FROM mentors WHERE is_verified ORDER BY id ASC`, mentorColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := make([]models.Mentor, 0)
	for rows.Next() {
		mentor, err := r.scanMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, *mentor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mentors, nil
}

// SetVerified is the narrow directory write used by operational tooling and
// tests; there is no HTTP surface for it.
func (r *MentorRepository) SetVerified(ctx context.Context, mentorID int64, verified bool) error {
	query := `UPDATE mentors SET is_verified = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, mentorID, verified)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mentor %d not found", mentorID)
	}
	return nil
}

// ApplyCompletion bumps the completed-session counters for a mentor in one
// statement so concurrent completions never lose updates. A nil rating only
// increments total_sessions.
func (r *MentorRepository) ApplyCompletion(
	ctx context.Context,
	mentorID int64,
	rating *int,
) (*models.Mentor, error) {
	query := fmt.Sprintf(`
		UPDATE mentors
		SET total_sessions = total_sessions + 1,
			rating_sum = rating_sum + COALESCE($2, 0),
			rating_count = rating_count + CASE WHEN $2::int IS NULL THEN 0 ELSE 1 END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, mentorColumns)

	return r.scanMentor(r.db.QueryRow(ctx, query, mentorID, rating))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MentorRepository) scanMentor(row rowScanner) (*models.Mentor, error) {
	var mentor models.Mentor
	err := row.Scan(
		&mentor.ID,
		&mentor.FullName,
		&mentor.Bio,
		&mentor.Specialties,
		&mentor.HourlyRateCents,
		&mentor.IsVerified,
		&mentor.RatingSum,
		&mentor.RatingCount,
		&mentor.TotalSessions,
		&mentor.CreatedAt,
		&mentor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}
