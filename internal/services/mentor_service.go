package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medet-a/MentorLinkBack/internal/models"
	"github.com/medet-a/MentorLinkBack/internal/repository"
)

const uniqueViolationCode = "23505"

// MentorService owns the writes to the mentor directory that arrive over
// HTTP: profile creation and the weekly availability schedule.
type MentorService struct {
	db               *pgxpool.Pool
	mentorRepo       *repository.MentorRepository
	availabilityRepo *repository.AvailabilityRepository
}

func NewMentorService(
	db *pgxpool.Pool,
	mentorRepo *repository.MentorRepository,
	availabilityRepo *repository.AvailabilityRepository,
) *MentorService {
	return &MentorService{
		db:               db,
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
	}
}

type CreateMentorInput struct {
	FullName        string
	Bio             *string
	Specialties     []string
	HourlyRateCents int64
}

// CreateMentor registers the acting user as a mentor. New entries start
// unverified and are invisible to availability and booking until verified.
func (s *MentorService) CreateMentor(
	ctx context.Context,
	actorID int64,
	input CreateMentorInput,
) (*models.Mentor, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: full_name must not be empty", ErrValidation)
	}
	if input.HourlyRateCents <= 0 {
		return nil, fmt.Errorf("%w: hourly_rate_cents must be greater than 0", ErrValidation)
	}
	for _, specialty := range input.Specialties {
		if strings.TrimSpace(specialty) == "" {
			return nil, fmt.Errorf("%w: specialties must not contain empty values", ErrValidation)
		}
	}

	mentor, err := s.mentorRepo.Create(ctx, repository.CreateMentorInput{
		ID:              actorID,
		FullName:        strings.TrimSpace(input.FullName),
		Bio:             input.Bio,
		Specialties:     input.Specialties,
		HourlyRateCents: input.HourlyRateCents,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: mentor %d already exists", ErrConflict, actorID)
		}
		return nil, err
	}
	return mentor, nil
}

// ReplaceAvailability swaps the mentor's whole weekly schedule atomically.
// Only the mentor themselves may change it. Windows arrive already validated
// and typed by the HTTP boundary.
func (s *MentorService) ReplaceAvailability(
	ctx context.Context,
	actorID int64,
	mentorID int64,
	windows []repository.WindowInput,
) ([]models.AvailabilityWindow, error) {
	if actorID != mentorID {
		return nil, fmt.Errorf(
			"%w: actor %d cannot edit mentor %d availability",
			ErrUnauthorized, actorID, mentorID,
		)
	}
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mentor %d", ErrMentorNotFound, mentorID)
		}
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := repository.NewAvailabilityRepository(tx).Replace(ctx, mentorID, windows); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.availabilityRepo.ListForMentor(ctx, mentorID)
}

func (s *MentorService) GetMentor(ctx context.Context, mentorID int64) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: mentor %d", ErrMentorNotFound, mentorID)
		}
		return nil, err
	}
	return mentor, nil
}
