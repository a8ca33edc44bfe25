package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medet-a/MentorLinkBack/internal/models"
	"github.com/medet-a/MentorLinkBack/internal/repository"
)

type SessionService struct {
	db          *pgxpool.Pool
	sessionRepo *repository.SessionRepository
	mentorRepo  *repository.MentorRepository
	clock       Clock
	notifier    Notifier
}

func NewSessionService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	mentorRepo *repository.MentorRepository,
	clock Clock,
	notifier Notifier,
) *SessionService {
	return &SessionService{
		db:          db,
		sessionRepo: sessionRepo,
		mentorRepo:  mentorRepo,
		clock:       clock,
		notifier:    notifier,
	}
}

// Start moves a scheduled session into execution. Starting is gated on the
// scheduled time having arrived.
func (s *SessionService) Start(
	ctx context.Context,
	actorID int64,
	sessionID int64,
) (*models.Session, error) {
	session, err := s.loadAuthorized(ctx, actorID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusScheduled {
		return nil, transitionError(session, "start")
	}
	if s.clock.Now().Before(session.StartAt) {
		return nil, fmt.Errorf(
			"%w: session %d cannot start before its scheduled time",
			ErrInvalidStateTransition, sessionID,
		)
	}

	updated, err := s.sessionRepo.UpdateStatusIfCurrent(
		ctx,
		sessionID,
		models.SessionStatusScheduled,
		models.SessionStatusInProgress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transitionError(session, "start")
		}
		return nil, err
	}

	s.publish(EventSessionStarted, updated)
	return updated, nil
}

// Complete settles an in-progress session. The optional rating feeds the
// mentor's aggregate in the same transaction via a single read-modify-write
// statement, so concurrent completions for one mentor never lose updates.
func (s *SessionService) Complete(
	ctx context.Context,
	actorID int64,
	sessionID int64,
	rating *int,
	feedback *string,
) (*models.Session, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if feedback != nil && strings.TrimSpace(*feedback) == "" {
		return nil, fmt.Errorf("%w: feedback must not be empty", ErrValidation)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)
	txMentorRepo := repository.NewMentorRepository(tx)

	session, err := txSessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	if err := authorizeActor(actorID, session); err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusInProgress {
		return nil, transitionError(session, "complete")
	}

	completed, err := txSessionRepo.Finish(ctx, sessionID, rating, feedback)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transitionError(session, "complete")
		}
		return nil, err
	}
	if _, err := txMentorRepo.ApplyCompletion(ctx, session.MentorID, rating); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publish(EventSessionCompleted, completed)
	return completed, nil
}

// Cancel aborts a scheduled or in-progress session. No rating is recorded.
func (s *SessionService) Cancel(
	ctx context.Context,
	actorID int64,
	sessionID int64,
) (*models.Session, error) {
	session, err := s.loadAuthorized(ctx, actorID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, transitionError(session, "cancel")
	}

	cancelled, err := s.sessionRepo.UpdateStatusIfCurrent(
		ctx,
		sessionID,
		session.Status,
		models.SessionStatusCancelled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transitionError(session, "cancel")
		}
		return nil, err
	}

	s.publish(EventSessionCancelled, cancelled)
	return cancelled, nil
}

// UpdateDetails mutates topic and feedback notes without changing status;
// terminal sessions reject the update.
func (s *SessionService) UpdateDetails(
	ctx context.Context,
	actorID int64,
	sessionID int64,
	topic *string,
	feedback *string,
) (*models.Session, error) {
	if topic == nil && feedback == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if topic != nil && strings.TrimSpace(*topic) == "" {
		return nil, fmt.Errorf("%w: topic must not be empty", ErrValidation)
	}

	session, err := s.loadAuthorized(ctx, actorID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, transitionError(session, "update")
	}

	updated, err := s.sessionRepo.UpdateDetails(ctx, sessionID, topic, feedback)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transitionError(session, "update")
		}
		return nil, err
	}
	return updated, nil
}

func (s *SessionService) GetSession(
	ctx context.Context,
	actorID int64,
	sessionID int64,
) (*models.Session, error) {
	return s.loadAuthorized(ctx, actorID, sessionID)
}

func (s *SessionService) ListSessions(
	ctx context.Context,
	actorID int64,
	filter repository.SessionListFilter,
) ([]models.Session, error) {
	return s.sessionRepo.List(ctx, repository.SessionListFilter{
		ActorID:   actorID,
		Status:    filter.Status,
		Timeframe: filter.Timeframe,
	})
}

func (s *SessionService) loadAuthorized(
	ctx context.Context,
	actorID int64,
	sessionID int64,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %d", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}
	if err := authorizeActor(actorID, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) publish(eventType string, session *models.Session) {
	s.notifier.Publish(Event{
		Type:       eventType,
		LearnerID:  session.LearnerID,
		MentorID:   session.MentorID,
		SessionID:  session.ID,
		StartAt:    session.StartAt,
		OccurredAt: s.clock.Now(),
	})
}

func authorizeActor(actorID int64, session *models.Session) error {
	if actorID != session.LearnerID && actorID != session.MentorID {
		return fmt.Errorf(
			"%w: actor %d is neither learner nor mentor of session %d",
			ErrUnauthorized, actorID, session.ID,
		)
	}
	return nil
}

func transitionError(session *models.Session, action string) error {
	return fmt.Errorf(
		"%w: cannot %s session %d while %s",
		ErrInvalidStateTransition, action, session.ID, session.Status,
	)
}
