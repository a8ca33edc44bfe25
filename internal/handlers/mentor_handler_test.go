package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medet-a/MentorLinkBack/internal/models"
	"github.com/medet-a/MentorLinkBack/internal/repository"
	"github.com/medet-a/MentorLinkBack/internal/services"
)

type stubMentorDirectory struct {
	createFn  func(actorID int64, input services.CreateMentorInput) (*models.Mentor, error)
	replaceFn func(actorID, mentorID int64, windows []repository.WindowInput) ([]models.AvailabilityWindow, error)
	getFn     func(mentorID int64) (*models.Mentor, error)
}

func (s *stubMentorDirectory) CreateMentor(
	_ context.Context,
	actorID int64,
	input services.CreateMentorInput,
) (*models.Mentor, error) {
	return s.createFn(actorID, input)
}

func (s *stubMentorDirectory) ReplaceAvailability(
	_ context.Context,
	actorID int64,
	mentorID int64,
	windows []repository.WindowInput,
) ([]models.AvailabilityWindow, error) {
	return s.replaceFn(actorID, mentorID, windows)
}

func (s *stubMentorDirectory) GetMentor(_ context.Context, mentorID int64) (*models.Mentor, error) {
	return s.getFn(mentorID)
}

type stubMentorList struct {
	listFn func(filter repository.MentorListFilter) ([]models.Mentor, int, error)
}

func (s *stubMentorList) List(
	_ context.Context,
	filter repository.MentorListFilter,
) ([]models.Mentor, int, error) {
	return s.listFn(filter)
}

type stubWindowList struct {
	windows []models.AvailabilityWindow
}

func (s *stubWindowList) ListForMentor(_ context.Context, _ int64) ([]models.AvailabilityWindow, error) {
	return s.windows, nil
}

type stubRecommender struct {
	recommendFn func(query services.RecommendationQuery, limit int) ([]models.MentorWithScore, error)
}

func (s *stubRecommender) RecommendMentors(
	_ context.Context,
	query services.RecommendationQuery,
	limit int,
) ([]models.MentorWithScore, error) {
	return s.recommendFn(query, limit)
}

func mentorApp(userID string, handler *MentorHandler) *fiber.App {
	app := newAuthedApp(userID)
	app.Post("/mentors", handler.CreateMentor)
	app.Get("/mentors", handler.ListMentors)
	app.Get("/mentors/recommended", handler.GetRecommendedMentors)
	app.Get("/mentors/:id", handler.GetMentor)
	app.Put("/mentors/:id/availability", handler.ReplaceAvailability)
	return app
}

func TestCreateMentorHandler(t *testing.T) {
	handler := &MentorHandler{service: &stubMentorDirectory{
		createFn: func(actorID int64, input services.CreateMentorInput) (*models.Mentor, error) {
			if actorID != 7 {
				t.Fatalf("expected actor 7, got %d", actorID)
			}
			return &models.Mentor{
				ID:              actorID,
				FullName:        input.FullName,
				HourlyRateCents: input.HourlyRateCents,
			}, nil
		},
	}}

	resp, body := performJSON(t, mentorApp("7", handler), fiber.MethodPost, "/mentors", fiber.Map{
		"full_name":         "Aliya T",
		"hourly_rate_cents": 12000,
		"specialties":       []string{"golang"},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (body %v)", resp.StatusCode, body)
	}
	mentor, ok := body["mentor"].(map[string]any)
	if !ok || mentor["full_name"] != "Aliya T" {
		t.Fatalf("expected mentor payload, got %v", body)
	}
	if _, exposed := mentor["rating_sum"]; exposed {
		t.Fatal("rating_sum must not leak into responses")
	}
}

func TestCreateMentorHandlerDuplicate(t *testing.T) {
	handler := &MentorHandler{service: &stubMentorDirectory{
		createFn: func(actorID int64, _ services.CreateMentorInput) (*models.Mentor, error) {
			return nil, fmt.Errorf("%w: mentor %d already exists", services.ErrConflict, actorID)
		},
	}}

	resp, body := performJSON(t, mentorApp("7", handler), fiber.MethodPost, "/mentors", fiber.Map{
		"full_name":         "Aliya T",
		"hourly_rate_cents": 12000,
	})
	assertErrorCode(t, resp, body, fiber.StatusConflict, "conflict")
}

func TestListMentorsHandlerPagination(t *testing.T) {
	handler := &MentorHandler{mentorRepo: &stubMentorList{
		listFn: func(filter repository.MentorListFilter) ([]models.Mentor, int, error) {
			if filter.Limit != 2 || filter.Offset != 2 {
				t.Fatalf("expected limit 2 offset 2, got %+v", filter)
			}
			if filter.Specialty != "golang" {
				t.Fatalf("expected specialty filter, got %q", filter.Specialty)
			}
			return []models.Mentor{{ID: 3}, {ID: 4}}, 5, nil
		},
	}}

	resp, body := performJSON(
		t, mentorApp("7", handler),
		fiber.MethodGet, "/mentors?page=2&limit=2&specialty=golang", nil,
	)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (body %v)", resp.StatusCode, body)
	}

	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination meta, got %v", body)
	}
	if pagination["total"] != float64(5) || pagination["total_pages"] != float64(3) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}

func TestGetMentorHandler(t *testing.T) {
	handler := &MentorHandler{
		service: &stubMentorDirectory{
			getFn: func(mentorID int64) (*models.Mentor, error) {
				return &models.Mentor{
					ID:          mentorID,
					FullName:    "Aliya T",
					RatingSum:   9,
					RatingCount: 2,
				}, nil
			},
		},
		availabilityRepo: &stubWindowList{windows: []models.AvailabilityWindow{
			{Weekday: time.Monday, StartMinute: 8 * 60, EndMinute: 12 * 60},
		}},
	}

	resp, body := performJSON(t, mentorApp("7", handler), fiber.MethodGet, "/mentors/3", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (body %v)", resp.StatusCode, body)
	}

	mentor, _ := body["mentor"].(map[string]any)
	if mentor["rating"] != 4.5 {
		t.Fatalf("expected derived rating 4.5, got %v", mentor["rating"])
	}

	windows, ok := body["windows"].([]any)
	if !ok || len(windows) != 1 {
		t.Fatalf("expected one window, got %v", body)
	}
	window, _ := windows[0].(map[string]any)
	if window["weekday"] != "monday" || window["start"] != "08:00" || window["end"] != "12:00" {
		t.Fatalf("unexpected window payload: %v", window)
	}
}

func TestGetMentorHandlerNotFound(t *testing.T) {
	handler := &MentorHandler{
		service: &stubMentorDirectory{
			getFn: func(mentorID int64) (*models.Mentor, error) {
				return nil, fmt.Errorf("%w: mentor %d", services.ErrMentorNotFound, mentorID)
			},
		},
		availabilityRepo: &stubWindowList{},
	}

	resp, body := performJSON(t, mentorApp("7", handler), fiber.MethodGet, "/mentors/999", nil)
	assertErrorCode(t, resp, body, fiber.StatusNotFound, "not_found")
}

func TestReplaceAvailabilityHandler(t *testing.T) {
	handler := &MentorHandler{service: &stubMentorDirectory{
		replaceFn: func(actorID, mentorID int64, windows []repository.WindowInput) ([]models.AvailabilityWindow, error) {
			if actorID != 7 || mentorID != 7 {
				t.Fatalf("unexpected ids: actor=%d mentor=%d", actorID, mentorID)
			}
			if len(windows) != 1 || windows[0].Weekday != time.Monday || windows[0].StartMinute != 8*60 {
				t.Fatalf("unexpected windows: %+v", windows)
			}
			return []models.AvailabilityWindow{
				{MentorID: mentorID, Weekday: time.Monday, StartMinute: 8 * 60, EndMinute: 12 * 60},
			}, nil
		},
	}}

	resp, body := performJSON(t, mentorApp("7", handler), fiber.MethodPut, "/mentors/7/availability", fiber.Map{
		"windows": []fiber.Map{
			{"weekday": "monday", "start": "08:00", "end": "12:00"},
		},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (body %v)", resp.StatusCode, body)
	}
}

func TestReplaceAvailabilityHandlerRejectsOverlap(t *testing.T) {
	handler := &MentorHandler{service: &stubMentorDirectory{
		replaceFn: func(int64, int64, []repository.WindowInput) ([]models.AvailabilityWindow, error) {
			t.Fatal("service must not be called for invalid windows")
			return nil, nil
		},
	}}

	resp, _ := performJSON(t, mentorApp("7", handler), fiber.MethodPut, "/mentors/7/availability", fiber.Map{
		"windows": []fiber.Map{
			{"weekday": "monday", "start": "08:00", "end": "12:00"},
			{"weekday": "monday", "start": "11:00", "end": "14:00"},
		},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetRecommendedMentorsHandler(t *testing.T) {
	handler := &MentorHandler{discovery: &stubRecommender{
		recommendFn: func(query services.RecommendationQuery, limit int) ([]models.MentorWithScore, error) {
			if len(query.Interests) != 2 || query.Interests[0] != "golang" || query.Interests[1] != "system design" {
				t.Fatalf("unexpected interests: %v", query.Interests)
			}
			if query.MaxRateCents != 15000 {
				t.Fatalf("expected max rate 15000, got %d", query.MaxRateCents)
			}
			return []models.MentorWithScore{
				{Mentor: models.Mentor{ID: 2, FullName: "Go Expert"}, MatchScore: 80},
			}, nil
		},
	}}

	resp, body := performJSON(
		t, mentorApp("7", handler),
		fiber.MethodGet, "/mentors/recommended?interests=golang,%20system%20design&max_rate_cents=15000", nil,
	)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (body %v)", resp.StatusCode, body)
	}

	mentors, ok := body["mentors"].([]any)
	if !ok || len(mentors) != 1 {
		t.Fatalf("expected one recommendation, got %v", body)
	}
	first, _ := mentors[0].(map[string]any)
	if first["match_score"] != float64(80) {
		t.Fatalf("expected match_score 80, got %v", first["match_score"])
	}
}
