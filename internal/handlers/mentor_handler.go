package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/medet-a/MentorLinkBack/internal/models"
	"github.com/medet-a/MentorLinkBack/internal/repository"
	"github.com/medet-a/MentorLinkBack/internal/services"
)

type mentorDirectory interface {
	CreateMentor(ctx context.Context, actorID int64, input services.CreateMentorInput) (*models.Mentor, error)
	ReplaceAvailability(ctx context.Context, actorID int64, mentorID int64, windows []repository.WindowInput) ([]models.AvailabilityWindow, error)
	GetMentor(ctx context.Context, mentorID int64) (*models.Mentor, error)
}

type mentorListRepository interface {
	List(ctx context.Context, filter repository.MentorListFilter) ([]models.Mentor, int, error)
}

type mentorWindowRepository interface {
	ListForMentor(ctx context.Context, mentorID int64) ([]models.AvailabilityWindow, error)
}

type mentorRecommender interface {
	RecommendMentors(ctx context.Context, query services.RecommendationQuery, limit int) ([]models.MentorWithScore, error)
}

type MentorHandler struct {
	service          mentorDirectory
	mentorRepo       mentorListRepository
	availabilityRepo mentorWindowRepository
	discovery        mentorRecommender
}

func NewMentorHandler(
	service *services.MentorService,
	mentorRepo *repository.MentorRepository,
	availabilityRepo *repository.AvailabilityRepository,
	discovery *services.DiscoveryService,
) *MentorHandler {
	return &MentorHandler{
		service:          service,
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		discovery:        discovery,
	}
}

type createMentorRequest struct {
	FullName        string   `json:"full_name"`
	Bio             *string  `json:"bio"`
	Specialties     []string `json:"specialties"`
	HourlyRateCents int64    `json:"hourly_rate_cents"`
}

type replaceAvailabilityRequest struct {
	Windows []availabilityWindowRequest `json:"windows"`
}

type mentorResponse struct {
	models.Mentor
	Rating float64 `json:"rating"`
}

type mentorScoreResponse struct {
	mentorResponse
	MatchScore int `json:"match_score"`
}

func (h *MentorHandler) CreateMentor(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createMentorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	mentor, err := h.service.CreateMentor(c.Context(), actorID, services.CreateMentorInput{
		FullName:        req.FullName,
		Bio:             req.Bio,
		Specialties:     req.Specialties,
		HourlyRateCents: req.HourlyRateCents,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"mentor": buildMentorResponse(*mentor)})
}

func (h *MentorHandler) ListMentors(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	maxRate, err := parseNonNegativeInt64(c.Query("max_rate_cents"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_rate_cents must be a valid non-negative integer",
		})
	}
	minRating, err := parseNonNegativeFloat(c.Query("min_rating"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "min_rating must be a valid non-negative number",
		})
	}

	mentors, total, err := h.mentorRepo.List(c.Context(), repository.MentorListFilter{
		Specialty:    strings.TrimSpace(c.Query("specialty")),
		MaxRateCents: maxRate,
		MinRating:    minRating,
		Offset:       (page - 1) * limit,
		Limit:        limit,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	response := make([]mentorResponse, 0, len(mentors))
	for _, mentor := range mentors {
		response = append(response, buildMentorResponse(mentor))
	}

	return c.JSON(fiber.Map{
		"mentors":    response,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *MentorHandler) GetMentor(c *fiber.Ctx) error {
	mentorID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	mentor, err := h.service.GetMentor(c.Context(), mentorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	windows, err := h.availabilityRepo.ListForMentor(c.Context(), mentorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"mentor":  buildMentorResponse(*mentor),
		"windows": buildWindowResponses(windows),
	})
}

func (h *MentorHandler) ReplaceAvailability(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	mentorID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	var req replaceAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	windows, validationErr := parseAvailabilityWindows(req.Windows)
	if validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	saved, err := h.service.ReplaceAvailability(c.Context(), actorID, mentorID, windows)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"windows": buildWindowResponses(saved)})
}

func (h *MentorHandler) GetRecommendedMentors(c *fiber.Ctx) error {
	if _, err := parseActorID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	maxRate, err := parseNonNegativeInt64(c.Query("max_rate_cents"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_rate_cents must be a valid non-negative integer",
		})
	}

	interests := make([]string, 0)
	for _, interest := range strings.Split(c.Query("interests"), ",") {
		if trimmed := strings.TrimSpace(interest); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}

	mentors, err := h.discovery.RecommendMentors(c.Context(), services.RecommendationQuery{
		Interests:    interests,
		MaxRateCents: maxRate,
	}, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	response := make([]mentorScoreResponse, 0, len(mentors))
	for _, mentor := range mentors {
		response = append(response, mentorScoreResponse{
			mentorResponse: buildMentorResponse(mentor.Mentor),
			MatchScore:     mentor.MatchScore,
		})
	}

	return c.JSON(fiber.Map{"mentors": response})
}

type windowResponse struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func buildMentorResponse(mentor models.Mentor) mentorResponse {
	return mentorResponse{Mentor: mentor, Rating: mentor.Rating()}
}

func buildWindowResponses(windows []models.AvailabilityWindow) []windowResponse {
	response := make([]windowResponse, 0, len(windows))
	for _, window := range windows {
		response = append(response, windowResponse{
			Weekday: strings.ToLower(window.Weekday.String()),
			Start:   formatClockMinute(window.StartMinute),
			End:     formatClockMinute(window.EndMinute),
		})
	}
	return response
}

func formatClockMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseNonNegativeInt64(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || parsed < 0 {
		return 0, strconv.ErrRange
	}
	return parsed, nil
}

func parseNonNegativeFloat(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || parsed < 0 {
		return 0, strconv.ErrRange
	}
	return parsed, nil
}
