package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medet-a/MentorLinkBack/internal/models"
	"github.com/medet-a/MentorLinkBack/internal/services"
)

type bookingLedger interface {
	CreateBooking(ctx context.Context, learnerID int64, input services.CreateBookingInput) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID int64) (*models.Session, error)
	CancelBooking(ctx context.Context, actorID int64, bookingID int64) error
	GetBooking(ctx context.Context, actorID int64, bookingID int64) (*models.Booking, error)
}

type BookingHandler struct {
	service bookingLedger
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	MentorID        int64  `json:"mentor_id"`
	StartAt         string `json:"start_at"`
	DurationMinutes int    `json:"duration_minutes"`
	Topic           string `json:"topic"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	learnerID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartAt))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_at must be a valid RFC3339 timestamp",
		})
	}

	booking, err := h.service.CreateBooking(c.Context(), learnerID, services.CreateBookingInput{
		MentorID:        req.MentorID,
		StartAt:         startAt,
		DurationMinutes: req.DurationMinutes,
		Topic:           req.Topic,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booking": booking})
}

// ConfirmBooking finalizes a pending booking into a scheduled session.
// External authorization (payment) is a precondition handled upstream.
func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	if _, err := h.service.GetBooking(c.Context(), actorID, bookingID); err != nil {
		return mapServiceError(c, err)
	}

	session, err := h.service.ConfirmBooking(c.Context(), bookingID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	if err := h.service.CancelBooking(c.Context(), actorID, bookingID); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"status": "cancelled"})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.service.GetBooking(c.Context(), actorID, bookingID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}
