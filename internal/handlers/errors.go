package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/medet-a/MentorLinkBack/internal/services"
)

// mapServiceError translates service sentinels into distinct HTTP responses.
// Codes stay machine-readable so clients can react (re-poll availability,
// surface "slot taken") instead of treating everything as one failure.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return errorJSON(c, fiber.StatusBadRequest, "validation_error", err)
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(c, fiber.StatusForbidden, "unauthorized", err)
	case errors.Is(err, services.ErrMentorNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, pgx.ErrNoRows):
		return errorJSON(c, fiber.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrSlotUnavailable):
		return errorJSON(c, fiber.StatusConflict, "slot_unavailable", err)
	case errors.Is(err, services.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "conflict", err)
	case errors.Is(err, services.ErrInvalidStateTransition):
		return errorJSON(c, fiber.StatusUnprocessableEntity, "invalid_state_transition", err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process request",
			"code":  "internal",
		})
	}
}

func errorJSON(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": code})
}
