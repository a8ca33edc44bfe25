package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type slotResolver interface {
	ResolveSlots(ctx context.Context, mentorID int64, date time.Time) ([]time.Time, error)
}

type AvailabilityHandler struct {
	service slotResolver
}

func NewAvailabilityHandler(service slotResolver) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// GetSlots lists the bookable start times for a mentor on a date. An empty
// list is a normal answer, never an error.
func (h *AvailabilityHandler) GetSlots(c *fiber.Ctx) error {
	mentorID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mentor id"})
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(c.Query("date")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be a valid YYYY-MM-DD date",
		})
	}

	slots, err := h.service.ResolveSlots(c.Context(), mentorID, date)
	if err != nil {
		return mapServiceError(c, err)
	}

	formatted := make([]string, 0, len(slots))
	for _, slot := range slots {
		formatted = append(formatted, slot.UTC().Format(time.RFC3339))
	}

	return c.JSON(fiber.Map{"slots": formatted})
}
