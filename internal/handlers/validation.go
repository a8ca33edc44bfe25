package handlers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/medet-a/MentorLinkBack/internal/repository"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

type availabilityWindowRequest struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// parseAvailabilityWindows validates the free-form schedule payload once at
// the boundary and converts it to typed windows: known weekday names,
// hour-aligned HH:MM times, start before end, no overlaps per weekday.
func parseAvailabilityWindows(
	requests []availabilityWindowRequest,
) ([]repository.WindowInput, string) {
	windows := make([]repository.WindowInput, 0, len(requests))
	for i, req := range requests {
		weekday, ok := weekdayNames[strings.ToLower(strings.TrimSpace(req.Weekday))]
		if !ok {
			return nil, fmt.Sprintf("windows[%d]: weekday must be a weekday name", i)
		}
		startMinute, err := parseClockMinute(req.Start)
		if err != "" {
			return nil, fmt.Sprintf("windows[%d].start: %s", i, err)
		}
		endMinute, err := parseClockMinute(req.End)
		if err != "" {
			return nil, fmt.Sprintf("windows[%d].end: %s", i, err)
		}
		if startMinute >= endMinute {
			return nil, fmt.Sprintf("windows[%d]: start must be before end", i)
		}
		windows = append(windows, repository.WindowInput{
			Weekday:     weekday,
			StartMinute: startMinute,
			EndMinute:   endMinute,
		})
	}

	sorted := make([]repository.WindowInput, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weekday == sorted[j].Weekday {
			return sorted[i].StartMinute < sorted[j].StartMinute
		}
		return sorted[i].Weekday < sorted[j].Weekday
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Weekday == sorted[i-1].Weekday &&
			sorted[i].StartMinute < sorted[i-1].EndMinute {
			return nil, fmt.Sprintf(
				"windows for %s overlap", strings.ToLower(sorted[i].Weekday.String()),
			)
		}
	}

	return windows, ""
}

// parseClockMinute turns an hour-aligned "HH:MM" into minutes from midnight.
func parseClockMinute(value string) (int, string) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, "must be a valid HH:MM time"
	}
	if parsed.Minute() != 0 {
		return 0, "must be aligned to the hour"
	}
	return parsed.Hour() * 60, ""
}
