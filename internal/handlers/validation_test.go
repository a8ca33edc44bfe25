package handlers

import (
	"testing"
	"time"
)

func TestParseAvailabilityWindows(t *testing.T) {
	windows, errMsg := parseAvailabilityWindows([]availabilityWindowRequest{
		{Weekday: "Monday", Start: "08:00", End: "12:00"},
		{Weekday: "wednesday", Start: "14:00", End: "18:00"},
	})
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[0].Weekday != time.Monday || windows[0].StartMinute != 8*60 || windows[0].EndMinute != 12*60 {
		t.Fatalf("unexpected first window: %+v", windows[0])
	}
	if windows[1].Weekday != time.Wednesday {
		t.Fatalf("unexpected second window: %+v", windows[1])
	}
}

func TestParseAvailabilityWindowsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		requests []availabilityWindowRequest
	}{
		{
			"unknown weekday",
			[]availabilityWindowRequest{{Weekday: "someday", Start: "08:00", End: "12:00"}},
		},
		{
			"malformed time",
			[]availabilityWindowRequest{{Weekday: "monday", Start: "8am", End: "12:00"}},
		},
		{
			"unaligned time",
			[]availabilityWindowRequest{{Weekday: "monday", Start: "08:30", End: "12:00"}},
		},
		{
			"start after end",
			[]availabilityWindowRequest{{Weekday: "monday", Start: "12:00", End: "08:00"}},
		},
		{
			"start equals end",
			[]availabilityWindowRequest{{Weekday: "monday", Start: "08:00", End: "08:00"}},
		},
		{
			"overlap within weekday",
			[]availabilityWindowRequest{
				{Weekday: "monday", Start: "08:00", End: "12:00"},
				{Weekday: "monday", Start: "11:00", End: "14:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, errMsg := parseAvailabilityWindows(tt.requests); errMsg == "" {
				t.Fatal("expected a validation message")
			}
		})
	}
}

func TestParseAvailabilityWindowsAllowsAdjacentWindows(t *testing.T) {
	_, errMsg := parseAvailabilityWindows([]availabilityWindowRequest{
		{Weekday: "monday", Start: "08:00", End: "12:00"},
		{Weekday: "monday", Start: "12:00", End: "16:00"},
	})
	if errMsg != "" {
		t.Fatalf("adjacent windows should be valid, got %s", errMsg)
	}
}

func TestParseAvailabilityWindowsSameTimesDifferentDays(t *testing.T) {
	_, errMsg := parseAvailabilityWindows([]availabilityWindowRequest{
		{Weekday: "monday", Start: "08:00", End: "12:00"},
		{Weekday: "tuesday", Start: "08:00", End: "12:00"},
	})
	if errMsg != "" {
		t.Fatalf("same hours on different days should be valid, got %s", errMsg)
	}
}

func TestFormatClockMinute(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "00:00"},
		{8 * 60, "08:00"},
		{12*60 + 30, "12:30"},
		{23*60 + 59, "23:59"},
	}
	for _, tt := range tests {
		if got := formatClockMinute(tt.minute); got != tt.want {
			t.Fatalf("formatClockMinute(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}
