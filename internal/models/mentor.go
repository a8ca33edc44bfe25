package models

import "time"

// Mentor is the directory record for a user who offers mentorship. The id is
// the mentor's account id, so it doubles as an actor id in authorization
// checks. RatingSum and RatingCount are maintained by the session lifecycle;
// the average is always derived from them rather than stored.
type Mentor struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"full_name"`
	Bio             *string   `json:"bio"`
	Specialties     []string  `json:"specialties"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	IsVerified      bool      `json:"is_verified"`
	RatingSum       int64     `json:"-"`
	RatingCount     int64     `json:"rating_count"`
	TotalSessions   int64     `json:"total_sessions"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Rating returns the mentor's average rating, 0 when nobody has rated yet.
func (m *Mentor) Rating() float64 {
	if m.RatingCount == 0 {
		return 0
	}
	return float64(m.RatingSum) / float64(m.RatingCount)
}

type MentorWithScore struct {
	Mentor
	MatchScore int `json:"match_score"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
