package services

import (
	"context"
	"sort"
	"strings"

	"github.com/medet-a/MentorLinkBack/internal/models"
)

type MentorLister interface {
	ListVerified(ctx context.Context) ([]models.Mentor, error)
}

// DiscoveryService ranks verified mentors against a learner's stated
// interests and budget. Scoring is intentionally coarse; the directory is
// read-mostly and ties break on rating.
type DiscoveryService struct {
	mentorRepo MentorLister
}

func NewDiscoveryService(mentorRepo MentorLister) *DiscoveryService {
	return &DiscoveryService{mentorRepo: mentorRepo}
}

type RecommendationQuery struct {
	Interests    []string
	MaxRateCents int64
}

func (s *DiscoveryService) RecommendMentors(
	ctx context.Context,
	query RecommendationQuery,
	limit int,
) ([]models.MentorWithScore, error) {
	mentors, err := s.mentorRepo.ListVerified(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.MentorWithScore, 0, len(mentors))
	for _, mentor := range mentors {
		scored = append(scored, models.MentorWithScore{
			Mentor:     mentor,
			MatchScore: matchScore(query, &mentor),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore == scored[j].MatchScore {
			return scored[i].Rating() > scored[j].Rating()
		}
		return scored[i].MatchScore > scored[j].MatchScore
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return scored, nil
}

func matchScore(query RecommendationQuery, mentor *models.Mentor) int {
	score := 0
	specialties := normalizeSet(mentor.Specialties)

	for _, interest := range query.Interests {
		if _, ok := specialties[normalizeTag(interest)]; ok {
			score += 40
		}
	}

	if mentor.Rating() > 4.0 {
		score += 20
	}
	if mentor.TotalSessions > 10 {
		score += 15
	}
	if query.MaxRateCents > 0 && mentor.HourlyRateCents <= query.MaxRateCents {
		score += 15
	}

	return score
}

func normalizeSet(values []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(values))
	for _, value := range values {
		if key := normalizeTag(value); key != "" {
			normalized[key] = struct{}{}
		}
	}
	return normalized
}

func normalizeTag(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}
