package services

import (
	"context"
	"testing"

	"github.com/medet-a/MentorLinkBack/internal/models"
)

type stubMentorLister struct {
	mentors []models.Mentor
}

func (s *stubMentorLister) ListVerified(_ context.Context) ([]models.Mentor, error) {
	return s.mentors, nil
}

func ratedMentor(id int64, name string, specialties []string, rateCents int64, sum, count, total int64) models.Mentor {
	return models.Mentor{
		ID:              id,
		FullName:        name,
		Specialties:     specialties,
		HourlyRateCents: rateCents,
		IsVerified:      true,
		RatingSum:       sum,
		RatingCount:     count,
		TotalSessions:   total,
	}
}

func TestRecommendMentorsRanksBySpecialtyMatch(t *testing.T) {
	lister := &stubMentorLister{mentors: []models.Mentor{
		ratedMentor(1, "Generalist", []string{"career"}, 8000, 0, 0, 0),
		ratedMentor(2, "Go Expert", []string{"golang", "backend"}, 15000, 0, 0, 0),
	}}
	service := NewDiscoveryService(lister)

	query := RecommendationQuery{Interests: []string{"golang", "backend"}}
	results, err := service.RecommendMentors(context.Background(), query, 10)
	if err != nil {
		t.Fatalf("RecommendMentors: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != 2 {
		t.Fatalf("expected the double specialty match first, got mentor %d", results[0].ID)
	}
	if results[0].MatchScore <= results[1].MatchScore {
		t.Fatalf("expected descending scores, got %d then %d",
			results[0].MatchScore, results[1].MatchScore)
	}
}

func TestRecommendMentorsNormalizesInterestTags(t *testing.T) {
	lister := &stubMentorLister{mentors: []models.Mentor{
		ratedMentor(1, "Systems Mentor", []string{"system_design"}, 10000, 0, 0, 0),
	}}
	service := NewDiscoveryService(lister)

	query := RecommendationQuery{Interests: []string{"  System Design "}}
	results, err := service.RecommendMentors(context.Background(), query, 10)
	if err != nil {
		t.Fatalf("RecommendMentors: %v", err)
	}
	if results[0].MatchScore < 40 {
		t.Fatalf("expected tag normalization to match, score %d", results[0].MatchScore)
	}
}

func TestRecommendMentorsBudgetAndTrackRecordBonus(t *testing.T) {
	lister := &stubMentorLister{mentors: []models.Mentor{
		ratedMentor(1, "Pricey", []string{"golang"}, 30000, 0, 0, 0),
		ratedMentor(2, "Proven", []string{"golang"}, 9000, 90, 20, 25),
	}}
	service := NewDiscoveryService(lister)

	query := RecommendationQuery{Interests: []string{"golang"}, MaxRateCents: 10000}
	results, err := service.RecommendMentors(context.Background(), query, 10)
	if err != nil {
		t.Fatalf("RecommendMentors: %v", err)
	}

	// Mentor 2 earns the budget, rating, and track record bonuses on top of
	// the shared specialty match.
	if results[0].ID != 2 {
		t.Fatalf("expected the in-budget proven mentor first, got %d", results[0].ID)
	}
	if got := results[0].MatchScore; got != 90 {
		t.Fatalf("expected score 90, got %d", got)
	}
	if got := results[1].MatchScore; got != 40 {
		t.Fatalf("expected score 40 for the out-of-budget mentor, got %d", got)
	}
}

func TestRecommendMentorsTieBreaksOnRating(t *testing.T) {
	lister := &stubMentorLister{mentors: []models.Mentor{
		ratedMentor(1, "Solid", []string{"golang"}, 10000, 13, 3, 3),
		ratedMentor(2, "Stellar", []string{"golang"}, 10000, 15, 3, 3),
	}}
	service := NewDiscoveryService(lister)

	results, err := service.RecommendMentors(
		context.Background(),
		RecommendationQuery{Interests: []string{"golang"}},
		10,
	)
	if err != nil {
		t.Fatalf("RecommendMentors: %v", err)
	}
	if results[0].ID != 2 {
		t.Fatalf("expected the higher rated mentor to win the tie, got %d", results[0].ID)
	}
}

func TestRecommendMentorsHonorsLimit(t *testing.T) {
	lister := &stubMentorLister{mentors: []models.Mentor{
		ratedMentor(1, "A", nil, 10000, 0, 0, 0),
		ratedMentor(2, "B", nil, 10000, 0, 0, 0),
		ratedMentor(3, "C", nil, 10000, 0, 0, 0),
	}}
	service := NewDiscoveryService(lister)

	results, err := service.RecommendMentors(context.Background(), RecommendationQuery{}, 2)
	if err != nil {
		t.Fatalf("RecommendMentors: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}
