package services

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/repositories"
)

// AnalyticsSnapshot is the full donation-analytics read model, assembled in
// one pass so the page loads with a single request.
type AnalyticsSnapshot struct {
	Overview       repositories.DonationOverview  `json:"overview"`
	FoodTypes      []repositories.ShareBucket     `json:"food_type_distribution"`
	TopDonors      []repositories.TopDonor        `json:"top_donors"`
	MonthlyTrends  []repositories.TrendPoint      `json:"monthly_trends"`
	DailyPatterns  []repositories.TrendPoint      `json:"daily_patterns"`
	Requests       repositories.RequestAnalytics  `json:"requests"`
	Locations      []repositories.CountBucket     `json:"location_distribution"`
	PeakHours      []repositories.CountBucket     `json:"peak_hours"`
	Lifecycle      repositories.Lifecycle         `json:"lifecycle"`
	HighEngagement []repositories.EngagedDonation `json:"high_engagement"`
	Feedback       repositories.FeedbackSummary   `json:"feedback"`
}

type AnalyticsService struct {
	Repo repositories.AnalyticsRepository
	DB   *sql.DB
}

func (s AnalyticsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s AnalyticsService) repo() repositories.AnalyticsRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.AnalyticsRepository{DB: s.db()}
}

func (s AnalyticsService) Snapshot(ctx context.Context) (AnalyticsSnapshot, error) {
	var (
		snap AnalyticsSnapshot
		err  error
	)
	r := s.repo()

	if snap.Overview, err = r.Overview(ctx); err != nil {
		return snap, err
	}
	if snap.FoodTypes, err = r.FoodTypeDistribution(ctx); err != nil {
		return snap, err
	}
	if snap.TopDonors, err = r.TopDonors(ctx); err != nil {
		return snap, err
	}
	if snap.MonthlyTrends, err = r.MonthlyTrends(ctx); err != nil {
		return snap, err
	}
	if snap.DailyPatterns, err = r.DailyPatterns(ctx); err != nil {
		return snap, err
	}
	if snap.Requests, err = r.Requests(ctx); err != nil {
		return snap, err
	}
	if snap.Locations, err = r.Locations(ctx); err != nil {
		return snap, err
	}
	if snap.PeakHours, err = r.PeakHours(ctx); err != nil {
		return snap, err
	}
	if snap.Lifecycle, err = r.Lifecycle(ctx); err != nil {
		return snap, err
	}
	if snap.HighEngagement, err = r.HighEngagement(ctx); err != nil {
		return snap, err
	}
	if snap.Feedback, err = r.DonationFeedback(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}
