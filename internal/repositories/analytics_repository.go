package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
)

// AnalyticsRepository runs the read-only aggregate queries behind the
// donation analytics dashboard.
type AnalyticsRepository struct {
	DB *sql.DB
}

func (r AnalyticsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

type DonationOverview struct {
	Total     int     `json:"total_donations"`
	Available int     `json:"available_donations"`
	Reserved  int     `json:"reserved_donations"`
	Claimed   int     `json:"claimed_donations"`
	Expired   int     `json:"expired_donations"`
	Cancelled int     `json:"cancelled_donations"`
	Views     int     `json:"total_views"`
	AvgViews  float64 `json:"avg_views_per_donation"`
}

func (r AnalyticsRepository) Overview(ctx context.Context) (DonationOverview, error) {
	var o DonationOverview
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = 'available' THEN 1 END),
		       COUNT(CASE WHEN status = 'reserved' THEN 1 END),
		       COUNT(CASE WHEN status = 'claimed' THEN 1 END),
		       COUNT(CASE WHEN status = 'expired' THEN 1 END),
		       COUNT(CASE WHEN status = 'cancelled' THEN 1 END),
		       COALESCE(SUM(views_count), 0),
		       COALESCE(AVG(views_count), 0)
		FROM food_donations`,
	).Scan(&o.Total, &o.Available, &o.Reserved, &o.Claimed, &o.Expired, &o.Cancelled, &o.Views, &o.AvgViews)
	return o, err
}

type ShareBucket struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

func (r AnalyticsRepository) FoodTypeDistribution(ctx context.Context) ([]ShareBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT food_type, COUNT(*) AS count,
		       ROUND((COUNT(*) * 100.0 / (SELECT COUNT(*) FROM food_donations)), 2)
		FROM food_donations
		GROUP BY food_type
		ORDER BY count DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShareBucket
	for rows.Next() {
		var b ShareBucket
		if err := rows.Scan(&b.Label, &b.Count, &b.Percentage); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type TopDonor struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Donations   int     `json:"donations_count"`
	TotalViews  int     `json:"total_views"`
	Successful  int     `json:"successful_donations"`
	SuccessRate float64 `json:"success_rate"`
}

func (r AnalyticsRepository) TopDonors(ctx context.Context) ([]TopDonor, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT u.full_name, u.email, COUNT(fd.id) AS donations_count,
		       COALESCE(SUM(fd.views_count), 0),
		       COUNT(CASE WHEN fd.status = 'claimed' THEN 1 END),
		       ROUND((COUNT(CASE WHEN fd.status = 'claimed' THEN 1 END) * 100.0 / COUNT(fd.id)), 2)
		FROM food_donations fd
		JOIN user_accounts u ON fd.user_id = u.user_id
		GROUP BY fd.user_id, u.full_name, u.email
		ORDER BY donations_count DESC
		LIMIT 10`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopDonor
	for rows.Next() {
		var d TopDonor
		if err := rows.Scan(&d.FullName, &d.Email, &d.Donations, &d.TotalViews, &d.Successful, &d.SuccessRate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type TrendPoint struct {
	Period  string `json:"period"`
	Count   int    `json:"count"`
	Claimed int    `json:"claimed_count"`
	Views   int    `json:"total_views,omitempty"`
}

// MonthlyTrends returns donation volume per month for the last 12 months.
func (r AnalyticsRepository) MonthlyTrends(ctx context.Context) ([]TrendPoint, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*),
		       COUNT(CASE WHEN status = 'claimed' THEN 1 END),
		       COALESCE(SUM(views_count), 0)
		FROM food_donations
		WHERE created_at >= DATE_SUB(NOW(), INTERVAL 12 MONTH)
		GROUP BY month
		ORDER BY month`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Period, &p.Count, &p.Claimed, &p.Views); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DailyPatterns returns donation volume per day for the last 30 days.
func (r AnalyticsRepository) DailyPatterns(ctx context.Context) ([]TrendPoint, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE(created_at) AS date, COUNT(*),
		       COUNT(CASE WHEN status = 'claimed' THEN 1 END)
		FROM food_donations
		WHERE created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)
		GROUP BY date
		ORDER BY date`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Period, &p.Count, &p.Claimed); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type RequestAnalytics struct {
	Total            int     `json:"total_requests"`
	Pending          int     `json:"pending_requests"`
	Approved         int     `json:"approved_requests"`
	Completed        int     `json:"completed_requests"`
	Rejected         int     `json:"rejected_requests"`
	Cancelled        int     `json:"cancelled_requests"`
	AvgResponseHours float64 `json:"avg_response_time_hours"`
}

func (r AnalyticsRepository) Requests(ctx context.Context) (RequestAnalytics, error) {
	var a RequestAnalytics
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = 'pending' THEN 1 END),
		       COUNT(CASE WHEN status = 'approved' THEN 1 END),
		       COUNT(CASE WHEN status = 'completed' THEN 1 END),
		       COUNT(CASE WHEN status = 'rejected' THEN 1 END),
		       COUNT(CASE WHEN status = 'cancelled' THEN 1 END),
		       COALESCE(AVG(TIMESTAMPDIFF(HOUR, reserved_at, responded_at)), 0)
		FROM food_donation_reservations`,
	).Scan(&a.Total, &a.Pending, &a.Approved, &a.Completed, &a.Rejected, &a.Cancelled, &a.AvgResponseHours)
	return a, err
}

// Locations groups donations by the trailing segment of the address.
func (r AnalyticsRepository) Locations(ctx context.Context) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT SUBSTRING_INDEX(location_address, ',', -1) AS area, COUNT(*) AS donations_count
		FROM food_donations
		WHERE location_address IS NOT NULL AND location_address != ''
		GROUP BY area
		ORDER BY donations_count DESC
		LIMIT 10`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountBucket
	for rows.Next() {
		var b CountBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// PeakHours returns donation posting volume per hour of day.
func (r AnalyticsRepository) PeakHours(ctx context.Context) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT HOUR(created_at) AS hour, COUNT(*)
		FROM food_donations
		GROUP BY hour
		ORDER BY hour`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountBucket
	for rows.Next() {
		var b CountBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type Lifecycle struct {
	AvgLifetimeHours float64 `json:"avg_lifetime_hours"`
	ClaimRate        float64 `json:"claim_rate_percentage"`
}

func (r AnalyticsRepository) Lifecycle(ctx context.Context) (Lifecycle, error) {
	var l Lifecycle
	err := r.db().QueryRowContext(ctx, `
		SELECT COALESCE(AVG(TIMESTAMPDIFF(HOUR, created_at, updated_at)), 0),
		       COALESCE(COUNT(CASE WHEN status = 'claimed' THEN 1 END) * 100.0 / NULLIF(COUNT(*), 0), 0)
		FROM food_donations
		WHERE status IN ('claimed', 'expired')`,
	).Scan(&l.AvgLifetimeHours, &l.ClaimRate)
	return l, err
}

type EngagedDonation struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	FoodType  string `json:"food_type"`
	Status    string `json:"status"`
	Views     int    `json:"views_count"`
	DonorName string `json:"donor_name"`
}

// HighEngagement returns donations viewed more than the average.
func (r AnalyticsRepository) HighEngagement(ctx context.Context) ([]EngagedDonation, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT fd.id, fd.title, fd.food_type, fd.status, fd.views_count, u.full_name
		FROM food_donations fd
		JOIN user_accounts u ON fd.user_id = u.user_id
		WHERE fd.views_count > (SELECT AVG(views_count) FROM food_donations)
		ORDER BY fd.views_count DESC
		LIMIT 10`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EngagedDonation
	for rows.Next() {
		var d EngagedDonation
		if err := rows.Scan(&d.ID, &d.Title, &d.FoodType, &d.Status, &d.Views, &d.DonorName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type FeedbackSummary struct {
	AvgRating float64 `json:"avg_rating"`
	Total     int     `json:"total_feedback"`
	Positive  int     `json:"positive_feedback"`
	Negative  int     `json:"negative_feedback"`
}

// DonationFeedback aggregates the ratings left on completed donations.
func (r AnalyticsRepository) DonationFeedback(ctx context.Context) (FeedbackSummary, error) {
	var s FeedbackSummary
	err := r.db().QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rating), 0), COUNT(*),
		       COUNT(CASE WHEN rating >= 4 THEN 1 END),
		       COUNT(CASE WHEN rating <= 2 THEN 1 END)
		FROM food_donation_feedback`,
	).Scan(&s.AvgRating, &s.Total, &s.Positive, &s.Negative)
	return s, err
}
