package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
)

// FeedbackRepository covers the community_feedback table.
type FeedbackRepository struct {
	DB *sql.DB
}

func (r FeedbackRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r FeedbackRepository) Create(ctx context.Context, f models.Feedback) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO community_feedback (user_id, feedback_type, rating, subject, message, priority)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.UserID, f.FeedbackType, f.Rating, f.Subject, f.Message, f.Priority,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update edits a feedback entry; only the author can edit their own row.
func (r FeedbackRepository) Update(ctx context.Context, f models.Feedback) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE community_feedback
		SET feedback_type = ?, rating = ?, subject = ?, message = ?, priority = ?
		WHERE id = ? AND user_id = ?`,
		f.FeedbackType, f.Rating, f.Subject, f.Message, f.Priority, f.ID, f.UserID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Feedback"}
	}
	return nil
}

func (r FeedbackRepository) Delete(ctx context.Context, feedbackID, userID int64) error {
	res, err := r.db().ExecContext(ctx,
		`DELETE FROM community_feedback WHERE id = ? AND user_id = ?`, feedbackID, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Feedback"}
	}
	return nil
}

func (r FeedbackRepository) Respond(ctx context.Context, feedbackID int64, response, status string, respondedBy int64) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE community_feedback
		SET response = ?, status = ?, responded_by = ?, responded_at = NOW()
		WHERE id = ?`,
		response, status, respondedBy, feedbackID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Feedback"}
	}
	return nil
}

func (r FeedbackRepository) UpdateStatus(ctx context.Context, feedbackID int64, status string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE community_feedback SET status = ? WHERE id = ?`, status, feedbackID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Feedback"}
	}
	return nil
}

// FeedbackFilter narrows the feedback list.
type FeedbackFilter struct {
	Status string
	Type   string
	Search string
}

// List returns feedback joined with author and responder, ordered by priority
// rank, then status rank, then recency.
func (r FeedbackRepository) List(ctx context.Context, f FeedbackFilter) ([]models.Feedback, error) {
	var b query.Builder
	b.Eq("cf.status", f.Status)
	b.Eq("cf.feedback_type", f.Type)
	b.Like(f.Search, "cf.subject", "cf.message", "u.full_name")
	clause, args := b.Clause()

	rows, err := r.db().QueryContext(ctx, `
		SELECT cf.id, cf.user_id, cf.feedback_type, cf.rating, cf.subject, cf.message,
		       cf.status, cf.priority, COALESCE(cf.response, ''), cf.responded_by, cf.responded_at,
		       cf.created_at, cf.updated_at,
		       u.full_name, u.email, COALESCE(resp.full_name, '')
		FROM community_feedback cf
		JOIN user_accounts u ON cf.user_id = u.user_id
		LEFT JOIN user_accounts resp ON cf.responded_by = resp.user_id
		`+clause+`
		ORDER BY
			`+query.FieldRank("cf.priority", "urgent", "high", "medium", "low")+`,
			`+query.FieldRank("cf.status", "new", "reviewed", "responded", "resolved", "archived")+`,
			cf.created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(
			&fb.ID, &fb.UserID, &fb.FeedbackType, &fb.Rating, &fb.Subject, &fb.Message,
			&fb.Status, &fb.Priority, &fb.Response, &fb.RespondedBy, &fb.RespondedAt,
			&fb.CreatedAt, &fb.UpdatedAt, &fb.UserName, &fb.UserEmail, &fb.ResponderName,
		); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

// FeedbackStats is the aggregate block for the feedback page.
type FeedbackStats struct {
	Total     int     `json:"total_feedback"`
	New       int     `json:"new_feedback"`
	Reviewed  int     `json:"reviewed"`
	Responded int     `json:"responded"`
	Resolved  int     `json:"resolved"`
	AvgRating float64 `json:"avg_rating"`
	Positive  int     `json:"positive_feedback"`
	Negative  int     `json:"negative_feedback"`
	Urgent    int     `json:"urgent_count"`
}

func (r FeedbackRepository) Overview(ctx context.Context) (FeedbackStats, error) {
	var s FeedbackStats
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = 'new' THEN 1 END),
		       COUNT(CASE WHEN status = 'reviewed' THEN 1 END),
		       COUNT(CASE WHEN status = 'responded' THEN 1 END),
		       COUNT(CASE WHEN status = 'resolved' THEN 1 END),
		       COALESCE(AVG(rating), 0),
		       COUNT(CASE WHEN rating >= 4 THEN 1 END),
		       COUNT(CASE WHEN rating <= 2 THEN 1 END),
		       COUNT(CASE WHEN priority = 'urgent' THEN 1 END)
		FROM community_feedback`,
	).Scan(&s.Total, &s.New, &s.Reviewed, &s.Responded, &s.Resolved, &s.AvgRating, &s.Positive, &s.Negative, &s.Urgent)
	return s, err
}

// TypeBucket is a grouped aggregate with an average rating.
type TypeBucket struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

func (r FeedbackRepository) ByType(ctx context.Context) ([]TypeBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT feedback_type, COUNT(*) AS count, COALESCE(AVG(rating), 0)
		FROM community_feedback
		GROUP BY feedback_type
		ORDER BY count DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeBucket
	for rows.Next() {
		var b TypeBucket
		if err := rows.Scan(&b.Label, &b.Count, &b.AvgRating); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r FeedbackRepository) RatingDistribution(ctx context.Context) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT rating, COUNT(*)
		FROM community_feedback
		GROUP BY rating
		ORDER BY rating DESC`,
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

// DailyTrend returns feedback volume and average rating per day for the last
// 30 days.
func (r FeedbackRepository) DailyTrend(ctx context.Context) ([]TypeBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE(created_at) AS date, COUNT(*), COALESCE(AVG(rating), 0)
		FROM community_feedback
		WHERE created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)
		GROUP BY DATE(created_at)
		ORDER BY date`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeBucket
	for rows.Next() {
		var b TypeBucket
		if err := rows.Scan(&b.Label, &b.Count, &b.AvgRating); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
