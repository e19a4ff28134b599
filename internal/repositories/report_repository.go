package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
)

// ReportRepository covers the user_reports moderation table.
type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r ReportRepository) UpdateStatus(ctx context.Context, reportID int64, status, resolutionNote string, resolvedBy int64) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE user_reports
		SET status = ?, resolution_note = ?, resolved_by = ?, updated_at = NOW()
		WHERE id = ?`,
		status, resolutionNote, resolvedBy, reportID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Report"}
	}
	return nil
}

func (r ReportRepository) UpdatePriority(ctx context.Context, reportID int64, priority string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE user_reports SET priority = ? WHERE id = ?`, priority, reportID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Report"}
	}
	return nil
}

func (r ReportRepository) Delete(ctx context.Context, reportID int64) error {
	_, err := r.db().ExecContext(ctx, `DELETE FROM user_reports WHERE id = ?`, reportID)
	return err
}

// Resolve marks a report resolved with the acting officer recorded.
func (r ReportRepository) Resolve(ctx context.Context, reportID, resolvedBy int64) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE user_reports SET status = 'resolved', resolved_by = ? WHERE id = ?`,
		resolvedBy, reportID,
	)
	return err
}

// Get loads the bare report row, used when resolving moderation actions.
func (r ReportRepository) Get(ctx context.Context, reportID int64) (models.UserReport, error) {
	var rep models.UserReport
	err := r.db().QueryRowContext(ctx, `
		SELECT id, reporter_id, reported_user_id, reported_post_id,
		       report_type, category, description, status, priority
		FROM user_reports
		WHERE id = ?`, reportID,
	).Scan(
		&rep.ID, &rep.ReporterID, &rep.ReportedUserID, &rep.ReportedPostID,
		&rep.ReportType, &rep.Category, &rep.Description, &rep.Status, &rep.Priority,
	)
	if err == sql.ErrNoRows {
		return rep, domain.NotFoundError{Resource: "Report"}
	}
	return rep, err
}

// ReportFilter narrows the moderation list.
type ReportFilter struct {
	Status   string
	Category string
	Search   string
}

// List returns reports joined with reporter/reported/resolver accounts,
// ordered by priority rank, then status rank, then recency.
func (r ReportRepository) List(ctx context.Context, f ReportFilter) ([]models.UserReport, error) {
	var b query.Builder
	b.Eq("ur.status", f.Status)
	b.Eq("ur.category", f.Category)
	b.Like(f.Search, "ur.description", "reporter.full_name")
	clause, args := b.Clause()

	rows, err := r.db().QueryContext(ctx, `
		SELECT ur.id, ur.reporter_id, ur.reported_user_id, ur.reported_post_id,
		       ur.report_type, ur.category, ur.description, ur.status, ur.priority,
		       ur.resolved_by, COALESCE(ur.resolution_note, ''), ur.created_at, ur.updated_at,
		       reporter.full_name, reporter.email,
		       COALESCE(reported_user.full_name, ''), COALESCE(reported_user.email, ''),
		       COALESCE(resolver.full_name, '')
		FROM user_reports ur
		JOIN user_accounts reporter ON ur.reporter_id = reporter.user_id
		LEFT JOIN user_accounts reported_user ON ur.reported_user_id = reported_user.user_id
		LEFT JOIN user_accounts resolver ON ur.resolved_by = resolver.user_id
		`+clause+`
		ORDER BY
			`+query.FieldRank("ur.priority", "critical", "high", "medium", "low")+`,
			`+query.FieldRank("ur.status", "pending", "reviewing", "resolved", "dismissed")+`,
			ur.created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserReport
	for rows.Next() {
		var rep models.UserReport
		if err := rows.Scan(
			&rep.ID, &rep.ReporterID, &rep.ReportedUserID, &rep.ReportedPostID,
			&rep.ReportType, &rep.Category, &rep.Description, &rep.Status, &rep.Priority,
			&rep.ResolvedBy, &rep.ResolutionNote, &rep.CreatedAt, &rep.UpdatedAt,
			&rep.ReporterName, &rep.ReporterEmail,
			&rep.ReportedUserName, &rep.ReportedUserEmail, &rep.ResolverName,
		); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// ReportStats is the aggregate block rendered at the top of the page.
type ReportStats struct {
	Total     int `json:"total_reports"`
	Pending   int `json:"pending_reports"`
	Reviewing int `json:"reviewing_reports"`
	Resolved  int `json:"resolved_reports"`
	Dismissed int `json:"dismissed_reports"`
	Critical  int `json:"critical_reports"`
	Today     int `json:"today_reports"`
}

func (r ReportRepository) Overview(ctx context.Context) (ReportStats, error) {
	var s ReportStats
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = 'pending' THEN 1 END),
		       COUNT(CASE WHEN status = 'reviewing' THEN 1 END),
		       COUNT(CASE WHEN status = 'resolved' THEN 1 END),
		       COUNT(CASE WHEN status = 'dismissed' THEN 1 END),
		       COUNT(CASE WHEN priority = 'critical' THEN 1 END),
		       COUNT(CASE WHEN DATE(created_at) = CURDATE() THEN 1 END)
		FROM user_reports`,
	).Scan(&s.Total, &s.Pending, &s.Reviewing, &s.Resolved, &s.Dismissed, &s.Critical, &s.Today)
	return s, err
}

// CountBucket is one labelled count in a grouped aggregate.
type CountBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (r ReportRepository) countBy(ctx context.Context, col string) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+col+`, COUNT(*) AS count FROM user_reports GROUP BY `+col+` ORDER BY count DESC`,
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

func (r ReportRepository) ByCategory(ctx context.Context) ([]CountBucket, error) {
	return r.countBy(ctx, "category")
}

func (r ReportRepository) ByType(ctx context.Context) ([]CountBucket, error) {
	return r.countBy(ctx, "report_type")
}

// TopReporters lists the five most active reporters.
func (r ReportRepository) TopReporters(ctx context.Context) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT u.full_name, COUNT(ur.id) AS report_count
		FROM user_reports ur
		JOIN user_accounts u ON ur.reporter_id = u.user_id
		GROUP BY ur.reporter_id, u.full_name
		ORDER BY report_count DESC
		LIMIT 5`,
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

// MostReported lists the five most reported users.
func (r ReportRepository) MostReported(ctx context.Context) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT u.full_name, COUNT(ur.id) AS report_count
		FROM user_reports ur
		JOIN user_accounts u ON ur.reported_user_id = u.user_id
		WHERE ur.reported_user_id IS NOT NULL
		GROUP BY ur.reported_user_id, u.full_name
		ORDER BY report_count DESC
		LIMIT 5`,
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

// DailyTrend returns report counts per day for the last 30 days.
func (r ReportRepository) DailyTrend(ctx context.Context) ([]CountBucket, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT DATE(created_at) AS date, COUNT(*)
		FROM user_reports
		WHERE created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)
		GROUP BY DATE(created_at)
		ORDER BY date`,
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
