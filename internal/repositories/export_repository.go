package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/query"
)

// ExportRepository produces the tabular datasets behind generated reports.
// Each dataset is returned as a header row plus string records, ready for
// CSV/PDF rendering.
type ExportRepository struct {
	DB *sql.DB
}

func (r ExportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// Dataset is an ordered tabular result.
type Dataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// rangeClause binds an optional created-at window on the given column.
func rangeClause(col, dateFrom, dateTo string) (string, []any) {
	var b query.Builder
	b.DateFrom(col, dateFrom)
	b.DateTo(col, dateTo)
	return b.Clause()
}

func (r ExportRepository) collect(ctx context.Context, q string, args []any, columns []string) (Dataset, error) {
	ds := Dataset{Columns: columns}

	rows, err := r.db().QueryContext(ctx, q, args...)
	if err != nil {
		return ds, err
	}
	defer rows.Close()

	vals := make([]sql.NullString, len(columns))
	ptrs := make([]any, len(columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return ds, err
		}
		record := make([]string, len(columns))
		for i, v := range vals {
			record[i] = v.String
		}
		ds.Rows = append(ds.Rows, record)
	}
	return ds, rows.Err()
}

func (r ExportRepository) Donations(ctx context.Context, dateFrom, dateTo string) (Dataset, error) {
	clause, args := rangeClause("fd.created_at", dateFrom, dateTo)
	return r.collect(ctx, `
		SELECT fd.id, fd.title, fd.food_type, fd.status, fd.views_count,
		       COALESCE(fd.location_address, ''), fd.created_at,
		       u.full_name, u.email
		FROM food_donations fd
		JOIN user_accounts u ON fd.user_id = u.user_id
		`+clause+`
		ORDER BY fd.created_at DESC`,
		args,
		[]string{"id", "title", "food_type", "status", "views_count", "location_address", "created_at", "donor_name", "donor_email"},
	)
}

func (r ExportRepository) Users(ctx context.Context, dateFrom, dateTo string) (Dataset, error) {
	clause, args := rangeClause("created_at", dateFrom, dateTo)
	return r.collect(ctx, `
		SELECT user_id, full_name, email, role, status, created_at
		FROM user_accounts
		`+clause+`
		ORDER BY created_at DESC`,
		args,
		[]string{"user_id", "full_name", "email", "role", "status", "created_at"},
	)
}

func (r ExportRepository) Announcements(ctx context.Context, dateFrom, dateTo string) (Dataset, error) {
	clause, args := rangeClause("a.created_at", dateFrom, dateTo)
	return r.collect(ctx, `
		SELECT a.id, a.title, a.type, a.priority, a.status,
		       a.likes_count, a.comments_count, a.shares_count, a.created_at,
		       u.full_name
		FROM announcements a
		JOIN user_accounts u ON a.user_id = u.user_id
		`+clause+`
		ORDER BY a.created_at DESC`,
		args,
		[]string{"id", "title", "type", "priority", "status", "likes_count", "comments_count", "shares_count", "created_at", "author_name"},
	)
}

func (r ExportRepository) Requests(ctx context.Context, dateFrom, dateTo string) (Dataset, error) {
	clause, args := rangeClause("fdr.reserved_at", dateFrom, dateTo)
	return r.collect(ctx, `
		SELECT fdr.id, fdr.status, fdr.reserved_at, fdr.responded_at,
		       fd.title, u.full_name, u.email
		FROM food_donation_reservations fdr
		JOIN food_donations fd ON fdr.donation_id = fd.id
		JOIN user_accounts u ON fdr.requester_id = u.user_id
		`+clause+`
		ORDER BY fdr.reserved_at DESC`,
		args,
		[]string{"id", "status", "reserved_at", "responded_at", "donation_title", "requester_name", "requester_email"},
	)
}

// Engagement ranks approved accounts by their combined activity.
func (r ExportRepository) Engagement(ctx context.Context) (Dataset, error) {
	return r.collect(ctx, `
		SELECT u.user_id, u.full_name, u.email, u.role,
		       COUNT(DISTINCT a.id) AS announcements,
		       COUNT(DISTINCT fd.id) AS donations,
		       COUNT(DISTINCT al.id) AS likes,
		       COUNT(DISTINCT ac.id) AS comments
		FROM user_accounts u
		LEFT JOIN announcements a ON u.user_id = a.user_id
		LEFT JOIN food_donations fd ON u.user_id = fd.user_id
		LEFT JOIN announcement_likes al ON u.user_id = al.user_id
		LEFT JOIN announcement_comments ac ON u.user_id = ac.user_id
		WHERE u.status = 'approved'
		GROUP BY u.user_id, u.full_name, u.email, u.role
		ORDER BY (COUNT(DISTINCT a.id) + COUNT(DISTINCT fd.id) + COUNT(DISTINCT al.id) + COUNT(DISTINCT ac.id)) DESC`,
		nil,
		[]string{"user_id", "full_name", "email", "role", "announcements", "donations", "likes", "comments"},
	)
}

// Summary is the one-row platform totals dataset.
func (r ExportRepository) Summary(ctx context.Context) (Dataset, error) {
	ds := Dataset{Columns: []string{"total_users", "total_donations", "total_announcements", "total_requests"}}

	var users, donations, announcements, requests string
	err := r.db().QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM user_accounts WHERE status = 'approved'),
		       (SELECT COUNT(*) FROM food_donations),
		       (SELECT COUNT(*) FROM announcements WHERE status = 'published'),
		       (SELECT COUNT(*) FROM food_donation_reservations)`,
	).Scan(&users, &donations, &announcements, &requests)
	if err != nil {
		return ds, err
	}

	ds.Rows = append(ds.Rows, []string{users, donations, announcements, requests})
	return ds, nil
}
