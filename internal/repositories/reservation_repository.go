package repositories

import (
	"context"
	"database/sql"
	"strings"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
)

// ReservationRepository covers food_donation_reservations, the tracking rows
// behind donation requests.
type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// ReservationFilter narrows the request list. Absent fields are wildcards.
type ReservationFilter struct {
	Status   string
	Search   string
	DateFrom string
	DateTo   string
}

const reservationSelect = `
	SELECT fdr.id, fdr.donation_id, fdr.requester_id, COALESCE(fdr.message, ''),
	       COALESCE(fdr.contact_info, ''), fdr.status, COALESCE(fdr.admin_notes, ''),
	       fdr.reserved_at, fdr.responded_at,
	       fd.title, COALESCE(fd.description, ''), fd.food_type, COALESCE(fd.quantity, ''),
	       COALESCE(fd.location_address, ''),
	       ua_requester.full_name, ua_requester.email, COALESCE(ua_requester.phone_number, ''),
	       ua_donor.full_name, ua_donor.email, COALESCE(ua_donor.phone_number, '')
	FROM food_donation_reservations fdr
	JOIN food_donations fd ON fdr.donation_id = fd.id
	JOIN user_accounts ua_requester ON fdr.requester_id = ua_requester.user_id
	JOIN user_accounts ua_donor ON fd.user_id = ua_donor.user_id`

func scanReservation(rows *sql.Rows) (models.Reservation, error) {
	var res models.Reservation
	err := rows.Scan(
		&res.ID, &res.DonationID, &res.RequesterID, &res.Message,
		&res.ContactInfo, &res.Status, &res.AdminNotes,
		&res.ReservedAt, &res.RespondedAt,
		&res.DonationTitle, &res.DonationDescription, &res.FoodType, &res.Quantity,
		&res.LocationAddress,
		&res.RequesterName, &res.RequesterEmail, &res.RequesterPhone,
		&res.DonorName, &res.DonorEmail, &res.DonorPhone,
	)
	return res, err
}

// List returns requests matching the filter, newest first.
func (r ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	var b query.Builder
	b.Eq("fdr.status", f.Status)
	b.Like(f.Search, "fd.title", "ua_requester.full_name", "ua_donor.full_name")
	b.DateFrom("fdr.reserved_at", f.DateFrom)
	b.DateTo("fdr.reserved_at", f.DateTo)
	clause, args := b.Clause()

	rows, err := r.db().QueryContext(ctx,
		reservationSelect+"\n\t"+clause+"\n\tORDER BY fdr.reserved_at DESC",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Get loads one request with its joined donation and party details.
func (r ReservationRepository) Get(ctx context.Context, id int64) (models.Reservation, error) {
	rows, err := r.db().QueryContext(ctx, reservationSelect+"\n\tWHERE fdr.id = ?", id)
	if err != nil {
		return models.Reservation{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.Reservation{}, err
		}
		return models.Reservation{}, domain.NotFoundError{Resource: "Request"}
	}
	return scanReservation(rows)
}

func (r ReservationRepository) UpdateStatus(ctx context.Context, id int64, status, adminNotes string, updatedBy int64) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE food_donation_reservations
		SET status = ?, admin_notes = ?, updated_at = NOW(), updated_by = ?
		WHERE id = ?`,
		status, adminNotes, updatedBy, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Request"}
	}
	return nil
}

// BulkUpdateStatus applies one status to many requests in a single statement
// and returns the number of rows touched.
func (r ReservationRepository) BulkUpdateStatus(ctx context.Context, ids []int64, status, adminNotes string, updatedBy int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+3)
	args = append(args, status, adminNotes, updatedBy)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := r.db().ExecContext(ctx, `
		UPDATE food_donation_reservations
		SET status = ?, admin_notes = ?, updated_at = NOW(), updated_by = ?
		WHERE id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpsertAssignment records the tracking reservation created when an officer
// assigns a donation directly to a resident.
func (r ReservationRepository) UpsertAssignment(ctx context.Context, donationID, requesterID int64, message, contactInfo string) error {
	var existingID int64
	err := r.db().QueryRowContext(ctx,
		`SELECT id FROM food_donation_reservations WHERE donation_id = ? AND requester_id = ?`,
		donationID, requesterID,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		_, err = r.db().ExecContext(ctx, `
			INSERT INTO food_donation_reservations (donation_id, requester_id, message, contact_info, status, reserved_at)
			VALUES (?, ?, ?, ?, 'approved', NOW())`,
			donationID, requesterID, message, contactInfo,
		)
		return err
	case err != nil:
		return err
	default:
		_, err = r.db().ExecContext(ctx, `
			UPDATE food_donation_reservations
			SET message = ?, contact_info = ?, status = 'approved', reserved_at = NOW()
			WHERE id = ?`,
			message, contactInfo, existingID,
		)
		return err
	}
}

// ReservationStats is the aggregate block for the requests page.
type ReservationStats struct {
	Total     int `json:"total_requests"`
	Pending   int `json:"pending_requests"`
	Approved  int `json:"approved_requests"`
	Rejected  int `json:"rejected_requests"`
	Completed int `json:"completed_requests"`
	Cancelled int `json:"cancelled_requests"`
	Today     int `json:"today_requests"`
	Week      int `json:"week_requests"`
}

func (r ReservationRepository) Stats(ctx context.Context) (ReservationStats, error) {
	var s ReservationStats
	err := r.db().QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN status = 'pending' THEN 1 END),
		       COUNT(CASE WHEN status = 'approved' THEN 1 END),
		       COUNT(CASE WHEN status = 'rejected' THEN 1 END),
		       COUNT(CASE WHEN status = 'completed' THEN 1 END),
		       COUNT(CASE WHEN status = 'cancelled' THEN 1 END),
		       COUNT(CASE WHEN DATE(reserved_at) = CURDATE() THEN 1 END),
		       COUNT(CASE WHEN DATE(reserved_at) >= DATE_SUB(CURDATE(), INTERVAL 7 DAY) THEN 1 END)
		FROM food_donation_reservations`,
	).Scan(&s.Total, &s.Pending, &s.Approved, &s.Rejected, &s.Completed, &s.Cancelled, &s.Today, &s.Week)
	return s, err
}
