package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
)

// DonationRepository covers the food_donations table.
type DonationRepository struct {
	DB *sql.DB
}

func (r DonationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// GetWithDonor loads a donation joined with its donor account.
func (r DonationRepository) GetWithDonor(ctx context.Context, id int64) (models.Donation, error) {
	var (
		d      models.Donation
		images sql.NullString
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT fd.id, fd.user_id, fd.title, COALESCE(fd.description, ''), fd.food_type,
		       COALESCE(fd.quantity, ''), COALESCE(fd.location_address, ''), fd.expiration_date,
		       fd.status, fd.approval_status, fd.approved_by, fd.approved_at,
		       COALESCE(fd.rejection_reason, ''), fd.images, fd.views_count, fd.created_at,
		       ua.full_name, ua.email, COALESCE(ua.phone_number, '')
		FROM food_donations fd
		JOIN user_accounts ua ON fd.user_id = ua.user_id
		WHERE fd.id = ?`, id,
	).Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &d.FoodType,
		&d.Quantity, &d.LocationAddress, &d.ExpirationDate,
		&d.Status, &d.ApprovalStatus, &d.ApprovedBy, &d.ApprovedAt,
		&d.RejectionReason, &images, &d.ViewsCount, &d.CreatedAt,
		&d.DonorName, &d.DonorEmail, &d.DonorPhone,
	)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "Donation"}
	}
	if err != nil {
		return d, err
	}
	d.Images = decodeImages(images)
	return d, nil
}

// Details loads a donation with donor, approver and assignee names for the
// detail modal.
func (r DonationRepository) Details(ctx context.Context, id int64) (models.Donation, error) {
	var (
		d      models.Donation
		images sql.NullString
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT fd.id, fd.user_id, fd.title, COALESCE(fd.description, ''), fd.food_type,
		       COALESCE(fd.quantity, ''), COALESCE(fd.location_address, ''), fd.expiration_date,
		       fd.status, fd.approval_status, fd.approved_by, fd.approved_at,
		       COALESCE(fd.rejection_reason, ''), fd.assigned_to_user_id, fd.assigned_at,
		       COALESCE(fd.assignment_notes, ''), fd.images, fd.views_count, fd.created_at,
		       ua.full_name, ua.email, COALESCE(ua.phone_number, ''),
		       COALESCE(admin.full_name, ''),
		       COALESCE(assigned_ua.full_name, ''), COALESCE(assigned_ua.email, '')
		FROM food_donations fd
		JOIN user_accounts ua ON fd.user_id = ua.user_id
		LEFT JOIN user_accounts admin ON fd.approved_by = admin.user_id
		LEFT JOIN user_accounts assigned_ua ON fd.assigned_to_user_id = assigned_ua.user_id
		WHERE fd.id = ?`, id,
	).Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &d.FoodType,
		&d.Quantity, &d.LocationAddress, &d.ExpirationDate,
		&d.Status, &d.ApprovalStatus, &d.ApprovedBy, &d.ApprovedAt,
		&d.RejectionReason, &d.AssignedToID, &d.AssignedAt,
		&d.AssignmentNotes, &images, &d.ViewsCount, &d.CreatedAt,
		&d.DonorName, &d.DonorEmail, &d.DonorPhone,
		&d.ApprovedByName, &d.AssignedToName, &d.AssignedToMail,
	)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundError{Resource: "Donation"}
	}
	if err != nil {
		return d, err
	}
	d.Images = decodeImages(images)
	return d, nil
}

// GetApprovedWithDonor loads a donation only when its approval_status is
// approved; assignment requires this.
func (r DonationRepository) GetApprovedWithDonor(ctx context.Context, id int64) (models.Donation, error) {
	d, err := r.GetWithDonor(ctx, id)
	if err != nil {
		return d, err
	}
	if d.ApprovalStatus != "approved" {
		return d, domain.NotFoundError{Resource: "Donation", Err: nil}
	}
	return d, nil
}

func (r DonationRepository) Approve(ctx context.Context, donationID, approvedBy int64) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE food_donations
		SET approval_status = 'approved', approved_at = NOW(), approved_by = ?
		WHERE id = ?`,
		approvedBy, donationID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Donation"}
	}
	return nil
}

func (r DonationRepository) Reject(ctx context.Context, donationID, rejectedBy int64, reason string) error {
	res, err := r.db().ExecContext(ctx, `
		UPDATE food_donations
		SET approval_status = 'rejected', approved_at = NOW(), approved_by = ?, rejection_reason = ?
		WHERE id = ?`,
		rejectedBy, reason, donationID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Donation"}
	}
	return nil
}

func (r DonationRepository) Assign(ctx context.Context, donationID, assignedTo, assignedBy int64, notes string) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE food_donations
		SET assigned_to_user_id = ?, assigned_at = NOW(), assigned_by = ?, assignment_notes = ?, status = 'reserved'
		WHERE id = ?`,
		assignedTo, assignedBy, notes, donationID,
	)
	return err
}

func (r DonationRepository) Delete(ctx context.Context, donationID int64) error {
	_, err := r.db().ExecContext(ctx, `DELETE FROM food_donations WHERE id = ?`, donationID)
	return err
}

// ExtendExpiry moves the expiration date of a flagged donation and returns
// it to the available pool.
func (r DonationRepository) ExtendExpiry(ctx context.Context, donationID int64, newExpiry string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE food_donations SET expiration_date = ?, status = 'available' WHERE id = ?`, newExpiry, donationID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Donation"}
	}
	return nil
}

// ListExpired returns donations past their expiration date or already marked
// expired/cancelled, soonest expiry first.
func (r DonationRepository) ListExpired(ctx context.Context) ([]models.Donation, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT fd.id, fd.user_id, fd.title, COALESCE(fd.description, ''), fd.food_type,
		       COALESCE(fd.quantity, ''), COALESCE(fd.location_address, ''), fd.expiration_date,
		       fd.status, fd.approval_status, fd.images, fd.views_count, fd.created_at,
		       ua.full_name, ua.email, COALESCE(admin.full_name, '')
		FROM food_donations fd
		JOIN user_accounts ua ON fd.user_id = ua.user_id
		LEFT JOIN user_accounts admin ON fd.approved_by = admin.user_id
		WHERE fd.expiration_date < CURDATE() OR fd.status = 'expired' OR fd.status = 'cancelled'
		ORDER BY fd.expiration_date ASC, fd.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Donation
	for rows.Next() {
		var (
			d      models.Donation
			images sql.NullString
		)
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Title, &d.Description, &d.FoodType,
			&d.Quantity, &d.LocationAddress, &d.ExpirationDate,
			&d.Status, &d.ApprovalStatus, &images, &d.ViewsCount, &d.CreatedAt,
			&d.DonorName, &d.DonorEmail, &d.ApprovedByName,
		); err != nil {
			return nil, err
		}
		d.Images = decodeImages(images)
		out = append(out, d)
	}
	return out, rows.Err()
}
