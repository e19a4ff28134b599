package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// GetForLogin resolves an account by email or username-style email match and
// returns its password hash alongside the profile.
func (r UserRepository) GetForLogin(ctx context.Context, emailOrUsername string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT user_id, full_name, email, COALESCE(phone_number, ''), COALESCE(address, ''),
		       role, status, COALESCE(profile_img, ''), password_hash
		FROM user_accounts
		WHERE email = ? OR username = ?`,
		emailOrUsername, emailOrUsername,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Address, &u.Role, &u.Status, &u.ProfileImg, &hash)
	if err == sql.ErrNoRows {
		return u, "", domain.NotFoundError{Resource: "Account"}
	}
	return u, hash, err
}

// Address returns the officer's registered address, used to scope resident
// lookups to the officer's area.
func (r UserRepository) Address(ctx context.Context, userID int64) (string, error) {
	var addr sql.NullString
	err := r.db().QueryRowContext(ctx,
		`SELECT address FROM user_accounts WHERE user_id = ?`, userID,
	).Scan(&addr)
	if err == sql.ErrNoRows {
		return "", domain.NotFoundError{Resource: "Account"}
	}
	return addr.String, err
}

// GetResident loads a user only when they hold the resident role.
func (r UserRepository) GetResident(ctx context.Context, userID int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT user_id, full_name, email, COALESCE(phone_number, ''), COALESCE(address, ''), role, status
		FROM user_accounts
		WHERE user_id = ? AND role = 'resident'`, userID,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Address, &u.Role, &u.Status)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "Resident"}
	}
	return u, err
}

// ResidentsByAddress lists residents at the officer's address. With
// approvedOnly it returns approved accounts sorted by name; otherwise all
// statuses ranked approved, then pending, then the rest. excludeUserID keeps
// the donor out of assignment candidate lists (0 disables the exclusion).
func (r UserRepository) ResidentsByAddress(ctx context.Context, address string, approvedOnly bool, excludeUserID int64) ([]models.User, error) {
	q := `
		SELECT user_id, full_name, email, COALESCE(phone_number, ''), COALESCE(address, ''), role, status
		FROM user_accounts
		WHERE role = 'resident' AND LOWER(TRIM(address)) = LOWER(TRIM(?))`
	args := []any{address}

	if approvedOnly {
		q += ` AND status = 'approved'`
	}
	if excludeUserID > 0 {
		q += ` AND user_id != ?`
		args = append(args, excludeUserID)
	}
	if approvedOnly {
		q += ` ORDER BY full_name ASC`
	} else {
		q += ` ORDER BY CASE status WHEN 'approved' THEN 1 WHEN 'pending' THEN 2 ELSE 3 END, full_name ASC`
	}

	rows, err := r.db().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Address, &u.Role, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Suspend flags an account, used by the moderation take_action flow.
func (r UserRepository) Suspend(ctx context.Context, userID int64) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE user_accounts SET status = 'suspended' WHERE user_id = ?`, userID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "User"}
	}
	return nil
}
