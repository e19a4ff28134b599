package repositories

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
)

// EngagementRepository keeps the social association tables (likes, saves,
// shares, comments) and the denormalized counters on announcements in step.
// Every association write and its counter recompute share one transaction.
type EngagementRepository struct {
	DB *sql.DB
}

func (r EngagementRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// ToggleLike flips the like association for (postID, postType, userID) and
// returns the new state plus the recomputed counter.
func (r EngagementRepository) ToggleLike(ctx context.Context, postID int64, postType string, userID int64) (bool, int, error) {
	return r.toggle(ctx, "announcement_likes", "likes_count", postID, postType, userID)
}

// ToggleSave flips the saved-post association. Saves carry no counter column.
func (r EngagementRepository) ToggleSave(ctx context.Context, postID int64, postType string, userID int64) (bool, error) {
	active, _, err := r.toggle(ctx, "announcement_saves", "", postID, postType, userID)
	return active, err
}

func (r EngagementRepository) toggle(ctx context.Context, assocTable, counterCol string, postID int64, postType string, userID int64) (bool, int, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM `+assocTable+` WHERE post_id = ? AND post_type = ? AND user_id = ?`,
		postID, postType, userID,
	).Scan(&existingID)

	var active bool
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+assocTable+` (post_id, post_type, user_id) VALUES (?, ?, ?)`,
			postID, postType, userID,
		); err != nil {
			return false, 0, err
		}
		active = true
	case err != nil:
		return false, 0, err
	default:
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+assocTable+` WHERE id = ?`, existingID,
		); err != nil {
			return false, 0, err
		}
		active = false
	}

	count := 0
	if counterCol != "" && postType == "announcement" {
		count, err = recomputeCounter(ctx, tx, assocTable, counterCol, postID, postType)
		if err != nil {
			return false, 0, err
		}
	}

	return active, count, tx.Commit()
}

// recomputeCounter derives the counter from the association table instead of
// incrementing it, so concurrent togglers cannot skew it.
func recomputeCounter(ctx context.Context, tx *sql.Tx, assocTable, counterCol string, postID int64, postType string) (int, error) {
	if _, err := tx.ExecContext(ctx,
		`UPDATE announcements SET `+counterCol+` = (SELECT COUNT(*) FROM `+assocTable+` WHERE post_id = ? AND post_type = ?) WHERE id = ?`,
		postID, postType, postID,
	); err != nil {
		return 0, err
	}

	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT `+counterCol+` FROM announcements WHERE id = ?`, postID,
	).Scan(&count)
	return count, err
}

// AddComment inserts a comment and recomputes comments_count in the same
// transaction.
func (r EngagementRepository) AddComment(ctx context.Context, postID int64, postType string, userID int64, comment string) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO announcement_comments (post_id, post_type, user_id, comment) VALUES (?, ?, ?, ?)`,
		postID, postType, userID, comment,
	); err != nil {
		return err
	}

	if postType == "announcement" {
		if _, err := recomputeCounter(ctx, tx, "announcement_comments", "comments_count", postID, postType); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SharePost records a share with an optional message and recomputes
// shares_count.
func (r EngagementRepository) SharePost(ctx context.Context, postID int64, postType string, userID int64, shareMessage string) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO announcement_shares (post_id, post_type, user_id, share_message) VALUES (?, ?, ?, ?)`,
		postID, postType, userID, shareMessage,
	); err != nil {
		return err
	}

	if postType == "announcement" {
		if _, err := recomputeCounter(ctx, tx, "announcement_shares", "shares_count", postID, postType); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListComments returns one page of comments, newest first, plus the total.
func (r EngagementRepository) ListComments(ctx context.Context, postID int64, postType string, viewerID int64, page query.Page) ([]models.Comment, int, error) {
	var total int
	if err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM announcement_comments WHERE post_id = ? AND post_type = ?`,
		postID, postType,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := page.LimitOffset()
	rows, err := r.db().QueryContext(ctx, `
		SELECT c.id, c.post_id, c.post_type, c.user_id, c.comment, c.created_at,
		       u.full_name, COALESCE(u.profile_img, '')
		FROM announcement_comments c
		JOIN user_accounts u ON c.user_id = u.user_id
		WHERE c.post_id = ? AND c.post_type = ?
		ORDER BY c.created_at DESC
		LIMIT ? OFFSET ?`,
		postID, postType, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.PostType, &c.UserID, &c.Comment, &c.CreatedAt, &c.UserName, &c.ProfileImg); err != nil {
			return nil, 0, err
		}
		c.IsOwnComment = c.UserID == viewerID
		out = append(out, c)
	}
	return out, total, rows.Err()
}
