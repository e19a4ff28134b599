package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
)

type AnnouncementRepository struct {
	DB *sql.DB
}

func (r AnnouncementRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// jsonOrNull stores empty document lists as NULL, matching the column
// convention for images/attachments.
func jsonOrNull(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func decodeImages(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out []string
	_ = json.Unmarshal([]byte(raw.String), &out)
	return out
}

func decodeAttachments(raw sql.NullString) []models.Attachment {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out []models.Attachment
	_ = json.Unmarshal([]byte(raw.String), &out)
	return out
}

func (r AnnouncementRepository) Create(ctx context.Context, a models.Announcement) (int64, error) {
	images, err := jsonOrNull(a.Images, len(a.Images) == 0)
	if err != nil {
		return 0, err
	}
	attachments, err := jsonOrNull(a.Attachments, len(a.Attachments) == 0)
	if err != nil {
		return 0, err
	}

	res, err := r.db().ExecContext(ctx, `
		INSERT INTO announcements (user_id, title, content, type, priority, status, is_pinned, images, attachments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.Title, a.Content, a.Type, a.Priority, a.Status, a.IsPinned, images, attachments,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Media loads just the stored image and attachment documents for a row, used
// when an update appends new uploads to the existing lists.
func (r AnnouncementRepository) Media(ctx context.Context, id int64) ([]string, []models.Attachment, error) {
	var images, attachments sql.NullString
	err := r.db().QueryRowContext(ctx,
		`SELECT images, attachments FROM announcements WHERE id = ?`, id,
	).Scan(&images, &attachments)
	if err == sql.ErrNoRows {
		return nil, nil, domain.NotFoundError{Resource: "Announcement"}
	}
	if err != nil {
		return nil, nil, err
	}
	return decodeImages(images), decodeAttachments(attachments), nil
}

func (r AnnouncementRepository) Update(ctx context.Context, a models.Announcement) error {
	images, err := jsonOrNull(a.Images, len(a.Images) == 0)
	if err != nil {
		return err
	}
	attachments, err := jsonOrNull(a.Attachments, len(a.Attachments) == 0)
	if err != nil {
		return err
	}

	res, err := r.db().ExecContext(ctx, `
		UPDATE announcements
		SET title = ?, content = ?, type = ?, priority = ?, status = ?, is_pinned = ?,
		    images = ?, attachments = ?, updated_at = NOW()
		WHERE id = ?`,
		a.Title, a.Content, a.Type, a.Priority, a.Status, a.IsPinned, images, attachments, a.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Announcement"}
	}
	return nil
}

func (r AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db().ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	return err
}

// Details loads one announcement joined with its author.
func (r AnnouncementRepository) Details(ctx context.Context, id int64) (models.Announcement, error) {
	var (
		a                  models.Announcement
		images, attachment sql.NullString
		authorImg          sql.NullString
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT a.id, a.user_id, a.title, a.content, a.type, a.priority, a.status, a.is_pinned,
		       a.images, a.attachments, a.likes_count, a.shares_count, a.comments_count,
		       a.created_at, a.updated_at, u.full_name, u.profile_img
		FROM announcements a
		JOIN user_accounts u ON a.user_id = u.user_id
		WHERE a.id = ?`, id,
	).Scan(
		&a.ID, &a.UserID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.Status, &a.IsPinned,
		&images, &attachment, &a.LikesCount, &a.SharesCount, &a.CommentsCount,
		&a.CreatedAt, &a.UpdatedAt, &a.AuthorName, &authorImg,
	)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundError{Resource: "Announcement"}
	}
	if err != nil {
		return a, err
	}
	a.Images = decodeImages(images)
	a.Attachments = decodeAttachments(attachment)
	a.AuthorImg = authorImg.String
	return a, nil
}

// Feed returns one page of non-archived announcements, pinned first then
// newest, with the viewer's like/save flags. The type filter is bound, never
// concatenated.
func (r AnnouncementRepository) Feed(ctx context.Context, filterType string, viewerID int64, page query.Page) ([]models.Announcement, error) {
	var b query.Builder
	b.And("a.status != ?", "archived")
	b.Eq("a.type", filterType)
	clause, args := b.Clause()

	limit, offset := page.LimitOffset()
	args = append([]any{viewerID, viewerID}, args...)
	args = append(args, limit, offset)

	rows, err := r.db().QueryContext(ctx, `
		SELECT a.id, a.user_id, a.title, a.content, a.type, a.priority, a.status, a.is_pinned,
		       a.images, a.attachments, a.likes_count, a.shares_count, a.comments_count,
		       a.created_at, a.updated_at,
		       COALESCE(u.full_name, ''), COALESCE(u.profile_img, ''),
		       CASE WHEN l.id IS NOT NULL THEN 1 ELSE 0 END AS is_liked,
		       CASE WHEN s.id IS NOT NULL THEN 1 ELSE 0 END AS is_saved
		FROM announcements a
		LEFT JOIN user_accounts u ON a.user_id = u.user_id
		LEFT JOIN announcement_likes l ON a.id = l.post_id AND l.post_type = 'announcement' AND l.user_id = ?
		LEFT JOIN announcement_saves s ON a.id = s.post_id AND s.post_type = 'announcement' AND s.user_id = ?
		`+clause+`
		ORDER BY a.is_pinned DESC, a.created_at DESC
		LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Announcement
	for rows.Next() {
		var (
			a                   models.Announcement
			images, attachments sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.Status, &a.IsPinned,
			&images, &attachments, &a.LikesCount, &a.SharesCount, &a.CommentsCount,
			&a.CreatedAt, &a.UpdatedAt, &a.AuthorName, &a.AuthorImg, &a.IsLiked, &a.IsSaved,
		); err != nil {
			return nil, err
		}
		a.Images = decodeImages(images)
		a.Attachments = decodeAttachments(attachments)
		out = append(out, a)
	}
	return out, rows.Err()
}
