package services

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
	"foodshare/internal/repositories"
	"foodshare/internal/storage"
	"foodshare/internal/utils"
)

const feedPageSize = 50

var validate = validator.New()

// AnnouncementInput carries the create/update form fields. Enum fields are
// checked here so bad values never reach SQL.
type AnnouncementInput struct {
	ID       int64
	Title    string
	Content  string
	Type     string `validate:"oneof=announcement guideline reminder alert"`
	Priority string `validate:"oneof=low medium high critical"`
	Status   string `validate:"oneof=draft published archived"`
	IsPinned bool

	Images      []*multipart.FileHeader
	Attachments []*multipart.FileHeader
}

// AnnouncementService owns the officer announcement feed.
type AnnouncementService struct {
	Repo      repositories.AnnouncementRepository
	Store     *storage.Store
	DB        *sql.DB
	RequestID string
}

func (s AnnouncementService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s AnnouncementService) repo() repositories.AnnouncementRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.AnnouncementRepository{DB: s.db()}
}

func (s AnnouncementService) store() *storage.Store {
	if s.Store != nil {
		return s.Store
	}
	return storage.NewStore("uploads")
}

func (s AnnouncementService) validateInput(in AnnouncementInput) error {
	if in.Title == "" || in.Content == "" {
		return domain.Validationf("Title and content are required.")
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Validationf("Invalid %s value.", strings.ToLower(verrs[0].Field()))
		}
		return domain.ValidationError{Msg: "Invalid announcement data.", Err: err}
	}
	return nil
}

// Create validates, stores uploads and inserts the row. The title/content
// check runs before any disk or database work.
func (s AnnouncementService) Create(ctx context.Context, officerID int64, in AnnouncementInput) (int64, error) {
	if err := s.validateInput(in); err != nil {
		return 0, err
	}

	images, err := s.store().SaveImages(in.Images)
	if err != nil {
		return 0, err
	}
	docs, err := s.store().SaveAttachments(in.Attachments)
	if err != nil {
		s.store().Remove(images...)
		return 0, err
	}

	id, err := s.repo().Create(ctx, models.Announcement{
		UserID:      officerID,
		Title:       in.Title,
		Content:     in.Content,
		Type:        in.Type,
		Priority:    in.Priority,
		Status:      in.Status,
		IsPinned:    in.IsPinned,
		Images:      images,
		Attachments: docs,
	})
	if err != nil {
		s.store().Remove(images...)
		s.store().RemoveAttachment(docs)
		return 0, err
	}
	utils.LogEvent(s.RequestID, "announcements", "create_announcement", "created")
	return id, nil
}

// Update keeps the row's existing media and appends any new uploads.
func (s AnnouncementService) Update(ctx context.Context, in AnnouncementInput) error {
	if in.ID <= 0 {
		return domain.Validationf("Invalid announcement ID.")
	}
	if err := s.validateInput(in); err != nil {
		return err
	}

	existingImages, existingDocs, err := s.repo().Media(ctx, in.ID)
	if err != nil {
		return err
	}

	newImages, err := s.store().SaveImages(in.Images)
	if err != nil {
		return err
	}
	newDocs, err := s.store().SaveAttachments(in.Attachments)
	if err != nil {
		s.store().Remove(newImages...)
		return err
	}

	err = s.repo().Update(ctx, models.Announcement{
		ID:          in.ID,
		Title:       in.Title,
		Content:     in.Content,
		Type:        in.Type,
		Priority:    in.Priority,
		Status:      in.Status,
		IsPinned:    in.IsPinned,
		Images:      append(existingImages, newImages...),
		Attachments: append(existingDocs, newDocs...),
	})
	if err != nil {
		s.store().Remove(newImages...)
		s.store().RemoveAttachment(newDocs)
		return err
	}
	utils.LogEvent(s.RequestID, "announcements", "update_announcement", "updated")
	return nil
}

// Delete removes the row and its stored media files.
func (s AnnouncementService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.Validationf("Invalid announcement ID.")
	}
	images, docs, err := s.repo().Media(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo().Delete(ctx, id); err != nil {
		return err
	}
	s.store().Remove(images...)
	s.store().RemoveAttachment(docs)
	utils.LogEvent(s.RequestID, "announcements", "delete_announcement", "deleted")
	return nil
}

func (s AnnouncementService) Details(ctx context.Context, id int64) (models.Announcement, error) {
	if id <= 0 {
		return models.Announcement{}, domain.Validationf("Invalid post ID.")
	}
	return s.repo().Details(ctx, id)
}

// Feed returns one page of the post feed for the load_posts action, pinned
// posts first.
func (s AnnouncementService) Feed(ctx context.Context, filterType string, viewerID int64, pageNumber int) ([]models.Announcement, error) {
	filter, err := query.Enum("filter", filterType, models.AnnouncementTypes)
	if err != nil {
		return nil, err
	}
	page := query.Page{Number: pageNumber, Size: feedPageSize}.Clamp(feedPageSize)
	posts, err := s.repo().Feed(ctx, filter, viewerID, page)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Announcement{}
	}
	return posts, nil
}
