package services

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
	"foodshare/internal/repositories"
)

const commentsPageSize = 10

// EngagementService covers likes, saves, comments and shares on feed posts.
type EngagementService struct {
	Repo repositories.EngagementRepository
	DB   *sql.DB
}

func (s EngagementService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s EngagementService) repo() repositories.EngagementRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.EngagementRepository{DB: s.db()}
}

// ToggleLike flips the caller's like on a post and returns the new state plus
// the recomputed counter.
func (s EngagementService) ToggleLike(ctx context.Context, postID int64, postType string, userID int64) (bool, int, error) {
	if postID <= 0 {
		return false, 0, domain.Validationf("Invalid post ID.")
	}
	return s.repo().ToggleLike(ctx, postID, postType, userID)
}

// ToggleSave flips the caller's bookmark on a post. Saves have no
// denormalized counter.
func (s EngagementService) ToggleSave(ctx context.Context, postID int64, postType string, userID int64) (bool, error) {
	if postID <= 0 {
		return false, domain.Validationf("Invalid post ID.")
	}
	return s.repo().ToggleSave(ctx, postID, postType, userID)
}

func (s EngagementService) AddComment(ctx context.Context, postID int64, postType string, userID int64, comment string) error {
	if postID <= 0 {
		return domain.Validationf("Invalid post ID.")
	}
	if comment == "" {
		return domain.Validationf("Comment cannot be empty.")
	}
	return s.repo().AddComment(ctx, postID, postType, userID, comment)
}

func (s EngagementService) SharePost(ctx context.Context, postID int64, postType string, userID int64, shareMessage string) error {
	if postID <= 0 {
		return domain.Validationf("Invalid post ID.")
	}
	return s.repo().SharePost(ctx, postID, postType, userID, shareMessage)
}

// CommentPage is one page of a post's comment thread, newest first.
type CommentPage struct {
	Comments    []models.Comment
	TotalCount  int
	CurrentPage int
	HasMore     bool
}

func (s EngagementService) GetComments(ctx context.Context, postID int64, postType string, viewerID int64, pageNumber int) (CommentPage, error) {
	if postID <= 0 {
		return CommentPage{}, domain.Validationf("Invalid post ID.")
	}
	page := query.Page{Number: pageNumber, Size: commentsPageSize}.Clamp(commentsPageSize)

	comments, total, err := s.repo().ListComments(ctx, postID, postType, viewerID, page)
	if err != nil {
		return CommentPage{}, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return CommentPage{
		Comments:    comments,
		TotalCount:  total,
		CurrentPage: page.Number,
		HasMore:     page.Number*page.Size < total,
	}, nil
}
