package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/query"
	"foodshare/internal/repositories"
	"foodshare/internal/utils"
)

// FeedbackInput carries the create/update form fields.
type FeedbackInput struct {
	ID           int64
	FeedbackType string `validate:"oneof=platform feature donation announcement support other"`
	Rating       int
	Subject      string
	Message      string
	Priority     string `validate:"omitempty,oneof=low medium high urgent"`
}

// FeedbackService owns the community-feedback page.
type FeedbackService struct {
	Repo      repositories.FeedbackRepository
	DB        *sql.DB
	RequestID string
}

func (s FeedbackService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s FeedbackService) repo() repositories.FeedbackRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.FeedbackRepository{DB: s.db()}
}

func (s FeedbackService) validateInput(in FeedbackInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Validationf("Invalid rating value")
	}
	if in.Subject == "" || in.Message == "" {
		return domain.Validationf("Subject and message are required")
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Validationf("Invalid feedback type")
		}
		return domain.ValidationError{Msg: "Invalid feedback data.", Err: err}
	}
	return nil
}

func (s FeedbackService) Create(ctx context.Context, userID int64, in FeedbackInput) (int64, error) {
	if err := s.validateInput(in); err != nil {
		return 0, err
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}
	id, err := s.repo().Create(ctx, models.Feedback{
		UserID:       userID,
		FeedbackType: in.FeedbackType,
		Rating:       in.Rating,
		Subject:      in.Subject,
		Message:      in.Message,
		Priority:     in.Priority,
	})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "community-feedback", "create_feedback", "created")
	return id, nil
}

// Update edits the caller's own feedback row only.
func (s FeedbackService) Update(ctx context.Context, userID int64, in FeedbackInput) error {
	if in.ID <= 0 {
		return domain.Validationf("Invalid feedback ID.")
	}
	if err := s.validateInput(in); err != nil {
		return err
	}
	if in.Priority == "" {
		in.Priority = "medium"
	}
	return s.repo().Update(ctx, models.Feedback{
		ID:           in.ID,
		UserID:       userID,
		FeedbackType: in.FeedbackType,
		Rating:       in.Rating,
		Subject:      in.Subject,
		Message:      in.Message,
		Priority:     in.Priority,
	})
}

// Delete removes the caller's own feedback row only.
func (s FeedbackService) Delete(ctx context.Context, feedbackID, userID int64) error {
	if feedbackID <= 0 {
		return domain.Validationf("Invalid feedback ID.")
	}
	return s.repo().Delete(ctx, feedbackID, userID)
}

// Respond records an officer response. Status defaults to "responded" when
// the form leaves it blank.
func (s FeedbackService) Respond(ctx context.Context, feedbackID int64, response, status string, respondedBy int64) error {
	if feedbackID <= 0 {
		return domain.Validationf("Invalid feedback ID.")
	}
	if response == "" {
		return domain.Validationf("Response cannot be empty.")
	}
	if status == "" {
		status = "responded"
	}
	if err := query.EnumStrict("status", status, models.FeedbackStatuses); err != nil {
		return err
	}
	return s.repo().Respond(ctx, feedbackID, response, status, respondedBy)
}

func (s FeedbackService) UpdateStatus(ctx context.Context, feedbackID int64, status string) error {
	if feedbackID <= 0 {
		return domain.Validationf("Invalid feedback ID.")
	}
	if err := query.EnumStrict("status", status, models.FeedbackStatuses); err != nil {
		return err
	}
	return s.repo().UpdateStatus(ctx, feedbackID, status)
}

// FeedbackPage is the GET read model for the community-feedback page.
type FeedbackPage struct {
	Stats      repositories.FeedbackStats `json:"stats"`
	Feedback   []models.Feedback          `json:"feedback"`
	ByType     []repositories.TypeBucket  `json:"by_type"`
	Ratings    []repositories.CountBucket `json:"rating_distribution"`
	DailyTrend []repositories.TypeBucket  `json:"daily_trend"`
}

func (s FeedbackService) Page(ctx context.Context, f repositories.FeedbackFilter) (FeedbackPage, error) {
	var page FeedbackPage
	var err error

	if f.Status, err = query.Enum("status", f.Status, models.FeedbackStatuses); err != nil {
		return page, err
	}
	if f.Type, err = query.Enum("type", f.Type, models.FeedbackTypes); err != nil {
		return page, err
	}

	if page.Stats, err = s.repo().Overview(ctx); err != nil {
		return page, err
	}
	if page.Feedback, err = s.repo().List(ctx, f); err != nil {
		return page, err
	}
	if page.ByType, err = s.repo().ByType(ctx); err != nil {
		return page, err
	}
	if page.Ratings, err = s.repo().RatingDistribution(ctx); err != nil {
		return page, err
	}
	if page.DailyTrend, err = s.repo().DailyTrend(ctx); err != nil {
		return page, err
	}
	if page.Feedback == nil {
		page.Feedback = []models.Feedback{}
	}
	return page, nil
}
