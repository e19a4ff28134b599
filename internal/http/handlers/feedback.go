package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/http/middleware"
	"foodshare/internal/repositories"
	"foodshare/internal/services"
)

func feedbackInput(p dispatch.Params) services.FeedbackInput {
	return services.FeedbackInput{
		ID:           p.Int64("feedback_id"),
		FeedbackType: p.GetDefault("feedback_type", "platform"),
		Rating:       p.Int("rating"),
		Subject:      p.Get("subject"),
		Message:      p.Get("message"),
		Priority:     p.Get("priority"),
	}
}

func feedbackRouter(c *gin.Context) *dispatch.Router {
	fb := services.FeedbackService{RequestID: middleware.GetRequestID(c)}

	r := dispatch.NewRouter("community-feedback")

	r.Register("create_feedback", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		newID, err := fb.Create(ctx, id.UserID, feedbackInput(p))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{
			Message: "Feedback submitted successfully.",
			Fields:  dispatch.Fields{"feedback_id": newID},
		}, nil
	})

	r.Register("update_feedback", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := fb.Update(ctx, id.UserID, feedbackInput(p)); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Feedback updated successfully."}, nil
	})

	r.Register("delete_feedback", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := fb.Delete(ctx, p.Int64("feedback_id"), id.UserID); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Feedback deleted successfully."}, nil
	})

	r.Register("respond_feedback", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		err := fb.Respond(ctx, p.Int64("feedback_id"), p.Get("response"), p.Get("status"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Response submitted successfully."}, nil
	})

	r.Register("update_status", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := fb.UpdateStatus(ctx, p.Int64("feedback_id"), p.Get("status")); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Feedback status updated successfully."}, nil
	})

	return r
}

// POST /api/officer/community-feedback/actions
func FeedbackActions(c *gin.Context) {
	dispatchAction(c, feedbackRouter(c))
}

// GET /api/officer/community-feedback
func FeedbackPage(c *gin.Context) {
	fb := services.FeedbackService{RequestID: middleware.GetRequestID(c)}
	p := formParams(c)

	page, err := fb.Page(c.Request.Context(), repositories.FeedbackFilter{
		Status: p.Get("status"),
		Type:   p.Get("type"),
		Search: p.Get("search"),
	})
	if err != nil {
		respondPageError(c, err)
		return
	}
	respond(c, dispatch.Envelope{Success: true, Fields: dispatch.Fields{
		"stats":               page.Stats,
		"feedback":            page.Feedback,
		"by_type":             page.ByType,
		"rating_distribution": page.Ratings,
		"daily_trend":         page.DailyTrend,
	}})
}
