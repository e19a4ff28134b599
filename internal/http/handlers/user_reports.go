package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/http/middleware"
	"foodshare/internal/repositories"
	"foodshare/internal/services"
)

func userReportsRouter(c *gin.Context) *dispatch.Router {
	mod := services.ModerationService{Store: store, RequestID: middleware.GetRequestID(c)}

	r := dispatch.NewRouter("user-reports")

	r.Register("update_status", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		err := mod.UpdateStatus(ctx, p.Int64("report_id"), p.Get("status"), p.Get("resolution_note"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Report status updated successfully."}, nil
	})

	r.Register("update_priority", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := mod.UpdatePriority(ctx, p.Int64("report_id"), p.Get("priority")); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Report priority updated successfully."}, nil
	})

	r.Register("delete_report", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		if err := mod.Delete(ctx, p.Int64("report_id")); err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: "Report deleted successfully."}, nil
	})

	r.Register("take_action", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := mod.TakeAction(ctx, p.Int64("report_id"), p.Get("action_type"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	return r
}

// POST /api/officer/user-reports/actions
func UserReportActions(c *gin.Context) {
	dispatchAction(c, userReportsRouter(c))
}

// GET /api/officer/user-reports
func UserReportsPage(c *gin.Context) {
	mod := services.ModerationService{Store: store, RequestID: middleware.GetRequestID(c)}
	p := formParams(c)

	page, err := mod.Page(c.Request.Context(), repositories.ReportFilter{
		Status:   p.Get("status"),
		Category: p.Get("category"),
		Search:   p.Get("search"),
	})
	if err != nil {
		respondPageError(c, err)
		return
	}
	respond(c, dispatch.Envelope{Success: true, Fields: dispatch.Fields{
		"stats":         page.Stats,
		"reports":       page.Reports,
		"by_category":   page.ByCategory,
		"by_type":       page.ByType,
		"top_reporters": page.TopReporters,
		"most_reported": page.MostReported,
		"daily_trend":   page.DailyTrend,
	}})
}
