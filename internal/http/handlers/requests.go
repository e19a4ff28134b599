package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/http/middleware"
	"foodshare/internal/repositories"
	"foodshare/internal/services"
)

func requestsRouter(c *gin.Context) *dispatch.Router {
	svc := services.RequestService{Notifier: notifier, RequestID: middleware.GetRequestID(c)}

	r := dispatch.NewRouter("donation_request")

	r.Register("get_requests", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		requests, err := svc.List(ctx, repositories.ReservationFilter{
			Status:   p.Get("status"),
			Search:   p.Get("search"),
			DateFrom: p.Get("date_from"),
			DateTo:   p.Get("date_to"),
		})
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"requests": requests}}, nil
	})

	r.Register("update_request_status", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.UpdateStatus(ctx, p.Int64("request_id"), p.Get("status"), p.Get("admin_notes"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	r.Register("get_statistics", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		stats, err := svc.Statistics(ctx)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"statistics": stats}}, nil
	})

	r.Register("bulk_action", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.BulkAction(ctx, p.Get("bulk_action"), p.Int64s("request_ids"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	return r
}

// POST /api/officer/donation-requests/actions
func DonationRequestActions(c *gin.Context) {
	dispatchAction(c, requestsRouter(c))
}
