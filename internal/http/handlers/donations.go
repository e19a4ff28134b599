package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"foodshare/internal/dispatch"
	"foodshare/internal/http/middleware"
	"foodshare/internal/services"
)

func donationService(c *gin.Context) services.DonationService {
	return services.DonationService{
		Notifier:  notifier,
		Store:     store,
		RequestID: middleware.GetRequestID(c),
	}
}

func donationManagementRouter(c *gin.Context) *dispatch.Router {
	svc := donationService(c)

	r := dispatch.NewRouter("donation-management")

	r.Register("approve", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.Approve(ctx, p.Int64("donation_id"), id.UserID)
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	r.Register("reject", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.Reject(ctx, p.Int64("donation_id"), id.UserID, p.Get("rejection_reason"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	r.Register("get_details", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		d, err := svc.Details(ctx, p.Int64("donation_id"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"donation": d}}, nil
	})

	r.Register("get_residents", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		residents, err := svc.Residents(ctx, id.UserID, p.Int64("donation_id"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Fields: dispatch.Fields{"residents": residents}}, nil
	})

	r.Register("assign_donation", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.Assign(ctx, p.Int64("donation_id"), p.Int64("resident_id"), id.UserID, p.Get("assignment_notes"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	r.Register("delete", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.Delete(ctx, p.Int64("donation_id"), p.Get("reason"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	return r
}

// POST /api/officer/donation-management/actions
func DonationManagementActions(c *gin.Context) {
	dispatchAction(c, donationManagementRouter(c))
}

func expiredDonationsRouter(c *gin.Context) *dispatch.Router {
	svc := donationService(c)

	r := dispatch.NewRouter("expired-donations")

	r.Register("delete", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.Delete(ctx, p.Int64("donation_id"), p.Get("reason"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	r.Register("extend", func(ctx context.Context, id dispatch.Identity, p dispatch.Params) (*dispatch.Result, error) {
		msg, err := svc.Extend(ctx, p.Int64("donation_id"), p.Get("new_expiration_date"))
		if err != nil {
			return nil, err
		}
		return &dispatch.Result{Message: msg}, nil
	})

	return r
}

// POST /api/officer/expired-donations/actions
func ExpiredDonationActions(c *gin.Context) {
	dispatchAction(c, expiredDonationsRouter(c))
}

// GET /api/officer/expired-donations
func ExpiredDonationsPage(c *gin.Context) {
	donations, err := donationService(c).Expired(c.Request.Context())
	if err != nil {
		respondPageError(c, err)
		return
	}
	respond(c, dispatch.Envelope{Success: true, Fields: dispatch.Fields{"donations": donations}})
}
