package services

import (
	"context"
	"database/sql"
	"fmt"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/notify"
	"foodshare/internal/query"
	"foodshare/internal/repositories"
	"foodshare/internal/utils"
)

// bulkStatuses maps bulk_action verbs to the reservation status they apply.
var bulkStatuses = map[string]string{
	"approve":  "approved",
	"reject":   "rejected",
	"complete": "completed",
	"cancel":   "cancelled",
}

// RequestService owns the donation_request page: listing, status decisions
// and bulk updates over food_donation_reservations.
type RequestService struct {
	Reservations repositories.ReservationRepository
	Notifier     notify.Notifier
	DB           *sql.DB
	RequestID    string
}

func (s RequestService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s RequestService) reservations() repositories.ReservationRepository {
	if s.Reservations.DB != nil {
		return s.Reservations
	}
	return repositories.ReservationRepository{DB: s.db()}
}

func (s RequestService) notifier() notify.Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return &notify.NoopNotifier{}
}

// List returns requests matching the page filters, every criterion bound.
func (s RequestService) List(ctx context.Context, f repositories.ReservationFilter) ([]models.Reservation, error) {
	var err error
	if f.Status, err = query.Enum("status", f.Status, models.ReservationStatuses); err != nil {
		return nil, err
	}
	out, err := s.reservations().List(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Reservation{}
	}
	return out, nil
}

// UpdateStatus applies an officer decision to one request and emails the
// requester. The send is best effort; the message reports the outcome.
func (s RequestService) UpdateStatus(ctx context.Context, requestID int64, status, adminNotes string, officerID int64) (string, error) {
	if requestID <= 0 {
		return "", domain.Validationf("Invalid request ID.")
	}
	if err := query.EnumStrict("status", status, models.ReservationFinalStatuses); err != nil {
		return "", err
	}

	req, err := s.reservations().Get(ctx, requestID)
	if err != nil {
		return "", err
	}
	if err := s.reservations().UpdateStatus(ctx, requestID, status, adminNotes, officerID); err != nil {
		return "", err
	}

	utils.LogEvent(s.RequestID, "donation_request", "update_request_status", status)

	msg := fmt.Sprintf("Request %s successfully.", status)
	if status == "cancelled" {
		// Cancellations carry no notification.
		return msg, nil
	}
	if s.notifyRequester(ctx, req, status, adminNotes) {
		return msg + " Email notification sent to requester.", nil
	}
	return msg + " Note: Email notification could not be sent.", nil
}

func (s RequestService) notifyRequester(ctx context.Context, req models.Reservation, status, adminNotes string) bool {
	switch status {
	case "approved":
		return s.notifier().RequestApproved(ctx, req, req.RequesterEmail, req.RequesterName)
	case "rejected":
		return s.notifier().RequestRejected(ctx, req, req.RequesterEmail, req.RequesterName, adminNotes)
	case "completed":
		return s.notifier().RequestCompleted(ctx, req, req.RequesterEmail, req.RequesterName)
	default:
		return false
	}
}

// Statistics returns the per-status totals shown above the request table.
func (s RequestService) Statistics(ctx context.Context) (repositories.ReservationStats, error) {
	return s.reservations().Stats(ctx)
}

// BulkAction applies one decision to many requests in a single statement.
func (s RequestService) BulkAction(ctx context.Context, action string, ids []int64, officerID int64) (string, error) {
	if len(ids) == 0 {
		return "", domain.Validationf("No requests selected.")
	}
	status, ok := bulkStatuses[action]
	if !ok {
		return "", domain.Validationf("Invalid action.")
	}

	affected, err := s.reservations().BulkUpdateStatus(ctx, ids, status, "Bulk action by team officer", officerID)
	if err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "donation_request", "bulk_action", action)
	return fmt.Sprintf("Successfully updated %d request(s).", affected), nil
}
