// Package notify sends the transactional emails that accompany officer
// decisions. Sends are best effort: callers report failures in the response
// message but never abort the primary write.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"foodshare/internal/domain/models"
)

// Notifier is the outbound email surface consumed by the services.
type Notifier interface {
	DonationApproved(ctx context.Context, d models.Donation, email, name string) bool
	DonationRejected(ctx context.Context, d models.Donation, email, name, reason string) bool
	DonationDeleted(ctx context.Context, d models.Donation, email, name, reason string) bool
	DonationAssigned(ctx context.Context, d models.Donation, email, name, notes string) bool
	RequestApproved(ctx context.Context, r models.Reservation, email, name string) bool
	RequestRejected(ctx context.Context, r models.Reservation, email, name, adminNotes string) bool
	RequestCompleted(ctx context.Context, r models.Reservation, email, name string) bool
}

// ResendNotifier delivers via the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{client: resend.NewClient(apiKey), from: from}
}

// send returns whether delivery was accepted; failures are logged, not raised.
func (n *ResendNotifier) send(ctx context.Context, to, subject, html string) bool {
	if to == "" {
		return false
	}
	_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		log.Printf("[EMAIL] send failed to=%s subject=%q err=%v", to, subject, err)
		return false
	}
	return true
}

func greeting(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("<p>Hi %s,</p>", name)
}

func (n *ResendNotifier) DonationApproved(ctx context.Context, d models.Donation, email, name string) bool {
	body := greeting(name) + fmt.Sprintf("<p>Your donation <strong>%s</strong> has been approved and is now visible to residents.</p>", d.Title)
	return n.send(ctx, email, "Your donation has been approved", body)
}

func (n *ResendNotifier) DonationRejected(ctx context.Context, d models.Donation, email, name, reason string) bool {
	body := greeting(name) + fmt.Sprintf("<p>Your donation <strong>%s</strong> was not approved.</p><p>Reason: %s</p>", d.Title, reason)
	return n.send(ctx, email, "Your donation was not approved", body)
}

func (n *ResendNotifier) DonationDeleted(ctx context.Context, d models.Donation, email, name, reason string) bool {
	body := greeting(name) + fmt.Sprintf("<p>Your donation <strong>%s</strong> has been removed by a team officer.</p>", d.Title)
	if reason != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", reason)
	}
	return n.send(ctx, email, "Your donation has been removed", body)
}

func (n *ResendNotifier) DonationAssigned(ctx context.Context, d models.Donation, email, name, notes string) bool {
	body := greeting(name) + fmt.Sprintf("<p>The donation <strong>%s</strong> has been assigned to you. Please coordinate pickup with the donor.</p>", d.Title)
	if notes != "" {
		body += fmt.Sprintf("<p>Officer notes: %s</p>", notes)
	}
	return n.send(ctx, email, "A donation has been assigned to you", body)
}

func (n *ResendNotifier) RequestApproved(ctx context.Context, r models.Reservation, email, name string) bool {
	body := greeting(name) + fmt.Sprintf("<p>Your request for <strong>%s</strong> has been approved.</p>", r.DonationTitle)
	return n.send(ctx, email, "Your donation request has been approved", body)
}

func (n *ResendNotifier) RequestRejected(ctx context.Context, r models.Reservation, email, name, adminNotes string) bool {
	body := greeting(name) + fmt.Sprintf("<p>Your request for <strong>%s</strong> was not approved.</p>", r.DonationTitle)
	if adminNotes != "" {
		body += fmt.Sprintf("<p>Notes: %s</p>", adminNotes)
	}
	return n.send(ctx, email, "Your donation request was not approved", body)
}

func (n *ResendNotifier) RequestCompleted(ctx context.Context, r models.Reservation, email, name string) bool {
	body := greeting(name) + fmt.Sprintf("<p>Your request for <strong>%s</strong> has been marked completed. Thank you for using FoodShare.</p>", r.DonationTitle)
	return n.send(ctx, email, "Your donation request is complete", body)
}

// NoopNotifier is used when no API key is configured and in tests.
type NoopNotifier struct {
	// Sent counts attempted notifications; Fail forces the best-effort
	// failure path.
	Sent int
	Fail bool
}

func (n *NoopNotifier) note(kind string) bool {
	n.Sent++
	if n.Fail {
		return false
	}
	log.Printf("[EMAIL] noop send kind=%s", kind)
	return true
}

func (n *NoopNotifier) DonationApproved(context.Context, models.Donation, string, string) bool {
	return n.note("donation_approved")
}

func (n *NoopNotifier) DonationRejected(context.Context, models.Donation, string, string, string) bool {
	return n.note("donation_rejected")
}

func (n *NoopNotifier) DonationDeleted(context.Context, models.Donation, string, string, string) bool {
	return n.note("donation_deleted")
}

func (n *NoopNotifier) DonationAssigned(context.Context, models.Donation, string, string, string) bool {
	return n.note("donation_assigned")
}

func (n *NoopNotifier) RequestApproved(context.Context, models.Reservation, string, string) bool {
	return n.note("request_approved")
}

func (n *NoopNotifier) RequestRejected(context.Context, models.Reservation, string, string, string) bool {
	return n.note("request_rejected")
}

func (n *NoopNotifier) RequestCompleted(context.Context, models.Reservation, string, string) bool {
	return n.note("request_completed")
}
