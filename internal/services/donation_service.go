package services

import (
	"context"
	"database/sql"

	"foodshare/internal/config"
	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
	"foodshare/internal/notify"
	"foodshare/internal/repositories"
	"foodshare/internal/storage"
	"foodshare/internal/utils"
)

const (
	emailSentNote   = " Email notification sent to donor."
	emailFailedNote = " Note: Email notification could not be sent."
)

// DonationService covers the donation-management and expired-donations pages:
// approval decisions, assignment to residents, deletion and expiry handling.
// Email sends are best effort; the returned message carries the outcome.
type DonationService struct {
	Donations    repositories.DonationRepository
	Users        repositories.UserRepository
	Reservations repositories.ReservationRepository
	Notifier     notify.Notifier
	Store        *storage.Store
	DB           *sql.DB
	RequestID    string
}

func (s DonationService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s DonationService) donations() repositories.DonationRepository {
	if s.Donations.DB != nil {
		return s.Donations
	}
	return repositories.DonationRepository{DB: s.db()}
}

func (s DonationService) users() repositories.UserRepository {
	if s.Users.DB != nil {
		return s.Users
	}
	return repositories.UserRepository{DB: s.db()}
}

func (s DonationService) reservations() repositories.ReservationRepository {
	if s.Reservations.DB != nil {
		return s.Reservations
	}
	return repositories.ReservationRepository{DB: s.db()}
}

func (s DonationService) notifier() notify.Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return &notify.NoopNotifier{}
}

func emailNote(sent bool) string {
	if sent {
		return emailSentNote
	}
	return emailFailedNote
}

// Approve marks the donation approved and emails the donor.
func (s DonationService) Approve(ctx context.Context, donationID, officerID int64) (string, error) {
	if donationID <= 0 {
		return "", domain.Validationf("Invalid donation ID.")
	}
	d, err := s.donations().GetWithDonor(ctx, donationID)
	if err != nil {
		return "", err
	}
	if err := s.donations().Approve(ctx, donationID, officerID); err != nil {
		return "", err
	}
	sent := s.notifier().DonationApproved(ctx, d, d.DonorEmail, d.DonorName)
	utils.LogEvent(s.RequestID, "donation-management", "approve", "approved")
	return "Donation approved successfully." + emailNote(sent), nil
}

// Reject records the rejection reason and emails the donor.
func (s DonationService) Reject(ctx context.Context, donationID, officerID int64, reason string) (string, error) {
	if donationID <= 0 {
		return "", domain.Validationf("Invalid donation ID.")
	}
	if reason == "" {
		return "", domain.Validationf("Rejection reason is required.")
	}
	d, err := s.donations().GetWithDonor(ctx, donationID)
	if err != nil {
		return "", err
	}
	if err := s.donations().Reject(ctx, donationID, officerID, reason); err != nil {
		return "", err
	}
	sent := s.notifier().DonationRejected(ctx, d, d.DonorEmail, d.DonorName, reason)
	utils.LogEvent(s.RequestID, "donation-management", "reject", "rejected")
	return "Donation rejected." + emailNote(sent), nil
}

func (s DonationService) Details(ctx context.Context, donationID int64) (models.Donation, error) {
	if donationID <= 0 {
		return models.Donation{}, domain.Validationf("Invalid donation ID.")
	}
	return s.donations().Details(ctx, donationID)
}

// Residents lists assignment candidates: approved residents at the officer's
// address with the donor excluded, falling back to all residents ranked by
// account status when the strict list comes back empty.
func (s DonationService) Residents(ctx context.Context, officerID, donationID int64) ([]models.User, error) {
	if donationID <= 0 {
		return nil, domain.Validationf("Invalid donation ID.")
	}
	d, err := s.donations().GetWithDonor(ctx, donationID)
	if err != nil {
		return nil, err
	}
	address, err := s.users().Address(ctx, officerID)
	if err != nil {
		return nil, err
	}
	if address == "" {
		return nil, domain.Validationf("Officer address is not set.")
	}

	residents, err := s.users().ResidentsByAddress(ctx, address, true, d.UserID)
	if err != nil {
		return nil, err
	}
	if len(residents) == 0 {
		residents, err = s.users().ResidentsByAddress(ctx, address, false, d.UserID)
		if err != nil {
			return nil, err
		}
	}
	if residents == nil {
		residents = []models.User{}
	}
	return residents, nil
}

// Assign hands an approved donation to a resident, records the tracking
// reservation and emails the assignee.
func (s DonationService) Assign(ctx context.Context, donationID, residentID, officerID int64, notes string) (string, error) {
	if donationID <= 0 {
		return "", domain.Validationf("Invalid donation ID.")
	}
	if residentID <= 0 {
		return "", domain.Validationf("Invalid resident selected.")
	}

	d, err := s.donations().GetApprovedWithDonor(ctx, donationID)
	if err != nil {
		return "", err
	}
	if residentID == d.UserID {
		return "", domain.Validationf("Cannot assign donation to the donor.")
	}
	resident, err := s.users().GetResident(ctx, residentID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.Validationf("Invalid resident selected.")
		}
		return "", err
	}

	if err := s.donations().Assign(ctx, donationID, residentID, officerID, notes); err != nil {
		return "", err
	}
	if err := s.reservations().UpsertAssignment(ctx, donationID, residentID, "Assigned by team officer", resident.PhoneNumber); err != nil {
		return "", err
	}

	sent := s.notifier().DonationAssigned(ctx, d, resident.Email, resident.FullName, notes)
	utils.LogEvent(s.RequestID, "donation-management", "assign_donation", "assigned")
	msg := "Donation assigned successfully."
	if sent {
		return msg + " Email notification sent to resident.", nil
	}
	return msg + emailFailedNote, nil
}

// Delete removes the donation row, its stored images and emails the donor.
func (s DonationService) Delete(ctx context.Context, donationID int64, reason string) (string, error) {
	if donationID <= 0 {
		return "", domain.Validationf("Invalid donation ID.")
	}
	d, err := s.donations().GetWithDonor(ctx, donationID)
	if err != nil {
		return "", err
	}
	if err := s.donations().Delete(ctx, donationID); err != nil {
		return "", err
	}
	if s.Store != nil {
		s.Store.Remove(d.Images...)
	}
	sent := s.notifier().DonationDeleted(ctx, d, d.DonorEmail, d.DonorName, reason)
	utils.LogEvent(s.RequestID, "donation-management", "delete", "deleted")
	return "Donation deleted successfully." + emailNote(sent), nil
}

// Extend pushes the expiration date of an expired donation forward and flips
// it back to available.
func (s DonationService) Extend(ctx context.Context, donationID int64, newExpiry string) (string, error) {
	if donationID <= 0 {
		return "", domain.Validationf("Invalid donation ID.")
	}
	if _, err := utils.ParseDate(newExpiry); err != nil {
		return "", domain.Validationf("Invalid expiration date.")
	}
	if err := s.donations().ExtendExpiry(ctx, donationID, newExpiry); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "expired-donations", "extend", "extended")
	return "Expiration date extended successfully.", nil
}

// Expired lists donations past their expiration date or already marked
// expired/cancelled.
func (s DonationService) Expired(ctx context.Context) ([]models.Donation, error) {
	out, err := s.donations().ListExpired(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Donation{}
	}
	return out, nil
}
