package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"foodshare/internal/domain"
	"foodshare/internal/notify"
	"foodshare/internal/repositories"
)

var donationColumns = []string{
	"id", "user_id", "title", "description", "food_type",
	"quantity", "location_address", "expiration_date",
	"status", "approval_status", "approved_by", "approved_at",
	"rejection_reason", "images", "views_count", "created_at",
	"full_name", "email", "phone_number",
}

func donationRow() *sqlmock.Rows {
	return sqlmock.NewRows(donationColumns).AddRow(
		3, 11, "Rice Pack", "5kg jasmine rice", "grains",
		"5kg", "Barangay Hall", nil,
		"available", "pending", nil, nil,
		"", nil, 0, time.Now(),
		"Donor One", "donor@example.com", "0800",
	)
}

func TestApproveDonationNotesEmailOutcome(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM food_donations fd").
		WithArgs(int64(3)).
		WillReturnRows(donationRow())
	mock.ExpectExec("UPDATE food_donations").
		WithArgs(int64(99), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	notifier := &notify.NoopNotifier{}
	svc := DonationService{
		Donations: repositories.DonationRepository{DB: db},
		Notifier:  notifier,
		DB:        db,
	}

	msg, err := svc.Approve(context.Background(), 3, 99)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if !strings.HasSuffix(msg, " Email notification sent to donor.") {
		t.Fatalf("expected email note, got %q", msg)
	}
	if notifier.Sent != 1 {
		t.Fatalf("expected one notification attempt, got %d", notifier.Sent)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRejectDonationRequiresReasonBeforeDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := DonationService{
		Donations: repositories.DonationRepository{DB: db},
		Notifier:  &notify.NoopNotifier{},
		DB:        db,
	}

	_, err = svc.Reject(context.Background(), 3, 99, "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Rejection reason is required." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}

func TestAssignRejectsDonorAsAssignee(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	row := sqlmock.NewRows(donationColumns).AddRow(
		3, 11, "Rice Pack", "5kg jasmine rice", "grains",
		"5kg", "Barangay Hall", nil,
		"available", "approved", 99, time.Now(),
		"", nil, 0, time.Now(),
		"Donor One", "donor@example.com", "0800",
	)
	mock.ExpectQuery("FROM food_donations fd").
		WithArgs(int64(3)).
		WillReturnRows(row)

	svc := DonationService{
		Donations: repositories.DonationRepository{DB: db},
		Notifier:  &notify.NoopNotifier{},
		DB:        db,
	}

	_, err = svc.Assign(context.Background(), 3, 11, 99, "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Cannot assign donation to the donor." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInvalidDonationIDShortCircuits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := DonationService{
		Donations: repositories.DonationRepository{DB: db},
		Notifier:  &notify.NoopNotifier{},
		DB:        db,
	}

	for name, call := range map[string]func() error{
		"approve": func() error { _, err := svc.Approve(context.Background(), 0, 99); return err },
		"details": func() error { _, err := svc.Details(context.Background(), -1); return err },
		"delete":  func() error { _, err := svc.Delete(context.Background(), 0, ""); return err },
		"extend":  func() error { _, err := svc.Extend(context.Background(), 0, "2026-01-01"); return err },
	} {
		err := call()
		if !domain.IsValidation(err) || err.Error() != "Invalid donation ID." {
			t.Fatalf("%s: expected Invalid donation ID., got %v", name, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("id checks must not touch the database: %v", err)
	}
}
