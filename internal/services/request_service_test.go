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

var reservationColumns = []string{
	"id", "donation_id", "requester_id", "message",
	"contact_info", "status", "admin_notes",
	"reserved_at", "responded_at",
	"title", "description", "food_type", "quantity",
	"location_address",
	"requester_name", "requester_email", "requester_phone",
	"donor_name", "donor_email", "donor_phone",
}

func reservationRow() *sqlmock.Rows {
	return sqlmock.NewRows(reservationColumns).AddRow(
		7, 3, 12, "Need this",
		"0800", "pending", "",
		time.Now(), nil,
		"Rice Pack", "5kg jasmine rice", "grains", "5kg",
		"Barangay Hall",
		"Resident One", "resident@example.com", "0801",
		"Donor One", "donor@example.com", "0802",
	)
}

func TestUpdateRequestStatusAppendsEmailSentNote(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM food_donation_reservations fdr").
		WithArgs(int64(7)).
		WillReturnRows(reservationRow())
	mock.ExpectExec("UPDATE food_donation_reservations").
		WithArgs("approved", "looks good", int64(99), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := RequestService{
		Reservations: repositories.ReservationRepository{DB: db},
		Notifier:     &notify.NoopNotifier{},
		DB:           db,
	}

	msg, err := svc.UpdateStatus(context.Background(), 7, "approved", "looks good", 99)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if !strings.HasSuffix(msg, " Email notification sent to requester.") {
		t.Fatalf("expected sent note, got %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRequestStatusAppendsFailureNote(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM food_donation_reservations fdr").
		WithArgs(int64(7)).
		WillReturnRows(reservationRow())
	mock.ExpectExec("UPDATE food_donation_reservations").
		WithArgs("rejected", "", int64(99), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := RequestService{
		Reservations: repositories.ReservationRepository{DB: db},
		Notifier:     &notify.NoopNotifier{Fail: true},
		DB:           db,
	}

	msg, err := svc.UpdateStatus(context.Background(), 7, "rejected", "", 99)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if !strings.HasSuffix(msg, " Note: Email notification could not be sent.") {
		t.Fatalf("expected failure note, got %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRequestStatusCancelledSkipsEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM food_donation_reservations fdr").
		WithArgs(int64(7)).
		WillReturnRows(reservationRow())
	mock.ExpectExec("UPDATE food_donation_reservations").
		WithArgs("cancelled", "", int64(99), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	notifier := &notify.NoopNotifier{}
	svc := RequestService{
		Reservations: repositories.ReservationRepository{DB: db},
		Notifier:     notifier,
		DB:           db,
	}

	msg, err := svc.UpdateStatus(context.Background(), 7, "cancelled", "", 99)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if msg != "Request cancelled successfully." {
		t.Fatalf("cancellation must not mention email, got %q", msg)
	}
	if notifier.Sent != 0 {
		t.Fatalf("expected no email for cancellation, sent=%d", notifier.Sent)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRequestStatusRejectsUnknownStatusBeforeDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := RequestService{
		Reservations: repositories.ReservationRepository{DB: db},
		Notifier:     &notify.NoopNotifier{},
		DB:           db,
	}

	_, err = svc.UpdateStatus(context.Background(), 7, "archived", "", 99)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Invalid status." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("status check must run before any query: %v", err)
	}
}

func TestBulkActionValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := RequestService{
		Reservations: repositories.ReservationRepository{DB: db},
		Notifier:     &notify.NoopNotifier{},
		DB:           db,
	}

	if _, err := svc.BulkAction(context.Background(), "approve", nil, 99); err == nil || err.Error() != "No requests selected." {
		t.Fatalf("expected empty-selection rejection, got %v", err)
	}
	if _, err := svc.BulkAction(context.Background(), "promote", []int64{1}, 99); err == nil || err.Error() != "Invalid action." {
		t.Fatalf("expected invalid-action rejection, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}

func TestBulkActionReportsAffectedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE food_donation_reservations").
		WithArgs("completed", "Bulk action by team officer", int64(99), int64(4), int64(5), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	svc := RequestService{
		Reservations: repositories.ReservationRepository{DB: db},
		Notifier:     &notify.NoopNotifier{},
		DB:           db,
	}

	msg, err := svc.BulkAction(context.Background(), "complete", []int64{4, 5, 6}, 99)
	if err != nil {
		t.Fatalf("BulkAction returned error: %v", err)
	}
	if msg != "Successfully updated 3 request(s)." {
		t.Fatalf("unexpected message %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
