package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"foodshare/internal/domain"
	"foodshare/internal/repositories"
)

func reportRow(reportedUser, reportedPost any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reporter_id", "reported_user_id", "reported_post_id",
		"report_type", "category", "description", "status", "priority",
	}).AddRow(4, 2, reportedUser, reportedPost, "user", "spam", "spamming the feed", "pending", "high")
}

func TestTakeActionSuspendUserResolvesReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM user_reports").
		WithArgs(int64(4)).
		WillReturnRows(reportRow(int64(8), nil))
	mock.ExpectExec("UPDATE user_accounts SET status = 'suspended'").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE user_reports SET status = 'resolved'").
		WithArgs(int64(99), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := ModerationService{
		Reports: repositories.ReportRepository{DB: db},
		Users:   repositories.UserRepository{DB: db},
		DB:      db,
	}

	msg, err := svc.TakeAction(context.Background(), 4, "suspend_user", 99)
	if err != nil {
		t.Fatalf("TakeAction returned error: %v", err)
	}
	if msg != "User has been suspended." {
		t.Fatalf("unexpected message %q", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusRejectsWildcardBeforeDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := ModerationService{
		Reports: repositories.ReportRepository{DB: db},
		DB:      db,
	}

	for _, status := range []string{"all", "", "escalated"} {
		err := svc.UpdateStatus(context.Background(), 4, status, "", 99)
		if !domain.IsValidation(err) {
			t.Fatalf("status %q: expected validation error, got %v", status, err)
		}
		if err.Error() != "Invalid status." {
			t.Fatalf("status %q: unexpected message %q", status, err.Error())
		}
	}
	if err := svc.UpdatePriority(context.Background(), 4, "all"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for wildcard priority, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("wildcard values must never reach a query: %v", err)
	}
}

func TestTakeActionRejectsUnknownActionType(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM user_reports").
		WithArgs(int64(4)).
		WillReturnRows(reportRow(int64(8), nil))

	svc := ModerationService{
		Reports: repositories.ReportRepository{DB: db},
		Users:   repositories.UserRepository{DB: db},
		DB:      db,
	}

	_, err = svc.TakeAction(context.Background(), 4, "escalate", 99)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Invalid action type." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTakeActionSuspendWithoutReportedUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM user_reports").
		WithArgs(int64(4)).
		WillReturnRows(reportRow(nil, int64(12)))

	svc := ModerationService{
		Reports: repositories.ReportRepository{DB: db},
		Users:   repositories.UserRepository{DB: db},
		DB:      db,
	}

	if _, err := svc.TakeAction(context.Background(), 4, "suspend_user", 99); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
