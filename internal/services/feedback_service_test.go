package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"foodshare/internal/domain"
	"foodshare/internal/repositories"
)

func TestUpdateFeedbackBindsPriority(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE community_feedback").
		WithArgs("platform", 4, "Pickup slots", "More evening slots please", "high", int64(5), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := FeedbackService{Repo: repositories.FeedbackRepository{DB: db}, DB: db}

	err = svc.Update(context.Background(), 9, FeedbackInput{
		ID:           5,
		FeedbackType: "platform",
		Rating:       4,
		Subject:      "Pickup slots",
		Message:      "More evening slots please",
		Priority:     "high",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateFeedbackDefaultsPriorityToMedium(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE community_feedback").
		WithArgs("support", 2, "Broken link", "Donation form 404s", "medium", int64(5), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := FeedbackService{Repo: repositories.FeedbackRepository{DB: db}, DB: db}

	err = svc.Update(context.Background(), 9, FeedbackInput{
		ID:           5,
		FeedbackType: "support",
		Rating:       2,
		Subject:      "Broken link",
		Message:      "Donation form 404s",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeedbackUpdateStatusRejectsWildcardBeforeDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := FeedbackService{Repo: repositories.FeedbackRepository{DB: db}, DB: db}

	for _, status := range []string{"all", "", "pinned"} {
		err := svc.UpdateStatus(context.Background(), 5, status)
		if !domain.IsValidation(err) {
			t.Fatalf("status %q: expected validation error, got %v", status, err)
		}
		if err.Error() != "Invalid status." {
			t.Fatalf("status %q: unexpected message %q", status, err.Error())
		}
	}
	if err := svc.Respond(context.Background(), 5, "Thanks, noted.", "all", 99); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for wildcard respond status, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("wildcard values must never reach a query: %v", err)
	}
}
