package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectToggleInsert(mock sqlmock.Sqlmock, count int) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM announcement_likes").
		WithArgs(int64(5), "announcement", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO announcement_likes").
		WithArgs(int64(5), "announcement", int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE announcements SET likes_count").
		WithArgs(int64(5), "announcement", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT likes_count FROM announcements").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(count))
	mock.ExpectCommit()
}

func expectToggleDelete(mock sqlmock.Sqlmock, count int) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM announcement_likes").
		WithArgs(int64(5), "announcement", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(99)))
	mock.ExpectExec("DELETE FROM announcement_likes").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE announcements SET likes_count").
		WithArgs(int64(5), "announcement", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT likes_count FROM announcements").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"likes_count"}).AddRow(count))
	mock.ExpectCommit()
}

// Toggling twice returns to the original state and the counter returns to its
// original value.
func TestToggleLikePairIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectToggleInsert(mock, 4)
	expectToggleDelete(mock, 3)

	repo := EngagementRepository{DB: db}
	ctx := context.Background()

	liked, count, err := repo.ToggleLike(ctx, 5, "announcement", 7)
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if !liked || count != 4 {
		t.Fatalf("first toggle: got liked=%v count=%d, want liked=true count=4", liked, count)
	}

	liked, count, err = repo.ToggleLike(ctx, 5, "announcement", 7)
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if liked || count != 3 {
		t.Fatalf("second toggle: got liked=%v count=%d, want liked=false count=3", liked, count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// The save toggle has no counter column, so no announcements update may run
// and the post_type guard keeps non-announcement posts away from the counter.
func TestToggleSaveSkipsCounter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM announcement_saves").
		WithArgs(int64(5), "food_donation", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO announcement_saves").
		WithArgs(int64(5), "food_donation", int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := EngagementRepository{DB: db}
	saved, err := repo.ToggleSave(context.Background(), 5, "food_donation", 7)
	if err != nil {
		t.Fatalf("toggle save error: %v", err)
	}
	if !saved {
		t.Fatalf("expected saved=true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddCommentRecomputesCounterInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO announcement_comments").
		WithArgs(int64(5), "announcement", int64(7), "Thank you!").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE announcements SET comments_count").
		WithArgs(int64(5), "announcement", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT comments_count FROM announcements").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"comments_count"}).AddRow(12))
	mock.ExpectCommit()

	repo := EngagementRepository{DB: db}
	if err := repo.AddComment(context.Background(), 5, "announcement", 7, "Thank you!"); err != nil {
		t.Fatalf("add comment error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
