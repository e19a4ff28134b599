package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/DATA-DOG/go-sqlmock"

	"foodshare/internal/domain"
	"foodshare/internal/repositories"
)

func TestGenerateSummaryCSV(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT \\(SELECT COUNT\\(\\*\\) FROM user_accounts").
		WillReturnRows(sqlmock.NewRows([]string{"u", "d", "a", "r"}).AddRow("120", "34", "9", "18"))

	svc := ExportService{Repo: repositories.ExportRepository{DB: db}, DB: db}

	out, err := svc.Generate(context.Background(), "summary", "", "", "csv")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if out.ContentType != "text/csv" {
		t.Fatalf("unexpected content type %q", out.ContentType)
	}
	want := "summary_report_" + time.Now().Format("2006-01-02") + ".csv"
	if out.Filename != want {
		t.Fatalf("filename %q, want %q", out.Filename, want)
	}
	if out.RowCount != 1 {
		t.Fatalf("row count %d, want 1", out.RowCount)
	}
	if !bytes.HasPrefix(out.Bytes, []byte("total_users,total_donations,total_announcements,total_requests\n")) {
		t.Fatalf("csv missing header: %q", out.Bytes)
	}
	if !strings.Contains(string(out.Bytes), "120,34,9,18") {
		t.Fatalf("csv missing data row: %q", out.Bytes)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateSummaryPDF(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT \\(SELECT COUNT\\(\\*\\) FROM user_accounts").
		WillReturnRows(sqlmock.NewRows([]string{"u", "d", "a", "r"}).AddRow("1", "2", "3", "4"))

	svc := ExportService{Repo: repositories.ExportRepository{DB: db}, DB: db}

	out, err := svc.Generate(context.Background(), "summary", "", "", "pdf")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if out.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", out.ContentType)
	}
	if !bytes.HasPrefix(out.Bytes, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestClipCellKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("ñ", 50)
	got := clipCell(long, 40)
	if !utf8.ValidString(got) {
		t.Fatalf("clipped cell is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Fatalf("clipped cell has %d runes, want 40", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("clipped cell missing ellipsis: %q", got)
	}

	short := "Rice Pack"
	if clipCell(short, 40) != short {
		t.Fatalf("short cell must pass through unchanged")
	}
}

func TestGenerateRejectsBadInputBeforeDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := ExportService{Repo: repositories.ExportRepository{DB: db}, DB: db}

	if _, err := svc.Generate(context.Background(), "payments", "", "", "json"); !domain.IsValidation(err) {
		t.Fatalf("expected invalid report type rejection, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), "donations", "", "", "xlsx"); !domain.IsValidation(err) {
		t.Fatalf("expected invalid format rejection, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), "donations", "not-a-date", "", "json"); !domain.IsValidation(err) {
		t.Fatalf("expected invalid date rejection, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("validation must not touch the database: %v", err)
	}
}
