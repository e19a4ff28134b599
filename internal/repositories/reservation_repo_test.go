package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "donation_id", "requester_id", "message",
		"contact_info", "status", "admin_notes",
		"reserved_at", "responded_at",
		"title", "description", "food_type", "quantity", "location_address",
		"requester_name", "requester_email", "requester_phone",
		"donor_name", "donor_email", "donor_phone",
	})
}

func TestReservationListBindsEveryFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM food_donation_reservations fdr").
		WithArgs("pending", "%rice%", "%rice%", "%rice%", "2025-01-01", "2025-01-31").
		WillReturnRows(reservationRows().AddRow(
			1, 10, 20, "please", "mail@x", "pending", "",
			now, nil,
			"Rice packs", "desc", "grains", "5 kg", "Purok 3",
			"Ana", "ana@x", "0900", "Ben", "ben@x", "0901",
		))

	repo := ReservationRepository{DB: db}
	out, err := repo.List(context.Background(), ReservationFilter{
		Status:   "pending",
		Search:   "rice",
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-31",
	})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(out) != 1 || out[0].DonationTitle != "Rice packs" || out[0].RequesterName != "Ana" {
		t.Fatalf("unexpected rows: %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReservationListWithoutFiltersHasNoWhere(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// no WithArgs: an unfiltered list must carry zero bound parameters
	mock.ExpectQuery("FROM food_donation_reservations fdr(.|\n)+ORDER BY fdr.reserved_at DESC").
		WillReturnRows(reservationRows())

	repo := ReservationRepository{DB: db}
	if _, err := repo.List(context.Background(), ReservationFilter{}); err != nil {
		t.Fatalf("list error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBulkUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE food_donation_reservations").
		WithArgs("approved", "batch note", int64(3), int64(11), int64(12), int64(13)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := ReservationRepository{DB: db}
	n, err := repo.BulkUpdateStatus(context.Background(), []int64{11, 12, 13}, "approved", "batch note", 3)
	if err != nil {
		t.Fatalf("bulk update error: %v", err)
	}
	if n != 3 {
		t.Fatalf("affected rows: got %d want 3", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBulkUpdateStatusEmptyListIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := ReservationRepository{DB: db}
	n, err := repo.BulkUpdateStatus(context.Background(), nil, "approved", "", 3)
	if err != nil {
		t.Fatalf("bulk update error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected zero affected rows, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
