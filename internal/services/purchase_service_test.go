package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"rp_admin_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLineTotal(t *testing.T) {
	explicit := 99.0
	zero := 0.0
	tests := []struct {
		name      string
		total     *float64
		qty, unit float64
		want      float64
	}{
		{"explicit total wins", &explicit, 2, 10, 99},
		{"computed when absent", nil, 3, 12.5, 37.5},
		{"computed when zero", &zero, 2, 0.1, 0.2},
		{"rounded to cents", nil, 3, 0.333, 1},
	}
	for _, tt := range tests {
		if got := lineTotal(tt.total, tt.qty, tt.unit); got != tt.want {
			t.Errorf("%s: lineTotal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCreatePurchaseAtomic(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	svc := NewPurchaseService(repositories.NewPurchaseRepository(db), db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO purchases")).
		WithArgs("Metro", nil, 480.0, "2026-03-12", DefaultPurchaseCategory, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO purchase_items")).
		WithArgs(int64(3), "Cola", 24.0, 20.0, 480.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO purchase_items")).
		WithArgs(int64(3), "Ice", 1.0, 0.0, 0.0).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err = svc.CreatePurchase(CreatePurchaseRequest{
		Vendor:       "Metro",
		TotalAmount:  480,
		PurchaseDate: "2026-03-12",
		Items: []PurchaseItemRequest{
			{ItemName: "Cola", Quantity: 24, UnitPrice: 20},
			{ItemName: "Ice", Quantity: 1},
		},
	})
	if err == nil {
		t.Fatal("expected the failed item to fail the purchase")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("purchase should roll back as a whole: %v", err)
	}
}

func TestCreatePurchaseValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	svc := NewPurchaseService(repositories.NewPurchaseRepository(db), db)

	for _, req := range []CreatePurchaseRequest{
		{Vendor: "  ", TotalAmount: 10, PurchaseDate: "2026-03-12"},
		{Vendor: "Metro", TotalAmount: 10, PurchaseDate: "March 12"},
	} {
		if _, err := svc.CreatePurchase(req); !errors.Is(err, ErrValidation) {
			t.Errorf("CreatePurchase(%+v) err = %v, want ErrValidation", req, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
