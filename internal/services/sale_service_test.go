package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"rp_admin_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestFormatBillNumber(t *testing.T) {
	tests := []struct {
		prefix, date string
		seq          int
		want         string
	}{
		{"RP-BILL", "2026-03-14", 1, "RP-BILL-20260314-001"},
		{"RP-BILL", "2026-03-14", 42, "RP-BILL-20260314-042"},
		{"RP-BILL", "2026-12-31", 1000, "RP-BILL-20261231-1000"},
		{"CAFE", "2026-01-02", 7, "CAFE-20260102-007"},
	}
	for _, tt := range tests {
		if got := FormatBillNumber(tt.prefix, tt.date, tt.seq); got != tt.want {
			t.Errorf("FormatBillNumber(%q, %q, %d) = %q, want %q", tt.prefix, tt.date, tt.seq, got, tt.want)
		}
	}
}

func newSaleServiceWithMock(t *testing.T) (SaleService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSaleService(repositories.NewSaleRepository(db), db, "RP-BILL"), mock
}

func expectSaleHeader(mock sqlmock.Sqlmock, date string, existing int, bill string, id int64) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("sales:" + date).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sales WHERE sale_date = $1")).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(existing))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
		WithArgs(bill, nil, 250.0, "cash", date, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, time.Now()))
}

func TestCreateSaleSequentialBillNumbers(t *testing.T) {
	svc, mock := newSaleServiceWithMock(t)

	want := []string{"RP-BILL-20260314-001", "RP-BILL-20260314-002", "RP-BILL-20260314-003"}
	for i, bill := range want {
		expectSaleHeader(mock, "2026-03-14", i, bill, int64(i+1))
		mock.ExpectCommit()
	}

	for i, bill := range want {
		sale, err := svc.CreateSale(CreateSaleRequest{TotalAmount: 250, SaleDate: "2026-03-14"})
		if err != nil {
			t.Fatalf("CreateSale #%d: %v", i+1, err)
		}
		if sale.BillNumber != bill {
			t.Errorf("bill #%d = %q, want %q", i+1, sale.BillNumber, bill)
		}
		if sale.PaymentMethod != DefaultPaymentMethod {
			t.Errorf("payment method = %q, want default cash", sale.PaymentMethod)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateSaleItemDefaults(t *testing.T) {
	svc, mock := newSaleServiceWithMock(t)
	menuID := int64(5)

	expectSaleHeader(mock, "2026-03-14", 0, "RP-BILL-20260314-001", 9)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sale_items")).
		WithArgs(int64(9), int64(5), "Masala Fries", 1, 120.0, 120.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sale_items")).
		WithArgs(int64(9), nil, "Cold Coffee", 2, 65.0, 130.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	sale, err := svc.CreateSale(CreateSaleRequest{
		TotalAmount: 250,
		SaleDate:    "2026-03-14",
		Items: []SaleItemRequest{
			{MenuItemID: &menuID, ItemName: "Masala Fries", UnitPrice: 120},
			{ItemName: "Cold Coffee", Quantity: 2, UnitPrice: 65},
		},
	})
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.ItemCount != 2 || sale.Items[0].Quantity != 1 || sale.Items[1].Total != 130 {
		t.Errorf("unexpected items %+v", sale.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateSaleItemFailureLeavesNoHeader(t *testing.T) {
	svc, mock := newSaleServiceWithMock(t)

	expectSaleHeader(mock, "2026-03-14", 0, "RP-BILL-20260314-001", 9)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sale_items")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "sale_items_menu_item_id_fkey"})
	mock.ExpectRollback()

	missing := int64(404)
	_, err := svc.CreateSale(CreateSaleRequest{
		TotalAmount: 250,
		SaleDate:    "2026-03-14",
		Items:       []SaleItemRequest{{MenuItemID: &missing, ItemName: "Ghost", UnitPrice: 250}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for an unknown menu item, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("header must be rolled back with the failed item: %v", err)
	}
}

func TestCreateSaleRejectsBadDate(t *testing.T) {
	svc, mock := newSaleServiceWithMock(t)
	if _, err := svc.CreateSale(CreateSaleRequest{TotalAmount: 10, SaleDate: "14/03/2026"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
