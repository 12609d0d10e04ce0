package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

type fakeOCR struct {
	text  string
	err   error
	calls int
}

func (f *fakeOCR) Recognize(context.Context, []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type fakeStore struct {
	url string
	err error
}

func (f *fakeStore) Save(context.Context, string, string, []byte) (string, error) {
	return f.url, f.err
}

type fakePurchaseCandidates struct {
	repositories.PurchaseRepository
	candidates []models.MatchCandidate
}

func (f fakePurchaseCandidates) ListMatchCandidates() ([]models.MatchCandidate, error) {
	return f.candidates, nil
}

type fakeSaleCandidates struct {
	repositories.SaleRepository
	candidates []models.MatchCandidate
}

func (f fakeSaleCandidates) ListMatchCandidates() ([]models.MatchCandidate, error) {
	return f.candidates, nil
}

func newTestScanService(engine *fakeOCR, c *fakeCompleter) *scanService {
	svc := NewScanService(engine, c, nil,
		fakePurchaseCandidates{candidates: []models.MatchCandidate{
			{ID: 11, Amount: 1200, Date: "2026-03-10", Label: "Purchase from Metro"},
		}},
		fakeSaleCandidates{candidates: []models.MatchCandidate{
			{ID: 21, Amount: 450, Date: "2026-03-12", Label: "Sale RP-BILL-20260312-001"},
		}},
		nil, nil,
	).(*scanService)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestScanReceiptEmptyText(t *testing.T) {
	svc := newTestScanService(&fakeOCR{text: "  \n "}, &fakeCompleter{})
	_, err := svc.ScanReceipt(context.Background(), "r.jpg", "image/jpeg", []byte("img"))
	if !errors.Is(err, ErrNoTextExtracted) {
		t.Fatalf("err = %v, want ErrNoTextExtracted", err)
	}
}

func TestScanReceiptDegradesToDefaults(t *testing.T) {
	completer := &fakeCompleter{reply: "sorry, I cannot help with that"}
	svc := newTestScanService(&fakeOCR{text: "METRO CASH\nTOTAL 1200"}, completer)

	res, err := svc.ScanReceipt(context.Background(), "r.jpg", "image/jpeg", []byte("img"))
	if err != nil {
		t.Fatalf("ScanReceipt: %v", err)
	}
	if res.OCRText != "METRO CASH\nTOTAL 1200" {
		t.Errorf("OCRText = %q", res.OCRText)
	}
	ex := res.Extracted
	if ex.Vendor != "" || ex.InvoiceNumber != nil || ex.Category != "Other" || ex.TotalAmount != 0 {
		t.Errorf("Extracted = %+v, want defaults", ex)
	}
	if ex.PurchaseDate != "2026-03-14" {
		t.Errorf("PurchaseDate = %q, want today", ex.PurchaseDate)
	}
	if ex.Items == nil || len(ex.Items) != 0 {
		t.Errorf("Items = %v, want empty non-nil", ex.Items)
	}
	if res.ReceiptURL != nil {
		t.Errorf("ReceiptURL = %q, want nil without storage", *res.ReceiptURL)
	}
	if len(completer.prompts) != 1 || !strings.Contains(completer.prompts[0], "METRO CASH") {
		t.Errorf("prompt did not carry OCR text: %v", completer.prompts)
	}
}

func TestScanReceiptStoresImage(t *testing.T) {
	svc := newTestScanService(&fakeOCR{text: "receipt"}, &fakeCompleter{
		reply: "```json\n{\"vendor\":\"Metro\",\"purchase_date\":\"2026-03-10\",\"category\":\"Beverages\",\"total_amount\":1200}\n```",
	})
	svc.receipts = &fakeStore{url: "/receipts/2026/03/abc.jpg"}

	res, err := svc.ScanReceipt(context.Background(), "r.jpg", "image/jpeg", []byte("img"))
	if err != nil {
		t.Fatalf("ScanReceipt: %v", err)
	}
	if res.Extracted.Vendor != "Metro" || res.Extracted.TotalAmount != 1200 {
		t.Errorf("Extracted = %+v", res.Extracted)
	}
	if res.ReceiptURL == nil || *res.ReceiptURL != "/receipts/2026/03/abc.jpg" {
		t.Errorf("ReceiptURL = %v", res.ReceiptURL)
	}
}

func TestParseStatementTextEmpty(t *testing.T) {
	svc := newTestScanService(&fakeOCR{}, &fakeCompleter{})
	if _, err := svc.ParseStatementText(context.Background(), "   "); !errors.Is(err, ErrNoTextToParse) {
		t.Fatalf("err = %v, want ErrNoTextToParse", err)
	}
}

func TestParseStatementTextMatches(t *testing.T) {
	completer := &fakeCompleter{reply: `Here you go: {"transactions":[
		{"date":"2026-03-11","description":"METRO","amount":1200.5,"type":"debit"},
		{"date":"2026-03-12","description":"UPI IN","amount":450,"type":"credit"},
		{"date":"2026-03-12","description":"ATM","amount":450,"type":"debit"}
	]}`}
	svc := newTestScanService(&fakeOCR{}, completer)
	text := strings.Repeat("x", 4000)

	res, err := svc.ParseStatementText(context.Background(), text)
	if err != nil {
		t.Fatalf("ParseStatementText: %v", err)
	}
	if len(res.RawText) != RawTextPreview {
		t.Errorf("RawText len = %d, want %d", len(res.RawText), RawTextPreview)
	}
	if res.TotalParsed != 3 || res.TotalMatched != 2 {
		t.Errorf("parsed/matched = %d/%d, want 3/2", res.TotalParsed, res.TotalMatched)
	}
	if m := res.Transactions[0].Match; m == nil || m.Type != models.MatchPurchase || m.ID != 11 {
		t.Errorf("tx0 match = %+v", m)
	}
	if m := res.Transactions[1].Match; m == nil || m.Type != models.MatchSale || m.ID != 21 {
		t.Errorf("tx1 match = %+v", m)
	}
	if res.Transactions[2].Match != nil {
		t.Errorf("debit must not match a sale, got %+v", res.Transactions[2].Match)
	}
	if strings.Contains(completer.prompts[0], strings.Repeat("x", 3001)) {
		t.Error("prompt text was not truncated")
	}
}

func TestScanBankStatementTextFileSkipsOCR(t *testing.T) {
	engine := &fakeOCR{text: "should not be used"}
	svc := newTestScanService(engine, &fakeCompleter{reply: `{"transactions":[]}`})

	res, err := svc.ScanBankStatement(context.Background(), "march.csv", []byte("date,desc,amount\n"))
	if err != nil {
		t.Fatalf("ScanBankStatement: %v", err)
	}
	if engine.calls != 0 {
		t.Errorf("OCR called %d times for a CSV", engine.calls)
	}
	if res.Transactions == nil || res.TotalParsed != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestSaveBankTransactions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	svc := NewScanService(&fakeOCR{}, &fakeCompleter{}, nil, nil, nil,
		repositories.NewBankTransactionRepository(db), db)

	insert := regexp.QuoteMeta("INSERT INTO bank_transactions")
	mock.ExpectBegin()
	mock.ExpectQuery(insert).
		WithArgs("2026-03-11", "METRO", 1200.5, "debit", int64(11), nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery(insert).
		WithArgs("2026-03-12", "UPI IN", 450.0, "credit", nil, int64(21), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
	mock.ExpectQuery(insert).
		WithArgs("2026-03-13", "FEE", 10.0, "debit", nil, nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))
	mock.ExpectCommit()

	res, err := svc.SaveBankTransactions([]models.ParsedTransaction{
		{Date: "2026-03-11", Description: "METRO", Amount: 1200.5, Type: "debit",
			Match: &models.TransactionMatch{Type: models.MatchPurchase, ID: 11}},
		{Date: "2026-03-12", Description: "UPI IN", Amount: 450, Type: "Credit",
			Match: &models.TransactionMatch{Type: models.MatchSale, ID: 21}},
		{Date: "2026-03-13", Description: "FEE", Amount: 10, Type: "debit"},
	})
	if err != nil {
		t.Fatalf("SaveBankTransactions: %v", err)
	}
	if !res.OK || res.Saved != 3 {
		t.Errorf("result = %+v, want ok with 3 saved", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveBankTransactionsRejectsBadInput(t *testing.T) {
	svc := NewScanService(&fakeOCR{}, &fakeCompleter{}, nil, nil, nil, nil, nil)

	if _, err := svc.SaveBankTransactions(nil); !errors.Is(err, ErrNoTransactions) {
		t.Errorf("nil list: err = %v", err)
	}
	_, err := svc.SaveBankTransactions([]models.ParsedTransaction{{Date: "14/03/2026", Type: "debit"}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad date: err = %v", err)
	}
	_, err = svc.SaveBankTransactions([]models.ParsedTransaction{{Date: "2026-03-14", Type: "refund"}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad type: err = %v", err)
	}
}

func TestSaveBankTransactionsEmptyList(t *testing.T) {
	svc := NewScanService(&fakeOCR{}, &fakeCompleter{}, nil, nil, nil, nil, nil)

	res, err := svc.SaveBankTransactions([]models.ParsedTransaction{})
	if err != nil {
		t.Fatalf("SaveBankTransactions: %v", err)
	}
	if !res.OK || res.Saved != 0 {
		t.Errorf("result = %+v, want ok with 0 saved", res)
	}
}
