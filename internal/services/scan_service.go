package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rp_admin_backend/internal/extract"
	"rp_admin_backend/internal/matcher"
	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/ocr"
	"rp_admin_backend/internal/repositories"
	"rp_admin_backend/internal/statement"
	"rp_admin_backend/internal/storage"
	"rp_admin_backend/pkg/utils"
)

var (
	ErrNoTextExtracted  = errors.New("could not extract text from image")
	ErrNoTextToParse    = errors.New("no text to parse")
	ErrNoTransactions   = errors.New("transactions array required")
	ErrUnreadableUpload = errors.New("could not read uploaded file")
)

// RawTextPreview is how much statement text is echoed back to the client.
const RawTextPreview = 500

// ReceiptScanResult is the response of a receipt scan.
type ReceiptScanResult struct {
	OCRText    string          `json:"ocr_text"`
	Extracted  extract.Receipt `json:"extracted"`
	ReceiptURL *string         `json:"receipt_url,omitempty"`
}

// StatementScanResult is the response of a statement scan.
type StatementScanResult struct {
	RawText      string                     `json:"raw_text"`
	Transactions []models.ParsedTransaction `json:"transactions"`
	TotalParsed  int                        `json:"total_parsed"`
	TotalMatched int                        `json:"total_matched"`
}

// SaveTransactionsRequest is the body of PUT /scan/bank-statement.
type SaveTransactionsRequest struct {
	Transactions []models.ParsedTransaction `json:"transactions" binding:"required,dive"`
}

type SaveTransactionsResult struct {
	OK    bool `json:"ok"`
	Saved int  `json:"saved"`
}

type ScanService interface {
	ScanReceipt(ctx context.Context, filename, contentType string, data []byte) (*ReceiptScanResult, error)
	ScanBankStatement(ctx context.Context, filename string, data []byte) (*StatementScanResult, error)
	ParseStatementText(ctx context.Context, text string) (*StatementScanResult, error)
	SaveBankTransactions(txs []models.ParsedTransaction) (*SaveTransactionsResult, error)
	ListBankTransactions(limit int) ([]models.BankTransaction, error)
}

type scanService struct {
	ocr          ocr.Engine
	completer    extract.Completer
	receipts     storage.ReceiptStore
	purchaseRepo repositories.PurchaseRepository
	saleRepo     repositories.SaleRepository
	bankRepo     repositories.BankTransactionRepository
	db           *sql.DB
	now          func() time.Time
}

// NewScanService wires the ingestion pipeline. receipts may be nil, in
// which case scanned images are not kept.
func NewScanService(
	engine ocr.Engine,
	completer extract.Completer,
	receipts storage.ReceiptStore,
	pr repositories.PurchaseRepository,
	sr repositories.SaleRepository,
	br repositories.BankTransactionRepository,
	db *sql.DB,
) ScanService {
	return &scanService{
		ocr:          engine,
		completer:    completer,
		receipts:     receipts,
		purchaseRepo: pr,
		saleRepo:     sr,
		bankRepo:     br,
		db:           db,
		now:          time.Now,
	}
}

func (s *scanService) recognize(ctx context.Context, data []byte) (string, error) {
	text, err := s.ocr.Recognize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (s *scanService) ScanReceipt(ctx context.Context, filename, contentType string, data []byte) (*ReceiptScanResult, error) {
	text, err := s.recognize(ctx, data)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrNoTextExtracted
	}

	receipt, err := extract.ExtractReceipt(ctx, s.completer, text, s.now())
	if err != nil {
		utils.LogWarn(err, "Receipt extraction failed, returning defaults")
	}

	result := &ReceiptScanResult{OCRText: text, Extracted: receipt}
	if s.receipts != nil {
		url, err := s.receipts.Save(ctx, filename, contentType, data)
		if err != nil {
			utils.LogWarn(err, "Failed to store receipt image", map[string]interface{}{"filename": filename})
		} else {
			result.ReceiptURL = &url
		}
	}
	return result, nil
}

func (s *scanService) ScanBankStatement(ctx context.Context, filename string, data []byte) (*StatementScanResult, error) {
	var text string
	switch statement.KindOf(filename) {
	case statement.KindText:
		text = string(data)
	case statement.KindSpreadsheet:
		csvText, err := statement.SpreadsheetToCSV(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableUpload, err)
		}
		text = csvText
	default:
		recognized, err := s.recognize(ctx, data)
		if err != nil {
			return nil, err
		}
		text = recognized
	}
	return s.ParseStatementText(ctx, text)
}

// ParseStatementText extracts transactions from statement text and matches
// them against recorded purchases and sales.
func (s *scanService) ParseStatementText(ctx context.Context, text string) (*StatementScanResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoTextToParse
	}

	txs, err := extract.ExtractTransactions(ctx, s.completer, text)
	if err != nil {
		utils.LogWarn(err, "Statement extraction failed")
	}

	purchases, err := s.purchaseRepo.ListMatchCandidates()
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases for matching: %w", err)
	}
	sales, err := s.saleRepo.ListMatchCandidates()
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for matching: %w", err)
	}
	matched := matcher.MatchTransactions(txs, purchases, sales)

	return &StatementScanResult{
		RawText:      utils.Truncate(text, RawTextPreview),
		Transactions: txs,
		TotalParsed:  len(txs),
		TotalMatched: matched,
	}, nil
}

// SaveBankTransactions stores every line in one transaction, keeping the
// submitted line as raw JSON and linking the confirmed match. An empty list
// saves nothing; a nil list is rejected.
func (s *scanService) SaveBankTransactions(txs []models.ParsedTransaction) (*SaveTransactionsResult, error) {
	if txs == nil {
		return nil, ErrNoTransactions
	}
	if len(txs) == 0 {
		return &SaveTransactionsResult{OK: true, Saved: 0}, nil
	}
	rows := make([]models.BankTransaction, 0, len(txs))
	for i, t := range txs {
		if err := validateDate(fmt.Sprintf("transactions[%d].date", i), t.Date); err != nil {
			return nil, err
		}
		txType := strings.ToLower(strings.TrimSpace(t.Type))
		if txType != models.TransactionCredit && txType != models.TransactionDebit {
			return nil, fmt.Errorf("%w: transactions[%d].type must be credit or debit", ErrValidation, i)
		}
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encoding transaction %d: %w", i, err)
		}
		rawText := string(raw)
		row := models.BankTransaction{
			TransactionDate: t.Date,
			Description:     t.Description,
			Amount:          t.Amount,
			Type:            txType,
			RawText:         &rawText,
		}
		if t.Match != nil && t.Match.ID > 0 {
			id := t.Match.ID
			switch t.Match.Type {
			case models.MatchPurchase:
				row.MatchedPurchaseID = &id
			case models.MatchSale:
				row.MatchedSaleID = &id
			}
		}
		rows = append(rows, row)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range rows {
		if _, err := s.bankRepo.CreateBankTransaction(tx, &rows[i]); err != nil {
			if errors.Is(err, repositories.ErrInvalidReference) {
				return nil, fmt.Errorf("%w: transactions[%d] matches an unknown record", ErrValidation, i)
			}
			return nil, fmt.Errorf("failed to save bank transaction %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bank transactions: %w", err)
	}
	return &SaveTransactionsResult{OK: true, Saved: len(rows)}, nil
}

func (s *scanService) ListBankTransactions(limit int) ([]models.BankTransaction, error) {
	txs, err := s.bankRepo.ListBankTransactions(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return txs, nil
}
