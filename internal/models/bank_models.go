package models

import "time"

// Transaction directions on a bank statement.
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Match target kinds.
const (
	MatchPurchase = "purchase"
	MatchSale     = "sale"
)

// BankTransaction is a persisted statement line. Rows are append-only.
type BankTransaction struct {
	ID                int64     `json:"id"`
	TransactionDate   string    `json:"transaction_date"`
	Description       string    `json:"description"`
	Amount            float64   `json:"amount"`
	Type              string    `json:"type"`
	MatchedPurchaseID *int64    `json:"matched_purchase_id"`
	MatchedSaleID     *int64    `json:"matched_sale_id"`
	RawText           *string   `json:"raw_text,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ParsedTransaction is a statement line extracted from text, before it is saved.
type ParsedTransaction struct {
	Date        string            `json:"date" binding:"required"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Type        string            `json:"type" binding:"required,txtype"`
	Match       *TransactionMatch `json:"match"`
}

// TransactionMatch links a parsed line to an existing purchase or sale.
type TransactionMatch struct {
	Type  string `json:"type" binding:"omitempty,oneof=purchase sale"`
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// MatchCandidate is the slice of a Purchase or Sale the matcher needs.
type MatchCandidate struct {
	ID     int64
	Amount float64
	Date   string
	Label  string
}
