// Package matcher reconciles bank statement lines against recorded purchases and sales.
package matcher

import (
	"strings"
	"time"

	"rp_admin_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Tolerances for a candidate to count as the same money movement.
var (
	AmountTolerance = decimal.NewFromInt(1)
	DateTolerance   = 72 * time.Hour
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// ParseDate accepts the date shapes seen in statements and stored rows.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Match returns the first candidate whose amount differs by less than
// AmountTolerance and whose date differs by less than DateTolerance.
// Candidates are taken in the order given.
func Match(tx models.ParsedTransaction, candidates []models.MatchCandidate) (models.MatchCandidate, bool) {
	txDate, ok := ParseDate(tx.Date)
	if !ok {
		return models.MatchCandidate{}, false
	}
	amount := decimal.NewFromFloat(tx.Amount)

	for _, c := range candidates {
		if amount.Sub(decimal.NewFromFloat(c.Amount)).Abs().GreaterThanOrEqual(AmountTolerance) {
			continue
		}
		candDate, ok := ParseDate(c.Date)
		if !ok {
			continue
		}
		delta := txDate.Sub(candDate)
		if delta < 0 {
			delta = -delta
		}
		if delta < DateTolerance {
			return c, true
		}
	}
	return models.MatchCandidate{}, false
}

// MatchTransactions annotates each transaction in place: debits are matched
// against purchases, credits against sales. Any other type stays unmatched.
// It returns the number of matched transactions.
func MatchTransactions(txs []models.ParsedTransaction, purchases, sales []models.MatchCandidate) int {
	matched := 0
	for i := range txs {
		txs[i].Match = nil

		var pool []models.MatchCandidate
		var kind string
		switch strings.ToLower(strings.TrimSpace(txs[i].Type)) {
		case models.TransactionDebit:
			pool, kind = purchases, models.MatchPurchase
		case models.TransactionCredit:
			pool, kind = sales, models.MatchSale
		default:
			continue
		}

		if c, ok := Match(txs[i], pool); ok {
			txs[i].Match = &models.TransactionMatch{Type: kind, ID: c.ID, Label: c.Label}
			matched++
		}
	}
	return matched
}
