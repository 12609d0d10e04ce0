package matcher

import (
	"testing"

	"rp_admin_backend/internal/models"
)

var (
	purchases = []models.MatchCandidate{
		{ID: 10, Amount: 1250, Date: "2026-03-01", Label: "Purchase from Metro"},
		{ID: 11, Amount: 480.5, Date: "2026-03-05", Label: "Purchase from Dairy Co"},
	}
	sales = []models.MatchCandidate{
		{ID: 20, Amount: 640, Date: "2026-03-02", Label: "Sale RP-BILL-20260302-001"},
		{ID: 21, Amount: 640, Date: "2026-03-03", Label: "Sale RP-BILL-20260303-001"},
	}
)

func TestMatchTransactions(t *testing.T) {
	tests := []struct {
		name      string
		tx        models.ParsedTransaction
		wantType  string
		wantID    int64
		wantMatch bool
	}{
		{"debit exact", models.ParsedTransaction{Date: "2026-03-01", Amount: 1250, Type: "debit"}, models.MatchPurchase, 10, true},
		{"debit within amount tolerance", models.ParsedTransaction{Date: "2026-03-02", Amount: 1250.99, Type: "debit"}, models.MatchPurchase, 10, true},
		{"debit amount off by one", models.ParsedTransaction{Date: "2026-03-01", Amount: 1251, Type: "debit"}, "", 0, false},
		{"debit three days apart", models.ParsedTransaction{Date: "2026-03-04", Amount: 1250, Type: "debit"}, "", 0, false},
		{"debit two days apart", models.ParsedTransaction{Date: "2026-03-03", Amount: 1250, Type: "debit"}, models.MatchPurchase, 10, true},
		{"credit takes first candidate", models.ParsedTransaction{Date: "2026-03-02", Amount: 640, Type: "credit"}, models.MatchSale, 20, true},
		{"credit never matches purchases", models.ParsedTransaction{Date: "2026-03-01", Amount: 1250, Type: "credit"}, "", 0, false},
		{"debit never matches sales", models.ParsedTransaction{Date: "2026-03-02", Amount: 640, Type: "debit"}, "", 0, false},
		{"type is case insensitive", models.ParsedTransaction{Date: "2026-03-05", Amount: 480, Type: " DEBIT "}, models.MatchPurchase, 11, true},
		{"unknown type", models.ParsedTransaction{Date: "2026-03-01", Amount: 1250, Type: "transfer"}, "", 0, false},
		{"unparseable date", models.ParsedTransaction{Date: "01/03/2026", Amount: 1250, Type: "debit"}, "", 0, false},
		{"rfc3339 date", models.ParsedTransaction{Date: "2026-03-01T18:30:00Z", Amount: 1250, Type: "debit"}, models.MatchPurchase, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []models.ParsedTransaction{tt.tx}
			n := MatchTransactions(txs, purchases, sales)

			if !tt.wantMatch {
				if n != 0 || txs[0].Match != nil {
					t.Fatalf("expected no match, got %+v", txs[0].Match)
				}
				return
			}
			if n != 1 || txs[0].Match == nil {
				t.Fatalf("expected a match, got none")
			}
			if txs[0].Match.Type != tt.wantType || txs[0].Match.ID != tt.wantID {
				t.Errorf("match = %+v, want %s #%d", txs[0].Match, tt.wantType, tt.wantID)
			}
		})
	}
}

func TestMatchTransactionsCountsAndLabels(t *testing.T) {
	txs := []models.ParsedTransaction{
		{Date: "2026-03-01", Amount: 1250, Type: "debit"},
		{Date: "2026-03-03", Amount: 640, Type: "credit"},
		{Date: "2026-04-01", Amount: 99, Type: "credit"},
	}
	if n := MatchTransactions(txs, purchases, sales); n != 2 {
		t.Fatalf("matched = %d, want 2", n)
	}
	if txs[0].Match.Label != "Purchase from Metro" {
		t.Errorf("label = %q", txs[0].Match.Label)
	}
	if txs[1].Match.ID != 20 {
		t.Errorf("credit matched sale %d, want first qualifying sale 20", txs[1].Match.ID)
	}
	if txs[2].Match != nil {
		t.Errorf("unmatched transaction got %+v", txs[2].Match)
	}
}

func TestMatchWithNoCandidates(t *testing.T) {
	txs := []models.ParsedTransaction{{Date: "2026-03-01", Amount: 10, Type: "debit"}}
	if n := MatchTransactions(txs, nil, nil); n != 0 || txs[0].Match != nil {
		t.Errorf("expected no match against empty pools")
	}
}
