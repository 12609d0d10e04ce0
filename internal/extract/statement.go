package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// StatementPromptLimit caps how much statement text is sent to the model.
const StatementPromptLimit = 3000

type statementReply struct {
	Transactions []json.RawMessage `json:"transactions"`
}

// statementRow is one reply row with a loosely typed amount. Models sometimes
// quote amounts or add thousands separators.
type statementRow struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Type        string          `json:"type"`
}

// StatementPrompt builds the transaction extraction prompt.
func StatementPrompt(text string) string {
	return fmt.Sprintf(`Parse this bank statement text and extract individual transactions. Return ONLY valid JSON (no markdown, no explanation):

Bank Statement Text:
%s

Return this exact JSON structure:
{
  "transactions": [
    {
      "date": "YYYY-MM-DD",
      "description": "transaction description",
      "amount": 0,
      "type": "credit or debit"
    }
  ]
}

Rules:
- Each transaction should have date, description, amount, and type (credit/debit)
- Amount should always be positive
- If a transaction is a payment/expense, type is "debit"
- If a transaction is a deposit/receipt, type is "credit"
Always return valid JSON.`, utils.Truncate(text, StatementPromptLimit))
}

// ExtractTransactions prompts the model with statement text. The slice is
// never nil, also on error. Rows that do not decode are dropped one by one;
// the rest of the reply is kept.
func ExtractTransactions(ctx context.Context, c Completer, text string) ([]models.ParsedTransaction, error) {
	reply, err := Structured[statementReply](ctx, c, StatementPrompt(text))
	if err != nil {
		return []models.ParsedTransaction{}, err
	}
	txs := make([]models.ParsedTransaction, 0, len(reply.Transactions))
	for i, raw := range reply.Transactions {
		tx, err := decodeRow(raw)
		if err != nil {
			utils.LogWarn(err, "extract: skipping statement row", map[string]interface{}{"row": i})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func decodeRow(raw json.RawMessage) (models.ParsedTransaction, error) {
	var row statementRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return models.ParsedTransaction{}, err
	}
	amount, err := parseAmount(row.Amount)
	if err != nil {
		return models.ParsedTransaction{}, err
	}
	return models.ParsedTransaction{
		Date:        strings.TrimSpace(row.Date),
		Description: row.Description,
		Amount:      amount,
		Type:        strings.ToLower(strings.TrimSpace(row.Type)),
	}, nil
}

// parseAmount accepts a JSON number or a string such as "1,250.00". A missing
// amount is zero.
func parseAmount(raw json.RawMessage) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, err
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("amount %s: %w", raw, err)
	}
	return d.InexactFloat64(), nil
}
