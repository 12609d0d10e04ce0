package extract

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultReceiptCategory = "Other"
	dateLayout             = "2006-01-02"
)

// ReceiptItem is a line read off a receipt.
type ReceiptItem struct {
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is the purchase draft extracted from receipt text.
type Receipt struct {
	Vendor        string        `json:"vendor"`
	InvoiceNumber *string       `json:"invoice_number"`
	PurchaseDate  string        `json:"purchase_date"`
	Category      string        `json:"category"`
	Items         []ReceiptItem `json:"items"`
	TotalAmount   float64       `json:"total_amount"`
}

// DefaultReceipt is returned when nothing usable could be extracted.
func DefaultReceipt(now time.Time) Receipt {
	return Receipt{
		PurchaseDate: now.Format(dateLayout),
		Category:     DefaultReceiptCategory,
		Items:        []ReceiptItem{},
	}
}

// normalize fills the gaps a partially-filled model reply leaves.
func (r *Receipt) normalize(now time.Time) {
	r.Vendor = strings.TrimSpace(r.Vendor)
	if r.InvoiceNumber != nil && strings.TrimSpace(*r.InvoiceNumber) == "" {
		r.InvoiceNumber = nil
	}
	if _, err := time.Parse(dateLayout, r.PurchaseDate); err != nil {
		r.PurchaseDate = now.Format(dateLayout)
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultReceiptCategory
	}
	if r.Items == nil {
		r.Items = []ReceiptItem{}
	}
}

// ReceiptCategories are the purchase categories offered to the model.
var ReceiptCategories = []string{"Kitchen Supplies", "Beverages", "Equipment", "Maintenance", "Utilities", "Other"}

// ReceiptPrompt builds the extraction prompt for OCR'd receipt text.
func ReceiptPrompt(ocrText string) string {
	return fmt.Sprintf(`Extract purchase/receipt information from this OCR text and return ONLY valid JSON (no markdown, no explanation):

OCR Text:
%s

Return this exact JSON structure:
{
  "vendor": "store/vendor name",
  "invoice_number": "invoice or receipt number if visible, or null",
  "purchase_date": "YYYY-MM-DD format if visible, or today's date",
  "category": "one of: %s",
  "items": [
    {"item_name": "item description", "quantity": 1, "unit_price": 0, "total": 0}
  ],
  "total_amount": 0
}

If you cannot determine a value, use reasonable defaults. Always return valid JSON.`, ocrText, strings.Join(ReceiptCategories, ", "))
}

// ExtractReceipt prompts the model with ocrText. On error the returned
// receipt is DefaultReceipt so callers can degrade without branching.
func ExtractReceipt(ctx context.Context, c Completer, ocrText string, now time.Time) (Receipt, error) {
	r, err := Structured[Receipt](ctx, c, ReceiptPrompt(ocrText))
	if err != nil {
		return DefaultReceipt(now), err
	}
	r.normalize(now)
	return r, nil
}
