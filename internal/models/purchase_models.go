package models

import "time"

// Purchase is a vendor invoice header.
type Purchase struct {
	ID            int64          `json:"id"`
	Vendor        string         `json:"vendor"`
	InvoiceNumber *string        `json:"invoice_number"`
	TotalAmount   float64        `json:"total_amount"`
	PurchaseDate  string         `json:"purchase_date"` // YYYY-MM-DD
	Category      string         `json:"category"`
	Notes         *string        `json:"notes"`
	ReceiptURL    *string        `json:"receipt_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	ItemCount     int            `json:"item_count"`
	Items         []PurchaseItem `json:"items,omitempty"`
}

// PurchaseItem is a line on a purchase.
type PurchaseItem struct {
	ID         int64   `json:"id"`
	PurchaseID int64   `json:"purchase_id"`
	ItemName   string  `json:"item_name"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Total      float64 `json:"total"`
}
