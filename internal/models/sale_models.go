package models

import "time"

// Sale is a cafe bill header.
type Sale struct {
	ID            int64      `json:"id"`
	BillNumber    string     `json:"bill_number"`
	CustomerName  *string    `json:"customer_name"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	SaleDate      string     `json:"sale_date"` // YYYY-MM-DD
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	ItemCount     int        `json:"item_count"`
	Items         []SaleItem `json:"items,omitempty"`
}

// SaleItem is a line on a bill, optionally tied to a menu item.
type SaleItem struct {
	ID         int64   `json:"id"`
	SaleID     int64   `json:"sale_id"`
	MenuItemID *int64  `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Total      float64 `json:"total"`
}
