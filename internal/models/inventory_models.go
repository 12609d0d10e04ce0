package models

import "time"

// Stock movement directions.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
)

// InventoryItem is a stocked ingredient or consumable.
type InventoryItem struct {
	ID          int64     `json:"id"`
	ItemName    string    `json:"item_name"`
	Category    string    `json:"category"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	MinStock    float64   `json:"min_stock"`
	CostPerUnit float64   `json:"cost_per_unit"`
	UpdatedAt   time.Time `json:"updated_at"`
	LowStock    bool      `json:"low_stock"`
}

// IsLowStock is true when quantity is at or below the minimum stock level.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// StockMovement is one entry of the append-only inventory audit log.
type StockMovement struct {
	ID          int64     `json:"id"`
	InventoryID int64     `json:"inventory_id"`
	Type        string    `json:"type"`
	Quantity    float64   `json:"quantity"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ItemName    string    `json:"item_name,omitempty"`
}

// InventoryPatch is a partial update of an inventory item's fields.
type InventoryPatch struct {
	ItemName    *string  `json:"item_name"`
	Category    *string  `json:"category"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	MinStock    *float64 `json:"min_stock"`
	CostPerUnit *float64 `json:"cost_per_unit"`
}

// IsEmpty reports whether the patch carries no field to update.
func (p InventoryPatch) IsEmpty() bool {
	return p.ItemName == nil && p.Category == nil && p.Quantity == nil &&
		p.Unit == nil && p.MinStock == nil && p.CostPerUnit == nil
}

// LowStockItem is the compact view used by the analytics alerts.
type LowStockItem struct {
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	MinStock float64 `json:"min_stock"`
}
