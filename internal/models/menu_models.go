package models

import "time"

// MenuItem is a cafe menu entry. Prices are whole currency units.
type MenuItem struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Veg       bool      `json:"veg"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// MenuItemPatch is a partial update of a menu item.
// Only non-nil fields are written; there is no way to address other columns.
type MenuItemPatch struct {
	ID        int64   `json:"id" binding:"required"`
	Category  *string `json:"category"`
	Name      *string `json:"name"`
	Price     *int    `json:"price" binding:"omitempty,gt=0"`
	Veg       *bool   `json:"veg"`
	Available *bool   `json:"available"`
}

// IsEmpty reports whether the patch carries no field to update.
func (p MenuItemPatch) IsEmpty() bool {
	return p.Category == nil && p.Name == nil && p.Price == nil && p.Veg == nil && p.Available == nil
}
