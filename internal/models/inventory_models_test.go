package models

import "testing"

func TestInventoryItemIsLowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		minStock float64
		want     bool
	}{
		{"above minimum", 10, 5, false},
		{"at minimum", 5, 5, true},
		{"below minimum", 4.5, 5, true},
		{"empty", 0, 0, true},
		{"fractional just above", 5.01, 5, false},
		{"negative stock", -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{Quantity: tt.quantity, MinStock: tt.minStock}
			if got := item.IsLowStock(); got != tt.want {
				t.Errorf("IsLowStock() with quantity=%v min=%v = %v, want %v", tt.quantity, tt.minStock, got, tt.want)
			}
		})
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(InventoryPatch{}).IsEmpty() {
		t.Error("zero inventory patch should be empty")
	}
	unit := "kg"
	if (InventoryPatch{Unit: &unit}).IsEmpty() {
		t.Error("inventory patch with unit should not be empty")
	}
	if !(MenuItemPatch{ID: 3}).IsEmpty() {
		t.Error("menu patch with only an id should be empty")
	}
	off := false
	if (MenuItemPatch{ID: 3, Available: &off}).IsEmpty() {
		t.Error("menu patch with available=false should not be empty")
	}
}
