package database

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/pkg/utils"
)

type seedMenuItem struct {
	category string
	name     string
	price    int
	veg      bool
}

var starterMenu = []seedMenuItem{
	{"Starters", "Veg Spring Rolls", 199, true},
	{"Starters", "Paneer Tikka", 249, true},
	{"Starters", "Chicken Tikka", 279, false},
	{"Starters", "Chicken Wings (6 pcs)", 299, false},
	{"Starters", "French Fries", 149, true},
	{"Starters", "Loaded Nachos (Veg)", 199, true},
	{"Starters", "Loaded Nachos (Chicken)", 249, false},

	{"Burgers", "Classic Veg Burger", 179, true},
	{"Burgers", "Paneer Burger", 199, true},
	{"Burgers", "Chicken Burger", 219, false},
	{"Burgers", "Double Chicken Burger", 299, false},

	{"Pizzas", "Margherita", 199, true},
	{"Pizzas", "Farm Fresh (Veg)", 249, true},
	{"Pizzas", "Chicken Tikka Pizza", 279, false},
	{"Pizzas", "BBQ Chicken Pizza", 299, false},

	{"Sandwiches & Wraps", "Veg Club Sandwich", 179, true},
	{"Sandwiches & Wraps", "Chicken Club Sandwich", 219, false},
	{"Sandwiches & Wraps", "Paneer Wrap", 189, true},
	{"Sandwiches & Wraps", "Chicken Wrap", 219, false},

	{"Pasta", "Penne Arrabiata (Veg)", 219, true},
	{"Pasta", "Alfredo Pasta (Veg)", 229, true},
	{"Pasta", "Chicken Alfredo Pasta", 269, false},
	{"Pasta", "Chicken Penne Arrabiata", 249, false},

	{"Rice Bowls", "Veg Fried Rice", 179, true},
	{"Rice Bowls", "Chicken Fried Rice", 219, false},
	{"Rice Bowls", "Egg Fried Rice", 189, true},

	{"Beverages", "Cold Coffee", 149, true},
	{"Beverages", "Iced Tea (Lemon/Peach)", 129, true},
	{"Beverages", "Fresh Lime Soda", 99, true},
	{"Beverages", "Mango Shake", 159, true},
	{"Beverages", "Oreo Shake", 169, true},
	{"Beverages", "Brownie Shake", 179, true},
	{"Beverages", "Soft Drinks", 49, true},
	{"Beverages", "Water Bottle", 20, true},

	{"Desserts", "Brownie with Ice Cream", 199, true},
	{"Desserts", "Chocolate Lava Cake", 229, true},
}

// SeedMenu inserts the starter menu when menu_items is empty.
// It returns the number of rows inserted (zero when the menu already exists).
func SeedMenu(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM menu_items").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting menu items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to start seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO menu_items (category, name, price, veg) VALUES ($1, $2, $3, $4)")
	if err != nil {
		return 0, fmt.Errorf("preparing menu seed: %w", err)
	}
	defer stmt.Close()

	for _, item := range starterMenu {
		if _, err := stmt.Exec(item.category, item.name, item.price, item.veg); err != nil {
			return 0, fmt.Errorf("seeding menu item %q: %w", item.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit menu seed: %w", err)
	}
	utils.LogInfo("Seeded starter menu", map[string]interface{}{"items": len(starterMenu)})
	return len(starterMenu), nil
}
