package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"rp_admin_backend/internal/models"
)

// MenuRepository defines the interface for menu-related database operations.
type MenuRepository interface {
	ListMenuItems() ([]models.MenuItem, error)
	CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error)
	UpdateMenuItem(executor SQLExecutor, patch models.MenuItemPatch) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListMenuItems() ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	rows, err := r.db.Query(`SELECT id, category, name, price, veg, available, created_at
	                         FROM menu_items
	                         ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Category, &item.Name, &item.Price, &item.Veg, &item.Available, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *menuRepository) CreateMenuItem(executor SQLExecutor, item *models.MenuItem) (int64, error) {
	query := `INSERT INTO menu_items (category, name, price, veg, available)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := executor.QueryRow(query, item.Category, item.Name, item.Price, item.Veg, item.Available).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating menu item")
	}
	return item.ID, nil
}

// UpdateMenuItem writes the non-nil fields of patch. Column order is fixed.
func (r *menuRepository) UpdateMenuItem(executor SQLExecutor, patch models.MenuItemPatch) error {
	var set updateSet
	if patch.Category != nil {
		set.add("category", *patch.Category)
	}
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Price != nil {
		set.add("price", *patch.Price)
	}
	if patch.Veg != nil {
		set.add("veg", *patch.Veg)
	}
	if patch.Available != nil {
		set.add("available", *patch.Available)
	}
	if set.empty() {
		return nil
	}

	query, args := set.statement("menu_items", patch.ID)
	result, err := executor.Exec(query, args...)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating menu item %d", patch.ID))
	}
	return requireAffected(result, fmt.Sprintf("menu item %d", patch.ID))
}

// requireAffected turns a zero-row UPDATE into ErrNotFound.
func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for %s: %v", ErrDatabaseError, what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanOptionalID is shared by repositories that read nullable foreign keys.
func scanOptionalID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
