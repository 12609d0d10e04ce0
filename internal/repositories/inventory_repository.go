package repositories

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/internal/models"
)

// InventoryRepository defines the interface for inventory-related database operations.
type InventoryRepository interface {
	ListInventory() ([]models.InventoryItem, error)
	ListLowStock() ([]models.LowStockItem, error)
	CreateInventoryItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	// GetQuantityForUpdate locks the row until the surrounding transaction ends.
	GetQuantityForUpdate(executor SQLExecutor, id int64) (float64, error)
	SetQuantity(executor SQLExecutor, id int64, quantity float64) error
	UpdateInventoryItem(executor SQLExecutor, id int64, patch models.InventoryPatch) error
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListInventory() ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	rows, err := r.db.Query(`SELECT id, item_name, category, quantity, unit, min_stock, cost_per_unit, updated_at
	                         FROM inventory
	                         ORDER BY (quantity <= min_stock) DESC, category, item_name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Category, &item.Quantity, &item.Unit,
			&item.MinStock, &item.CostPerUnit, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		item.LowStock = item.IsLowStock()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) ListLowStock() ([]models.LowStockItem, error) {
	items := []models.LowStockItem{}
	rows, err := r.db.Query(`SELECT item_name, quantity, unit, min_stock
	                         FROM inventory
	                         WHERE quantity <= min_stock
	                         ORDER BY quantity ASC, item_name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.LowStockItem
		if err := rows.Scan(&item.ItemName, &item.Quantity, &item.Unit, &item.MinStock); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) CreateInventoryItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	query := `INSERT INTO inventory (item_name, category, quantity, unit, min_stock, cost_per_unit)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, updated_at`
	err := executor.QueryRow(query, item.ItemName, item.Category, item.Quantity, item.Unit, item.MinStock, item.CostPerUnit).
		Scan(&item.ID, &item.UpdatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating inventory item")
	}
	item.LowStock = item.IsLowStock()
	return item.ID, nil
}

func (r *inventoryRepository) GetQuantityForUpdate(executor SQLExecutor, id int64) (float64, error) {
	var quantity float64
	err := executor.QueryRow(`SELECT quantity FROM inventory WHERE id = $1 FOR UPDATE`, id).Scan(&quantity)
	if err != nil {
		if isNoRows(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("%w: locking inventory item %d: %v", ErrDatabaseError, id, err)
	}
	return quantity, nil
}

func (r *inventoryRepository) SetQuantity(executor SQLExecutor, id int64, quantity float64) error {
	result, err := executor.Exec(`UPDATE inventory SET quantity = $1, updated_at = NOW() WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("%w: setting quantity for inventory item %d: %v", ErrDatabaseError, id, err)
	}
	return requireAffected(result, fmt.Sprintf("inventory item %d", id))
}

func (r *inventoryRepository) UpdateInventoryItem(executor SQLExecutor, id int64, patch models.InventoryPatch) error {
	var set updateSet
	if patch.ItemName != nil {
		set.add("item_name", *patch.ItemName)
	}
	if patch.Category != nil {
		set.add("category", *patch.Category)
	}
	if patch.Quantity != nil {
		set.add("quantity", *patch.Quantity)
	}
	if patch.Unit != nil {
		set.add("unit", *patch.Unit)
	}
	if patch.MinStock != nil {
		set.add("min_stock", *patch.MinStock)
	}
	if patch.CostPerUnit != nil {
		set.add("cost_per_unit", *patch.CostPerUnit)
	}
	if set.empty() {
		return nil
	}

	query, args := set.statement("inventory", id, "updated_at = NOW()")
	result, err := executor.Exec(query, args...)
	if err != nil {
		return wrapWriteError(err, fmt.Sprintf("updating inventory item %d", id))
	}
	return requireAffected(result, fmt.Sprintf("inventory item %d", id))
}
