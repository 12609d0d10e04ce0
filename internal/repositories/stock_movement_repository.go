package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"rp_admin_backend/internal/models"
)

// StockMovementRepository defines the interface for the inventory audit log.
type StockMovementRepository interface {
	CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(inventoryID *int64, limit int) ([]models.StockMovement, error)
}

type stockMovementRepository struct {
	db *sql.DB
}

// NewStockMovementRepository creates a new instance of StockMovementRepository.
func NewStockMovementRepository(db *sql.DB) StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := `INSERT INTO stock_movements (inventory_id, type, quantity, notes)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := executor.QueryRow(query, movement.InventoryID, movement.Type, movement.Quantity, movement.Notes).
		Scan(&movement.ID, &movement.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *stockMovementRepository) GetMovements(inventoryID *int64, limit int) ([]models.StockMovement, error) {
	movements := []models.StockMovement{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT sm.id, sm.inventory_id, sm.type, sm.quantity, sm.notes, sm.created_at, i.item_name
	  FROM stock_movements sm
	  JOIN inventory i ON sm.inventory_id = i.id`)

	var args []interface{}
	if inventoryID != nil {
		args = append(args, *inventoryID)
		queryBuilder.WriteString(fmt.Sprintf(" WHERE sm.inventory_id = $%d", len(args)))
	}
	queryBuilder.WriteString(" ORDER BY sm.created_at DESC, sm.id DESC")
	if limit > 0 {
		args = append(args, limit)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting stock movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.StockMovement
		var notes sql.NullString
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.Type, &m.Quantity, &notes, &m.CreatedAt, &m.ItemName); err != nil {
			return nil, fmt.Errorf("%w: scanning stock movement: %v", ErrDatabaseError, err)
		}
		if notes.Valid {
			n := notes.String
			m.Notes = &n
		}
		movements = append(movements, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock movements: %v", ErrDatabaseError, err)
	}
	return movements, nil
}
