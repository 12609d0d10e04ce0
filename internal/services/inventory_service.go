package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/repositories"
	"rp_admin_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInventoryItemExists   = errors.New("inventory item already exists")
	ErrInvalidMovementType   = errors.New("invalid stock movement type")
)

// Defaults for new inventory items.
const (
	DefaultInventoryCategory = "General"
	DefaultInventoryUnit     = "pcs"
	DefaultMinStock          = 5
)

// CreateInventoryItemRequest is the body of POST /inventory.
type CreateInventoryItemRequest struct {
	ItemName    string   `json:"item_name" binding:"required"`
	Category    string   `json:"category"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	MinStock    *float64 `json:"min_stock"`
	CostPerUnit float64  `json:"cost_per_unit"`
}

// UpdateInventoryRequest is the body of PUT /inventory. When Adjustment and
// Type are both present it is a stock adjustment; otherwise the remaining
// fields form a patch.
type UpdateInventoryRequest struct {
	ID         int64    `json:"id" binding:"required"`
	Adjustment *float64 `json:"adjustment"`
	Type       string   `json:"type" binding:"omitempty,movementtype"`
	Notes      *string  `json:"notes"`
	models.InventoryPatch
}

// IsAdjustment reports whether the request moves stock rather than editing fields.
func (r UpdateInventoryRequest) IsAdjustment() bool {
	return r.Adjustment != nil && r.Type != ""
}

// AdjustmentResult is returned after a stock movement.
type AdjustmentResult struct {
	OK       bool    `json:"ok"`
	Quantity float64 `json:"quantity"`
}

type InventoryService interface {
	ListInventory() ([]models.InventoryItem, error)
	CreateInventoryItem(req CreateInventoryItemRequest) (*models.InventoryItem, error)
	AdjustStock(id int64, movementType string, amount float64, notes *string) (*AdjustmentResult, error)
	UpdateInventoryItem(id int64, patch models.InventoryPatch) error
	ListStockMovements(inventoryID *int64, limit int) ([]models.StockMovement, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.StockMovementRepository
	db            *sql.DB
}

func NewInventoryService(
	ir repositories.InventoryRepository,
	mr repositories.StockMovementRepository,
	db *sql.DB,
) InventoryService {
	return &inventoryService{inventoryRepo: ir, movementRepo: mr, db: db}
}

// nextQuantity applies a movement to the current stock level.
func nextQuantity(current float64, movementType string, amount float64) (float64, error) {
	cur := decimal.NewFromFloat(current)
	d := decimal.NewFromFloat(amount)
	switch movementType {
	case models.MovementIn:
		return cur.Add(d).InexactFloat64(), nil
	case models.MovementOut:
		return cur.Sub(d).InexactFloat64(), nil
	case models.MovementAdjustment:
		return amount, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMovementType, movementType)
	}
}

func (s *inventoryService) ListInventory() ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.ListInventory()
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (s *inventoryService) CreateInventoryItem(req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		ItemName:    strings.TrimSpace(req.ItemName),
		Category:    strings.TrimSpace(req.Category),
		Quantity:    req.Quantity,
		Unit:        strings.TrimSpace(req.Unit),
		MinStock:    DefaultMinStock,
		CostPerUnit: req.CostPerUnit,
	}
	if item.ItemName == "" {
		return nil, fmt.Errorf("%w: item_name required", ErrValidation)
	}
	if item.Category == "" {
		item.Category = DefaultInventoryCategory
	}
	if item.Unit == "" {
		item.Unit = DefaultInventoryUnit
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}

	if _, err := s.inventoryRepo.CreateInventoryItem(s.db, &item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrInventoryItemExists, item.ItemName)
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return &item, nil
}

// AdjustStock locks the item row, writes the new quantity and appends the
// movement in one transaction.
func (s *inventoryService) AdjustStock(id int64, movementType string, amount float64, notes *string) (*AdjustmentResult, error) {
	if _, err := nextQuantity(0, movementType, amount); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := s.inventoryRepo.GetQuantityForUpdate(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrInventoryItemNotFound, id)
		}
		return nil, fmt.Errorf("failed to read stock for item %d: %w", id, err)
	}

	newQty, _ := nextQuantity(current, movementType, amount)
	if err := s.inventoryRepo.SetQuantity(tx, id, newQty); err != nil {
		return nil, fmt.Errorf("failed to set stock for item %d: %w", id, err)
	}

	movement := models.StockMovement{
		InventoryID: id,
		Type:        movementType,
		Quantity:    amount,
		Notes:       utils.TrimmedOrNil(notes),
	}
	if _, err := s.movementRepo.CreateMovement(tx, &movement); err != nil {
		return nil, fmt.Errorf("failed to record stock movement for item %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stock adjustment: %w", err)
	}
	return &AdjustmentResult{OK: true, Quantity: newQty}, nil
}

// UpdateInventoryItem applies a field patch. An empty patch succeeds without a write.
func (s *inventoryService) UpdateInventoryItem(id int64, patch models.InventoryPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if patch.ItemName != nil && strings.TrimSpace(*patch.ItemName) == "" {
		return fmt.Errorf("%w: item_name cannot be empty", ErrValidation)
	}
	if err := s.inventoryRepo.UpdateInventoryItem(s.db, id, patch); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: id %d", ErrInventoryItemNotFound, id)
		case errors.Is(err, repositories.ErrDuplicateKey):
			return fmt.Errorf("%w: id %d", ErrInventoryItemExists, id)
		}
		return fmt.Errorf("failed to update inventory item %d: %w", id, err)
	}
	return nil
}

func (s *inventoryService) ListStockMovements(inventoryID *int64, limit int) ([]models.StockMovement, error) {
	movements, err := s.movementRepo.GetMovements(inventoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}
