package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/repositories"
	"rp_admin_backend/pkg/utils"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

const DefaultPurchaseCategory = "General"

type PurchaseItemRequest struct {
	ItemName  string   `json:"item_name" binding:"required"`
	Quantity  float64  `json:"quantity" binding:"gte=0"`
	UnitPrice float64  `json:"unit_price" binding:"gte=0"`
	Total     *float64 `json:"total"`
}

// CreatePurchaseRequest is the body of POST /purchases.
type CreatePurchaseRequest struct {
	Vendor        string                `json:"vendor" binding:"required"`
	InvoiceNumber *string               `json:"invoice_number"`
	TotalAmount   float64               `json:"total_amount" binding:"required,gt=0"`
	PurchaseDate  string                `json:"purchase_date" binding:"required"`
	Category      string                `json:"category"`
	Notes         *string               `json:"notes"`
	ReceiptURL    *string               `json:"receipt_url"`
	Items         []PurchaseItemRequest `json:"items" binding:"omitempty,dive"`
}

type PurchaseService interface {
	ListPurchases() ([]models.Purchase, error)
	CreatePurchase(req CreatePurchaseRequest) (*models.Purchase, error)
	GetPurchase(id int64) (*models.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	db           *sql.DB
}

func NewPurchaseService(pr repositories.PurchaseRepository, db *sql.DB) PurchaseService {
	return &purchaseService{purchaseRepo: pr, db: db}
}

func (s *purchaseService) ListPurchases() ([]models.Purchase, error) {
	purchases, err := s.purchaseRepo.ListPurchases()
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}

// CreatePurchase inserts the header and its items all-or-nothing.
func (s *purchaseService) CreatePurchase(req CreatePurchaseRequest) (*models.Purchase, error) {
	purchase := models.Purchase{
		Vendor:        strings.TrimSpace(req.Vendor),
		InvoiceNumber: utils.TrimmedOrNil(req.InvoiceNumber),
		TotalAmount:   req.TotalAmount,
		PurchaseDate:  strings.TrimSpace(req.PurchaseDate),
		Category:      strings.TrimSpace(req.Category),
		Notes:         utils.TrimmedOrNil(req.Notes),
		ReceiptURL:    utils.TrimmedOrNil(req.ReceiptURL),
	}
	if purchase.Vendor == "" {
		return nil, fmt.Errorf("%w: vendor, total_amount, purchase_date required", ErrValidation)
	}
	if err := validateDate("purchase_date", purchase.PurchaseDate); err != nil {
		return nil, err
	}
	if purchase.Category == "" {
		purchase.Category = DefaultPurchaseCategory
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.purchaseRepo.CreatePurchase(tx, &purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase record: %w", err)
	}

	purchase.Items = make([]models.PurchaseItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item := models.PurchaseItem{
			PurchaseID: purchase.ID,
			ItemName:   strings.TrimSpace(itemReq.ItemName),
			Quantity:   itemReq.Quantity,
			UnitPrice:  itemReq.UnitPrice,
			Total:      lineTotal(itemReq.Total, itemReq.Quantity, itemReq.UnitPrice),
		}
		if _, err := s.purchaseRepo.CreatePurchaseItem(tx, &item); err != nil {
			return nil, fmt.Errorf("failed to create purchase item %q: %w", item.ItemName, err)
		}
		purchase.Items = append(purchase.Items, item)
	}
	purchase.ItemCount = len(purchase.Items)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase transaction: %w", err)
	}
	return &purchase, nil
}

func (s *purchaseService) GetPurchase(id int64) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetPurchaseByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase %d: %w", id, err)
	}
	items, err := s.purchaseRepo.GetPurchaseItems(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for purchase %d: %w", id, err)
	}
	purchase.Items = items
	return purchase, nil
}
