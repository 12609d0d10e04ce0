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

var ErrSaleNotFound = errors.New("sale not found")

const DefaultPaymentMethod = "cash"

type SaleItemRequest struct {
	MenuItemID *int64   `json:"menu_item_id"`
	ItemName   string   `json:"item_name" binding:"required"`
	Quantity   int      `json:"quantity" binding:"gte=0"`
	UnitPrice  float64  `json:"unit_price" binding:"gte=0"`
	Total      *float64 `json:"total"`
}

// CreateSaleRequest is the body of POST /sales.
type CreateSaleRequest struct {
	CustomerName  *string           `json:"customer_name"`
	TotalAmount   float64           `json:"total_amount" binding:"required,gt=0"`
	PaymentMethod string            `json:"payment_method"`
	SaleDate      string            `json:"sale_date" binding:"required"`
	Notes         *string           `json:"notes"`
	Items         []SaleItemRequest `json:"items" binding:"omitempty,dive"`
}

type SaleService interface {
	ListSales() ([]models.Sale, error)
	CreateSale(req CreateSaleRequest) (*models.Sale, error)
	GetSale(id int64) (*models.Sale, error)
}

type saleService struct {
	saleRepo   repositories.SaleRepository
	db         *sql.DB
	billPrefix string
}

func NewSaleService(sr repositories.SaleRepository, db *sql.DB, billPrefix string) SaleService {
	if billPrefix == "" {
		billPrefix = "RP-BILL"
	}
	return &saleService{saleRepo: sr, db: db, billPrefix: billPrefix}
}

// FormatBillNumber renders PREFIX-YYYYMMDD-NNN for the seq-th sale of saleDate.
func FormatBillNumber(prefix, saleDate string, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, strings.ReplaceAll(saleDate, "-", ""), seq)
}

func (s *saleService) ListSales() ([]models.Sale, error) {
	sales, err := s.saleRepo.ListSales()
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// CreateSale numbers the bill and inserts header and items in one
// transaction. The per-date advisory lock serializes concurrent creates so
// two bills of the same day never read the same count.
func (s *saleService) CreateSale(req CreateSaleRequest) (*models.Sale, error) {
	sale := models.Sale{
		CustomerName:  utils.TrimmedOrNil(req.CustomerName),
		TotalAmount:   req.TotalAmount,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		SaleDate:      strings.TrimSpace(req.SaleDate),
		Notes:         utils.TrimmedOrNil(req.Notes),
	}
	if err := validateDate("sale_date", sale.SaleDate); err != nil {
		return nil, err
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = DefaultPaymentMethod
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.saleRepo.LockSaleDate(tx, sale.SaleDate); err != nil {
		return nil, fmt.Errorf("failed to lock bill sequence: %w", err)
	}
	count, err := s.saleRepo.CountSalesOnDate(tx, sale.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill sequence: %w", err)
	}
	sale.BillNumber = FormatBillNumber(s.billPrefix, sale.SaleDate, count+1)

	if _, err := s.saleRepo.CreateSale(tx, &sale); err != nil {
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	sale.Items = make([]models.SaleItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		quantity := itemReq.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		item := models.SaleItem{
			SaleID:     sale.ID,
			MenuItemID: itemReq.MenuItemID,
			ItemName:   strings.TrimSpace(itemReq.ItemName),
			Quantity:   quantity,
			UnitPrice:  itemReq.UnitPrice,
			Total:      lineTotal(itemReq.Total, float64(quantity), itemReq.UnitPrice),
		}
		if _, err := s.saleRepo.CreateSaleItem(tx, &item); err != nil {
			if errors.Is(err, repositories.ErrInvalidReference) {
				return nil, fmt.Errorf("%w: unknown menu_item_id for %q", ErrValidation, item.ItemName)
			}
			return nil, fmt.Errorf("failed to create sale item %q: %w", item.ItemName, err)
		}
		sale.Items = append(sale.Items, item)
	}
	sale.ItemCount = len(sale.Items)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	return &sale, nil
}

func (s *saleService) GetSale(id int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale %d: %w", id, err)
	}
	items, err := s.saleRepo.GetSaleItems(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for sale %d: %w", id, err)
	}
	sale.Items = items
	return sale, nil
}
