package repositories

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/internal/models"
)

// SaleRepository defines the interface for sale-related database operations.
type SaleRepository interface {
	// LockSaleDate takes a transaction-scoped advisory lock for one sale date.
	LockSaleDate(executor SQLExecutor, saleDate string) error
	CountSalesOnDate(executor SQLExecutor, saleDate string) (int, error)
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	CreateSaleItem(executor SQLExecutor, item *models.SaleItem) (int64, error)
	GetSaleByID(id int64) (*models.Sale, error)
	GetSaleItems(saleID int64) ([]models.SaleItem, error)
	ListSales() ([]models.Sale, error)
	ListMatchCandidates() ([]models.MatchCandidate, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) LockSaleDate(executor SQLExecutor, saleDate string) error {
	if _, err := executor.Exec(`SELECT pg_advisory_xact_lock(hashtext($1))`, "sales:"+saleDate); err != nil {
		return fmt.Errorf("%w: locking sale date %s: %v", ErrDatabaseError, saleDate, err)
	}
	return nil
}

func (r *saleRepository) CountSalesOnDate(executor SQLExecutor, saleDate string) (int, error) {
	var count int
	if err := executor.QueryRow(`SELECT COUNT(*) FROM sales WHERE sale_date = $1`, saleDate).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting sales on %s: %v", ErrDatabaseError, saleDate, err)
	}
	return count, nil
}

func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (bill_number, customer_name, total_amount, payment_method, sale_date, notes)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		sale.BillNumber, sale.CustomerName, sale.TotalAmount, sale.PaymentMethod, sale.SaleDate, sale.Notes,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating sale")
	}
	return sale.ID, nil
}

func (r *saleRepository) CreateSaleItem(executor SQLExecutor, item *models.SaleItem) (int64, error) {
	query := `INSERT INTO sale_items (sale_id, menu_item_id, item_name, quantity, unit_price, total)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	var menuItemID sql.NullInt64
	if item.MenuItemID != nil {
		menuItemID = sql.NullInt64{Int64: *item.MenuItemID, Valid: true}
	}
	err := executor.QueryRow(query,
		item.SaleID, menuItemID, item.ItemName, item.Quantity, item.UnitPrice, item.Total,
	).Scan(&item.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating sale item")
	}
	return item.ID, nil
}

func (r *saleRepository) GetSaleByID(id int64) (*models.Sale, error) {
	s := &models.Sale{}
	query := `SELECT s.id, s.bill_number, s.customer_name, s.total_amount, s.payment_method,
	                 to_char(s.sale_date, 'YYYY-MM-DD'), s.notes, s.created_at,
	                 (SELECT COUNT(*) FROM sale_items si WHERE si.sale_id = s.id)
	          FROM sales s
	          WHERE s.id = $1`
	var customer, notes sql.NullString
	err := r.db.QueryRow(query, id).Scan(&s.ID, &s.BillNumber, &customer, &s.TotalAmount, &s.PaymentMethod,
		&s.SaleDate, &notes, &s.CreatedAt, &s.ItemCount)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, id, err)
	}
	s.CustomerName = nullableString(customer)
	s.Notes = nullableString(notes)
	return s, nil
}

func (r *saleRepository) GetSaleItems(saleID int64) ([]models.SaleItem, error) {
	items := []models.SaleItem{}
	rows, err := r.db.Query(`SELECT id, sale_id, menu_item_id, item_name, quantity, unit_price, total
	                         FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying items for sale %d: %v", ErrDatabaseError, saleID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SaleItem
		var menuItemID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.SaleID, &menuItemID, &item.ItemName, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning sale item for sale %d: %v", ErrDatabaseError, saleID, err)
		}
		item.MenuItemID = scanOptionalID(menuItemID)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale items for sale %d: %v", ErrDatabaseError, saleID, err)
	}
	return items, nil
}

func (r *saleRepository) ListSales() ([]models.Sale, error) {
	sales := []models.Sale{}
	rows, err := r.db.Query(`SELECT s.id, s.bill_number, s.customer_name, s.total_amount, s.payment_method,
	                                to_char(s.sale_date, 'YYYY-MM-DD'), s.notes, s.created_at, COUNT(si.id)
	                         FROM sales s
	                         LEFT JOIN sale_items si ON si.sale_id = s.id
	                         GROUP BY s.id
	                         ORDER BY s.sale_date DESC, s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Sale
		var customer, notes sql.NullString
		if err := rows.Scan(&s.ID, &s.BillNumber, &customer, &s.TotalAmount, &s.PaymentMethod,
			&s.SaleDate, &notes, &s.CreatedAt, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		s.CustomerName = nullableString(customer)
		s.Notes = nullableString(notes)
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) ListMatchCandidates() ([]models.MatchCandidate, error) {
	candidates := []models.MatchCandidate{}
	rows, err := r.db.Query(`SELECT id, total_amount, to_char(sale_date, 'YYYY-MM-DD'), bill_number
	                         FROM sales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sale candidates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.MatchCandidate
		var billNumber string
		if err := rows.Scan(&c.ID, &c.Amount, &c.Date, &billNumber); err != nil {
			return nil, fmt.Errorf("%w: scanning sale candidate: %v", ErrDatabaseError, err)
		}
		c.Label = "Sale " + billNumber
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale candidates: %v", ErrDatabaseError, err)
	}
	return candidates, nil
}
