package repositories

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/internal/models"
)

// PurchaseRepository defines the interface for purchase-related database operations.
type PurchaseRepository interface {
	CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error)
	CreatePurchaseItem(executor SQLExecutor, item *models.PurchaseItem) (int64, error)
	GetPurchaseByID(id int64) (*models.Purchase, error)
	GetPurchaseItems(purchaseID int64) ([]models.PurchaseItem, error)
	ListPurchases() ([]models.Purchase, error)
	// ListMatchCandidates returns every purchase in retrieval order for statement matching.
	ListMatchCandidates() ([]models.MatchCandidate, error)
}

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository.
func NewPurchaseRepository(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) CreatePurchase(executor SQLExecutor, purchase *models.Purchase) (int64, error) {
	query := `INSERT INTO purchases (vendor, invoice_number, total_amount, purchase_date, category, notes, receipt_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	err := executor.QueryRow(query,
		purchase.Vendor, purchase.InvoiceNumber, purchase.TotalAmount, purchase.PurchaseDate,
		purchase.Category, purchase.Notes, purchase.ReceiptURL,
	).Scan(&purchase.ID, &purchase.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating purchase")
	}
	return purchase.ID, nil
}

func (r *purchaseRepository) CreatePurchaseItem(executor SQLExecutor, item *models.PurchaseItem) (int64, error) {
	query := `INSERT INTO purchase_items (purchase_id, item_name, quantity, unit_price, total)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := executor.QueryRow(query, item.PurchaseID, item.ItemName, item.Quantity, item.UnitPrice, item.Total).Scan(&item.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating purchase item")
	}
	return item.ID, nil
}

func (r *purchaseRepository) GetPurchaseByID(id int64) (*models.Purchase, error) {
	p := &models.Purchase{}
	query := `SELECT p.id, p.vendor, p.invoice_number, p.total_amount, to_char(p.purchase_date, 'YYYY-MM-DD'),
	                 p.category, p.notes, p.receipt_url, p.created_at,
	                 (SELECT COUNT(*) FROM purchase_items pi WHERE pi.purchase_id = p.id)
	          FROM purchases p
	          WHERE p.id = $1`
	var invoice, notes, receipt sql.NullString
	err := r.db.QueryRow(query, id).Scan(&p.ID, &p.Vendor, &invoice, &p.TotalAmount, &p.PurchaseDate,
		&p.Category, &notes, &receipt, &p.CreatedAt, &p.ItemCount)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting purchase by ID %d: %v", ErrDatabaseError, id, err)
	}
	p.InvoiceNumber = nullableString(invoice)
	p.Notes = nullableString(notes)
	p.ReceiptURL = nullableString(receipt)
	return p, nil
}

func (r *purchaseRepository) GetPurchaseItems(purchaseID int64) ([]models.PurchaseItem, error) {
	items := []models.PurchaseItem{}
	rows, err := r.db.Query(`SELECT id, purchase_id, item_name, quantity, unit_price, total
	                         FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying items for purchase %d: %v", ErrDatabaseError, purchaseID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.PurchaseItem
		if err := rows.Scan(&item.ID, &item.PurchaseID, &item.ItemName, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchase items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *purchaseRepository) ListPurchases() ([]models.Purchase, error) {
	purchases := []models.Purchase{}
	rows, err := r.db.Query(`SELECT p.id, p.vendor, p.invoice_number, p.total_amount, to_char(p.purchase_date, 'YYYY-MM-DD'),
	                                p.category, p.notes, p.receipt_url, p.created_at, COUNT(pi.id)
	                         FROM purchases p
	                         LEFT JOIN purchase_items pi ON pi.purchase_id = p.id
	                         GROUP BY p.id
	                         ORDER BY p.purchase_date DESC, p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchases: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Purchase
		var invoice, notes, receipt sql.NullString
		if err := rows.Scan(&p.ID, &p.Vendor, &invoice, &p.TotalAmount, &p.PurchaseDate,
			&p.Category, &notes, &receipt, &p.CreatedAt, &p.ItemCount); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase: %v", ErrDatabaseError, err)
		}
		p.InvoiceNumber = nullableString(invoice)
		p.Notes = nullableString(notes)
		p.ReceiptURL = nullableString(receipt)
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchases: %v", ErrDatabaseError, err)
	}
	return purchases, nil
}

func (r *purchaseRepository) ListMatchCandidates() ([]models.MatchCandidate, error) {
	candidates := []models.MatchCandidate{}
	rows, err := r.db.Query(`SELECT id, total_amount, to_char(purchase_date, 'YYYY-MM-DD'), vendor
	                         FROM purchases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchase candidates: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.MatchCandidate
		var vendor string
		if err := rows.Scan(&c.ID, &c.Amount, &c.Date, &vendor); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase candidate: %v", ErrDatabaseError, err)
		}
		c.Label = "Purchase from " + vendor
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchase candidates: %v", ErrDatabaseError, err)
	}
	return candidates, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
