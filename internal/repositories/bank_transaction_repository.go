package repositories

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/internal/models"
)

// BankTransactionRepository stores reconciled bank statement lines.
type BankTransactionRepository interface {
	CreateBankTransaction(executor SQLExecutor, tx *models.BankTransaction) (int64, error)
	ListBankTransactions(limit int) ([]models.BankTransaction, error)
}

type bankTransactionRepository struct {
	db *sql.DB
}

// NewBankTransactionRepository creates a new instance of BankTransactionRepository.
func NewBankTransactionRepository(db *sql.DB) BankTransactionRepository {
	return &bankTransactionRepository{db: db}
}

func (r *bankTransactionRepository) CreateBankTransaction(executor SQLExecutor, tx *models.BankTransaction) (int64, error) {
	query := `INSERT INTO bank_transactions
	            (transaction_date, description, amount, type, matched_purchase_id, matched_sale_id, raw_text)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	var purchaseID, saleID sql.NullInt64
	if tx.MatchedPurchaseID != nil {
		purchaseID = sql.NullInt64{Int64: *tx.MatchedPurchaseID, Valid: true}
	}
	if tx.MatchedSaleID != nil {
		saleID = sql.NullInt64{Int64: *tx.MatchedSaleID, Valid: true}
	}
	err := executor.QueryRow(query,
		tx.TransactionDate, tx.Description, tx.Amount, tx.Type, purchaseID, saleID, tx.RawText,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating bank transaction")
	}
	return tx.ID, nil
}

func (r *bankTransactionRepository) ListBankTransactions(limit int) ([]models.BankTransaction, error) {
	transactions := []models.BankTransaction{}
	query := `SELECT id, to_char(transaction_date, 'YYYY-MM-DD'), description, amount, type,
	                 matched_purchase_id, matched_sale_id, created_at
	          FROM bank_transactions
	          ORDER BY transaction_date DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying bank transactions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.BankTransaction
		var purchaseID, saleID sql.NullInt64
		if err := rows.Scan(&t.ID, &t.TransactionDate, &t.Description, &t.Amount, &t.Type,
			&purchaseID, &saleID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning bank transaction: %v", ErrDatabaseError, err)
		}
		t.MatchedPurchaseID = scanOptionalID(purchaseID)
		t.MatchedSaleID = scanOptionalID(saleID)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating bank transactions: %v", ErrDatabaseError, err)
	}
	return transactions, nil
}
