package repositories

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/internal/models"
)

// ReportRepository runs the read-only aggregations behind the analytics and finance views.
// Every list method returns a non-nil slice.
type ReportRepository interface {
	// GetHourlySales returns only the hours that have sales; callers zero-fill.
	GetHourlySales() ([]models.HourlySales, error)
	GetDailyRevenue(days int) ([]models.DailyRevenue, error)
	GetTopItems(limit int) ([]models.TopItem, error)
	GetPaymentBreakdown() ([]models.PaymentBreakdown, error)
	GetExpenseBreakdown() ([]models.CategoryBreakdown, error)
	GetMonthlyRevenue(months int) ([]models.MonthlyRevenue, error)
	GetMonthlyExpenses(months int) ([]models.MonthlyExpenses, error)
	GetFinanceSummary() (models.FinanceSummary, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetHourlySales() ([]models.HourlySales, error) {
	hours := []models.HourlySales{}
	rows, err := r.db.Query(`SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*), COALESCE(SUM(total_amount), 0)
	                         FROM sales
	                         GROUP BY hour
	                         ORDER BY hour`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying hourly sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.HourlySales
		if err := rows.Scan(&h.Hour, &h.Count, &h.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning hourly sales: %v", ErrDatabaseError, err)
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating hourly sales: %v", ErrDatabaseError, err)
	}
	return hours, nil
}

func (r *reportRepository) GetDailyRevenue(days int) ([]models.DailyRevenue, error) {
	daily := []models.DailyRevenue{}
	rows, err := r.db.Query(`SELECT to_char(sale_date, 'YYYY-MM-DD'), COALESCE(SUM(total_amount), 0), COUNT(*)
	                         FROM sales
	                         WHERE sale_date >= CURRENT_DATE - $1::int
	                         GROUP BY sale_date
	                         ORDER BY sale_date`, days)
	if err != nil {
		return nil, fmt.Errorf("%w: querying daily revenue: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Transactions); err != nil {
			return nil, fmt.Errorf("%w: scanning daily revenue: %v", ErrDatabaseError, err)
		}
		daily = append(daily, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating daily revenue: %v", ErrDatabaseError, err)
	}
	return daily, nil
}

func (r *reportRepository) GetTopItems(limit int) ([]models.TopItem, error) {
	items := []models.TopItem{}
	rows, err := r.db.Query(`SELECT item_name, COALESCE(SUM(quantity), 0), COALESCE(SUM(total), 0)
	                         FROM sale_items
	                         GROUP BY item_name
	                         ORDER BY 2 DESC, item_name
	                         LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying top items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.TopItem
		if err := rows.Scan(&item.ItemName, &item.TotalQty, &item.TotalRevenue); err != nil {
			return nil, fmt.Errorf("%w: scanning top item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating top items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *reportRepository) GetPaymentBreakdown() ([]models.PaymentBreakdown, error) {
	breakdown := []models.PaymentBreakdown{}
	rows, err := r.db.Query(`SELECT payment_method, COUNT(*), COALESCE(SUM(total_amount), 0)
	                         FROM sales
	                         GROUP BY payment_method
	                         ORDER BY 3 DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payment breakdown: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.PaymentBreakdown
		if err := rows.Scan(&p.PaymentMethod, &p.Count, &p.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning payment breakdown: %v", ErrDatabaseError, err)
		}
		breakdown = append(breakdown, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment breakdown: %v", ErrDatabaseError, err)
	}
	return breakdown, nil
}

func (r *reportRepository) GetExpenseBreakdown() ([]models.CategoryBreakdown, error) {
	breakdown := []models.CategoryBreakdown{}
	rows, err := r.db.Query(`SELECT category, COUNT(*), COALESCE(SUM(total_amount), 0)
	                         FROM purchases
	                         GROUP BY category
	                         ORDER BY 3 DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying expense breakdown: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CategoryBreakdown
		if err := rows.Scan(&c.Category, &c.Count, &c.Total); err != nil {
			return nil, fmt.Errorf("%w: scanning expense breakdown: %v", ErrDatabaseError, err)
		}
		breakdown = append(breakdown, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expense breakdown: %v", ErrDatabaseError, err)
	}
	return breakdown, nil
}

// GetMonthlyRevenue returns the most recent months, oldest first.
func (r *reportRepository) GetMonthlyRevenue(months int) ([]models.MonthlyRevenue, error) {
	revenue := []models.MonthlyRevenue{}
	rows, err := r.db.Query(`SELECT month, revenue FROM (
	                             SELECT to_char(sale_date, 'YYYY-MM') AS month, COALESCE(SUM(total_amount), 0) AS revenue
	                             FROM sales
	                             GROUP BY month
	                             ORDER BY month DESC
	                             LIMIT $1
	                         ) recent ORDER BY month`, months)
	if err != nil {
		return nil, fmt.Errorf("%w: querying monthly revenue: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning monthly revenue: %v", ErrDatabaseError, err)
		}
		revenue = append(revenue, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating monthly revenue: %v", ErrDatabaseError, err)
	}
	return revenue, nil
}

func (r *reportRepository) GetMonthlyExpenses(months int) ([]models.MonthlyExpenses, error) {
	expenses := []models.MonthlyExpenses{}
	rows, err := r.db.Query(`SELECT month, expenses FROM (
	                             SELECT to_char(purchase_date, 'YYYY-MM') AS month, COALESCE(SUM(total_amount), 0) AS expenses
	                             FROM purchases
	                             GROUP BY month
	                             ORDER BY month DESC
	                             LIMIT $1
	                         ) recent ORDER BY month`, months)
	if err != nil {
		return nil, fmt.Errorf("%w: querying monthly expenses: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MonthlyExpenses
		if err := rows.Scan(&m.Month, &m.Expenses); err != nil {
			return nil, fmt.Errorf("%w: scanning monthly expenses: %v", ErrDatabaseError, err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating monthly expenses: %v", ErrDatabaseError, err)
	}
	return expenses, nil
}

// GetFinanceSummary leaves NetProfit for the caller to derive.
func (r *reportRepository) GetFinanceSummary() (models.FinanceSummary, error) {
	var s models.FinanceSummary
	err := r.db.QueryRow(`SELECT
	        (SELECT COALESCE(SUM(total_amount), 0) FROM sales),
	        (SELECT COALESCE(SUM(total_amount), 0) FROM purchases),
	        (SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE sale_date = CURRENT_DATE),
	        (SELECT COALESCE(SUM(total_amount), 0) FROM purchases WHERE purchase_date = CURRENT_DATE)`).
		Scan(&s.TotalSales, &s.TotalPurchases, &s.TodaySales, &s.TodayPurchases)
	if err != nil {
		return s, fmt.Errorf("%w: querying finance summary: %v", ErrDatabaseError, err)
	}
	return s, nil
}
