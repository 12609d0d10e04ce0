package models

// HourlySales is one hour bucket of the peak-hours chart.
type HourlySales struct {
	Hour    int     `json:"hour"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DailyRevenue struct {
	Date         string  `json:"date"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

type TopItem struct {
	ItemName     string  `json:"item_name"`
	TotalQty     int     `json:"total_qty"`
	TotalRevenue float64 `json:"total_revenue"`
}

type PaymentBreakdown struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
}

type CategoryBreakdown struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type MonthlyExpenses struct {
	Month    string  `json:"month"`
	Expenses float64 `json:"expenses"`
}

type BookingSources struct {
	WhatsApp int `json:"whatsapp"`
	Discord  int `json:"discord"`
}

// BookingStats summarises gateway bookings for the analytics page.
type BookingStats struct {
	Total   int            `json:"total"`
	Sources BookingSources `json:"sources"`
}

// Analytics is the payload of the analytics dashboard.
type Analytics struct {
	HourlyData        []HourlySales       `json:"hourly_data"`
	DailyRevenue      []DailyRevenue      `json:"daily_revenue"`
	TopItems          []TopItem           `json:"top_items"`
	PaymentBreakdown  []PaymentBreakdown  `json:"payment_breakdown"`
	ExpenseBreakdown  []CategoryBreakdown `json:"expense_breakdown"`
	MonthlyRevenue    []MonthlyRevenue    `json:"monthly_revenue"`
	MonthlyExpenses   []MonthlyExpenses   `json:"monthly_expenses"`
	BookingStats      BookingStats        `json:"booking_stats"`
	BookingStatsError *string             `json:"booking_stats_error,omitempty"`
	LowStock          []LowStockItem      `json:"low_stock"`
}

type FinanceSummary struct {
	TotalSales     float64 `json:"total_sales"`
	TotalPurchases float64 `json:"total_purchases"`
	NetProfit      float64 `json:"net_profit"`
	TodaySales     float64 `json:"today_sales"`
	TodayPurchases float64 `json:"today_purchases"`
}

// Finance is the payload of the finance overview.
type Finance struct {
	Summary             FinanceSummary      `json:"summary"`
	DailyRevenue        []DailyRevenue      `json:"daily_revenue"`
	ByPayment           []PaymentBreakdown  `json:"by_payment"`
	TopItems            []TopItem           `json:"top_items"`
	PurchasesByCategory []CategoryBreakdown `json:"purchases_by_category"`
}
