package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"rp_admin_backend/internal/gateway"
	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/repositories"
	"rp_admin_backend/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Report windows.
const (
	analyticsDays     = 30
	analyticsTopItems = 15
	analyticsMonths   = 12
	financeTopItems   = 10
	bookingStatsLimit = 1000
	hoursInDay        = 24
)

// BookingLister is the slice of the gateway the analytics view needs.
type BookingLister interface {
	Bookings(ctx context.Context, query url.Values) (*gateway.BookingsResponse, error)
}

type ReportService interface {
	GetAnalytics(ctx context.Context) (*models.Analytics, error)
	GetFinance() (*models.Finance, error)
	ExportFinance() (*excelize.File, error)
}

type reportService struct {
	reportRepo    repositories.ReportRepository
	inventoryRepo repositories.InventoryRepository
	saleRepo      repositories.SaleRepository
	purchaseRepo  repositories.PurchaseRepository
	bookings      BookingLister
}

func NewReportService(
	rr repositories.ReportRepository,
	ir repositories.InventoryRepository,
	sr repositories.SaleRepository,
	pr repositories.PurchaseRepository,
	bookings BookingLister,
) ReportService {
	return &reportService{reportRepo: rr, inventoryRepo: ir, saleRepo: sr, purchaseRepo: pr, bookings: bookings}
}

// fillHours expands sparse hourly rows into all 24 hours, zero-filled.
func fillHours(rows []models.HourlySales) []models.HourlySales {
	hours := make([]models.HourlySales, hoursInDay)
	for h := range hours {
		hours[h] = models.HourlySales{Hour: h, Label: fmt.Sprintf("%02d:00", h)}
	}
	for _, r := range rows {
		if r.Hour >= 0 && r.Hour < hoursInDay {
			hours[r.Hour].Count = r.Count
			hours[r.Hour].Revenue = r.Revenue
		}
	}
	return hours
}

// countSources tallies bookings per channel.
func countSources(bookings []gateway.Booking) models.BookingSources {
	var s models.BookingSources
	for _, b := range bookings {
		switch strings.ToLower(b.Source) {
		case gateway.SourceWhatsApp:
			s.WhatsApp++
		case gateway.SourceDiscord:
			s.Discord++
		}
	}
	return s
}

func (s *reportService) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	a := &models.Analytics{}
	var err error

	hourly, err := s.reportRepo.GetHourlySales()
	if err != nil {
		return nil, fmt.Errorf("failed to get hourly sales: %w", err)
	}
	a.HourlyData = fillHours(hourly)

	if a.DailyRevenue, err = s.reportRepo.GetDailyRevenue(analyticsDays); err != nil {
		return nil, fmt.Errorf("failed to get daily revenue: %w", err)
	}
	if a.TopItems, err = s.reportRepo.GetTopItems(analyticsTopItems); err != nil {
		return nil, fmt.Errorf("failed to get top items: %w", err)
	}
	if a.PaymentBreakdown, err = s.reportRepo.GetPaymentBreakdown(); err != nil {
		return nil, fmt.Errorf("failed to get payment breakdown: %w", err)
	}
	if a.ExpenseBreakdown, err = s.reportRepo.GetExpenseBreakdown(); err != nil {
		return nil, fmt.Errorf("failed to get expense breakdown: %w", err)
	}
	if a.MonthlyRevenue, err = s.reportRepo.GetMonthlyRevenue(analyticsMonths); err != nil {
		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}
	if a.MonthlyExpenses, err = s.reportRepo.GetMonthlyExpenses(analyticsMonths); err != nil {
		return nil, fmt.Errorf("failed to get monthly expenses: %w", err)
	}
	if a.LowStock, err = s.inventoryRepo.ListLowStock(); err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}

	// Booking stats come from the gateway; a failure is reported in the
	// payload and leaves the counts at zero.
	resp, err := s.bookings.Bookings(ctx, url.Values{"limit": {fmt.Sprint(bookingStatsLimit)}})
	if err != nil {
		utils.LogWarn(err, "Booking stats unavailable")
		msg := gateway.MessageOf(err)
		a.BookingStatsError = &msg
	} else {
		a.BookingStats = models.BookingStats{Total: resp.Total, Sources: countSources(resp.Bookings)}
		if a.BookingStats.Total == 0 {
			a.BookingStats.Total = len(resp.Bookings)
		}
	}
	return a, nil
}

func (s *reportService) GetFinance() (*models.Finance, error) {
	f := &models.Finance{}
	var err error

	if f.Summary, err = s.reportRepo.GetFinanceSummary(); err != nil {
		return nil, fmt.Errorf("failed to get finance summary: %w", err)
	}
	f.Summary.NetProfit = decimal.NewFromFloat(f.Summary.TotalSales).
		Sub(decimal.NewFromFloat(f.Summary.TotalPurchases)).
		Round(2).InexactFloat64()

	if f.DailyRevenue, err = s.reportRepo.GetDailyRevenue(analyticsDays); err != nil {
		return nil, fmt.Errorf("failed to get daily revenue: %w", err)
	}
	if f.ByPayment, err = s.reportRepo.GetPaymentBreakdown(); err != nil {
		return nil, fmt.Errorf("failed to get payment breakdown: %w", err)
	}
	if f.TopItems, err = s.reportRepo.GetTopItems(financeTopItems); err != nil {
		return nil, fmt.Errorf("failed to get top items: %w", err)
	}
	if f.PurchasesByCategory, err = s.reportRepo.GetExpenseBreakdown(); err != nil {
		return nil, fmt.Errorf("failed to get purchases by category: %w", err)
	}
	return f, nil
}

// ExportFinance builds a workbook with a Sales and a Purchases sheet.
func (s *reportService) ExportFinance() (*excelize.File, error) {
	sales, err := s.saleRepo.ListSales()
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for export: %w", err)
	}
	purchases, err := s.purchaseRepo.ListPurchases()
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for export: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Sales"); err != nil {
		return nil, fmt.Errorf("naming sales sheet: %w", err)
	}
	if _, err := f.NewSheet("Purchases"); err != nil {
		return nil, fmt.Errorf("creating purchases sheet: %w", err)
	}

	salesRows := [][]interface{}{{"Bill Number", "Date", "Customer", "Payment Method", "Items", "Total"}}
	for _, sale := range sales {
		salesRows = append(salesRows, []interface{}{
			sale.BillNumber, sale.SaleDate, deref(sale.CustomerName), sale.PaymentMethod, sale.ItemCount, sale.TotalAmount,
		})
	}
	purchaseRows := [][]interface{}{{"Date", "Vendor", "Invoice", "Category", "Items", "Total"}}
	for _, p := range purchases {
		purchaseRows = append(purchaseRows, []interface{}{
			p.PurchaseDate, p.Vendor, deref(p.InvoiceNumber), p.Category, p.ItemCount, p.TotalAmount,
		})
	}

	if err := writeRows(f, "Sales", salesRows); err != nil {
		return nil, err
	}
	if err := writeRows(f, "Purchases", purchaseRows); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
