package dashboard

import (
	"context"
	"fmt"
	"isp-billing/internal/domain/customer"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "৳"

// Invoicing is not tracked yet; these two figures are fixed placeholders.
const (
	placeholderPendingInvoices = 18
	placeholderCollectionRate  = 92
)

type Stats struct {
	TotalCustomers        int             `json:"totalCustomers"`
	CustomersByStatus     map[string]int  `json:"customersByStatus"`
	MonthlyRevenue        decimal.Decimal `json:"monthlyRevenue"`
	MonthlyRevenueDisplay string          `json:"monthlyRevenueDisplay"`
	PendingInvoices       int             `json:"pendingInvoices"`
	CollectionRate        decimal.Decimal `json:"collectionRate"`
}

type Payment struct {
	Customer string          `json:"customer"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
}

type RevenuePoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type Service struct {
	source customer.DataSource
	logger *slog.Logger
}

func NewService(source customer.DataSource, logger *slog.Logger) *Service {
	if source == nil {
		panic("customer data source cannot be nil")
	}
	return &Service{source: source, logger: logger.With("component", "DashboardService")}
}

// Stats counts customers by status and sums the monthly fees of active ones.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	records, err := s.source.FetchAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load customers for dashboard", slog.Any("error", err))
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}

	stats := &Stats{
		TotalCustomers: len(records),
		CustomersByStatus: map[string]int{
			string(customer.StatusActive):    0,
			string(customer.StatusInactive):  0,
			string(customer.StatusSuspended): 0,
		},
		MonthlyRevenue:  decimal.Zero,
		PendingInvoices: placeholderPendingInvoices,
		CollectionRate:  decimal.NewFromInt(placeholderCollectionRate),
	}
	for _, c := range records {
		stats.CustomersByStatus[string(c.Status)]++
		if c.Status == customer.StatusActive {
			stats.MonthlyRevenue = stats.MonthlyRevenue.Add(decimal.NewFromInt(c.MonthlyFee))
		}
	}
	stats.MonthlyRevenueDisplay = FormatCurrency(stats.MonthlyRevenue)

	return stats, nil
}

func (s *Service) RecentPayments() []Payment {
	return []Payment{
		{Customer: "John Smith", Date: "2023-10-15", Amount: decimal.NewFromInt(1500), Status: "paid"},
		{Customer: "Sarah Johnson", Date: "2023-10-14", Amount: decimal.NewFromInt(1200), Status: "paid"},
		{Customer: "Robert Brown", Date: "2023-10-13", Amount: decimal.NewFromInt(2000), Status: "paid"},
		{Customer: "Emily Davis", Date: "2023-10-12", Amount: decimal.NewFromInt(1800), Status: "paid"},
		{Customer: "Michael Wilson", Date: "2023-10-11", Amount: decimal.NewFromInt(1600), Status: "pending"},
	}
}

func (s *Service) RevenueSeries() []RevenuePoint {
	months := [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	amounts := [...]int64{85000, 92000, 105000, 110000, 115000, 120000, 118000, 125000, 130000, 128000, 135000, 140000}

	series := make([]RevenuePoint, len(months))
	for i := range months {
		series[i] = RevenuePoint{Month: months[i], Amount: decimal.NewFromInt(amounts[i])}
	}
	return series
}

// FormatCurrency renders whole taka with thousands separators, e.g. "৳125,000".
func FormatCurrency(amount decimal.Decimal) string {
	digits := amount.Abs().StringFixed(0)

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(currencySymbol)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
