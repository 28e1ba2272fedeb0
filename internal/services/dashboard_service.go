// internal/services/dashboard_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/cache"
	"github.com/nurgarden/ngms-backend/internal/models"
	"github.com/nurgarden/ngms-backend/internal/money"
)

// DashboardService derives every read-only aggregate the dashboard shows.
// It never fails a page load: if an aggregation query errors, the affected
// endpoint returns a zero-filled shape carrying a diagnostic message instead
// of a 500.
type DashboardService struct {
	db       *gorm.DB
	cache    cache.StatsCache
	statsTTL time.Duration
}

func NewDashboardService(db *gorm.DB, statsCache cache.StatsCache, statsTTL time.Duration) *DashboardService {
	if statsCache == nil {
		statsCache = cache.NoopStatsCache{}
	}
	return &DashboardService{db: db, cache: statsCache, statsTTL: statsTTL}
}

const statsCacheKey = "dashboard:stats"

const statsUnavailable = "statistics temporarily unavailable"

type DashboardStats struct {
	DailySales      float64 `json:"daily_sales"`
	MonthlySales    float64 `json:"monthly_sales"`
	YearlySales     float64 `json:"yearly_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
	MonthlyProfit   float64 `json:"monthly_profit"`
	TotalProfit     float64 `json:"total_profit"`
	MonthlyQuantity int64   `json:"monthly_quantity"`
	TotalQuantity   int64   `json:"total_quantity"`
	SalesCount      int64   `json:"sales_count"`
	CustomersCount  int64   `json:"customers_count"`
	ProductsCount   int64   `json:"products_count"`
	RevenueGrowth   float64 `json:"revenue_growth"`
	ProfitGrowth    float64 `json:"profit_growth"`
	Error           string  `json:"error,omitempty"`
}

// Stats returns the headline numbers: today's, this month's and this year's
// sales, all-time totals, quantities, entity counts and month-over-month
// growth. Results are cached briefly; on any query failure the zero shape is
// returned with a diagnostic so the dashboard still renders.
func (s *DashboardService) Stats(ctx context.Context) *DashboardStats {
	var cached DashboardStats
	if hit, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && hit {
		return &cached
	}

	stats, err := s.computeStats()
	if err != nil {
		logrus.WithError(err).Error("dashboard stats aggregation failed")
		return &DashboardStats{Error: statsUnavailable}
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, s.statsTTL); err != nil {
		logrus.WithError(err).Warn("failed to cache dashboard stats")
	}
	return stats
}

func (s *DashboardService) computeStats() (*DashboardStats, error) {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	dayStart := tomorrow.AddDate(0, 0, -1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	var allTime time.Time // zero value, before any sale

	day, err := s.windowTotals(dayStart, tomorrow)
	if err != nil {
		return nil, err
	}
	month, err := s.windowTotals(monthStart, tomorrow)
	if err != nil {
		return nil, err
	}
	year, err := s.windowTotals(yearStart, tomorrow)
	if err != nil {
		return nil, err
	}
	total, err := s.windowTotals(allTime, tomorrow)
	if err != nil {
		return nil, err
	}
	prevMonth, err := s.windowTotals(prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}

	var customersCount, productsCount int64
	if err := s.db.Model(&models.Customer{}).Count(&customersCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	err = s.db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusActive).
		Count(&productsCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return &DashboardStats{
		DailySales:      day.Amount,
		MonthlySales:    month.Amount,
		YearlySales:     year.Amount,
		TotalRevenue:    total.Amount,
		MonthlyProfit:   month.Profit,
		TotalProfit:     total.Profit,
		MonthlyQuantity: month.Quantity,
		TotalQuantity:   total.Quantity,
		SalesCount:      month.Count,
		CustomersCount:  customersCount,
		ProductsCount:   productsCount,
		RevenueGrowth:   money.GrowthPercent(month.Amount, prevMonth.Amount),
		ProfitGrowth:    money.GrowthPercent(month.Profit, prevMonth.Profit),
	}, nil
}

// InvalidateStats drops the cached headline numbers. Sale writes call this so
// the next dashboard load sees fresh totals.
func (s *DashboardService) InvalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		logrus.WithError(err).Warn("failed to invalidate dashboard stats cache")
	}
}

type windowTotalsRow struct {
	Amount   float64
	Profit   float64
	Quantity int64
	Count    int64
}

// windowTotals sums the ledger over [start, end) from one filtered row set,
// falling back to a join against current product cost for rows written
// before profit snapshotting.
func (s *DashboardService) windowTotals(start, end time.Time) (windowTotalsRow, error) {
	var row windowTotalsRow

	err := s.db.Model(&models.Sale{}).
		Select(`COALESCE(SUM(sales.amount), 0) AS amount,
			COALESCE(SUM(COALESCE(sales.profit, sales.amount - products.purchase_price * sales.quantity)), 0) AS profit,
			COALESCE(SUM(sales.quantity), 0) AS quantity,
			COUNT(*) AS count`).
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return windowTotalsRow{}, fmt.Errorf("failed to aggregate sales window: %w", err)
	}
	return row, nil
}

type GrowthPoint struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
	Profit float64 `json:"profit"`
	Growth float64 `json:"growth"`
}

type GrowthDynamics struct {
	Scope  string        `json:"scope"`
	Year   int           `json:"year,omitempty"`
	Points []GrowthPoint `json:"points"`
	Error  string        `json:"error,omitempty"`
}

// Growth returns the monthly revenue series with month-over-month growth per
// point. A year selects that calendar year (always 12 entries, empty months
// zero), period "all" starts at the first recorded sale, otherwise the series
// covers the trailing 12 months.
func (s *DashboardService) Growth(year int, period string) *GrowthDynamics {
	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	endOfSeries := currentMonth.AddDate(0, 1, 0)
	var start time.Time

	if period == "year" && year == 0 {
		year = now.Year()
	}

	scope := "trailing"
	switch {
	case period == "all":
		scope = "all"
		year = 0
		first, err := s.firstSaleMonth()
		if err != nil {
			logrus.WithError(err).Error("growth dynamics aggregation failed")
			return &GrowthDynamics{Scope: scope, Points: []GrowthPoint{}, Error: statsUnavailable}
		}
		if first.IsZero() {
			return &GrowthDynamics{Scope: scope, Points: []GrowthPoint{}}
		}
		start = first
	case year > 0:
		scope = "year"
		start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		endOfSeries = start.AddDate(1, 0, 0)
	default:
		start = currentMonth.AddDate(0, -11, 0)
	}

	points := []GrowthPoint{}
	prevAmount := 0.0
	for m := start; m.Before(endOfSeries); m = m.AddDate(0, 1, 0) {
		totals, err := s.windowTotals(m, m.AddDate(0, 1, 0))
		if err != nil {
			logrus.WithError(err).Error("growth dynamics aggregation failed")
			return &GrowthDynamics{Scope: scope, Year: year, Points: []GrowthPoint{}, Error: statsUnavailable}
		}
		points = append(points, GrowthPoint{
			Month:  m.Format("2006-01"),
			Amount: totals.Amount,
			Profit: totals.Profit,
			Growth: money.GrowthPercent(totals.Amount, prevAmount),
		})
		prevAmount = totals.Amount
	}

	return &GrowthDynamics{Scope: scope, Year: year, Points: points}
}

func (s *DashboardService) firstSaleMonth() (time.Time, error) {
	var sale models.Sale
	err := s.db.Order("sale_date asc").First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to find first sale: %w", err)
	}
	d := sale.SaleDate
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

type TopProductEntry struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	PackageType   string  `json:"package_type"`
	TotalAmount   float64 `json:"total_amount"`
	TotalQuantity int64   `json:"total_quantity"`
	SalesCount    int64   `json:"sales_count"`
}

// TopProducts ranks products by all-time summed sale amount, highest first.
// Ties break on the older product. Degrades to an empty list on query
// failure so the dashboard still renders.
func (s *DashboardService) TopProducts(limit int) []TopProductEntry {
	entries, err := s.topProductsWindow(time.Time{}, farFuture(), limit)
	if err != nil {
		logrus.WithError(err).Error("top products aggregation failed")
		return []TopProductEntry{}
	}
	return entries
}

func (s *DashboardService) topProductsWindow(start, end time.Time, limit int) ([]TopProductEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	var entries []TopProductEntry
	err := s.db.Model(&models.Sale{}).
		Select(`products.id AS product_id,
			products.name AS name,
			products.package_type AS package_type,
			COALESCE(SUM(sales.amount), 0) AS total_amount,
			COALESCE(SUM(sales.quantity), 0) AS total_quantity,
			COUNT(*) AS sales_count`).
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", start, end).
		Group("products.id, products.name, products.package_type, products.created_at").
		Order("total_amount DESC, products.created_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	if entries == nil {
		entries = []TopProductEntry{}
	}
	return entries, nil
}

type TopCustomerEntry struct {
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	SalesCount  int64   `json:"sales_count"`
}

// TopCustomers ranks customers by all-time summed sale amount. Degrades to an
// empty list on query failure.
func (s *DashboardService) TopCustomers(limit int) []TopCustomerEntry {
	entries, err := s.topCustomersWindow(time.Time{}, farFuture(), limit)
	if err != nil {
		logrus.WithError(err).Error("top customers aggregation failed")
		return []TopCustomerEntry{}
	}
	return entries
}

func (s *DashboardService) topCustomersWindow(start, end time.Time, limit int) ([]TopCustomerEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	var entries []TopCustomerEntry
	err := s.db.Model(&models.Sale{}).
		Select(`customers.id AS customer_id,
			customers.name AS name,
			COALESCE(SUM(sales.amount), 0) AS total_amount,
			COUNT(*) AS sales_count`).
		Joins("JOIN customers ON customers.id = sales.customer_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", start, end).
		Group("customers.id, customers.name, customers.created_at").
		Order("total_amount DESC, customers.created_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank customers: %w", err)
	}
	if entries == nil {
		entries = []TopCustomerEntry{}
	}
	return entries, nil
}

type TopShopEntry struct {
	ShopID      string  `json:"shop_id"`
	Name        string  `json:"name"`
	RegionName  string  `json:"region_name"`
	TotalAmount float64 `json:"total_amount"`
	SalesCount  int64   `json:"sales_count"`
}

// TopShops ranks shops by current-month sale amount. Only sales attributed to
// a shop participate. Degrades to an empty list on query failure.
func (s *DashboardService) TopShops(limit int) []TopShopEntry {
	entries, err := s.topShopsMonth(limit)
	if err != nil {
		logrus.WithError(err).Error("top shops aggregation failed")
		return []TopShopEntry{}
	}
	return entries
}

func (s *DashboardService) topShopsMonth(limit int) ([]TopShopEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var entries []TopShopEntry
	err := s.db.Model(&models.Sale{}).
		Select(`shops.id AS shop_id,
			shops.name AS name,
			regions.name AS region_name,
			COALESCE(SUM(sales.amount), 0) AS total_amount,
			COUNT(*) AS sales_count`).
		Joins("JOIN shops ON shops.id = sales.shop_id").
		Joins("JOIN regions ON regions.id = shops.region_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", monthStart, monthStart.AddDate(0, 1, 0)).
		Group("shops.id, shops.name, regions.name, shops.created_at").
		Order("total_amount DESC, shops.created_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank shops: %w", err)
	}
	if entries == nil {
		entries = []TopShopEntry{}
	}
	return entries, nil
}

type TopRegionEntry struct {
	RegionID    string  `json:"region_id"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	SalesCount  int64   `json:"sales_count"`
	ShopsCount  int64   `json:"shops_count"`
}

// TopRegions aggregates current-month shop sales up to their regions, with
// the number of distinct shops that contributed. Degrades to an empty list on
// query failure.
func (s *DashboardService) TopRegions(limit int) []TopRegionEntry {
	entries, err := s.topRegionsMonth(limit)
	if err != nil {
		logrus.WithError(err).Error("top regions aggregation failed")
		return []TopRegionEntry{}
	}
	return entries
}

func (s *DashboardService) topRegionsMonth(limit int) ([]TopRegionEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var entries []TopRegionEntry
	err := s.db.Model(&models.Sale{}).
		Select(`regions.id AS region_id,
			regions.name AS name,
			COALESCE(SUM(sales.amount), 0) AS total_amount,
			COUNT(*) AS sales_count,
			COUNT(DISTINCT shops.id) AS shops_count`).
		Joins("JOIN shops ON shops.id = sales.shop_id").
		Joins("JOIN regions ON regions.id = shops.region_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", monthStart, monthStart.AddDate(0, 1, 0)).
		Group("regions.id, regions.name, regions.created_at").
		Order("total_amount DESC, regions.created_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank regions: %w", err)
	}
	if entries == nil {
		entries = []TopRegionEntry{}
	}
	return entries, nil
}

type DayPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Amount   float64 `json:"amount"`
	Profit   float64 `json:"profit"`
	Quantity int64   `json:"quantity"`
	Count    int64   `json:"count"`
}

type MonthlyStats struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	TotalAmount  float64            `json:"total_amount"`
	TotalProfit  float64            `json:"total_profit"`
	SalesCount   int64              `json:"sales_count"`
	Days         []DayPoint         `json:"days"`
	TopProducts  []TopProductEntry  `json:"top_products"`
	TopCustomers []TopCustomerEntry `json:"top_customers"`
	Error        string             `json:"error,omitempty"`
}

// Monthly reports one calendar month: period totals, a day-by-day breakdown
// covering the days that had at least one sale, and the month's top products
// and customers.
func (s *DashboardService) Monthly(year, month int) *MonthlyStats {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)
	degraded := &MonthlyStats{
		Year: year, Month: month,
		Days:         []DayPoint{},
		TopProducts:  []TopProductEntry{},
		TopCustomers: []TopCustomerEntry{},
		Error:        statsUnavailable,
	}

	totals, err := s.windowTotals(monthStart, nextMonth)
	if err != nil {
		logrus.WithError(err).Error("monthly stats aggregation failed")
		return degraded
	}

	var dayRows []struct {
		Date     time.Time
		Amount   float64
		Profit   float64
		Quantity int64
		Count    int64
	}
	err = s.db.Model(&models.Sale{}).
		Select(`sales.sale_date AS date,
			COALESCE(SUM(sales.amount), 0) AS amount,
			COALESCE(SUM(COALESCE(sales.profit, sales.amount - products.purchase_price * sales.quantity)), 0) AS profit,
			COALESCE(SUM(sales.quantity), 0) AS quantity,
			COUNT(*) AS count`).
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", monthStart, nextMonth).
		Group("sales.sale_date").
		Order("sales.sale_date ASC").
		Scan(&dayRows).Error
	if err != nil {
		logrus.WithError(err).Error("monthly stats aggregation failed")
		return degraded
	}

	topProducts, err := s.topProductsWindow(monthStart, nextMonth, 5)
	if err != nil {
		logrus.WithError(err).Error("monthly stats aggregation failed")
		return degraded
	}
	topCustomers, err := s.topCustomersWindow(monthStart, nextMonth, 5)
	if err != nil {
		logrus.WithError(err).Error("monthly stats aggregation failed")
		return degraded
	}

	days := make([]DayPoint, 0, len(dayRows))
	for _, row := range dayRows {
		days = append(days, DayPoint{
			Date:     row.Date.Format("2006-01-02"),
			Amount:   row.Amount,
			Profit:   row.Profit,
			Quantity: row.Quantity,
			Count:    row.Count,
		})
	}

	return &MonthlyStats{
		Year:         year,
		Month:        month,
		TotalAmount:  totals.Amount,
		TotalProfit:  totals.Profit,
		SalesCount:   totals.Count,
		Days:         days,
		TopProducts:  topProducts,
		TopCustomers: topCustomers,
	}
}

type DetailedStats struct {
	BestProduct  *TopProductEntry  `json:"best_product"`
	BestCustomer *TopCustomerEntry `json:"best_customer"`
	TotalSales   int64             `json:"total_sales"`
	Error        string            `json:"error,omitempty"`
}

// Detailed returns the all-time highlights: the product that moved the most
// units, the customer who spent the most, and the total number of sales.
func (s *DashboardService) Detailed() *DetailedStats {
	degraded := &DetailedStats{Error: statsUnavailable}

	var byQuantity []TopProductEntry
	err := s.db.Model(&models.Sale{}).
		Select(`products.id AS product_id,
			products.name AS name,
			products.package_type AS package_type,
			COALESCE(SUM(sales.amount), 0) AS total_amount,
			COALESCE(SUM(sales.quantity), 0) AS total_quantity,
			COUNT(*) AS sales_count`).
		Joins("JOIN products ON products.id = sales.product_id").
		Group("products.id, products.name, products.package_type, products.created_at").
		Order("total_quantity DESC, products.created_at ASC").
		Limit(1).
		Scan(&byQuantity).Error
	if err != nil {
		logrus.WithError(err).Error("detailed stats aggregation failed")
		return degraded
	}

	customers, err := s.topCustomersWindow(time.Time{}, farFuture(), 1)
	if err != nil {
		logrus.WithError(err).Error("detailed stats aggregation failed")
		return degraded
	}

	var totalSales int64
	if err := s.db.Model(&models.Sale{}).Count(&totalSales).Error; err != nil {
		logrus.WithError(err).Error("detailed stats aggregation failed")
		return degraded
	}

	result := &DetailedStats{TotalSales: totalSales}
	if len(byQuantity) > 0 {
		result.BestProduct = &byQuantity[0]
	}
	if len(customers) > 0 {
		result.BestCustomer = &customers[0]
	}
	return result
}

func farFuture() time.Time {
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}
