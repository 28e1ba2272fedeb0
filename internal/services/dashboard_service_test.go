// internal/services/dashboard_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/nurgarden/ngms-backend/internal/models"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	service  *DashboardService
	sales    *SaleService
	product  *models.Product
	customer *models.Customer
}

func (s *DashboardServiceTestSuite) SetupTest() {
	db := openTestDB(s.T())
	s.service = NewDashboardService(db, nil, time.Minute)
	s.sales = NewSaleService(db)
	s.product = createTestProduct(s.T(), db, "Rose Fertilizer", "20.00", "35.00")
	s.customer = createTestCustomer(s.T(), db, "City Nursery")
}

func (s *DashboardServiceTestSuite) recordSale(amount string, quantity int, date time.Time) {
	s.T().Helper()
	_, err := s.sales.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Quantity:   intPtr(quantity),
		Amount:     decimal.RequireFromString(amount),
		SaleDate:   date.Format("2006-01-02"),
	})
	s.Require().NoError(err)
}

func (s *DashboardServiceTestSuite) TestStatsEmptyLedgerIsZeroNotError() {
	stats := s.service.Stats(context.Background())

	s.Empty(stats.Error)
	s.Zero(stats.DailySales)
	s.Zero(stats.MonthlySales)
	s.Zero(stats.TotalRevenue)
	s.Zero(stats.TotalProfit)
	s.Zero(stats.SalesCount)
	s.Zero(stats.RevenueGrowth)
}

func (s *DashboardServiceTestSuite) TestStatsWindowsAndGrowth() {
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	s.recordSale("100.00", 2, lastMonth)
	s.recordSale("150.00", 3, thisMonth)

	stats := s.service.Stats(context.Background())
	s.Empty(stats.Error)
	s.Equal(150.0, stats.MonthlySales)
	s.Equal(250.0, stats.TotalRevenue)
	s.Equal(int64(3), stats.MonthlyQuantity)
	s.Equal(int64(5), stats.TotalQuantity)
	s.Equal(int64(1), stats.SalesCount)
	s.Equal(int64(1), stats.CustomersCount)
	s.Equal(int64(1), stats.ProductsCount)
	// (150-100)/100
	s.Equal(50.0, stats.RevenueGrowth)
}

func (s *DashboardServiceTestSuite) TestStatsCountsOnlyActiveProducts() {
	db := s.service.db
	retired := createTestProduct(s.T(), db, "Old Mix", "5.00", "8.00")
	retired.Status = models.ProductStatusInactive
	s.Require().NoError(db.Save(retired).Error)

	stats := s.service.Stats(context.Background())
	s.Empty(stats.Error)
	s.Equal(int64(1), stats.ProductsCount)
}

func (s *DashboardServiceTestSuite) TestStatsDegradesOnQueryFailure() {
	s.Require().NoError(s.service.db.Migrator().DropTable(&models.Sale{}))

	stats := s.service.Stats(context.Background())
	s.NotEmpty(stats.Error)
	s.Zero(stats.TotalRevenue)
	s.Zero(stats.SalesCount)
}

func (s *DashboardServiceTestSuite) TestTopListsDegradeToEmptyOnQueryFailure() {
	s.Require().NoError(s.service.db.Migrator().DropTable(&models.Sale{}))

	s.NotNil(s.service.TopProducts(5))
	s.Empty(s.service.TopProducts(5))
	s.NotNil(s.service.TopCustomers(5))
	s.Empty(s.service.TopCustomers(5))
	s.NotNil(s.service.TopShops(5))
	s.Empty(s.service.TopShops(5))
	s.NotNil(s.service.TopRegions(5))
	s.Empty(s.service.TopRegions(5))
}

func (s *DashboardServiceTestSuite) TestGrowthCurrentYearHasTwelvePoints() {
	now := time.Now()
	s.recordSale("100.00", 1, time.Date(now.Year(), now.Month(), 5, 0, 0, 0, 0, time.UTC))

	result := s.service.Growth(0, "year")
	s.Empty(result.Error)
	s.Equal("year", result.Scope)
	s.Equal(now.Year(), result.Year)
	s.Len(result.Points, 12)

	monthIdx := int(now.Month()) - 1
	s.Equal(100.0, result.Points[monthIdx].Amount)
	s.Zero(result.Points[(monthIdx+1)%12].Amount)
}

func (s *DashboardServiceTestSuite) TestGrowthSelectsRequestedYear() {
	s.recordSale("100.00", 1, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	s.recordSale("60.00", 1, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))

	result := s.service.Growth(2024, "")
	s.Empty(result.Error)
	s.Equal("year", result.Scope)
	s.Equal(2024, result.Year)
	s.Require().Len(result.Points, 12)
	s.Equal("2024-01", result.Points[0].Month)
	s.Equal("2024-12", result.Points[11].Month)
	// The 2025 sale stays out of the 2024 series.
	s.Equal(100.0, result.Points[4].Amount)
	s.Zero(result.Points[5].Amount)
}

func (s *DashboardServiceTestSuite) TestGrowthAllWithEmptyLedger() {
	result := s.service.Growth(0, "all")
	s.Empty(result.Error)
	s.Empty(result.Points)
}

func (s *DashboardServiceTestSuite) TestGrowthDefaultIsTrailingTwelveMonths() {
	result := s.service.Growth(0, "")
	s.Empty(result.Error)
	s.Equal("trailing", result.Scope)
	s.Zero(result.Year)
	s.Len(result.Points, 12)
}

func (s *DashboardServiceTestSuite) TestTopProductsOrdering() {
	db := s.service.db
	big := createTestProduct(s.T(), db, "Lawn Mix", "10.00", "25.00")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	s.recordSale("50.00", 1, today)
	_, err := s.sales.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  big.ID,
		Quantity:   intPtr(10),
		Amount:     decimal.RequireFromString("250.00"),
		SaleDate:   today.Format("2006-01-02"),
	})
	s.Require().NoError(err)

	entries := s.service.TopProducts(5)
	s.Require().Len(entries, 2)
	s.Equal("Lawn Mix", entries[0].Name)
	s.Equal(250.0, entries[0].TotalAmount)
	s.Equal(int64(10), entries[0].TotalQuantity)
	s.Equal("Rose Fertilizer", entries[1].Name)
}

func (s *DashboardServiceTestSuite) TestTopCustomers() {
	db := s.service.db
	other := createTestCustomer(s.T(), db, "Village Market")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	s.recordSale("75.00", 1, today)
	_, err := s.sales.Create(&SaleCreateRequest{
		CustomerID: other.ID,
		ProductID:  s.product.ID,
		Quantity:   intPtr(1),
		Amount:     decimal.RequireFromString("300.00"),
		SaleDate:   today.Format("2006-01-02"),
	})
	s.Require().NoError(err)

	entries := s.service.TopCustomers(5)
	s.Require().Len(entries, 2)
	s.Equal("Village Market", entries[0].Name)
	s.Equal(300.0, entries[0].TotalAmount)
}

func (s *DashboardServiceTestSuite) TestTopShopsUsesAttributedSalesOnly() {
	db := s.service.db
	region := createTestRegion(s.T(), db, "North District")
	shop := createTestShop(s.T(), db, "Garden Point", region)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// One attributed sale, one without a shop.
	_, err := s.sales.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		ShopID:     &shop.ID,
		Quantity:   intPtr(1),
		Amount:     decimal.RequireFromString("120.00"),
		SaleDate:   today.Format("2006-01-02"),
	})
	s.Require().NoError(err)
	s.recordSale("500.00", 1, today)

	shops := s.service.TopShops(5)
	s.Require().Len(shops, 1)
	s.Equal("Garden Point", shops[0].Name)
	s.Equal("North District", shops[0].RegionName)
	s.Equal(120.0, shops[0].TotalAmount)

	regions := s.service.TopRegions(5)
	s.Require().Len(regions, 1)
	s.Equal("North District", regions[0].Name)
	s.Equal(120.0, regions[0].TotalAmount)
	s.Equal(int64(1), regions[0].ShopsCount)
}

func (s *DashboardServiceTestSuite) TestMonthlyListsOnlyDaysWithSales() {
	s.recordSale("40.00", 2, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
	s.recordSale("10.00", 1, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
	s.recordSale("25.00", 1, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))

	result := s.service.Monthly(2026, 2)
	s.Empty(result.Error)
	s.Equal(75.0, result.TotalAmount)
	s.Equal(int64(3), result.SalesCount)

	s.Require().Len(result.Days, 2)
	s.Equal("2026-02-14", result.Days[0].Date)
	s.Equal(50.0, result.Days[0].Amount)
	s.Equal(int64(3), result.Days[0].Quantity)
	s.Equal("2026-02-20", result.Days[1].Date)

	s.Require().Len(result.TopProducts, 1)
	s.Equal("Rose Fertilizer", result.TopProducts[0].Name)
	s.Require().Len(result.TopCustomers, 1)
	s.Equal("City Nursery", result.TopCustomers[0].Name)
}

func (s *DashboardServiceTestSuite) TestMonthlyEmptyMonth() {
	result := s.service.Monthly(2026, 6)
	s.Empty(result.Error)
	s.Empty(result.Days)
	s.Zero(result.TotalAmount)
}

func (s *DashboardServiceTestSuite) TestDetailedHighlights() {
	db := s.service.db
	bulk := createTestProduct(s.T(), db, "Bulk Soil", "2.00", "4.00")
	spender := createTestCustomer(s.T(), db, "Big Spender")

	s.recordSale("100.00", 1, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	_, err := s.sales.Create(&SaleCreateRequest{
		CustomerID: spender.ID,
		ProductID:  bulk.ID,
		Quantity:   intPtr(50),
		Amount:     decimal.RequireFromString("200.00"),
		SaleDate:   "2026-03-02",
	})
	s.Require().NoError(err)

	result := s.service.Detailed()
	s.Empty(result.Error)
	s.Equal(int64(2), result.TotalSales)

	// Best product by units moved, best customer by money spent.
	s.Require().NotNil(result.BestProduct)
	s.Equal("Bulk Soil", result.BestProduct.Name)
	s.Equal(int64(50), result.BestProduct.TotalQuantity)
	s.Require().NotNil(result.BestCustomer)
	s.Equal("Big Spender", result.BestCustomer.Name)
}

func (s *DashboardServiceTestSuite) TestDetailedEmptyLedger() {
	result := s.service.Detailed()
	s.Empty(result.Error)
	s.Zero(result.TotalSales)
	s.Nil(result.BestProduct)
	s.Nil(result.BestCustomer)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
