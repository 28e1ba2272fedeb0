// internal/services/sale_service_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/nurgarden/ngms-backend/internal/models"
	"github.com/nurgarden/ngms-backend/internal/money"
)

type SaleServiceTestSuite struct {
	suite.Suite
	service  *SaleService
	product  *models.Product
	customer *models.Customer
}

func (s *SaleServiceTestSuite) SetupTest() {
	db := openTestDB(s.T())
	s.service = NewSaleService(db)
	s.product = createTestProduct(s.T(), db, "Tomato Seeds", "100.00", "150.00")
	s.customer = createTestCustomer(s.T(), db, "Garden Center LLC")
}

func (s *SaleServiceTestSuite) TestCreateSnapshotsProductCost() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Quantity:   intPtr(2),
		Amount:     decimal.RequireFromString("300.00"),
		SaleDate:   "2026-03-10",
	})
	s.Require().NoError(err)

	s.True(sale.UnitPrice.Valid)
	s.True(sale.UnitPrice.Decimal.Equal(decimal.RequireFromString("150.00")))
	s.True(sale.PurchasePriceAtSale.Valid)
	s.True(sale.PurchasePriceAtSale.Decimal.Equal(decimal.RequireFromString("100.00")))
	// profit = 300 - 100*2
	s.True(sale.Profit.Decimal.Equal(decimal.RequireFromString("100.00")))
}

func (s *SaleServiceTestSuite) TestCreateWithCostOverride() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID:          s.customer.ID,
		ProductID:           s.product.ID,
		Quantity:            intPtr(1),
		Amount:              decimal.RequireFromString("150.00"),
		PurchasePriceAtSale: money.OptionalAmount{Set: true, Valid: true, Value: decimal.RequireFromString("90.00")},
	})
	s.Require().NoError(err)

	s.True(sale.PurchasePriceAtSale.Decimal.Equal(decimal.RequireFromString("90.00")))
	s.True(sale.Profit.Decimal.Equal(decimal.RequireFromString("60.00")))
}

func (s *SaleServiceTestSuite) TestCreateDefaultsQuantityAndDate() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Amount:     decimal.RequireFromString("150.00"),
	})
	s.Require().NoError(err)

	s.Equal(1, sale.Quantity)
	s.False(sale.SaleDate.IsZero())
}

func (s *SaleServiceTestSuite) TestCreateRejectsZeroQuantity() {
	_, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Quantity:   intPtr(0),
		Amount:     decimal.RequireFromString("100.00"),
	})
	s.ErrorIs(err, ErrInvalidQuantity)
}

func (s *SaleServiceTestSuite) TestCreateRejectsNegativeAmount() {
	_, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Amount:     decimal.RequireFromString("-5.00"),
	})
	s.ErrorIs(err, ErrNegativeAmount)
}

func (s *SaleServiceTestSuite) TestCreateRejectsUnknownReferences() {
	_, err := s.service.Create(&SaleCreateRequest{
		CustomerID: uuid.New(),
		ProductID:  s.product.ID,
		Amount:     decimal.RequireFromString("100.00"),
	})
	s.ErrorIs(err, ErrCustomerNotFound)

	_, err = s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  uuid.New(),
		Amount:     decimal.RequireFromString("100.00"),
	})
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *SaleServiceTestSuite) TestCreateRejectsBadDate() {
	_, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Amount:     decimal.RequireFromString("100.00"),
		SaleDate:   "10/03/2026",
	})
	s.ErrorIs(err, ErrInvalidDate)
}

func (s *SaleServiceTestSuite) TestSnapshotSurvivesProductPriceChange() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Quantity:   intPtr(2),
		Amount:     decimal.RequireFromString("300.00"),
	})
	s.Require().NoError(err)

	// Raise the product's purchase price after the sale was written.
	s.product.PurchasePrice = decimal.RequireFromString("200.00")
	s.Require().NoError(s.service.db.Save(s.product).Error)

	reloaded, err := s.service.GetByID(sale.ID)
	s.Require().NoError(err)
	s.True(reloaded.PurchasePriceAtSale.Decimal.Equal(decimal.RequireFromString("100.00")))
	s.True(reloaded.Profit.Decimal.Equal(decimal.RequireFromString("100.00")))
}

func (s *SaleServiceTestSuite) TestUpdateRecomputesDerivedFields() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID:          s.customer.ID,
		ProductID:           s.product.ID,
		Quantity:            intPtr(3),
		Amount:              decimal.RequireFromString("45.00"),
		PurchasePriceAtSale: money.OptionalAmount{Set: true, Valid: true, Value: decimal.RequireFromString("10.00")},
	})
	s.Require().NoError(err)

	updated, err := s.service.Update(sale.ID, &SaleUpdateRequest{
		Quantity: intPtr(5),
	})
	s.Require().NoError(err)

	// 45/5 and 45 - 10*5; the loss is kept as is.
	s.True(updated.UnitPrice.Decimal.Equal(decimal.RequireFromString("9.00")))
	s.True(updated.PurchasePriceAtSale.Decimal.Equal(decimal.RequireFromString("10.00")))
	s.True(updated.Profit.Decimal.Equal(decimal.RequireFromString("-5.00")))
}

func (s *SaleServiceTestSuite) TestUpdateNullCostReResolvesFromProduct() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID:          s.customer.ID,
		ProductID:           s.product.ID,
		Quantity:            intPtr(1),
		Amount:              decimal.RequireFromString("150.00"),
		PurchasePriceAtSale: money.OptionalAmount{Set: true, Valid: true, Value: decimal.RequireFromString("90.00")},
	})
	s.Require().NoError(err)

	updated, err := s.service.Update(sale.ID, &SaleUpdateRequest{
		PurchasePriceAtSale: money.OptionalAmount{Set: true, Valid: false},
	})
	s.Require().NoError(err)

	s.True(updated.PurchasePriceAtSale.Decimal.Equal(decimal.RequireFromString("100.00")))
	s.True(updated.Profit.Decimal.Equal(decimal.RequireFromString("50.00")))
}

func (s *SaleServiceTestSuite) TestUpdateAbsentCostKeepsSnapshot() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID:          s.customer.ID,
		ProductID:           s.product.ID,
		Quantity:            intPtr(1),
		Amount:              decimal.RequireFromString("150.00"),
		PurchasePriceAtSale: money.OptionalAmount{Set: true, Valid: true, Value: decimal.RequireFromString("90.00")},
	})
	s.Require().NoError(err)

	updated, err := s.service.Update(sale.ID, &SaleUpdateRequest{
		Amount: decPtr("200.00"),
	})
	s.Require().NoError(err)

	s.True(updated.PurchasePriceAtSale.Decimal.Equal(decimal.RequireFromString("90.00")))
	s.True(updated.Profit.Decimal.Equal(decimal.RequireFromString("110.00")))
}

func (s *SaleServiceTestSuite) TestBulkImportIsolatesRowErrors() {
	rows := []SaleCreateRequest{
		{CustomerID: s.customer.ID, ProductID: s.product.ID, Amount: decimal.RequireFromString("100.00")},
		{CustomerID: s.customer.ID, ProductID: uuid.New(), Amount: decimal.RequireFromString("100.00")},
		{CustomerID: s.customer.ID, ProductID: s.product.ID, Amount: decimal.RequireFromString("200.00")},
		{CustomerID: s.customer.ID, ProductID: s.product.ID, Amount: decimal.RequireFromString("300.00")},
	}

	result, err := s.service.BulkImport(rows)
	s.Require().NoError(err)

	s.Equal(3, result.CreatedCount)
	s.Require().Len(result.Errors, 1)
	s.Equal(1, result.Errors[0].Index)

	var count int64
	s.Require().NoError(s.service.db.Model(&models.Sale{}).Count(&count).Error)
	s.Equal(int64(3), count)

	body, err := json.Marshal(result)
	s.Require().NoError(err)
	s.Contains(string(body), `"created_count":3`)
}

func (s *SaleServiceTestSuite) TestDelete() {
	sale, err := s.service.Create(&SaleCreateRequest{
		CustomerID: s.customer.ID,
		ProductID:  s.product.ID,
		Amount:     decimal.RequireFromString("100.00"),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(sale.ID))

	_, err = s.service.GetByID(sale.ID)
	s.ErrorIs(err, ErrSaleNotFound)

	s.ErrorIs(s.service.Delete(uuid.New()), ErrSaleNotFound)
}

func (s *SaleServiceTestSuite) TestOnlineSale() {
	sale, err := s.service.CreateOnlineSale(&OnlineSaleCreateRequest{
		Platform: "uzum_market",
		Quantity: intPtr(2),
		Amount:   decimal.RequireFromString("80.00"),
		SaleDate: "2026-04-01",
	})
	s.Require().NoError(err)
	s.Equal(models.PlatformUzumMarket, sale.Platform)

	_, err = s.service.CreateOnlineSale(&OnlineSaleCreateRequest{
		Platform: "yandex_market",
		Quantity: intPtr(-1),
		Amount:   decimal.RequireFromString("80.00"),
	})
	s.ErrorIs(err, ErrInvalidQuantity)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
