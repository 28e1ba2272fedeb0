// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/nurgarden/ngms-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	service *ProductService
	sales   *SaleService
}

func (s *ProductServiceTestSuite) SetupTest() {
	db := openTestDB(s.T())
	s.service = NewProductService(db)
	s.sales = NewSaleService(db)
}

func (s *ProductServiceTestSuite) TestCreateComputesMargin() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Apple Saplings",
		PackageType:   "5kg",
		PurchasePrice: decimal.RequireFromString("100.00"),
		SalePrice:     decimal.RequireFromString("150.00"),
	})
	s.Require().NoError(err)

	s.Require().True(product.MarginPercent.Valid)
	s.True(product.MarginPercent.Decimal.Equal(decimal.RequireFromString("50.00")))
}

func (s *ProductServiceTestSuite) TestCreateZeroPurchasePriceHasNoMargin() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Promo Sample",
		PackageType:   "250g",
		PurchasePrice: decimal.Zero,
		SalePrice:     decimal.RequireFromString("10.00"),
	})
	s.Require().NoError(err)
	s.False(product.MarginPercent.Valid)
}

func (s *ProductServiceTestSuite) TestUpdateRecomputesMarginOnPriceChange() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Pine Bark",
		PackageType:   "10kg",
		PurchasePrice: decimal.RequireFromString("40.00"),
		SalePrice:     decimal.RequireFromString("60.00"),
	})
	s.Require().NoError(err)

	updated, err := s.service.Update(product.ID, &ProductUpdateRequest{
		SalePrice: decPtr("80.00"),
	})
	s.Require().NoError(err)
	s.True(updated.MarginPercent.Decimal.Equal(decimal.RequireFromString("100.00")))
}

func (s *ProductServiceTestSuite) TestUpdateNameKeepsMargin() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Pine Bark",
		PackageType:   "10kg",
		PurchasePrice: decimal.RequireFromString("40.00"),
		SalePrice:     decimal.RequireFromString("60.00"),
	})
	s.Require().NoError(err)

	name := "Pine Bark Premium"
	updated, err := s.service.Update(product.ID, &ProductUpdateRequest{Name: &name})
	s.Require().NoError(err)
	s.True(updated.MarginPercent.Decimal.Equal(decimal.RequireFromString("50.00")))
}

func (s *ProductServiceTestSuite) TestDeleteRestrictedWhenReferencedBySales() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Grass Seed",
		PackageType:   "1kg",
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString("20.00"),
	})
	s.Require().NoError(err)
	customer := createTestCustomer(s.T(), s.service.db, "Buyer")

	_, err = s.sales.Create(&SaleCreateRequest{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Amount:     decimal.RequireFromString("20.00"),
	})
	s.Require().NoError(err)

	s.ErrorIs(s.service.Delete(product.ID), ErrProductInUse)

	// Still present.
	_, err = s.service.GetByID(product.ID)
	s.NoError(err)
}

func (s *ProductServiceTestSuite) TestDeleteRestrictedWhenReferencedByOnlineSales() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Flower Pots",
		PackageType:   "set",
		PurchasePrice: decimal.RequireFromString("15.00"),
		SalePrice:     decimal.RequireFromString("30.00"),
	})
	s.Require().NoError(err)

	_, err = s.sales.CreateOnlineSale(&OnlineSaleCreateRequest{
		Platform:  "uzum_market",
		ProductID: &product.ID,
		Amount:    decimal.RequireFromString("30.00"),
	})
	s.Require().NoError(err)

	s.ErrorIs(s.service.Delete(product.ID), ErrProductInUse)

	_, err = s.service.GetByID(product.ID)
	s.NoError(err)
}

func (s *ProductServiceTestSuite) TestDeleteUnreferenced() {
	product, err := s.service.Create(&ProductCreateRequest{
		Name:          "Mulch",
		PackageType:   "5kg",
		PurchasePrice: decimal.RequireFromString("5.00"),
		SalePrice:     decimal.RequireFromString("9.00"),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(product.ID))
	_, err = s.service.GetByID(product.ID)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestGetUnknownID() {
	_, err := s.service.GetByID(uuid.New())
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestListFiltersByStatus() {
	_, err := s.service.Create(&ProductCreateRequest{
		Name:          "Active One",
		PackageType:   "1kg",
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString("20.00"),
	})
	s.Require().NoError(err)
	_, err = s.service.Create(&ProductCreateRequest{
		Name:          "Retired One",
		PackageType:   "1kg",
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString("20.00"),
		Status:        "inactive",
	})
	s.Require().NoError(err)

	result, err := s.service.List(utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}, "active")
	s.Require().NoError(err)
	s.Equal(int64(1), result.Total)
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
