// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nurgarden/ngms-backend/internal/models"
)

// openTestDB gives each test its own in-memory sqlite database with the full
// schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.Customer{},
		&models.Region{},
		&models.Shop{},
		&models.Sale{},
		&models.OnlineSale{},
		&models.Goal{},
		&models.Plan{},
	))

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, purchase, sale string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		PackageType:   "1kg",
		PurchasePrice: decimal.RequireFromString(purchase),
		SalePrice:     decimal.RequireFromString(sale),
		Status:        models.ProductStatusActive,
	}
	product.CalculateMargin()
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()

	customer := &models.Customer{Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createTestRegion(t *testing.T, db *gorm.DB, name string) *models.Region {
	t.Helper()

	region := &models.Region{Name: name, Status: models.RegionStatusActive}
	require.NoError(t, db.Create(region).Error)
	return region
}

func createTestShop(t *testing.T, db *gorm.DB, name string, region *models.Region) *models.Shop {
	t.Helper()

	shop := &models.Shop{
		Name:     name,
		RegionID: region.ID,
		Size:     models.ShopSizeMedium,
		Status:   models.ShopStatusActive,
	}
	require.NoError(t, db.Create(shop).Error)
	return shop
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
