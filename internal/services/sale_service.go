// internal/services/sale_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/database"
	"github.com/nurgarden/ngms-backend/internal/models"
	"github.com/nurgarden/ngms-backend/internal/money"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

const saleDateLayout = "2006-01-02"

// SaleService owns the sale ledger. Every write snapshots the cost basis at
// that moment: unit_price, purchase_price_at_sale and profit are computed
// once and stored, so later product price edits never rewrite history.
type SaleService struct {
	db *gorm.DB
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

type SaleCreateRequest struct {
	CustomerID          uuid.UUID            `json:"customer_id" validate:"required"`
	ProductID           uuid.UUID            `json:"product_id" validate:"required"`
	ShopID              *uuid.UUID           `json:"shop_id"`
	Quantity            *int                 `json:"quantity"`
	Amount              decimal.Decimal      `json:"amount"`
	PurchasePriceAtSale money.OptionalAmount `json:"purchase_price_at_sale"`
	SaleDate            string               `json:"sale_date"`
}

type SaleUpdateRequest struct {
	CustomerID          *uuid.UUID           `json:"customer_id"`
	ProductID           *uuid.UUID           `json:"product_id"`
	ShopID              *uuid.UUID           `json:"shop_id"`
	Quantity            *int                 `json:"quantity"`
	Amount              *decimal.Decimal     `json:"amount"`
	PurchasePriceAtSale money.OptionalAmount `json:"purchase_price_at_sale"`
	SaleDate            *string              `json:"sale_date"`
}

type SaleListFilter struct {
	From       string
	To         string
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
}

// resolveCost picks the purchase price snapshot for a sale write: an explicit
// override wins, otherwise the product's current purchase price, otherwise
// zero.
func resolveCost(override money.OptionalAmount, product *models.Product) decimal.Decimal {
	if override.Set && override.Valid {
		return override.Value.Round(2)
	}
	if product != nil && !product.PurchasePrice.IsZero() {
		return product.PurchasePrice
	}
	return decimal.Zero
}

func parseSaleDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(saleDateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// applySnapshot fills the three derived columns from the sale's amount,
// quantity and resolved cost.
func applySnapshot(sale *models.Sale, cost decimal.Decimal) {
	sale.UnitPrice = decimal.NullDecimal{Decimal: money.UnitPrice(sale.Amount, sale.Quantity), Valid: true}
	sale.PurchasePriceAtSale = decimal.NullDecimal{Decimal: cost, Valid: true}
	sale.Profit = decimal.NullDecimal{Decimal: money.Profit(sale.Amount, cost, sale.Quantity), Valid: true}
}

func (s *SaleService) Create(req *SaleCreateRequest) (*models.Sale, error) {
	return s.createTx(s.db, req)
}

func (s *SaleService) createTx(tx *gorm.DB, req *SaleCreateRequest) (*models.Sale, error) {
	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		quantity = *req.Quantity
	}
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var customer models.Customer
	if err := tx.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	var product models.Product
	if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	saleDate, err := parseSaleDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		ShopID:     req.ShopID,
		Quantity:   quantity,
		Amount:     req.Amount.Round(2),
		SaleDate:   saleDate,
	}
	applySnapshot(sale, resolveCost(req.PurchasePriceAtSale, &product))

	if err := tx.Create(sale).Error; err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	sale.Customer = &customer
	sale.Product = &product
	return sale, nil
}

func (s *SaleService) GetByID(id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.Preload("Customer").Preload("Product").Preload("Shop").
		First(&sale, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}
	return &sale, nil
}

func (s *SaleService) List(params utils.PaginationParams, filter SaleListFilter) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Sale{})

	if filter.From != "" {
		from, err := time.Parse(saleDateLayout, filter.From)
		if err != nil {
			return nil, ErrInvalidDate
		}
		query = query.Where("sale_date >= ?", from)
	}
	if filter.To != "" {
		to, err := time.Parse(saleDateLayout, filter.To)
		if err != nil {
			return nil, ErrInvalidDate
		}
		query = query.Where("sale_date <= ?", to)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	var sales []models.Sale
	query = utils.ApplySort(query, params, []string{"sale_date", "amount", "created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Customer").Preload("Product").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	result := utils.CreatePaginationResult(sales, total, params)
	return &result, nil
}

// Update applies a partial revision and then recomputes the snapshot columns
// from the post-update state. The cost field is tri-state: absent keeps the
// stored snapshot, null re-resolves from the product, a value overrides.
func (s *SaleService) Update(id uuid.UUID, req *SaleUpdateRequest) (*models.Sale, error) {
	sale, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := s.db.First(&customer, "id = ?", *req.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, fmt.Errorf("failed to load customer: %w", err)
		}
		sale.CustomerID = *req.CustomerID
		sale.Customer = &customer
	}

	if req.ProductID != nil {
		var product models.Product
		if err := s.db.First(&product, "id = ?", *req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		sale.ProductID = *req.ProductID
		sale.Product = &product
	}

	if req.ShopID != nil {
		sale.ShopID = req.ShopID
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		sale.Quantity = *req.Quantity
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
		sale.Amount = req.Amount.Round(2)
	}

	if req.SaleDate != nil {
		saleDate, err := time.Parse(saleDateLayout, *req.SaleDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		sale.SaleDate = saleDate
	}

	// Resolve the cost basis for the revised row.
	var cost decimal.Decimal
	switch {
	case req.PurchasePriceAtSale.Set && req.PurchasePriceAtSale.Valid:
		cost = req.PurchasePriceAtSale.Value.Round(2)
	case req.PurchasePriceAtSale.Set:
		// Explicit null: re-resolve from the (possibly new) product.
		cost = resolveCost(money.OptionalAmount{}, sale.Product)
	case sale.PurchasePriceAtSale.Valid:
		cost = sale.PurchasePriceAtSale.Decimal
	default:
		cost = resolveCost(money.OptionalAmount{}, sale.Product)
	}
	applySnapshot(sale, cost)

	if err := s.db.Save(sale).Error; err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return sale, nil
}

func (s *SaleService) Delete(id uuid.UUID) error {
	sale, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(sale).Error; err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

type BulkImportRowError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type BulkImportResult struct {
	CreatedCount int                  `json:"created_count"`
	Errors       []BulkImportRowError `json:"errors,omitempty"`
}

// BulkImport records many sales in one transaction. Rows fail independently:
// a bad row is reported by index and skipped, the valid rows around it still
// commit together.
func (s *SaleService) BulkImport(rows []SaleCreateRequest) (*BulkImportResult, error) {
	result := &BulkImportResult{Errors: []BulkImportRowError{}}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for i, row := range rows {
			r := row
			if _, err := s.createTx(tx, &r); err != nil {
				if IsValidationError(err) || IsNotFound(err) {
					result.Errors = append(result.Errors, BulkImportRowError{
						Index:   i,
						Message: err.Error(),
					})
					continue
				}
				return err
			}
			result.CreatedCount++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk import failed: %w", err)
	}
	return result, nil
}

type SaleStatistics struct {
	Period        string  `json:"period"`
	TotalAmount   float64 `json:"total_amount"`
	TotalProfit   float64 `json:"total_profit"`
	SalesCount    int64   `json:"sales_count"`
	AmountGrowth  float64 `json:"amount_growth"`
	ProfitGrowth  float64 `json:"profit_growth"`
	PreviousStart string  `json:"previous_start"`
	CurrentStart  string  `json:"current_start"`
}

// Statistics aggregates the ledger over the current day, month or year and
// compares it against the previous equivalent window.
func (s *SaleService) Statistics(period string) (*SaleStatistics, error) {
	now := time.Now()
	var curStart, prevStart, prevEnd time.Time

	switch period {
	case "day":
		curStart = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(0, 0, -1)
		prevEnd = curStart
	case "year":
		curStart = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(-1, 0, 0)
		prevEnd = curStart
	default:
		period = "month"
		curStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		prevStart = curStart.AddDate(0, -1, 0)
		prevEnd = curStart
	}

	curAmount, curProfit, curCount, err := s.windowTotals(curStart, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	prevAmount, prevProfit, _, err := s.windowTotals(prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	return &SaleStatistics{
		Period:        period,
		TotalAmount:   curAmount,
		TotalProfit:   curProfit,
		SalesCount:    curCount,
		AmountGrowth:  money.GrowthPercent(curAmount, prevAmount),
		ProfitGrowth:  money.GrowthPercent(curProfit, prevProfit),
		PreviousStart: prevStart.Format(saleDateLayout),
		CurrentStart:  curStart.Format(saleDateLayout),
	}, nil
}

// windowTotals sums amount and profit over [start, end). Rows written before
// profit snapshotting began fall back to a join against the product's current
// purchase price.
func (s *SaleService) windowTotals(start, end time.Time) (amount, profit float64, count int64, err error) {
	row := struct {
		Amount float64
		Profit float64
		Count  int64
	}{}

	err = s.db.Model(&models.Sale{}).
		Select(`COALESCE(SUM(sales.amount), 0) AS amount,
			COALESCE(SUM(COALESCE(sales.profit, sales.amount - products.purchase_price * sales.quantity)), 0) AS profit,
			COUNT(*) AS count`).
		Joins("JOIN products ON products.id = sales.product_id").
		Where("sales.sale_date >= ? AND sales.sale_date < ?", start, end).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to aggregate sales window: %w", err)
	}
	return row.Amount, row.Profit, row.Count, nil
}

type OnlineSaleCreateRequest struct {
	Platform  string          `json:"platform" validate:"required,oneof=uzum_market yandex_market"`
	ProductID *uuid.UUID      `json:"product_id"`
	Quantity  *int            `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	SaleDate  string          `json:"sale_date"`
}

func (s *SaleService) CreateOnlineSale(req *OnlineSaleCreateRequest) (*models.OnlineSale, error) {
	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		quantity = *req.Quantity
	}
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if req.ProductID != nil {
		var product models.Product
		if err := s.db.First(&product, "id = ?", *req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
	}

	saleDate, err := parseSaleDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	sale := &models.OnlineSale{
		Platform:  models.SalesPlatform(req.Platform),
		ProductID: req.ProductID,
		Quantity:  quantity,
		Amount:    req.Amount.Round(2),
		SaleDate:  saleDate,
	}
	if err := s.db.Create(sale).Error; err != nil {
		return nil, fmt.Errorf("failed to create online sale: %w", err)
	}
	return sale, nil
}

func (s *SaleService) ListOnlineSales(params utils.PaginationParams, platform string) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.OnlineSale{})
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count online sales: %w", err)
	}

	var sales []models.OnlineSale
	query = utils.ApplySort(query, params, []string{"sale_date", "amount", "created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Product").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list online sales: %w", err)
	}

	result := utils.CreatePaginationResult(sales, total, params)
	return &result, nil
}
