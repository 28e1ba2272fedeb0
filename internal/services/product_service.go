// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/models"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductCreateRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	PackageType   string          `json:"package_type" validate:"required,max=50"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Status        string          `json:"status" validate:"omitempty,oneof=active inactive"`
	SupplierID    *uuid.UUID      `json:"supplier_id"`
}

type ProductUpdateRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	PackageType   *string          `json:"package_type" validate:"omitempty,max=50"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Status        *string          `json:"status" validate:"omitempty,oneof=active inactive"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
}

func (s *ProductService) Create(req *ProductCreateRequest) (*models.Product, error) {
	if req.PurchasePrice.IsNegative() || req.SalePrice.IsNegative() {
		return nil, ErrNegativeAmount
	}

	product := &models.Product{
		Name:          req.Name,
		PackageType:   req.PackageType,
		PurchasePrice: req.PurchasePrice.Round(2),
		SalePrice:     req.SalePrice.Round(2),
		Status:        models.ProductStatusActive,
		SupplierID:    req.SupplierID,
	}
	if req.Status != "" {
		product.Status = models.ProductStatus(req.Status)
	}
	product.CalculateMargin()

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Supplier").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}

// List returns products with pagination and optional name search and status
// filter.
func (s *ProductService) List(params utils.PaginationParams, status string) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+params.Search+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	query = utils.ApplySort(query, params, []string{"name", "purchase_price", "sale_price", "created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Supplier").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

// Update applies a partial update. margin_percent is recomputed whenever
// either price changes; it is never writable directly.
func (s *ProductService) Update(id uuid.UUID, req *ProductUpdateRequest) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	priceChanged := false
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.PackageType != nil {
		product.PackageType = *req.PackageType
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, ErrNegativeAmount
		}
		product.PurchasePrice = req.PurchasePrice.Round(2)
		priceChanged = true
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, ErrNegativeAmount
		}
		product.SalePrice = req.SalePrice.Round(2)
		priceChanged = true
	}
	if req.Status != nil {
		product.Status = models.ProductStatus(*req.Status)
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}

	if priceChanged {
		product.CalculateMargin()
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product unless sales or online sales reference it.
// Existing sale rows keep their cost snapshots, so deleting a referenced
// product would orphan the ledger's joins.
func (s *ProductService) Delete(id uuid.UUID) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).Where("product_id = ?", id).Count(&saleCount).Error; err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	var onlineCount int64
	if err := s.db.Model(&models.OnlineSale{}).Where("product_id = ?", id).Count(&onlineCount).Error; err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	if saleCount > 0 || onlineCount > 0 {
		return ErrProductInUse
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
