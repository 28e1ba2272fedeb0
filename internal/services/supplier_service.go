// internal/services/supplier_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/models"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type SupplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

type SupplierCreateRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=200"`
	Country           string `json:"country" validate:"omitempty,max=100"`
	Region            string `json:"region" validate:"omitempty,max=100"`
	ProductType       string `json:"product_type" validate:"omitempty,max=100"`
	PriceLevel        string `json:"price_level" validate:"omitempty,max=50"`
	ReliabilityRating int    `json:"reliability_rating" validate:"omitempty,gte=1,lte=5"`
	ContactInfo       string `json:"contact_info"`
	Notes             string `json:"notes"`
}

type SupplierUpdateRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	Country           *string `json:"country" validate:"omitempty,max=100"`
	Region            *string `json:"region" validate:"omitempty,max=100"`
	ProductType       *string `json:"product_type" validate:"omitempty,max=100"`
	PriceLevel        *string `json:"price_level" validate:"omitempty,max=50"`
	ReliabilityRating *int    `json:"reliability_rating" validate:"omitempty,gte=1,lte=5"`
	ContactInfo       *string `json:"contact_info"`
	Notes             *string `json:"notes"`
}

func (s *SupplierService) Create(req *SupplierCreateRequest) (*models.Supplier, error) {
	supplier := &models.Supplier{
		Name:              req.Name,
		Country:           req.Country,
		Region:            req.Region,
		ProductType:       req.ProductType,
		PriceLevel:        req.PriceLevel,
		ReliabilityRating: 3,
		ContactInfo:       req.ContactInfo,
		Notes:             req.Notes,
	}
	if req.ReliabilityRating != 0 {
		supplier.ReliabilityRating = req.ReliabilityRating
	}

	if err := s.db.Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) GetByID(id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.Preload("Products").First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}
	return &supplier, nil
}

func (s *SupplierService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Supplier{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(country) LIKE LOWER(?) OR LOWER(product_type) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}

	var suppliers []models.Supplier
	query = utils.ApplySort(query, params, []string{"name", "reliability_rating", "created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	result := utils.CreatePaginationResult(suppliers, total, params)
	return &result, nil
}

func (s *SupplierService) Update(id uuid.UUID, req *SupplierUpdateRequest) (*models.Supplier, error) {
	supplier, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Country != nil {
		supplier.Country = *req.Country
	}
	if req.Region != nil {
		supplier.Region = *req.Region
	}
	if req.ProductType != nil {
		supplier.ProductType = *req.ProductType
	}
	if req.PriceLevel != nil {
		supplier.PriceLevel = *req.PriceLevel
	}
	if req.ReliabilityRating != nil {
		supplier.ReliabilityRating = *req.ReliabilityRating
	}
	if req.ContactInfo != nil {
		supplier.ContactInfo = *req.ContactInfo
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}

	if err := s.db.Save(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *SupplierService) Delete(id uuid.UUID) error {
	supplier, err := s.GetByID(id)
	if err != nil {
		return err
	}

	// Products keep their rows; the supplier link just goes away.
	err = s.db.Model(&models.Product{}).
		Where("supplier_id = ?", id).
		Update("supplier_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to detach supplier products: %w", err)
	}

	if err := s.db.Delete(supplier).Error; err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

type SupplierProfitEntry struct {
	SupplierID  string  `json:"supplier_id"`
	Name        string  `json:"name"`
	TotalProfit float64 `json:"total_profit"`
	TotalAmount float64 `json:"total_amount"`
	SalesCount  int64   `json:"sales_count"`
}

// MostProfitable ranks suppliers by the profit their products earned.
func (s *SupplierService) MostProfitable(limit int) ([]SupplierProfitEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	var entries []SupplierProfitEntry
	err := s.db.Model(&models.Sale{}).
		Select(`suppliers.id AS supplier_id,
			suppliers.name AS name,
			COALESCE(SUM(COALESCE(sales.profit, sales.amount - products.purchase_price * sales.quantity)), 0) AS total_profit,
			COALESCE(SUM(sales.amount), 0) AS total_amount,
			COUNT(*) AS sales_count`).
		Joins("JOIN products ON products.id = sales.product_id").
		Joins("JOIN suppliers ON suppliers.id = products.supplier_id").
		Group("suppliers.id, suppliers.name, suppliers.created_at").
		Order("total_profit DESC, suppliers.created_at ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank suppliers: %w", err)
	}
	return entries, nil
}

// Risky returns suppliers with a reliability rating at or below the
// threshold, worst first. Threshold defaults to 2.
func (s *SupplierService) Risky(threshold int) ([]models.Supplier, error) {
	if threshold <= 0 {
		threshold = 2
	}

	var suppliers []models.Supplier
	err := s.db.
		Where("reliability_rating <= ?", threshold).
		Order("reliability_rating asc, name asc").
		Find(&suppliers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list risky suppliers: %w", err)
	}
	return suppliers, nil
}
