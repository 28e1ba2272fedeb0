// internal/services/customer_service.go
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

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

type CustomerCreateRequest struct {
	Name           string              `json:"name" validate:"required,min=1,max=200"`
	AdditionalName string              `json:"additional_name" validate:"omitempty,max=200"`
	Phone          string              `json:"phone" validate:"omitempty,max=50"`
	Address        string              `json:"address" validate:"omitempty,max=500"`
	Latitude       decimal.NullDecimal `json:"latitude"`
	Longitude      decimal.NullDecimal `json:"longitude"`
}

type CustomerUpdateRequest struct {
	Name           *string              `json:"name" validate:"omitempty,min=1,max=200"`
	AdditionalName *string              `json:"additional_name" validate:"omitempty,max=200"`
	Phone          *string              `json:"phone" validate:"omitempty,max=50"`
	Address        *string              `json:"address" validate:"omitempty,max=500"`
	Latitude       *decimal.NullDecimal `json:"latitude"`
	Longitude      *decimal.NullDecimal `json:"longitude"`
}

func (s *CustomerService) Create(req *CustomerCreateRequest) (*models.Customer, error) {
	customer := &models.Customer{
		Name:           req.Name,
		AdditionalName: req.AdditionalName,
		Phone:          req.Phone,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	return &customer, nil
}

func (s *CustomerService) List(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Customer{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(additional_name) LIKE LOWER(?) OR phone LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	var customers []models.Customer
	query = utils.ApplySort(query, params, []string{"name", "created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	result := utils.CreatePaginationResult(customers, total, params)
	return &result, nil
}

func (s *CustomerService) Update(id uuid.UUID, req *CustomerUpdateRequest) (*models.Customer, error) {
	customer, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.AdditionalName != nil {
		customer.AdditionalName = *req.AdditionalName
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Latitude != nil {
		customer.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		customer.Longitude = *req.Longitude
	}

	if err := s.db.Save(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

// Delete removes a customer unless sales reference them.
func (s *CustomerService) Delete(id uuid.UUID) error {
	customer, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var saleCount int64
	if err := s.db.Model(&models.Sale{}).Where("customer_id = ?", id).Count(&saleCount).Error; err != nil {
		return fmt.Errorf("failed to check customer references: %w", err)
	}
	if saleCount > 0 {
		return ErrCustomerInUse
	}

	if err := s.db.Delete(customer).Error; err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// MapData returns only the customers that carry coordinates, in the compact
// shape the map layer renders.
func (s *CustomerService) MapData() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("name asc").
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load customer map data: %w", err)
	}
	return customers, nil
}
