// internal/services/shop_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/models"
)

type ShopService struct {
	db *gorm.DB
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{db: db}
}

type ShopCreateRequest struct {
	Name      string              `json:"name" validate:"required,min=1,max=200"`
	RegionID  uuid.UUID           `json:"region_id" validate:"required"`
	Phone     string              `json:"phone" validate:"omitempty,max=50"`
	Latitude  decimal.NullDecimal `json:"latitude"`
	Longitude decimal.NullDecimal `json:"longitude"`
	Size      string              `json:"size" validate:"omitempty,oneof=small medium large"`
	Status    string              `json:"status" validate:"omitempty,oneof=active inactive"`
}

type ShopUpdateRequest struct {
	Name      *string              `json:"name" validate:"omitempty,min=1,max=200"`
	RegionID  *uuid.UUID           `json:"region_id"`
	Phone     *string              `json:"phone" validate:"omitempty,max=50"`
	Latitude  *decimal.NullDecimal `json:"latitude"`
	Longitude *decimal.NullDecimal `json:"longitude"`
	Size      *string              `json:"size" validate:"omitempty,oneof=small medium large"`
	Status    *string              `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (s *ShopService) Create(req *ShopCreateRequest) (*models.Shop, error) {
	var region models.Region
	if err := s.db.First(&region, "id = ?", req.RegionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to load region: %w", err)
	}

	shop := &models.Shop{
		Name:      req.Name,
		RegionID:  req.RegionID,
		Phone:     req.Phone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Size:      models.ShopSizeMedium,
		Status:    models.ShopStatusActive,
	}
	if req.Size != "" {
		shop.Size = models.ShopSize(req.Size)
	}
	if req.Status != "" {
		shop.Status = models.ShopStatus(req.Status)
	}

	if err := s.db.Create(shop).Error; err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	shop.Region = &region
	return shop, nil
}

func (s *ShopService) GetByID(id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	err := s.db.Preload("Region").Preload("Products").First(&shop, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}
	return &shop, nil
}

func (s *ShopService) List(regionID *uuid.UUID, status string) ([]models.Shop, error) {
	query := s.db.Model(&models.Shop{})
	if regionID != nil {
		query = query.Where("region_id = ?", *regionID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var shops []models.Shop
	if err := query.Preload("Region").Order("name asc").Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	return shops, nil
}

func (s *ShopService) Update(id uuid.UUID, req *ShopUpdateRequest) (*models.Shop, error) {
	shop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.RegionID != nil {
		var region models.Region
		if err := s.db.First(&region, "id = ?", *req.RegionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRegionNotFound
			}
			return nil, fmt.Errorf("failed to load region: %w", err)
		}
		shop.RegionID = *req.RegionID
		shop.Region = &region
	}
	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Latitude != nil {
		shop.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		shop.Longitude = *req.Longitude
	}
	if req.Size != nil {
		shop.Size = models.ShopSize(*req.Size)
	}
	if req.Status != nil {
		shop.Status = models.ShopStatus(*req.Status)
	}

	if err := s.db.Save(shop).Error; err != nil {
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}
	return shop, nil
}

func (s *ShopService) Delete(id uuid.UUID) error {
	shop, err := s.GetByID(id)
	if err != nil {
		return err
	}

	// Detach the assortment first so the join table stays clean.
	if err := s.db.Model(shop).Association("Products").Clear(); err != nil {
		return fmt.Errorf("failed to clear shop assortment: %w", err)
	}

	if err := s.db.Delete(shop).Error; err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}
	return nil
}

// SetAssortment replaces the shop's carried products with the given set.
func (s *ShopService) SetAssortment(id uuid.UUID, productIDs []uuid.UUID) (*models.Shop, error) {
	shop, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if len(productIDs) > 0 {
		if err := s.db.Find(&products, "id IN ?", productIDs).Error; err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		if len(products) != len(productIDs) {
			return nil, ErrProductNotFound
		}
	}

	if err := s.db.Model(shop).Association("Products").Replace(products); err != nil {
		return nil, fmt.Errorf("failed to set shop assortment: %w", err)
	}
	shop.Products = products
	return shop, nil
}

// MapData returns the shops that carry coordinates, with their regions.
func (s *ShopService) MapData() ([]models.Shop, error) {
	var shops []models.Shop
	err := s.db.Preload("Region").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("name asc").
		Find(&shops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load shop map data: %w", err)
	}
	return shops, nil
}
