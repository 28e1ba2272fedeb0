// internal/services/region_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurgarden/ngms-backend/internal/models"
)

type RegionService struct {
	db *gorm.DB
}

func NewRegionService(db *gorm.DB) *RegionService {
	return &RegionService{db: db}
}

type RegionCreateRequest struct {
	Name      string              `json:"name" validate:"required,min=1,max=200"`
	Latitude  decimal.NullDecimal `json:"latitude"`
	Longitude decimal.NullDecimal `json:"longitude"`
	Polygon   models.Polygon      `json:"polygon_coordinates"`
	Status    string              `json:"status" validate:"omitempty,oneof=planned occupied active"`
}

type RegionUpdateRequest struct {
	Name      *string              `json:"name" validate:"omitempty,min=1,max=200"`
	Latitude  *decimal.NullDecimal `json:"latitude"`
	Longitude *decimal.NullDecimal `json:"longitude"`
	Polygon   *models.Polygon      `json:"polygon_coordinates"`
	Status    *string              `json:"status" validate:"omitempty,oneof=planned occupied active"`
}

// Create adds a region. Names are unique: the map layer keys territories by
// name.
func (s *RegionService) Create(req *RegionCreateRequest) (*models.Region, error) {
	var existing int64
	if err := s.db.Model(&models.Region{}).Where("name = ?", req.Name).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check region name: %w", err)
	}
	if existing > 0 {
		return nil, ErrRegionExists
	}

	region := &models.Region{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Polygon:   req.Polygon,
		Status:    models.RegionStatusPlanned,
	}
	if req.Status != "" {
		region.Status = models.RegionStatus(req.Status)
	}

	if err := s.db.Create(region).Error; err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}
	return region, nil
}

func (s *RegionService) GetByID(id uuid.UUID) (*models.Region, error) {
	var region models.Region
	if err := s.db.Preload("Shops").First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegionNotFound
		}
		return nil, fmt.Errorf("failed to load region: %w", err)
	}
	return &region, nil
}

func (s *RegionService) List(status string) ([]models.Region, error) {
	query := s.db.Model(&models.Region{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var regions []models.Region
	if err := query.Order("name asc").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	return regions, nil
}

func (s *RegionService) Update(id uuid.UUID, req *RegionUpdateRequest) (*models.Region, error) {
	region, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != region.Name {
		var existing int64
		if err := s.db.Model(&models.Region{}).
			Where("name = ? AND id <> ?", *req.Name, id).
			Count(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to check region name: %w", err)
		}
		if existing > 0 {
			return nil, ErrRegionExists
		}
		region.Name = *req.Name
	}
	if req.Latitude != nil {
		region.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		region.Longitude = *req.Longitude
	}
	if req.Polygon != nil {
		region.Polygon = *req.Polygon
	}
	if req.Status != nil {
		region.Status = models.RegionStatus(*req.Status)
	}

	if err := s.db.Save(region).Error; err != nil {
		return nil, fmt.Errorf("failed to update region: %w", err)
	}
	return region, nil
}

// Delete removes a region unless shops belong to it.
func (s *RegionService) Delete(id uuid.UUID) error {
	region, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var shopCount int64
	if err := s.db.Model(&models.Shop{}).Where("region_id = ?", id).Count(&shopCount).Error; err != nil {
		return fmt.Errorf("failed to check region shops: %w", err)
	}
	if shopCount > 0 {
		return ErrRegionInUse
	}

	if err := s.db.Delete(region).Error; err != nil {
		return fmt.Errorf("failed to delete region: %w", err)
	}
	return nil
}

// MapData returns every region with its polygon and shops, the payload the
// territory map renders in one request.
func (s *RegionService) MapData() ([]models.Region, error) {
	var regions []models.Region
	if err := s.db.Preload("Shops").Order("name asc").Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("failed to load region map data: %w", err)
	}
	return regions, nil
}

// Occupied lists the regions currently marked occupied or active, used by the
// expansion planner to avoid double-assigning territory.
func (s *RegionService) Occupied() ([]models.Region, error) {
	var regions []models.Region
	err := s.db.
		Where("status IN ?", []models.RegionStatus{models.RegionStatusOccupied, models.RegionStatusActive}).
		Order("name asc").
		Find(&regions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list occupied regions: %w", err)
	}
	return regions, nil
}
