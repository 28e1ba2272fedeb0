// internal/services/region_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nurgarden/ngms-backend/internal/models"
)

type RegionServiceTestSuite struct {
	suite.Suite
	service *RegionService
	shops   *ShopService
}

func (s *RegionServiceTestSuite) SetupTest() {
	db := openTestDB(s.T())
	s.service = NewRegionService(db)
	s.shops = NewShopService(db)
}

func (s *RegionServiceTestSuite) TestCreateRejectsDuplicateName() {
	_, err := s.service.Create(&RegionCreateRequest{Name: "East Side"})
	s.Require().NoError(err)

	_, err = s.service.Create(&RegionCreateRequest{Name: "East Side"})
	s.ErrorIs(err, ErrRegionExists)
}

func (s *RegionServiceTestSuite) TestUpdateRejectsNameCollision() {
	_, err := s.service.Create(&RegionCreateRequest{Name: "East Side"})
	s.Require().NoError(err)
	west, err := s.service.Create(&RegionCreateRequest{Name: "West Side"})
	s.Require().NoError(err)

	name := "East Side"
	_, err = s.service.Update(west.ID, &RegionUpdateRequest{Name: &name})
	s.ErrorIs(err, ErrRegionExists)

	// Saving a region under its own name is fine.
	same := "West Side"
	_, err = s.service.Update(west.ID, &RegionUpdateRequest{Name: &same})
	s.NoError(err)
}

func (s *RegionServiceTestSuite) TestDeleteRestrictedWhenShopsExist() {
	region, err := s.service.Create(&RegionCreateRequest{Name: "South Side"})
	s.Require().NoError(err)

	_, err = s.shops.Create(&ShopCreateRequest{Name: "Corner Shop", RegionID: region.ID})
	s.Require().NoError(err)

	s.ErrorIs(s.service.Delete(region.ID), ErrRegionInUse)
}

func (s *RegionServiceTestSuite) TestPolygonRoundTrip() {
	created, err := s.service.Create(&RegionCreateRequest{
		Name:    "Polygon Zone",
		Polygon: models.Polygon{{69.24, 41.31}, {69.30, 41.31}, {69.27, 41.36}},
	})
	s.Require().NoError(err)

	reloaded, err := s.service.GetByID(created.ID)
	s.Require().NoError(err)
	s.Require().Len(reloaded.Polygon, 3)
	s.Equal(69.24, reloaded.Polygon[0][0])
}

func (s *RegionServiceTestSuite) TestOccupiedFiltersStatus() {
	_, err := s.service.Create(&RegionCreateRequest{Name: "Planned Area", Status: "planned"})
	s.Require().NoError(err)
	_, err = s.service.Create(&RegionCreateRequest{Name: "Taken Area", Status: "occupied"})
	s.Require().NoError(err)
	_, err = s.service.Create(&RegionCreateRequest{Name: "Live Area", Status: "active"})
	s.Require().NoError(err)

	occupied, err := s.service.Occupied()
	s.Require().NoError(err)
	s.Len(occupied, 2)
}

func TestRegionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegionServiceTestSuite))
}
