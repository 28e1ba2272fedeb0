// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nurgarden/ngms-backend/internal/models"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	service *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	db := openTestDB(s.T())
	s.service = NewAuthService(db, 1, 24)

	user := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Role:     models.UserRoleAdmin,
	}
	s.Require().NoError(user.SetPassword("correct horse"))
	s.Require().NoError(db.Create(user).Error)
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	result, err := s.service.Login(&LoginRequest{Username: "admin", Password: "correct horse"})
	s.Require().NoError(err)

	s.NotEmpty(result.Token)
	s.NotEmpty(result.RefreshToken)
	s.Equal("admin", result.User.Username)

	claims, err := utils.ValidateJWT(result.Token)
	s.Require().NoError(err)
	s.Equal("admin", claims.Username)
	s.Equal("admin", claims.Role)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := s.service.Login(&LoginRequest{Username: "admin", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginUnknownUser() {
	_, err := s.service.Login(&LoginRequest{Username: "nobody", Password: "whatever"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRefreshToken() {
	login, err := s.service.Login(&LoginRequest{Username: "admin", Password: "correct horse"})
	s.Require().NoError(err)

	refreshed, err := s.service.RefreshToken(login.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(refreshed.Token)
	s.Equal("admin", refreshed.User.Username)
}

func (s *AuthServiceTestSuite) TestRefreshRejectsGarbage() {
	_, err := s.service.RefreshToken("not-a-token")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
