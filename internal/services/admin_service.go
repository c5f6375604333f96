package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/models"
)

// adminService handles administrator account management.
type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB) AdminServicer {
	return &adminService{db: db}
}

// CreateAdmin creates a new administrator. The collection is capped at
// models.MaxAdmins concurrent accounts.
func (s *adminService) CreateAdmin(email, password string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count >= models.MaxAdmins {
		return nil, apperrors.ErrAdminLimitReached
	}

	var existing int64
	if err := s.db.Model(&models.Admin{}).Where("email = ?", strings.ToLower(email)).Count(&existing).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	admin := &models.Admin{
		Email:    strings.ToLower(email),
		Password: string(hashed),
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return admin, nil
}

// Login authenticates an administrator.
func (s *adminService) Login(email, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &admin, nil
}

// ListAdmins retrieves all administrators in creation order.
func (s *adminService) ListAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.db.Order("id ASC").Find(&admins).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return admins, nil
}

// DeleteAdmin deletes an administrator. The admin with the lowest id is
// the primary administrator and can never be deleted, so at least one
// account always retains access. The rule is tied to the stable id, not to
// list position, which the store does not guarantee.
func (s *adminService) DeleteAdmin(id uint) error {
	var admin models.Admin
	if err := s.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAdminNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var minID uint
	if err := s.db.Model(&models.Admin{}).Select("MIN(id)").Scan(&minID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if admin.ID == minID {
		return apperrors.ErrPrimaryAdminProtected
	}

	if err := s.db.Delete(&admin).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
