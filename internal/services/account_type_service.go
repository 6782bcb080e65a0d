package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/watch"
)

// accountTypeService manages the account-type lookup table.
type accountTypeService struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewAccountTypeService creates a new AccountTypeServicer.
func NewAccountTypeService(db *gorm.DB, hub *watch.Hub) AccountTypeServicer {
	return &accountTypeService{db: db, hub: hub}
}

// ListAccountTypes retrieves all account types ordered by name.
func (s *accountTypeService) ListAccountTypes() ([]models.AccountType, error) {
	var types []models.AccountType
	if err := s.db.Order("name").Find(&types).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return types, nil
}

// GetAccountTypeByID retrieves an account type by ID.
func (s *accountTypeService) GetAccountTypeByID(id uint) (*models.AccountType, error) {
	var accountType models.AccountType
	if err := s.db.First(&accountType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountTypeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &accountType, nil
}

// CreateAccountType adds a user-defined account type.
func (s *accountTypeService) CreateAccountType(name, description string) (*models.AccountType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type name is required")
	}

	accountType := &models.AccountType{
		Name:        strings.TrimSpace(name),
		Description: description,
		Active:      true,
	}
	if err := s.db.Create(accountType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	s.hub.Notify(watch.TableAccountTypes)
	return accountType, nil
}

// UpdateAccountType updates an account type's fields.
func (s *accountTypeService) UpdateAccountType(id uint, name, description string, active *bool) (*models.AccountType, error) {
	accountType, err := s.GetAccountTypeByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if strings.TrimSpace(name) != "" {
		updates["name"] = strings.TrimSpace(name)
	}
	if description != "" {
		updates["description"] = description
	}
	if active != nil {
		updates["active"] = *active
	}

	if len(updates) > 0 {
		if err := s.db.Model(accountType).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		s.hub.Notify(watch.TableAccountTypes)
	}

	return accountType, nil
}

// DeleteAccountType removes an account type. Types referenced by any
// account (active or archived) cannot be removed; the check mirrors the
// RESTRICT foreign key so callers get a conflict error instead of a raw
// constraint violation.
func (s *accountTypeService) DeleteAccountType(id uint) error {
	var inUse int64
	if err := s.db.Model(&models.Account{}).Where("account_type_id = ?", id).Count(&inUse).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if inUse > 0 {
		return apperrors.ErrAccountTypeInUse
	}

	result := s.db.Delete(&models.AccountType{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountTypeNotFound
	}
	s.hub.Notify(watch.TableAccountTypes)
	return nil
}
