package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/watch"
)

// accountService handles account-related business logic.
type accountService struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, hub *watch.Hub) AccountServicer {
	return &accountService{db: db, hub: hub}
}

// CreateAccount creates a new account. The cached current balance starts at
// the initial balance; from then on only ledger events move it.
func (s *accountService) CreateAccount(name string, accountTypeID uint, initialBalance int64, color, icon string, bankID *string, includeInTotal bool) (*models.Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if accountTypeID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account type is required")
	}

	var typeCount int64
	if err := s.db.Model(&models.AccountType{}).Where("id = ?", accountTypeID).Count(&typeCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if typeCount == 0 {
		return nil, apperrors.ErrAccountTypeNotFound
	}

	account := &models.Account{
		Name:           strings.TrimSpace(name),
		AccountTypeID:  accountTypeID,
		InitialBalance: initialBalance,
		CurrentBalance: initialBalance,
		Color:          color,
		Icon:           icon,
		BankID:         bankID,
		IncludeInTotal: includeInTotal,
		Active:         true,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	s.hub.Notify(watch.TableAccounts)
	return account, nil
}

// GetAccountByID retrieves an active account with its type preloaded.
func (s *accountService) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.Preload("AccountType").
		Where("id = ? AND active = ?", id, true).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &account, nil
}

// ListAccounts retrieves all active accounts ordered by name.
func (s *accountService) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Preload("AccountType").
		Where("active = ?", true).
		Order("name").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return accounts, nil
}

// UpdateAccount updates account fields. Editing the initial balance or the
// account type never recomputes the cached current balance.
func (s *accountService) UpdateAccount(id uint, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if fields.Name != nil {
		if strings.TrimSpace(*fields.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
		}
		updates["name"] = strings.TrimSpace(*fields.Name)
	}
	if fields.AccountTypeID != nil {
		var typeCount int64
		if err := s.db.Model(&models.AccountType{}).Where("id = ?", *fields.AccountTypeID).Count(&typeCount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if typeCount == 0 {
			return nil, apperrors.ErrAccountTypeNotFound
		}
		updates["account_type_id"] = *fields.AccountTypeID
	}
	if fields.InitialBalance != nil {
		updates["initial_balance"] = *fields.InitialBalance
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.BankID != nil {
		if *fields.BankID == "" {
			updates["bank_id"] = nil
		} else {
			updates["bank_id"] = *fields.BankID
		}
	}
	if fields.IncludeInTotal != nil {
		updates["include_in_total"] = *fields.IncludeInTotal
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := s.db.Preload("AccountType").First(account, account.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		s.hub.Notify(watch.TableAccounts)
	}

	return account, nil
}

// ArchiveAccount soft-deletes an account. Its events and balance are kept;
// the account just stops showing up in listings and totals.
func (s *accountService) ArchiveAccount(id uint) error {
	result := s.db.Model(&models.Account{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	s.hub.Notify(watch.TableAccounts)
	return nil
}

// DeleteAccount hard-deletes an account by ID. The foreign key cascades the
// delete to the account's events at the store level.
func (s *accountService) DeleteAccount(id uint) error {
	result := s.db.Delete(&models.Account{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	s.hub.Notify(watch.TableAccounts, watch.TableEvents)
	return nil
}

// TotalBalance sums the cached balances of active accounts included in the
// total. Returns 0 when no account qualifies.
func (s *accountService) TotalBalance() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Account{}).
		Select("COALESCE(SUM(current_balance), 0)").
		Where("active = ? AND include_in_total = ?", true, true).
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}

// ApplyBalanceDelta adjusts an account's cached balance relative to its
// stored value. The relative SQL update keeps concurrent ledger mutations on
// the same account from losing each other's writes.
func (s *accountService) ApplyBalanceDelta(tx *gorm.DB, accountID uint, delta int64) error {
	if delta == 0 {
		return nil
	}
	result := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		UpdateColumn("current_balance", gorm.Expr("current_balance + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
