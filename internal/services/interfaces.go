package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"minhasfinancas/internal/models"
	"minhasfinancas/internal/pagination"
)

// UserServicer defines the contract for user management and the
// authentication gate.
type UserServicer interface {
	CreateUser(name, email, password string, useBiometric bool, photoPath *string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers() ([]models.User, error)
	CountActiveUsers() (int64, error)
	Authenticate(email, password string) (*models.User, error)
	UpdateProfile(id uint, fields UserUpdateFields) (*models.User, error)
	DeactivateUser(id uint) error
	TouchLastAccess(id uint) error
	HashPassword(password string) (string, error)
	VerifyPassword(user *models.User, password string) bool
}

// UserUpdateFields holds optional profile fields; nil means unchanged.
type UserUpdateFields struct {
	Name         *string
	UseBiometric *bool
	PhotoPath    *string
}

// AccountTypeServicer defines the contract for the account-type lookup.
type AccountTypeServicer interface {
	ListAccountTypes() ([]models.AccountType, error)
	GetAccountTypeByID(id uint) (*models.AccountType, error)
	CreateAccountType(name, description string) (*models.AccountType, error)
	UpdateAccountType(id uint, name, description string, active *bool) (*models.AccountType, error)
	DeleteAccountType(id uint) error
}

// AccountUpdateFields holds optional account fields; nil means unchanged.
// InitialBalance edits never rewrite CurrentBalance: the cached balance only
// moves through ledger events. An empty BankID clears the bank reference.
type AccountUpdateFields struct {
	Name           *string
	AccountTypeID  *uint
	InitialBalance *int64
	Color          *string
	Icon           *string
	BankID         *string
	IncludeInTotal *bool
}

// AccountServicer defines the contract for account management.
type AccountServicer interface {
	CreateAccount(name string, accountTypeID uint, initialBalance int64, color, icon string, bankID *string, includeInTotal bool) (*models.Account, error)
	GetAccountByID(id uint) (*models.Account, error)
	ListAccounts() ([]models.Account, error)
	UpdateAccount(id uint, fields AccountUpdateFields) (*models.Account, error)
	ArchiveAccount(id uint) error
	DeleteAccount(id uint) error
	TotalBalance() (int64, error)
	// ApplyBalanceDelta adjusts an account's cached balance with a relative
	// update inside the caller's transaction. Only the event service calls
	// this; nothing else may write CurrentBalance.
	ApplyBalanceDelta(tx *gorm.DB, accountID uint, delta int64) error
}

// CategoryServicer defines the contract for category management.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	ListCategoriesByKind(kind models.CategoryKind) ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	CreateCategory(name string, kind models.CategoryKind, icon, color string) (*models.Category, error)
	UpdateCategory(id uint, name, icon, color string, active *bool) (*models.Category, error)
	DeleteCategory(id uint) error
}

// EventInput carries the caller-supplied fields of a ledger event. Amount
// is centavos and must be positive; the kind carries the sign.
type EventInput struct {
	Description string
	Amount      int64
	Kind        models.EventKind
	Date        time.Time
	AccountID   uint
	CategoryID  *uint
	Note        string
	Effective   bool
}

// EventFilter holds optional filter parameters for listing events.
type EventFilter struct {
	From       *time.Time
	To         *time.Time
	Kind       *models.EventKind
	AccountID  *uint
	CategoryID *uint
	Effective  *bool
}

// EventServicer is the ledger consistency engine: every mutation keeps each
// account's cached balance equal to its initial balance plus the sum of
// signed amounts of its effective events.
type EventServicer interface {
	CreateEvent(input EventInput) (*models.Event, error)
	GetEventByID(id uint) (*models.Event, error)
	ListEvents(page pagination.PageRequest, filter EventFilter) (*pagination.PageResponse[models.Event], error)
	UpdateEvent(id uint, input EventInput) (*models.Event, error)
	DeleteEvent(id uint) error
	SetEventEffective(id uint, effective bool) (*models.Event, error)
	SumPeriod(kind models.EventKind, start, end time.Time) (int64, error)
}

// MonthSummary aggregates one calendar month for the dashboard.
type MonthSummary struct {
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	Income       int64      `json:"income"`
	Expense      int64      `json:"expense"`
	Net          int64      `json:"net"`
	TotalBalance int64      `json:"total_balance"`
}

// SummaryServicer produces dashboard aggregates, both one-shot and as live
// streams that re-emit whenever an underlying row changes.
type SummaryServicer interface {
	TotalBalance() (int64, error)
	MonthSummary(year int, month time.Month, loc *time.Location) (*MonthSummary, error)
	WatchTotalBalance(ctx context.Context) <-chan int64
	WatchMonthSummary(ctx context.Context, year int, month time.Month, loc *time.Location) <-chan MonthSummary
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, changes map[string]any)
}
