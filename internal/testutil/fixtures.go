package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"minhasfinancas/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates an active user with the given email.
// The password is always "password123".
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         fmt.Sprintf("Test User %d", nextID()),
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccountType creates an account type.
func CreateTestAccountType(t *testing.T, db *gorm.DB) *models.AccountType {
	t.Helper()

	accountType := &models.AccountType{
		Name:   fmt.Sprintf("Test Type %d", nextID()),
		Active: true,
	}
	if err := db.Create(accountType).Error; err != nil {
		t.Fatalf("failed to create test account type: %v", err)
	}
	return accountType
}

// CreateTestAccount creates an active account with zero balances.
func CreateTestAccount(t *testing.T, db *gorm.DB, accountTypeID uint) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, accountTypeID, 0)
}

// CreateTestAccountWithBalance creates an active account whose initial and
// current balances both equal balance (in centavos).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, accountTypeID uint, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:           fmt.Sprintf("Test Account %d", nextID()),
		AccountTypeID:  accountTypeID,
		InitialBalance: balance,
		CurrentBalance: balance,
		IncludeInTotal: true,
		Active:         true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates an active category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Kind:   kind,
		Active: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestEvent inserts an effective event directly, bypassing the service
// layer. The account's cached balance is NOT adjusted; use the event service
// when the test needs the ledger invariant to hold.
func CreateTestEvent(t *testing.T, db *gorm.DB, accountID uint, kind models.EventKind, amount int64) *models.Event {
	t.Helper()

	event := &models.Event{
		Description: fmt.Sprintf("Test Event %d", nextID()),
		Amount:      amount,
		Kind:        kind,
		Date:        time.Now(),
		AccountID:   accountID,
		Effective:   true,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}
