package services

import (
	"testing"

	"minhasfinancas/internal/models"
	"minhasfinancas/internal/testutil"
	"minhasfinancas/internal/watch"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		hub := watch.NewHub()
		acctSvc := NewAccountService(db, hub)
		accountType := testutil.CreateTestAccountType(t, db)

		bank := "nubank"
		account, err := acctSvc.CreateAccount("Conta Corrente", accountType.ID, 150000, "#8A05BE", "wallet", &bank, true)
		testutil.AssertNoError(t, err)

		if account.ID == 0 {
			t.Fatal("expected non-zero account ID")
		}
		if account.CurrentBalance != 150000 {
			t.Errorf("current balance should start at the initial balance: got %d", account.CurrentBalance)
		}
		if account.BankID == nil || *account.BankID != "nubank" {
			t.Error("expected bank ID to be set")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)

		_, err := acctSvc.CreateAccount("   ", accountType.ID, 0, "", "", nil, true)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_account_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())

		_, err := acctSvc.CreateAccount("Poupança", 99999, 0, "", "", nil, true)
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("initial_balance_edit_keeps_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, accountType.ID, 10000)

		newInitial := int64(99999)
		updated, err := acctSvc.UpdateAccount(account.ID, AccountUpdateFields{InitialBalance: &newInitial})
		testutil.AssertNoError(t, err)

		if updated.InitialBalance != 99999 {
			t.Errorf("expected initial balance 99999, got %d", updated.InitialBalance)
		}
		if updated.CurrentBalance != 10000 {
			t.Errorf("initial balance edits must not touch the current balance: got %d", updated.CurrentBalance)
		}
	})

	t.Run("clear_bank_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)

		bank := "itau"
		account, err := acctSvc.CreateAccount("Com banco", accountType.ID, 0, "", "", &bank, true)
		testutil.AssertNoError(t, err)

		empty := ""
		updated, err := acctSvc.UpdateAccount(account.ID, AccountUpdateFields{BankID: &empty})
		testutil.AssertNoError(t, err)

		if updated.BankID != nil {
			t.Errorf("expected bank ID cleared, got %q", *updated.BankID)
		}
	})

	t.Run("missing_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())

		name := "Ghost"
		_, err := acctSvc.UpdateAccount(99999, AccountUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestArchiveAccount(t *testing.T) {
	t.Run("hides_from_listing_and_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, accountType.ID, 5000)

		testutil.AssertNoError(t, acctSvc.ArchiveAccount(account.ID))

		_, err := acctSvc.GetAccountByID(account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		total, err := acctSvc.TotalBalance()
		testutil.AssertNoError(t, err)
		if total != 0 {
			t.Errorf("archived account must not count toward the total: got %d", total)
		}

		// The row itself survives for history.
		var count int64
		if err := db.Model(&models.Account{}).Where("id = ?", account.ID).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Error("archive must keep the account row")
		}
	})

	t.Run("already_archived", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccount(t, db, accountType.ID)

		testutil.AssertNoError(t, acctSvc.ArchiveAccount(account.ID))
		testutil.AssertAppError(t, acctSvc.ArchiveAccount(account.ID), "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("cascades_to_events", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		hub := watch.NewHub()
		acctSvc := NewAccountService(db, hub)
		evtSvc := NewEventService(db, acctSvc, hub)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccount(t, db, accountType.ID)

		event, err := evtSvc.CreateEvent(EventInput{
			Description: "Doomed",
			Amount:      1000,
			Kind:        models.EventKindReceita,
			AccountID:   account.ID,
			Effective:   true,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, acctSvc.DeleteAccount(account.ID))

		var count int64
		if err := db.Model(&models.Event{}).Where("id = ?", event.ID).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 0 {
			t.Error("deleting an account must remove its events")
		}
	})

	t.Run("missing_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())

		testutil.AssertAppError(t, acctSvc.DeleteAccount(99999), "ACCOUNT_NOT_FOUND")
	})
}

func TestTotalBalance(t *testing.T) {
	t.Run("empty_store_is_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())

		total, err := acctSvc.TotalBalance()
		testutil.AssertNoError(t, err)
		if total != 0 {
			t.Errorf("expected 0, got %d", total)
		}
	})

	t.Run("respects_include_in_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)

		testutil.CreateTestAccountWithBalance(t, db, accountType.ID, 3000)
		excluded, err := acctSvc.CreateAccount("Cofre", accountType.ID, 7000, "", "", nil, false)
		testutil.AssertNoError(t, err)
		if excluded.IncludeInTotal {
			t.Fatal("fixture should be excluded from the total")
		}

		total, err := acctSvc.TotalBalance()
		testutil.AssertNoError(t, err)
		if total != 3000 {
			t.Errorf("expected 3000, got %d", total)
		}
	})
}
