package services

import (
	"testing"

	"minhasfinancas/internal/testutil"
	"minhasfinancas/internal/watch"
)

func TestCreateAccountType(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		typeSvc := NewAccountTypeService(db, watch.NewHub())

		accountType, err := typeSvc.CreateAccountType("Carteira", "Dinheiro em espécie")
		testutil.AssertNoError(t, err)

		if accountType.ID == 0 {
			t.Fatal("expected non-zero account type ID")
		}
		if !accountType.Active {
			t.Error("new account types should be active")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		typeSvc := NewAccountTypeService(db, watch.NewHub())

		_, err := typeSvc.CreateAccountType("  ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteAccountType(t *testing.T) {
	t.Run("unused_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		typeSvc := NewAccountTypeService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)

		testutil.AssertNoError(t, typeSvc.DeleteAccountType(accountType.ID))

		_, err := typeSvc.GetAccountTypeByID(accountType.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
	})

	t.Run("type_in_use", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		typeSvc := NewAccountTypeService(db, watch.NewHub())
		accountType := testutil.CreateTestAccountType(t, db)
		testutil.CreateTestAccount(t, db, accountType.ID)

		testutil.AssertAppError(t, typeSvc.DeleteAccountType(accountType.ID), "ACCOUNT_TYPE_IN_USE")
	})

	t.Run("type_used_by_archived_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		hub := watch.NewHub()
		typeSvc := NewAccountTypeService(db, hub)
		acctSvc := NewAccountService(db, hub)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccount(t, db, accountType.ID)

		testutil.AssertNoError(t, acctSvc.ArchiveAccount(account.ID))

		// Archived accounts still reference the type.
		testutil.AssertAppError(t, typeSvc.DeleteAccountType(accountType.ID), "ACCOUNT_TYPE_IN_USE")
	})

	t.Run("missing_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		typeSvc := NewAccountTypeService(db, watch.NewHub())

		testutil.AssertAppError(t, typeSvc.DeleteAccountType(99999), "ACCOUNT_TYPE_NOT_FOUND")
	})
}

func TestUpdateAccountType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	typeSvc := NewAccountTypeService(db, watch.NewHub())
	accountType := testutil.CreateTestAccountType(t, db)

	inactive := false
	updated, err := typeSvc.UpdateAccountType(accountType.ID, "Investimentos", "Corretoras e fundos", &inactive)
	testutil.AssertNoError(t, err)

	if updated.Name != "Investimentos" {
		t.Errorf("expected renamed type, got %q", updated.Name)
	}
	if updated.Active {
		t.Error("expected type to be deactivated")
	}
}
