package services

import (
	"testing"

	"minhasfinancas/internal/models"
	"minhasfinancas/internal/testutil"
	"minhasfinancas/internal/watch"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		catSvc := NewCategoryService(db, watch.NewHub())

		category, err := catSvc.CreateCategory("Transporte", models.CategoryKindDespesa, "", "")
		testutil.AssertNoError(t, err)

		if category.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if category.Icon == "" || category.Color == "" {
			t.Error("expected icon and color defaults to be applied")
		}
	})

	t.Run("invalid_kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		catSvc := NewCategoryService(db, watch.NewHub())

		_, err := catSvc.CreateCategory("Outros", models.CategoryKind("TRANSFER"), "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		catSvc := NewCategoryService(db, watch.NewHub())

		_, err := catSvc.CreateCategory("  ", models.CategoryKindReceita, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListCategoriesByKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	catSvc := NewCategoryService(db, watch.NewHub())

	testutil.CreateTestCategory(t, db, models.CategoryKindReceita)
	testutil.CreateTestCategory(t, db, models.CategoryKindDespesa)
	testutil.CreateTestCategory(t, db, models.CategoryKindDespesa)

	despesas, err := catSvc.ListCategoriesByKind(models.CategoryKindDespesa)
	testutil.AssertNoError(t, err)
	if len(despesas) != 2 {
		t.Errorf("expected 2 DESPESA categories, got %d", len(despesas))
	}
	for _, c := range despesas {
		if c.Kind != models.CategoryKindDespesa {
			t.Errorf("unexpected kind %s in filtered list", c.Kind)
		}
	}
}

func TestDeleteCategory(t *testing.T) {
	t.Run("events_keep_history_without_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		hub := watch.NewHub()
		acctSvc := NewAccountService(db, hub)
		evtSvc := NewEventService(db, acctSvc, hub)
		catSvc := NewCategoryService(db, hub)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, accountType.ID, 10000)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindDespesa)

		event, err := evtSvc.CreateEvent(EventInput{
			Description: "Padaria",
			Amount:      500,
			Kind:        models.EventKindDespesa,
			AccountID:   account.ID,
			CategoryID:  &category.ID,
			Effective:   true,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, catSvc.DeleteCategory(category.ID))

		survivor, err := evtSvc.GetEventByID(event.ID)
		testutil.AssertNoError(t, err)
		if survivor.CategoryID != nil {
			t.Error("deleting a category must leave its events with a NULL category")
		}

		// Balances never move on category deletion.
		updated, err := acctSvc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if updated.CurrentBalance != 9500 {
			t.Errorf("expected balance 9500, got %d", updated.CurrentBalance)
		}
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		catSvc := NewCategoryService(db, watch.NewHub())

		testutil.AssertAppError(t, catSvc.DeleteCategory(99999), "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("kind_is_immutable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		catSvc := NewCategoryService(db, watch.NewHub())
		category := testutil.CreateTestCategory(t, db, models.CategoryKindReceita)

		updated, err := catSvc.UpdateCategory(category.ID, "Renomeada", "star", "#FF0000", nil)
		testutil.AssertNoError(t, err)

		if updated.Name != "Renomeada" {
			t.Errorf("expected renamed category, got %q", updated.Name)
		}
		if updated.Kind != models.CategoryKindReceita {
			t.Errorf("kind must never change: got %s", updated.Kind)
		}
	})
}
