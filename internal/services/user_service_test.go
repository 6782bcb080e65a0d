package services

import (
	"testing"

	"minhasfinancas/internal/testutil"
	"minhasfinancas/internal/watch"
)

func TestCreateUser(t *testing.T) {
	t.Run("first_user_is_admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		first, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)
		if !first.IsAdmin {
			t.Error("the first user must be the admin")
		}

		second, err := userSvc.CreateUser("João", "joao@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)
		if second.IsAdmin {
			t.Error("later users must not be admins")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		_, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)

		_, err = userSvc.CreateUser("Outra Maria", "maria@example.com", "outrasenha", false, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("email_is_case_sensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		_, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)

		_, err = userSvc.CreateUser("Maria Caps", "MARIA@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("deactivated_email_can_be_reused", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		user, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, userSvc.DeactivateUser(user.ID))

		_, err = userSvc.CreateUser("Maria de novo", "maria@example.com", "novasenha1", false, nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		_, err := userSvc.CreateUser("", "a@b.com", "x", false, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = userSvc.CreateUser("Nome", "", "x", false, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = userSvc.CreateUser("Nome", "a@b.com", "", false, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid_credentials_stamp_last_access", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		created, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)
		if created.LastAccess != nil {
			t.Fatal("new users should have no last access")
		}

		_, err = userSvc.Authenticate("maria@example.com", "segredo123")
		testutil.AssertNoError(t, err)

		reloaded, err := userSvc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if reloaded.LastAccess == nil {
			t.Error("authentication must stamp last access")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		_, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)

		_, err = userSvc.Authenticate("maria@example.com", "errada")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_same_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		// Unknown email and wrong password are indistinguishable to callers.
		_, err := userSvc.Authenticate("ninguem@example.com", "qualquer")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("deactivated_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		user, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, userSvc.DeactivateUser(user.ID))

		_, err = userSvc.Authenticate("maria@example.com", "segredo123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		user, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)

		useBio := true
		_, err = userSvc.UpdateProfile(user.ID, UserUpdateFields{UseBiometric: &useBio})
		testutil.AssertNoError(t, err)

		reloaded, err := userSvc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if !reloaded.UseBiometric {
			t.Error("expected biometric preference enabled")
		}
		if reloaded.Name != "Maria" {
			t.Errorf("untouched fields must survive: got %q", reloaded.Name)
		}
	})

	t.Run("clear_photo", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		photo := "/storage/photos/maria.jpg"
		user, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, &photo)
		testutil.AssertNoError(t, err)

		empty := ""
		_, err = userSvc.UpdateProfile(user.ID, UserUpdateFields{PhotoPath: &empty})
		testutil.AssertNoError(t, err)

		reloaded, err := userSvc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if reloaded.PhotoPath != nil {
			t.Errorf("expected photo cleared, got %q", *reloaded.PhotoPath)
		}
	})

	t.Run("blank_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db, watch.NewHub())

		user, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
		testutil.AssertNoError(t, err)

		blank := "   "
		_, err = userSvc.UpdateProfile(user.ID, UserUpdateFields{Name: &blank})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCountActiveUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	userSvc := NewUserService(db, watch.NewHub())

	count, err := userSvc.CountActiveUsers()
	testutil.AssertNoError(t, err)
	if count != 0 {
		t.Fatalf("expected 0 users, got %d", count)
	}

	user, err := userSvc.CreateUser("Maria", "maria@example.com", "segredo123", false, nil)
	testutil.AssertNoError(t, err)

	count, err = userSvc.CountActiveUsers()
	testutil.AssertNoError(t, err)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}

	testutil.AssertNoError(t, userSvc.DeactivateUser(user.ID))

	count, err = userSvc.CountActiveUsers()
	testutil.AssertNoError(t, err)
	if count != 0 {
		t.Fatalf("expected 0 users after deactivation, got %d", count)
	}
}
