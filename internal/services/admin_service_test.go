package services

import (
	"testing"

	"clinfin/internal/models"
	"clinfin/internal/testutil"
)

func TestAdminService_CreateAdmin(t *testing.T) {
	t.Run("creates up to the maximum number of admins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		emails := []string{"first@clinic.test", "second@clinic.test", "third@clinic.test"}
		for _, email := range emails {
			admin, err := svc.CreateAdmin(email, "password123")
			testutil.AssertNoError(t, err)
			if admin.Email != email {
				t.Errorf("unexpected email: %q", admin.Email)
			}
		}

		_, err := svc.CreateAdmin("fourth@clinic.test", "password123")
		testutil.AssertAppError(t, err, "ADMIN_LIMIT_REACHED")

		admins, err := svc.ListAdmins()
		testutil.AssertNoError(t, err)
		if len(admins) != models.MaxAdmins {
			t.Fatalf("expected %d admins, got %d", models.MaxAdmins, len(admins))
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		_, err := svc.CreateAdmin("dup@clinic.test", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateAdmin("dup@clinic.test", "password123")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("hashes the password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		admin, err := svc.CreateAdmin("hash@clinic.test", "password123")
		testutil.AssertNoError(t, err)
		if admin.Password == "password123" {
			t.Error("password must be stored hashed")
		}
	})
}

func TestAdminService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAdminService(db)

	admin := testutil.CreateTestAdminWithEmail(t, db, "root@clinic.test")

	t.Run("logs in with valid credentials", func(t *testing.T) {
		got, err := svc.Login("root@clinic.test", "password123")
		testutil.AssertNoError(t, err)
		if got.ID != admin.ID {
			t.Errorf("unexpected admin: %+v", got)
		}
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@clinic.test", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Login("root@clinic.test", "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestAdminService_DeleteAdmin(t *testing.T) {
	t.Run("protects the first administrator", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		first := testutil.CreateTestAdmin(t, db)
		second := testutil.CreateTestAdmin(t, db)

		err := svc.DeleteAdmin(first.ID)
		testutil.AssertAppError(t, err, "PRIMARY_ADMIN_PROTECTED")

		testutil.AssertNoError(t, svc.DeleteAdmin(second.ID))

		admins, listErr := svc.ListAdmins()
		testutil.AssertNoError(t, listErr)
		if len(admins) != 1 || admins[0].ID != first.ID {
			t.Fatalf("expected only the first admin to remain, got %+v", admins)
		}
	})

	t.Run("still protects the first admin after others are recreated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		first := testutil.CreateTestAdmin(t, db)
		second := testutil.CreateTestAdmin(t, db)
		testutil.AssertNoError(t, svc.DeleteAdmin(second.ID))

		third := testutil.CreateTestAdmin(t, db)
		testutil.AssertNoError(t, svc.DeleteAdmin(third.ID))

		err := svc.DeleteAdmin(first.ID)
		testutil.AssertAppError(t, err, "PRIMARY_ADMIN_PROTECTED")
	})

	t.Run("returns not found for a missing id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAdminService(db)

		err := svc.DeleteAdmin(99999)
		testutil.AssertAppError(t, err, "ADMIN_NOT_FOUND")
	})
}
