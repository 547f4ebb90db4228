package services

import (
	"testing"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/testutil"
)

func TestEnsureUser(t *testing.T) {
	t.Run("creates_on_first_contact", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.EnsureUser(424242)
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected persisted user ID")
		}
		if user.TelegramID != 424242 {
			t.Errorf("expected telegram ID 424242, got %d", user.TelegramID)
		}
	})

	t.Run("returns_existing_on_repeat_contact", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		first, err := svc.EnsureUser(424242)
		testutil.AssertNoError(t, err)

		second, err := svc.EnsureUser(424242)
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected same user, got %d and %d", first.ID, second.ID)
		}

		var count int64
		db.Table("users").Count(&count)
		if count != 1 {
			t.Errorf("expected 1 user row, got %d", count)
		}
	})
}

func TestGetByTelegramID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetByTelegramID(5)
		testutil.AssertAppError(t, err, apperrors.ErrNotFound.Code)
	})
}
