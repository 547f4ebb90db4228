package services

import (
	"testing"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Coffee", "latte")
		testutil.AssertNoError(t, err)

		if cat.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if cat.Name != "Coffee" {
			t.Errorf("expected name Coffee, got %s", cat.Name)
		}
		if cat.MatchText != "latte" {
			t.Errorf("expected trigger latte, got %s", cat.MatchText)
		}
	})

	t.Run("trims_name_and_trigger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "  Taxi ", " uber ")
		testutil.AssertNoError(t, err)
		if cat.Name != "Taxi" || cat.MatchText != "uber" {
			t.Errorf("expected trimmed fields, got %q / %q", cat.Name, cat.MatchText)
		}
	})

	t.Run("duplicate_name_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Coffee", "latte")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "COFFEE", "espresso")
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateCategory.Code)
	})

	t.Run("duplicate_trigger_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Taxi", "Uber")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Rides", "UBER")
		testutil.AssertAppError(t, err, apperrors.ErrDuplicateCategory.Code)
	})

	t.Run("same_rule_different_users_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user1.ID, "Coffee", "latte")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user2.ID, "Coffee", "latte")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "   ", "latte")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput.Code)
	})

	t.Run("empty_trigger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Coffee", "  ")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput.Code)
	})

	t.Run("invalid_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory(0, "Coffee", "latte")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidUser.Code)
	})
}

func TestListCategories(t *testing.T) {
	t.Run("creation_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, "Coffee", "latte")
		testutil.CreateTestCategory(t, db, user.ID, "Taxi", "uber")
		testutil.CreateTestCategory(t, db, user.ID, "Food", "груша")

		got, err := svc.ListCategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(got) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(got))
		}
		for i, want := range []string{"Coffee", "Taxi", "Food"} {
			if got[i].Name != want {
				t.Errorf("position %d: expected %s, got %s", i, want, got[i].Name)
			}
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user1.ID, "Coffee", "latte")
		testutil.CreateTestCategory(t, db, user2.ID, "Taxi", "uber")

		got, err := svc.ListCategoryNames(user1.ID)
		testutil.AssertNoError(t, err)
		if len(got) != 1 || got[0] != "Coffee" {
			t.Errorf("expected [Coffee], got %v", got)
		}
	})
}

func TestFindMatch(t *testing.T) {
	t.Run("first_created_wins_on_multiple_matches", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, "Coffee", "latte")
		testutil.CreateTestCategory(t, db, user.ID, "Taxi", "uber")

		match, err := svc.FindMatch(user.ID, "had a latte and an uber")
		testutil.AssertNoError(t, err)
		if match == nil {
			t.Fatal("expected a match")
		}
		if match.Name != "Coffee" {
			t.Errorf("expected Coffee (first created), got %s", match.Name)
		}
	})

	t.Run("case_insensitive_containment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, "Taxi", "Uber")

		match, err := svc.FindMatch(user.ID, "поездка на UBER до дома")
		testutil.AssertNoError(t, err)
		if match == nil || match.Name != "Taxi" {
			t.Fatalf("expected Taxi match, got %v", match)
		}
	})

	t.Run("no_match", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user.ID, "Coffee", "latte")

		match, err := svc.FindMatch(user.ID, "no matching words")
		testutil.AssertNoError(t, err)
		if match != nil {
			t.Errorf("expected no match, got %s", match.Name)
		}
	})

	t.Run("no_rules", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		match, err := svc.FindMatch(user.ID, "anything at all")
		testutil.AssertNoError(t, err)
		if match != nil {
			t.Errorf("expected no match, got %s", match.Name)
		}
	})
}
