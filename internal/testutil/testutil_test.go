package testutil_test

import (
	"testing"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "categories", "transactions"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if !uuid.IsValid(user.ID) {
		t.Fatalf("user should have a valid UUID, got %q", user.ID)
	}

	category := testutil.CreateTestCategory(t, db, user.ID)
	if category.UserID != user.ID {
		t.Errorf("expected category owner %s, got %s", user.ID, category.UserID)
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, 500)
	if tx.Amount != 500 {
		t.Errorf("expected amount 500, got %d", tx.Amount)
	}
	if tx.Type != models.TransactionTypeExpense {
		t.Errorf("expected type expense, got %s", tx.Type)
	}
}

func TestAssertAppError(t *testing.T) {
	err := apperrors.Wrap(apperrors.ErrCategoryNotFound, nil)
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}
