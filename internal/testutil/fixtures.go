package testutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"kopilka/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique Telegram ID.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{TelegramID: 100000 + nextID()}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a matching rule for the user. CreatedAt is set
// explicitly so that creation order is deterministic even within one tick of
// the database clock.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, name, matchText string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		MatchText: matchText,
		CreatedAt: time.Unix(1700000000+nextID(), 0).UTC(),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, amount string, category string, date time.Time) *models.Transaction {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	tx := &models.Transaction{
		UserID:   userID,
		Amount:   amt,
		Category: category,
		Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
