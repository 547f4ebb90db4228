package services

import (
	"time"

	"github.com/shopspring/decimal"

	"kopilka/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	EnsureUser(telegramID int64) (*models.User, error)
	GetByTelegramID(telegramID int64) (*models.User, error)
}

// CategoryServicer defines the contract for category rules: creation with
// duplicate protection, stable-order listing, and substring matching.
type CategoryServicer interface {
	CreateCategory(userID uint, name, matchText string) (*models.Category, error)
	ListCategories(userID uint) ([]models.Category, error)
	ListCategoryNames(userID uint) ([]string, error)
	FindMatch(userID uint, text string) (*models.Category, error)
}

// TransactionInput holds the candidate fields for a new transaction before
// normalization. RawText is the original user utterance and is also the
// input to category rule matching.
type TransactionInput struct {
	UserID    uint
	Amount    decimal.Decimal
	Category  string
	RawText   string
	SpendDate *time.Time
}

// CategoryTotal is one row of the weekly aggregate.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// FinanceServicer defines the contract for the transaction ledger.
type FinanceServicer interface {
	AddTransaction(input TransactionInput) (*models.Transaction, error)
	GetWeekStats(userID uint, baseDate time.Time) ([]CategoryTotal, error)
	ListTransactions(userID uint, from, to *time.Time) ([]models.Transaction, error)
	DeleteTransaction(transactionID uint) error
}
