package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/models"
)

// financeService is the transaction ledger: it normalizes candidate fields,
// applies category rule overrides, persists, and computes weekly aggregates.
type financeService struct {
	db         *gorm.DB
	categories CategoryServicer
	now        func() time.Time
}

// NewFinanceService creates a new FinanceServicer.
func NewFinanceService(db *gorm.DB, categories CategoryServicer) FinanceServicer {
	return &financeService{db: db, categories: categories, now: time.Now}
}

// AddTransaction validates and persists a transaction candidate. When one of
// the user's rules matches the raw text, the rule's name overrides the
// extracted category: explicit rules take precedence over model inference.
// Validation failures abort before anything is written.
func (s *financeService) AddTransaction(input TransactionInput) (*models.Transaction, error) {
	if input.UserID == 0 {
		return nil, apperrors.ErrInvalidUser
	}

	amount, err := NormalizeAmount(input.Amount.String())
	if err != nil {
		return nil, err
	}
	category, err := NormalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	spendDate := NormalizeDate(input.SpendDate, s.now())

	if input.RawText != "" {
		match, err := s.categories.FindMatch(input.UserID, input.RawText)
		if err != nil {
			return nil, err
		}
		if match != nil {
			category = match.Name
		}
	}

	transaction := &models.Transaction{
		UserID:   input.UserID,
		Amount:   amount,
		Category: category,
		Date:     spendDate,
	}
	if input.RawText != "" {
		raw := input.RawText
		transaction.RawText = &raw
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return transaction, nil
}

// GetWeekStats aggregates the user's transactions over the 7-day inclusive
// window ending at baseDate, grouped by category and ordered by total
// descending.
func (s *financeService) GetWeekStats(userID uint, baseDate time.Time) ([]CategoryTotal, error) {
	if userID == 0 {
		return nil, apperrors.ErrInvalidUser
	}

	end := ToDate(baseDate)
	start := end.AddDate(0, 0, -6)

	totals := []CategoryTotal{}
	if err := s.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return totals, nil
}

// ListTransactions returns the user's transactions, optionally filtered by
// an inclusive date range, newest first.
func (s *financeService) ListTransactions(userID uint, from, to *time.Time) ([]models.Transaction, error) {
	if userID == 0 {
		return nil, apperrors.ErrInvalidUser
	}

	query := s.db.Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("date >= ?", ToDate(*from))
	}
	if to != nil {
		query = query.Where("date <= ?", ToDate(*to))
	}

	transactions := []models.Transaction{}
	if err := query.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return transactions, nil
}

// DeleteTransaction removes a transaction by ID. Administrative path only;
// the bot itself never deletes records.
func (s *financeService) DeleteTransaction(transactionID uint) error {
	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	if err := s.db.Delete(&transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}
