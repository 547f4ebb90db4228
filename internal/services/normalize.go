package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "kopilka/internal/errors"
)

// NormalizeAmount parses a numeric string into a positive decimal rounded to
// two fractional digits (banker's rounding).
func NormalizeAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, apperrors.Wrap(apperrors.ErrInvalidAmount, err)
	}
	if d.Sign() <= 0 {
		return decimal.Decimal{}, apperrors.ErrInvalidAmount
	}
	return d.RoundBank(2), nil
}

// NormalizeCategory trims surrounding whitespace and rejects empty labels.
func NormalizeCategory(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.ErrEmptyCategory
	}
	return trimmed, nil
}

// NormalizeDate returns the given date truncated to midnight UTC, or today
// when none is given. Date defaults are resolved here, at write time.
func NormalizeDate(spendDate *time.Time, now time.Time) time.Time {
	t := now
	if spendDate != nil {
		t = *spendDate
	}
	return ToDate(t)
}

// ToDate truncates a timestamp to its calendar date in UTC.
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
