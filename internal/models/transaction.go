package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single recorded spend. Category is free text, not
// a foreign key: the extraction may produce a label outside the user's rule
// set. Amount is fixed-point decimal with two fractional digits at rest.
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index:idx_transactions_user_date,priority:1" json:"user_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category  string          `gorm:"size:100;not null" json:"category"`
	RawText   *string         `gorm:"type:text" json:"raw_text,omitempty"`
	Date      time.Time       `gorm:"not null;index:idx_transactions_user_date,priority:2" json:"date"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}
