package models

import "time"

// User represents a bot user, identified by their Telegram account.
// Users are created on first contact and never deleted by the core.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TelegramID   int64     `gorm:"uniqueIndex;not null" json:"telegram_id"`
	RegisteredAt time.Time `gorm:"autoCreateTime;not null" json:"registered_at"`
	Settings     *string   `gorm:"type:text" json:"settings,omitempty"`

	// Relationships
	Categories   []Category    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}
