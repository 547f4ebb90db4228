package models

import "time"

// Category is a user-defined matching rule: when MatchText occurs as a
// substring of an incoming message, the transaction is filed under Name
// regardless of what the model extracted. Rules are immutable once created;
// when several rules match, the first-created one wins.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	MatchText string    `gorm:"size:255;not null" json:"match_text"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
