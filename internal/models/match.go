package models

import (
	"time"
)

// Match is one side of a mutual match. A confirmed pair is stored as two
// rows, one per participant, both carrying the same score. The unique
// index on (user_id, counterpart_id) makes a concurrent second creation
// of the same side a no-op instead of a duplicate entry.
type Match struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_counterpart" json:"user_id"`
	CounterpartID uint      `gorm:"not null;uniqueIndex:idx_user_counterpart" json:"counterpart_id"`
	MatchScore    float64   `gorm:"not null" json:"match_score"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	User        User `gorm:"foreignKey:UserID" json:"-"`
	Counterpart User `gorm:"foreignKey:CounterpartID" json:"counterpart,omitempty"`
}

// TableName specifies the table name for GORM
func (Match) TableName() string {
	return "matches"
}
