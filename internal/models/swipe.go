package models

import (
	"time"
)

// SwipeAction is the decision a user makes on a candidate.
type SwipeAction string

const (
	// SwipeLike records interest in the target user.
	SwipeLike SwipeAction = "like"
	// SwipeDislike records rejection of the target user.
	SwipeDislike SwipeAction = "dislike"
)

// Valid reports whether the action is one of the two known values.
func (a SwipeAction) Valid() bool {
	return a == SwipeLike || a == SwipeDislike
}

// Swipe records one user's decision on another. Decisions are final:
// rows are only ever inserted, and the unique index rejects a second
// decision for the same ordered (actor, target) pair.
type Swipe struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	ActorID   uint        `gorm:"not null;uniqueIndex:idx_actor_target" json:"actor_id"`
	TargetID  uint        `gorm:"not null;uniqueIndex:idx_actor_target" json:"target_id"`
	Action    SwipeAction `gorm:"type:varchar(10);not null" json:"action"`
	CreatedAt time.Time   `json:"created_at"`

	// Relationships
	Actor  User `gorm:"foreignKey:ActorID" json:"-"`
	Target User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// TableName specifies the table name for GORM
func (Swipe) TableName() string {
	return "swipes"
}
