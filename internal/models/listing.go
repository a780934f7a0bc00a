package models

import (
	"time"

	"gorm.io/gorm"
)

// ListingStatus is the lifecycle state of a room listing.
type ListingStatus string

const (
	// ListingStatusActive means the listing is visible and open.
	ListingStatusActive ListingStatus = "active"
	// ListingStatusInactive means the owner has paused the listing.
	ListingStatusInactive ListingStatus = "inactive"
	// ListingStatusRented means the room has been taken.
	ListingStatusRented ListingStatus = "rented"
)

// ReplacementStatus tracks a replacement listing's deadline lifecycle.
type ReplacementStatus string

const (
	// ReplacementPending means a deadline has not been set yet.
	ReplacementPending ReplacementStatus = "pending"
	// ReplacementActive means the replacement search is running.
	ReplacementActive ReplacementStatus = "active"
	// ReplacementExtended means the owner extended the deadline.
	ReplacementExtended ReplacementStatus = "extended"
	// ReplacementFulfilled means a replacement was found in time.
	ReplacementFulfilled ReplacementStatus = "fulfilled"
	// ReplacementExpired means the deadline passed unfilled.
	ReplacementExpired ReplacementStatus = "expired"
)

// Listing represents a room listing posted by a room provider. The
// matching core only consumes its priority signal: an active listing with
// IsReplacementListing set and an active replacement search boosts its
// owner in candidate rankings.
type Listing struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	OwnerID     uint          `gorm:"not null;index" json:"owner_id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	RoomType    string        `gorm:"type:varchar(20)" json:"room_type"`
	Rent        int           `json:"rent"`
	City        string        `gorm:"index" json:"city"`
	Area        string        `json:"area"`
	Amenities   string        `json:"amenities"`
	Status      ListingStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	IsReplacementListing bool              `gorm:"index" json:"is_replacement_listing"`
	ReplacementDeadline  *time.Time        `json:"replacement_deadline,omitempty"`
	ReplacementStatus    ReplacementStatus `gorm:"type:varchar(20);default:'pending'" json:"replacement_status"`
	ReplacementNotified  bool              `json:"replacement_notified"`

	Views     int            `json:"views"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// TableName specifies the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// IsPrioritized reports whether this listing grants its owner priority
// placement in candidate rankings.
func (l *Listing) IsPrioritized() bool {
	return l.Status == ListingStatusActive &&
		l.IsReplacementListing &&
		l.ReplacementStatus == ReplacementActive
}
