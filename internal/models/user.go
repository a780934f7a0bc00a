// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender values accepted for User.Gender.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
	// GenderAny is only valid for User.PreferredGender.
	GenderAny = "any"
)

// Intent describes what a user is looking for.
type Intent string

const (
	// IntentSeekingRoom marks a user looking for a room to move into.
	IntentSeekingRoom Intent = "seeking-room"
	// IntentSeekingRoommate marks a room provider looking for a roommate.
	IntentSeekingRoommate Intent = "seeking-roommate"
)

// Opposite returns the complementary intent. Candidates are always drawn
// from the opposite side of the marketplace.
func (i Intent) Opposite() Intent {
	if i == IntentSeekingRoom {
		return IntentSeekingRoommate
	}
	return IntentSeekingRoom
}

// Valid reports whether the intent is one of the two known values.
func (i Intent) Valid() bool {
	return i == IntentSeekingRoom || i == IntentSeekingRoommate
}

// User represents a user in the Flatly application.
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Email           string `gorm:"unique;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Name            string `gorm:"not null" json:"name"`
	Age             int    `json:"age"`
	City            string `gorm:"index" json:"city"`
	PhoneNumber     string `json:"phone_number"`
	Bio             string `json:"bio"`
	InstagramHandle string `json:"instagram_handle"`
	Gender          string `gorm:"type:varchar(10)" json:"gender"`
	PreferredGender string `gorm:"type:varchar(10);default:'any'" json:"preferred_gender"`
	Intent          Intent `gorm:"type:varchar(20);index" json:"intent"`

	// Questionnaire vectors. Empty until the corresponding questionnaire
	// has been submitted; each submission replaces the vector wholesale.
	SelfVector    Vector `gorm:"type:text" json:"self_vector"`
	DesiredVector Vector `gorm:"type:text" json:"desired_vector"`

	// IsProfileComplete is derived: true iff both vectors are non-empty.
	// Persisted so the candidate query can filter on it.
	IsProfileComplete bool `gorm:"index" json:"is_profile_complete"`

	LastActive time.Time      `json:"last_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// RecomputeProfileComplete refreshes the derived completeness flag.
func (u *User) RecomputeProfileComplete() {
	u.IsProfileComplete = len(u.SelfVector) > 0 && len(u.DesiredVector) > 0
}

// AcceptsGender reports whether a user's stated preference admits the
// given gender. An empty or "any" preference admits everyone.
func (u *User) AcceptsGender(gender string) bool {
	if u.PreferredGender == "" || u.PreferredGender == GenderAny {
		return true
	}
	return u.PreferredGender == gender
}
