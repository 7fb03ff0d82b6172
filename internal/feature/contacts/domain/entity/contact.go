// Package entity defines the domain entities for the contacts feature.
package entity

import "time"

// Contact represents a personal contact record owned by a single user.
// All queries against contacts are scoped to the owning user.
type Contact struct {
	ID uint `gorm:"primaryKey"`

	// UserID is the owning user. Together with Email it forms the
	// uniqueness scope: one user cannot store the same address twice,
	// but two users may both know the same person.
	UserID uint `gorm:"not null;index;uniqueIndex:idx_contacts_owner_email"`

	FirstName string `gorm:"size:100;not null;index"`
	LastName  string `gorm:"size:100;not null;index"`
	Email     string `gorm:"size:255;not null;uniqueIndex:idx_contacts_owner_email"`
	Phone     string `gorm:"size:50"`

	// Birthday is optional; contacts without one are excluded from
	// upcoming-birthday queries.
	Birthday *time.Time

	// ExtraInfo holds free-form notes about the contact.
	ExtraInfo string `gorm:"size:1024"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
