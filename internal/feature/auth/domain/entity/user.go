// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Marketplace roles. Admin accounts are provisioned manually and can never
// be created through signup.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
	RoleAdmin  = "admin"
)

// User represents a registered marketplace user.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Role is the marketplace role: farmer, buyer or admin.
	Role string `gorm:"size:16;not null"`

	// Region is the user's home region, used as a browse default.
	Region string `gorm:"size:64"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
