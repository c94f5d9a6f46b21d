// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Rented application.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	ProfileImage string    `gorm:"size:255" json:"profile_image"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Listings     []Listing `gorm:"foreignKey:OwnerID" json:"listings,omitempty"`
}
