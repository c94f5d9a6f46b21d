package models

import "time"

// DefaultListingImage is the placeholder image assigned to listings created
// without an upload.
const DefaultListingImage = "default_listing.png"

// Listing is an item offered for rent by a user.
type Listing struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Title       string        `gorm:"size:150;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	PricePerDay float64       `gorm:"not null" json:"price_per_day"`
	ImageFile   string        `gorm:"size:255;not null;default:'default_listing.png'" json:"image_file"`
	OwnerID     uint          `gorm:"not null;index" json:"owner_id"`
	Owner       *User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Requests    []RentRequest `gorm:"foreignKey:ListingID" json:"requests,omitempty"`
}
