package models

import "time"

// RentRequestStatus defines lifecycle states for rent requests.
type RentRequestStatus string

const (
	// RentRequestStatusPending indicates the request is awaiting the owner's review.
	RentRequestStatusPending RentRequestStatus = "pending"
	// RentRequestStatusApproved indicates the owner accepted the request.
	RentRequestStatusApproved RentRequestStatus = "approved"
	// RentRequestStatusDeclined indicates the owner declined the request.
	RentRequestStatusDeclined RentRequestStatus = "declined"
)

// RentRequest is a renter's proposal to rent a listing for a number of days.
// A renter holds at most one request per listing; a listing carries at most
// one approved request at any time.
type RentRequest struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Days        int               `gorm:"not null" json:"days"`
	Description string            `gorm:"type:text" json:"description"`
	Status      RentRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ListingID   uint              `gorm:"not null;uniqueIndex:idx_rent_requests_listing_renter" json:"listing_id"`
	Listing     *Listing          `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	RenterID    uint              `gorm:"not null;uniqueIndex:idx_rent_requests_listing_renter" json:"renter_id"`
	Renter      *User             `gorm:"foreignKey:RenterID" json:"renter,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
