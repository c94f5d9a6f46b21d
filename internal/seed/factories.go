// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"rented/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:     gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:        gofakeit.Email(),
		Password:     string(hashedPassword),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

var listingItems = []string{
	"Mountain Bike", "Camping Tent", "DSLR Camera", "Power Drill", "Kayak",
	"Projector", "Pressure Washer", "Stand-up Paddleboard", "Party Speaker",
	"Snowboard", "Sewing Machine", "Telescope", "Folding Table Set",
	"Electric Scooter", "Chainsaw", "Carpet Cleaner", "Drone", "Ski Set",
	"Board Game Collection", "Ladder",
}

// CreateListing constructs and persists a sample listing owned by the user.
func (f *Factory) CreateListing(owner *models.User, overrides ...func(*models.Listing)) (*models.Listing, error) {
	item := listingItems[f.rand.Intn(len(listingItems))]
	listing := &models.Listing{
		Title:       fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), item),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		PricePerDay: float64(gofakeit.Number(5, 150)),
		ImageFile:   models.DefaultListingImage,
		OwnerID:     owner.ID,
		CreatedAt:   f.pastTime(60),
	}

	for _, override := range overrides {
		override(listing)
	}

	if err := f.db.Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// CreateRentRequest constructs and persists a request from renter on listing.
func (f *Factory) CreateRentRequest(listing *models.Listing, renter *models.User, overrides ...func(*models.RentRequest)) (*models.RentRequest, error) {
	request := &models.RentRequest{
		Days:        gofakeit.Number(1, 14),
		Description: gofakeit.Sentence(10),
		Status:      models.RentRequestStatusPending,
		ListingID:   listing.ID,
		RenterID:    renter.ID,
		CreatedAt:   f.pastTime(30),
	}

	for _, override := range overrides {
		override(request)
	}

	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// pastTime returns a timestamp spread over the last maxDays days so seeded
// data doesn't all share one creation instant.
func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	minsBack := f.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
