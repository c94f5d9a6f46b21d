package seed

import (
	"testing"

	"rented/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.RentRequest{}))
	return db
}

func TestSeed_ProducesConsistentData(t *testing.T) {
	db := newSeedTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Seed(Options{NumUsers: 8, NumListings: 20}))

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.Equal(t, int64(9), userCount, "8 users plus the admin account")

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin)

	var listingCount int64
	db.Model(&models.Listing{}).Count(&listingCount)
	assert.Equal(t, int64(20), listingCount)

	var requests []models.RentRequest
	require.NoError(t, db.Find(&requests).Error)

	approvedPerListing := map[uint]int{}
	seenPair := map[[2]uint]bool{}
	for _, r := range requests {
		var listing models.Listing
		require.NoError(t, db.First(&listing, r.ListingID).Error)
		assert.NotEqual(t, listing.OwnerID, r.RenterID, "no requests on own listings")

		pair := [2]uint{r.ListingID, r.RenterID}
		assert.False(t, seenPair[pair], "one request per renter per listing")
		seenPair[pair] = true

		if r.Status == models.RentRequestStatusApproved {
			approvedPerListing[r.ListingID]++
		}
	}
	for listingID, n := range approvedPerListing {
		assert.LessOrEqual(t, n, 1, "listing %d has multiple approvals", listingID)
	}
}

func TestSeed_CleanRemovesOldData(t *testing.T) {
	db := newSeedTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Seed(Options{NumUsers: 3, NumListings: 5}))
	require.NoError(t, s.Seed(Options{NumUsers: 3, NumListings: 5, ShouldClean: true}))

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.Equal(t, int64(4), userCount)
}

func TestFactory_CreateRentRequest(t *testing.T) {
	db := newSeedTestDB(t)
	f := NewFactory(db)

	owner, err := f.CreateUser()
	require.NoError(t, err)
	renter, err := f.CreateUser()
	require.NoError(t, err)

	listing, err := f.CreateListing(owner)
	require.NoError(t, err)
	assert.NotEmpty(t, listing.Title)
	assert.Positive(t, listing.PricePerDay)

	request, err := f.CreateRentRequest(listing, renter)
	require.NoError(t, err)
	assert.Equal(t, models.RentRequestStatusPending, request.Status)
	assert.Positive(t, request.Days)
}
