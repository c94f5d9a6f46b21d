package service

import (
	"context"
	"testing"

	"rented/internal/cache"
	"rented/internal/models"
	"rented/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.RentRequest{}))
	return NewUserService(repository.NewUserRepository(db), nil), db
}

func TestUserService_Get(t *testing.T) {
	svc, db := newUserService(t)
	user := createUser(t, db, "alice")

	got, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.Get(context.Background(), 999)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")

	username := "bob"
	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: alice.ID, Username: &username})
	assertAppErrorCode(t, err, "CONFLICT")

	email := "bob@example.com"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: alice.ID, Email: &email})
	assertAppErrorCode(t, err, "CONFLICT")

	username = "alice2"
	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: alice.ID, Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email, "email untouched")

	bad := "x"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: alice.ID, Username: &bad})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestUserService_UpdateProfile_CachedReadKeepsLoginWorking(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!Passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: "alice", Email: "alice@example.com", Password: string(hash)}
	require.NoError(t, db.Create(user).Error)

	// Warm the cache, then update the profile from the cached copy.
	_, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)

	username := "alice2"
	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	var fromDB models.User
	require.NoError(t, db.First(&fromDB, user.ID).Error)
	assert.NoError(t,
		bcrypt.CompareHashAndPassword([]byte(fromDB.Password), []byte("Str0ng!Passw0rd")),
		"password must still verify after a profile update served from cache")
}

func TestUserService_Delete_Cascades(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// Alice owns a listing with bob's request on it, and has her own request
	// on bob's listing. All of it must go with her account.
	aliceListing := createListing(t, db, alice, 10)
	bobListing := createListing(t, db, bob, 20)
	require.NoError(t, db.Create(&models.RentRequest{
		Days: 1, Status: models.RentRequestStatusPending,
		ListingID: aliceListing.ID, RenterID: bob.ID,
	}).Error)
	require.NoError(t, db.Create(&models.RentRequest{
		Days: 1, Status: models.RentRequestStatusPending,
		ListingID: bobListing.ID, RenterID: alice.ID,
	}).Error)

	require.NoError(t, svc.Delete(ctx, alice.ID))

	var users, listings, requests int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Listing{}).Count(&listings)
	db.Model(&models.RentRequest{}).Count(&requests)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), listings, "bob's listing survives")
	assert.Zero(t, requests)
}

func TestUserService_SetAdmin(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	user := createUser(t, db, "alice")

	admin, err := svc.IsAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, admin)

	_, err = svc.SetAdmin(ctx, user.ID, true)
	require.NoError(t, err)

	admin, err = svc.IsAdmin(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, admin)
}
