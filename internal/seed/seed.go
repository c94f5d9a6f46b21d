package seed

import (
	"fmt"
	"log"

	"rented/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumListings int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Delete order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.RentRequest{},
		&models.Listing{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Seed populates the database with users, listings and a realistic spread of
// rent requests, including one admin account (admin / password123).
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users and %d listings...", opts.NumUsers, opts.NumListings)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	admin := &models.User{
		Username: "admin",
		Email:    "admin@rented.local",
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	if len(users) < 2 {
		return fmt.Errorf("need at least 2 users to seed listings and requests")
	}

	listings := make([]*models.Listing, 0, opts.NumListings)
	for i := 0; i < opts.NumListings; i++ {
		owner := users[s.factory.rand.Intn(len(users))]
		listing, err := s.factory.CreateListing(owner)
		if err != nil {
			return fmt.Errorf("creating listing %d: %w", i, err)
		}
		listings = append(listings, listing)
	}

	// Roughly half the listings get requests; a third of those get resolved.
	requested := 0
	for _, listing := range listings {
		if s.factory.rand.Intn(2) == 0 {
			continue
		}
		numRequests := 1 + s.factory.rand.Intn(3)
		var onListing []*models.RentRequest
		for i := 0; i < numRequests; i++ {
			renter := users[s.factory.rand.Intn(len(users))]
			if renter.ID == listing.OwnerID {
				continue
			}
			if hasRequest(onListing, renter.ID) {
				continue
			}
			request, err := s.factory.CreateRentRequest(listing, renter)
			if err != nil {
				return fmt.Errorf("creating rent request: %w", err)
			}
			onListing = append(onListing, request)
			requested++
		}
		if len(onListing) > 0 && s.factory.rand.Intn(3) == 0 {
			if err := s.resolve(onListing); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d users, %d listings, %d requests", len(users)+1, len(listings), requested)
	log.Println("All test users have the password: password123")
	return nil
}

// resolve approves the first request on a listing and declines the rest,
// matching what the approval endpoint would have produced.
func (s *Seeder) resolve(requests []*models.RentRequest) error {
	for i, request := range requests {
		status := models.RentRequestStatusDeclined
		if i == 0 {
			status = models.RentRequestStatusApproved
		}
		if err := s.db.Model(request).Update("status", status).Error; err != nil {
			return fmt.Errorf("resolving request %d: %w", request.ID, err)
		}
	}
	return nil
}

func hasRequest(requests []*models.RentRequest, renterID uint) bool {
	for _, r := range requests {
		if r.RenterID == renterID {
			return true
		}
	}
	return false
}
