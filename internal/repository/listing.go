package repository

import (
	"context"
	"errors"

	"rented/internal/cache"
	"rented/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	GetByOwnerID(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Listing, error)
	List(ctx context.Context, limit, offset int) ([]*models.Listing, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id uint) error
}

// listingRepository implements ListingRepository
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	err := r.db.WithContext(ctx).Create(listing).Error
	if err == nil {
		cache.InvalidateListingsList(ctx)
	}
	return err
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := cache.Aside(ctx, cache.ListingKey(id), &listing, cache.ListingTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Owner").
			First(&listing, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Listing", id)
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) GetByOwnerID(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Listing, error) {
	var listings []*models.Listing
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	return listings, err
}

// listingsFirstPageLimit is the browse page size worth caching. Only the
// first default-size page is hot enough to matter; deeper pages and custom
// limits go to the database.
const listingsFirstPageLimit = 20

func (r *listingRepository) List(ctx context.Context, limit, offset int) ([]*models.Listing, error) {
	cacheable := offset == 0 && limit == listingsFirstPageLimit

	var listings []*models.Listing
	if cacheable {
		if found, err := cache.GetJSON(ctx, cache.ListingsListKey, &listings); err == nil && found {
			return listings, nil
		}
	}

	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}

	if cacheable {
		_ = cache.SetJSON(ctx, cache.ListingsListKey, listings, cache.ListingListTTL)
	}
	return listings, nil
}

func (r *listingRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Listing, error) {
	var listings []*models.Listing
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("title LIKE ? OR description LIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	return listings, err
}

// Update writes the listing row only. Associations are omitted: the model may
// have come out of the cache, where the owner's password hash is stripped by
// its `json:"-"` tag, and must never be written back to the users table.
func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(listing).Error; err != nil {
		return err
	}
	cache.InvalidateListing(ctx, listing.ID)
	return nil
}

// Delete removes the listing and cascades to its rent requests in one transaction.
func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).
			Delete(&models.RentRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateListing(ctx, id)
	return nil
}
