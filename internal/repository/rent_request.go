package repository

import (
	"context"
	"errors"

	"rented/internal/models"

	"gorm.io/gorm"
)

// RentRequestRepository defines the interface for rent request data operations
type RentRequestRepository interface {
	Create(ctx context.Context, request *models.RentRequest) error
	GetByID(ctx context.Context, id uint) (*models.RentRequest, error)
	GetByListingAndRenter(ctx context.Context, listingID, renterID uint) (*models.RentRequest, error)
	ListByListing(ctx context.Context, listingID uint) ([]*models.RentRequest, error)
	ListByRenter(ctx context.Context, renterID uint) ([]*models.RentRequest, error)
	CountApproved(ctx context.Context, listingID uint, excludeID uint) (int64, error)
	Update(ctx context.Context, request *models.RentRequest) error
	Delete(ctx context.Context, id uint) error
}

// rentRequestRepository implements RentRequestRepository
type rentRequestRepository struct {
	db *gorm.DB
}

// NewRentRequestRepository creates a new rent request repository
func NewRentRequestRepository(db *gorm.DB) RentRequestRepository {
	return &rentRequestRepository{db: db}
}

func (r *rentRequestRepository) Create(ctx context.Context, request *models.RentRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *rentRequestRepository) GetByID(ctx context.Context, id uint) (*models.RentRequest, error) {
	var request models.RentRequest
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Owner").
		Preload("Renter").
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rent request", id)
		}
		return nil, err
	}
	return &request, nil
}

func (r *rentRequestRepository) GetByListingAndRenter(ctx context.Context, listingID, renterID uint) (*models.RentRequest, error) {
	var request models.RentRequest
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND renter_id = ?", listingID, renterID).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *rentRequestRepository) ListByListing(ctx context.Context, listingID uint) ([]*models.RentRequest, error) {
	var requests []*models.RentRequest
	err := r.db.WithContext(ctx).
		Preload("Renter").
		Where("listing_id = ?", listingID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *rentRequestRepository) ListByRenter(ctx context.Context, renterID uint) ([]*models.RentRequest, error) {
	var requests []*models.RentRequest
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Owner").
		Where("renter_id = ?", renterID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// CountApproved counts approved requests on a listing, optionally excluding one
// request ID (pass 0 to count all).
func (r *rentRequestRepository) CountApproved(ctx context.Context, listingID uint, excludeID uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.RentRequest{}).
		Where("listing_id = ? AND status = ?", listingID, models.RentRequestStatusApproved)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *rentRequestRepository) Update(ctx context.Context, request *models.RentRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *rentRequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RentRequest{}, id).Error
}
