package service

import (
	"context"

	"rented/internal/models"
	"rented/internal/repository"
	"rented/internal/validation"
)

// ListingService handles listing CRUD with ownership checks.
type ListingService struct {
	listingRepo repository.ListingRepository
	storage     *StorageService
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

// CreateListingInput is the input for creating a listing.
type CreateListingInput struct {
	OwnerID     uint
	Title       string
	Description string
	PricePerDay float64
	ImageFile   string
}

// UpdateListingInput is the input for updating a listing. Nil fields are left
// untouched.
type UpdateListingInput struct {
	ListingID   uint
	CallerID    uint
	Title       *string
	Description *string
	PricePerDay *float64
	ImageFile   *string
}

// NewListingService returns a new ListingService.
func NewListingService(
	listingRepo repository.ListingRepository,
	storage *StorageService,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		storage:     storage,
		isAdmin:     isAdmin,
	}
}

func (s *ListingService) canManage(ctx context.Context, listing *models.Listing, callerID uint) error {
	if listing.OwnerID == callerID {
		return nil
	}
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, callerID)
		if err != nil {
			return err
		}
		if admin {
			return nil
		}
	}
	return models.NewForbiddenError("You do not have permission to modify this listing")
}

// Create validates and stores a new listing.
func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (*models.Listing, error) {
	if err := validation.ValidateListingTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePrice(in.PricePerDay); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	image := in.ImageFile
	if image == "" {
		image = models.DefaultListingImage
	}

	listing := &models.Listing{
		Title:       in.Title,
		Description: in.Description,
		PricePerDay: in.PricePerDay,
		ImageFile:   image,
		OwnerID:     in.OwnerID,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, listing.ID)
}

// Get returns a single listing with its owner preloaded.
func (s *ListingService) Get(ctx context.Context, id uint) (*models.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

// List returns listings newest first.
func (s *ListingService) List(ctx context.Context, limit, offset int) ([]*models.Listing, error) {
	return s.listingRepo.List(ctx, limit, offset)
}

// Search returns listings whose title or description matches the query.
func (s *ListingService) Search(ctx context.Context, query string, limit, offset int) ([]*models.Listing, error) {
	if query == "" {
		return s.listingRepo.List(ctx, limit, offset)
	}
	return s.listingRepo.Search(ctx, query, limit, offset)
}

// ListByOwner returns a user's listings.
func (s *ListingService) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Listing, error) {
	return s.listingRepo.GetByOwnerID(ctx, ownerID, limit, offset)
}

// Update applies the non-nil fields of the input. Owner or admin only. When
// the image is replaced the previous upload is removed from disk.
func (s *ListingService) Update(ctx context.Context, in UpdateListingInput) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if err := s.canManage(ctx, listing, in.CallerID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateListingTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		listing.Title = *in.Title
	}
	if in.Description != nil {
		listing.Description = *in.Description
	}
	if in.PricePerDay != nil {
		if err := validation.ValidatePrice(*in.PricePerDay); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		listing.PricePerDay = *in.PricePerDay
	}

	var oldImage string
	if in.ImageFile != nil && *in.ImageFile != listing.ImageFile {
		oldImage = listing.ImageFile
		listing.ImageFile = *in.ImageFile
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	if oldImage != "" && s.storage != nil {
		_ = s.storage.Remove(oldImage)
	}
	return listing, nil
}

// Delete removes a listing and its requests. Owner or admin only.
func (s *ListingService) Delete(ctx context.Context, listingID, callerID uint) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if err := s.canManage(ctx, listing, callerID); err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}
	if s.storage != nil {
		_ = s.storage.Remove(listing.ImageFile)
	}
	return nil
}
