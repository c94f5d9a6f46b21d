// Package service provides application business logic (listings, rentals, users).
package service

import (
	"context"
	"errors"
	"time"

	"rented/internal/models"
	"rented/internal/repository"

	"gorm.io/gorm"
)

// RentalService owns the rent request lifecycle: create, edit, withdraw,
// approve and decline. Approval is transactional so the "decline all siblings"
// step never interleaves with a concurrent approval on the same listing.
type RentalService struct {
	rentRepo    repository.RentRequestRepository
	listingRepo repository.ListingRepository
	db          *gorm.DB
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

// CreateRentRequestInput is the input for creating a rent request.
type CreateRentRequestInput struct {
	ListingID   uint
	RenterID    uint
	Days        int
	Description string
}

// EditRentRequestInput is the input for editing an existing rent request.
type EditRentRequestInput struct {
	RequestID   uint
	CallerID    uint
	Days        int
	Description string
}

// NewRentalService returns a new RentalService.
func NewRentalService(
	rentRepo repository.RentRequestRepository,
	listingRepo repository.ListingRepository,
	db *gorm.DB,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *RentalService {
	return &RentalService{
		rentRepo:    rentRepo,
		listingRepo: listingRepo,
		db:          db,
		isAdmin:     isAdmin,
	}
}

// normalizeDays coerces the requested rental length to a positive day count.
// Missing or non-positive values fall back to a single day instead of
// rejecting the request; the fallback is a deliberate policy, applied here so
// it lives in exactly one place.
func normalizeDays(days int) int {
	if days <= 0 {
		return 1
	}
	return days
}

// Create files a new pending request against a listing. The precondition
// checks and the insert share one transaction so the already-rented check
// cannot interleave with a concurrent approval, and the composite unique
// index on (listing_id, renter_id) backstops the one-request-per-renter rule.
func (s *RentalService) Create(ctx context.Context, in CreateRentRequestInput) (*models.RentRequest, error) {
	request := &models.RentRequest{
		Days:        normalizeDays(in.Days),
		Description: in.Description,
		Status:      models.RentRequestStatusPending,
		ListingID:   in.ListingID,
		RenterID:    in.RenterID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, in.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Listing", in.ListingID)
			}
			return err
		}

		if listing.OwnerID == in.RenterID {
			return models.NewConflictError("You cannot request your own listing")
		}

		var approved int64
		if err := tx.Model(&models.RentRequest{}).
			Where("listing_id = ? AND status = ?", in.ListingID, models.RentRequestStatusApproved).
			Count(&approved).Error; err != nil {
			return err
		}
		if approved > 0 {
			return models.NewConflictError("This listing is already rented")
		}

		var existing int64
		if err := tx.Model(&models.RentRequest{}).
			Where("listing_id = ? AND renter_id = ?", in.ListingID, in.RenterID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return models.NewConflictError("You already have a request for this listing")
		}

		if err := tx.Create(request).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.NewConflictError("You already have a request for this listing")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.rentRepo.GetByID(ctx, request.ID)
}

// Edit updates days and description and unconditionally resets the request to
// pending, whatever state it was in before.
func (s *RentalService) Edit(ctx context.Context, in EditRentRequestInput) (*models.RentRequest, error) {
	request, err := s.rentRepo.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	if request.RenterID != in.CallerID {
		return nil, models.NewForbiddenError("You can only edit your own requests")
	}

	request.Days = normalizeDays(in.Days)
	request.Description = in.Description
	request.Status = models.RentRequestStatusPending

	if err := s.rentRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Withdraw deletes the caller's own request.
func (s *RentalService) Withdraw(ctx context.Context, requestID, callerID uint) error {
	request, err := s.rentRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.RenterID != callerID {
		return models.NewForbiddenError("You can only withdraw your own requests")
	}

	return s.rentRepo.Delete(ctx, requestID)
}

// Approve marks the request approved and declines every sibling request on
// the same listing in one transaction. If a different request on the listing
// is already approved the call fails with a conflict; approval never silently
// demotes an earlier approval.
func (s *RentalService) Approve(ctx context.Context, requestID, callerID uint) (*models.RentRequest, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.RentRequest
		if err := tx.Preload("Listing").First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Rent request", requestID)
			}
			return err
		}

		if request.Listing == nil || request.Listing.OwnerID != callerID {
			return models.NewForbiddenError("Only the listing owner can approve requests")
		}

		var approved int64
		if err := tx.Model(&models.RentRequest{}).
			Where("listing_id = ? AND status = ? AND id <> ?",
				request.ListingID, models.RentRequestStatusApproved, request.ID).
			Count(&approved).Error; err != nil {
			return err
		}
		if approved > 0 {
			return models.NewConflictError("This listing already has an approved request")
		}

		now := time.Now()
		if err := tx.Model(&models.RentRequest{}).
			Where("id = ?", request.ID).
			Updates(map[string]any{
				"status":     models.RentRequestStatusApproved,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.RentRequest{}).
			Where("listing_id = ? AND id <> ?", request.ListingID, request.ID).
			Updates(map[string]any{
				"status":     models.RentRequestStatusDeclined,
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.rentRepo.GetByID(ctx, requestID)
}

// Decline marks the request declined. Owner only.
func (s *RentalService) Decline(ctx context.Context, requestID, callerID uint) (*models.RentRequest, error) {
	request, err := s.rentRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Listing == nil || request.Listing.OwnerID != callerID {
		return nil, models.NewForbiddenError("Only the listing owner can decline requests")
	}

	request.Status = models.RentRequestStatusDeclined
	if err := s.rentRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListForListing returns all requests on a listing for its owner (or an admin).
func (s *RentalService) ListForListing(ctx context.Context, listingID, callerID uint) ([]*models.RentRequest, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.OwnerID != callerID {
		admin := false
		if s.isAdmin != nil {
			admin, err = s.isAdmin(ctx, callerID)
			if err != nil {
				return nil, err
			}
		}
		if !admin {
			return nil, models.NewForbiddenError("Only the listing owner can view its requests")
		}
	}

	return s.rentRepo.ListByListing(ctx, listingID)
}

// ListMine returns the caller's own requests, newest first.
func (s *RentalService) ListMine(ctx context.Context, renterID uint) ([]*models.RentRequest, error) {
	return s.rentRepo.ListByRenter(ctx, renterID)
}
