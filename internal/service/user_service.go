package service

import (
	"context"

	"rented/internal/models"
	"rented/internal/repository"
	"rented/internal/validation"
)

// UserService handles profile management and the admin user surface.
type UserService struct {
	userRepo repository.UserRepository
	storage  *StorageService
}

// UpdateProfileInput is the input for updating the caller's profile. Nil
// fields are left untouched.
type UpdateProfileInput struct {
	UserID       uint
	Username     *string
	Email        *string
	ProfileImage *string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{userRepo: userRepo, storage: storage}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

// IsAdmin reports whether the user exists and has the admin flag. It is
// injected into other services as their authorization hook.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin, nil
}

// UpdateProfile applies the non-nil fields, enforcing username and email
// uniqueness against other accounts.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewConflictError("Username is already taken")
		}
		user.Username = *in.Username
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewConflictError("Email is already in use")
		}
		user.Email = *in.Email
	}

	var oldImage string
	if in.ProfileImage != nil && *in.ProfileImage != user.ProfileImage {
		oldImage = user.ProfileImage
		user.ProfileImage = *in.ProfileImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if oldImage != "" && s.storage != nil {
		_ = s.storage.Remove(oldImage)
	}
	return user, nil
}

// Delete removes the caller's account with all their listings and requests.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// List returns users for the admin surface.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SetAdmin flips a user's admin flag.
func (s *UserService) SetAdmin(ctx context.Context, userID uint, admin bool) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = admin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
