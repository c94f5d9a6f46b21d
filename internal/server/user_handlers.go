package server

import (
	"io"

	"rented/internal/models"
	"rented/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.Get(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id. Only public fields are exposed.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.Get(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"profile_image": user.ProfileImage,
		"created_at":    user.CreatedAt,
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// UploadProfileImage handles POST /api/users/me/image (multipart form, field "image")
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	data, err := s.readUpload(c, "image")
	if err != nil {
		return models.RespondError(c, err)
	}

	name, err := s.storage.SaveImage(data)
	if err != nil {
		return models.RespondError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:       currentUserID(c),
		ProfileImage: &name,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me. Listings and requests go with it.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.Delete(c.Context(), currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// readUpload extracts the named multipart file as bytes.
func (s *Server) readUpload(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, models.NewValidationError("An uploaded file is required in field '" + field + "'")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return data, nil
}
