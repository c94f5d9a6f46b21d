package server

import (
	"rented/internal/models"
	"rented/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetListings handles GET /api/listings
func (s *Server) GetListings(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	listings, err := s.listingService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"listings": listings,
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// SearchListings handles GET /api/listings/search?q=...
func (s *Server) SearchListings(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	listings, err := s.listingService.Search(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"listings": listings,
		"query":    c.Query("q"),
		"limit":    p.Limit,
		"offset":   p.Offset,
	})
}

// GetListing handles GET /api/listings/:id
func (s *Server) GetListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, err := s.listingService.Get(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listing)
}

// GetMyListings handles GET /api/users/me/listings
func (s *Server) GetMyListings(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	listings, err := s.listingService.ListByOwner(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"listings": listings})
}

// CreateListing handles POST /api/listings
func (s *Server) CreateListing(c *fiber.Ctx) error {
	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		PricePerDay float64 `json:"price_per_day"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.Create(c.Context(), service.CreateListingInput{
		OwnerID:     currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// UpdateListing handles PUT /api/listings/:id
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		PricePerDay *float64 `json:"price_per_day"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listingService.Update(c.Context(), service.UpdateListingInput{
		ListingID:   id,
		CallerID:    currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		PricePerDay: req.PricePerDay,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(listing)
}

// UploadListingImage handles POST /api/listings/:id/image (multipart form, field "image")
func (s *Server) UploadListingImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	data, err := s.readUpload(c, "image")
	if err != nil {
		return models.RespondError(c, err)
	}

	name, err := s.storage.SaveImage(data)
	if err != nil {
		return models.RespondError(c, err)
	}

	listing, err := s.listingService.Update(c.Context(), service.UpdateListingInput{
		ListingID: id,
		CallerID:  currentUserID(c),
		ImageFile: &name,
	})
	if err != nil {
		// The upload is orphaned if the caller turned out not to own the
		// listing; clean it up.
		_ = s.storage.Remove(name)
		return models.RespondError(c, err)
	}
	return c.JSON(listing)
}

// DeleteListing handles DELETE /api/listings/:id and the admin alias.
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.listingService.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUpload handles GET /api/uploads/:file, serving stored images.
func (s *Server) GetUpload(c *fiber.Ctx) error {
	path, err := s.storage.Open(c.Params("file"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.SendFile(path)
}
