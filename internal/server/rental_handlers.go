package server

import (
	"rented/internal/middleware"
	"rented/internal/models"
	"rented/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateRentRequest handles POST /api/listings/:id/requests
func (s *Server) CreateRentRequest(c *fiber.Ctx) error {
	listingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Days        int    `json:"days"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.rentalService.Create(c.Context(), service.CreateRentRequestInput{
		ListingID:   listingID,
		RenterID:    currentUserID(c),
		Days:        req.Days,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	middleware.RentRequestTransitions.WithLabelValues("created").Inc()
	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetListingRequests handles GET /api/listings/:id/requests (owner or admin)
func (s *Server) GetListingRequests(c *fiber.Ctx) error {
	listingID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	requests, err := s.rentalService.ListForListing(c.Context(), listingID, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// GetMyRequests handles GET /api/requests/mine
func (s *Server) GetMyRequests(c *fiber.Ctx) error {
	requests, err := s.rentalService.ListMine(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// EditRentRequest handles PUT /api/requests/:id
func (s *Server) EditRentRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Days        int    `json:"days"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.rentalService.Edit(c.Context(), service.EditRentRequestInput{
		RequestID:   requestID,
		CallerID:    currentUserID(c),
		Days:        req.Days,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	middleware.RentRequestTransitions.WithLabelValues("edited").Inc()
	return c.JSON(request)
}

// WithdrawRentRequest handles DELETE /api/requests/:id
func (s *Server) WithdrawRentRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.rentalService.Withdraw(c.Context(), requestID, currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}

	middleware.RentRequestTransitions.WithLabelValues("withdrawn").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

// ApproveRentRequest handles POST /api/requests/:id/approve
func (s *Server) ApproveRentRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.rentalService.Approve(c.Context(), requestID, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	middleware.RentRequestTransitions.WithLabelValues("approved").Inc()
	return c.JSON(request)
}

// DeclineRentRequest handles POST /api/requests/:id/decline
func (s *Server) DeclineRentRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	request, err := s.rentalService.Decline(c.Context(), requestID, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	middleware.RentRequestTransitions.WithLabelValues("declined").Inc()
	return c.JSON(request)
}
