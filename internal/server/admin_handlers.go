package server

import (
	"rented/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/admin/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.userService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// PromoteToAdmin handles POST /api/admin/users/:id/promote-admin
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(c.Context(), id, true)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/admin/users/:id. Listings and requests of
// the removed account go with it.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if id == currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("You cannot delete your own account from the admin panel"))
	}

	if err := s.userService.Delete(c.Context(), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DemoteFromAdmin handles POST /api/admin/users/:id/demote-admin
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if id == currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("You cannot demote yourself"))
	}

	user, err := s.userService.SetAdmin(c.Context(), id, false)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}
