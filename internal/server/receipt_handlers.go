package server

import (
	"fmt"

	"rented/internal/middleware"
	"rented/internal/models"
	"rented/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReceipt handles GET /api/requests/:id/receipt, streaming the PDF.
func (s *Server) GetReceipt(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pdf, err := s.receiptService.Generate(c.Context(), requestID, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	middleware.ReceiptsGenerated.Inc()

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, service.ReceiptFilename(requestID)))
	return c.Send(pdf)
}
