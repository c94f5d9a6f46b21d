package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"rented/internal/models"
	"rented/internal/repository"

	"github.com/go-pdf/fpdf"
)

// ReceiptService renders PDF receipts for approved rent requests. Receipts
// are generated on demand rather than stored; the request row is the source
// of truth and regeneration is cheap.
type ReceiptService struct {
	rentRepo repository.RentRequestRepository
}

// NewReceiptService returns a new ReceiptService.
func NewReceiptService(rentRepo repository.RentRequestRepository) *ReceiptService {
	return &ReceiptService{rentRepo: rentRepo}
}

// ReceiptTotal computes the total price for a rental.
func ReceiptTotal(pricePerDay float64, days int) float64 {
	return pricePerDay * float64(days)
}

// ReceiptFilename is the suggested download name for a request's receipt.
func ReceiptFilename(requestID uint) string {
	return fmt.Sprintf("receipt_%d.pdf", requestID)
}

// Generate renders the receipt for a request as PDF bytes. Only the renter or
// the listing owner may fetch it, and only once the request is approved.
func (s *ReceiptService) Generate(ctx context.Context, requestID, callerID uint) ([]byte, error) {
	request, err := s.rentRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Listing == nil {
		return nil, models.NewInternalError(fmt.Errorf("request %d has no listing loaded", requestID))
	}
	if request.RenterID != callerID && request.Listing.OwnerID != callerID {
		return nil, models.NewForbiddenError("Only the renter or the listing owner can view this receipt")
	}
	if request.Status != models.RentRequestStatusApproved {
		return nil, models.NewNotReadyError("Receipt is only available once the request is approved")
	}

	return renderReceipt(request)
}

func renderReceipt(request *models.RentRequest) ([]byte, error) {
	listing := request.Listing
	total := ReceiptTotal(listing.PricePerDay, request.Days)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Rental Receipt #%d", request.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Rental Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, fmt.Sprintf("Receipt #%d - issued %s", request.ID,
		time.Now().Format("January 2, 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetTextColor(0, 0, 0)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Item", listing.Title)
	if listing.Owner != nil {
		row("Owner", listing.Owner.Username)
	}
	if request.Renter != nil {
		row("Renter", request.Renter.Username)
	}
	row("Price per day", fmt.Sprintf("$%.2f", listing.PricePerDay))
	row("Days", fmt.Sprintf("%d", request.Days))
	row("Approved on", request.UpdatedAt.Format("January 2, 2006"))

	pdf.Ln(4)
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(50, 10, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("$%.2f", total), "", 1, "L", false, 0, "")

	if request.Description != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(110, 110, 110)
		pdf.MultiCell(0, 5, "Note: "+request.Description, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("rendering receipt: %w", err))
	}
	return buf.Bytes(), nil
}
