package server

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"rented/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createListingHTTP(t *testing.T, app *fiber.App, token string) models.Listing {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/listings", token, map[string]any{
		"title":         "Pressure Washer",
		"description":   "2000 PSI, includes hose",
		"price_per_day": 20,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var listing models.Listing
	decodeBody(t, resp, &listing)
	return listing
}

func createRequestHTTP(t *testing.T, app *fiber.App, token string, listingID uint, days int) models.RentRequest {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost,
		fiberPath("/api/listings/%d/requests", listingID), token, map[string]any{
			"days":        days,
			"description": "need it for the driveway",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var request models.RentRequest
	decodeBody(t, resp, &request)
	return request
}

func fiberPath(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func TestRentRequestLifecycleHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	renterToken, renterID := signupUser(t, app, "renter")

	listing := createListingHTTP(t, app, ownerToken)
	request := createRequestHTTP(t, app, renterToken, listing.ID, 3)
	assert.Equal(t, models.RentRequestStatusPending, request.Status)
	assert.Equal(t, renterID, request.RenterID)

	// Receipt is not available while pending.
	resp := doJSON(t, app, http.MethodGet,
		fiberPath("/api/requests/%d/receipt", request.ID), renterToken, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Renter cannot approve their own request.
	resp = doJSON(t, app, http.MethodPost,
		fiberPath("/api/requests/%d/approve", request.ID), renterToken, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Owner approves.
	resp = doJSON(t, app, http.MethodPost,
		fiberPath("/api/requests/%d/approve", request.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var approved models.RentRequest
	decodeBody(t, resp, &approved)
	assert.Equal(t, models.RentRequestStatusApproved, approved.Status)

	// Receipt works now, for renter and owner alike.
	for _, token := range []string{renterToken, ownerToken} {
		resp = doJSON(t, app, http.MethodGet,
			fiberPath("/api/requests/%d/receipt", request.ID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		pdf, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err)
		require.Greater(t, len(pdf), 4)
		assert.Equal(t, "%PDF", string(pdf[:4]))
	}
}

func TestApproveDeclinesSiblingsHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	listing := createListingHTTP(t, app, ownerToken)
	aliceReq := createRequestHTTP(t, app, aliceToken, listing.ID, 2)
	bobReq := createRequestHTTP(t, app, bobToken, listing.ID, 5)

	resp := doJSON(t, app, http.MethodPost,
		fiberPath("/api/requests/%d/approve", aliceReq.ID), ownerToken, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Owner sees both, one approved and one declined.
	resp = doJSON(t, app, http.MethodGet,
		fiberPath("/api/listings/%d/requests", listing.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Requests []models.RentRequest `json:"requests"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Requests, 2)
	statuses := map[uint]models.RentRequestStatus{}
	for _, r := range body.Requests {
		statuses[r.ID] = r.Status
	}
	assert.Equal(t, models.RentRequestStatusApproved, statuses[aliceReq.ID])
	assert.Equal(t, models.RentRequestStatusDeclined, statuses[bobReq.ID])

	// Approving bob now conflicts.
	resp = doJSON(t, app, http.MethodPost,
		fiberPath("/api/requests/%d/approve", bobReq.ID), ownerToken, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateRequestConflictsHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	renterToken, _ := signupUser(t, app, "renter")

	listing := createListingHTTP(t, app, ownerToken)

	// Owner cannot request their own listing.
	resp := doJSON(t, app, http.MethodPost,
		fiberPath("/api/listings/%d/requests", listing.ID), ownerToken, map[string]any{"days": 1})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	createRequestHTTP(t, app, renterToken, listing.ID, 2)

	// Duplicate request conflicts.
	resp = doJSON(t, app, http.MethodPost,
		fiberPath("/api/listings/%d/requests", listing.ID), renterToken, map[string]any{"days": 4})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown listing is a 404.
	resp = doJSON(t, app, http.MethodPost,
		"/api/listings/9999/requests", renterToken, map[string]any{"days": 1})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEditAndWithdrawHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	renterToken, _ := signupUser(t, app, "renter")

	listing := createListingHTTP(t, app, ownerToken)
	request := createRequestHTTP(t, app, renterToken, listing.ID, 2)

	// Owner declines, renter edits it back to pending.
	resp := doJSON(t, app, http.MethodPost,
		fiberPath("/api/requests/%d/decline", request.ID), ownerToken, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut,
		fiberPath("/api/requests/%d", request.ID), renterToken, map[string]any{
			"days": 6, "description": "different week",
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited models.RentRequest
	decodeBody(t, resp, &edited)
	assert.Equal(t, models.RentRequestStatusPending, edited.Status)
	assert.Equal(t, 6, edited.Days)

	// Owner cannot edit or withdraw the renter's request.
	resp = doJSON(t, app, http.MethodPut,
		fiberPath("/api/requests/%d", request.ID), ownerToken, map[string]any{"days": 1})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete,
		fiberPath("/api/requests/%d", request.ID), ownerToken, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Renter withdraws.
	resp = doJSON(t, app, http.MethodDelete,
		fiberPath("/api/requests/%d", request.ID), renterToken, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/requests/mine", renterToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine struct {
		Requests []models.RentRequest `json:"requests"`
	}
	decodeBody(t, resp, &mine)
	assert.Empty(t, mine.Requests)
}

func TestListingRequestsVisibilityHTTP(t *testing.T) {
	_, app := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	renterToken, _ := signupUser(t, app, "renter")

	listing := createListingHTTP(t, app, ownerToken)
	createRequestHTTP(t, app, renterToken, listing.ID, 2)

	// Only the owner may list a listing's requests.
	resp := doJSON(t, app, http.MethodGet,
		fiberPath("/api/listings/%d/requests", listing.ID), renterToken, nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
