package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rented/internal/config"
	"rented/internal/models"
	"rented/internal/repository"
	"rented/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a full server against an in-memory database with no
// Redis and no Prometheus middleware.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.RentRequest{}))

	cfg := &config.Config{
		JWTSecret:   "test_secret",
		Env:         "test",
		UploadDir:   t.TempDir(),
		MaxUploadMB: 1,
	}

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	rentRepo := repository.NewRentRequestRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		rentRepo:    rentRepo,
		storage:     service.NewStorageService(cfg.UploadDir, cfg.MaxUploadMB),
	}
	s.userService = service.NewUserService(userRepo, s.storage)
	s.listingService = service.NewListingService(listingRepo, s.storage, s.isAdminByUserID)
	s.rentalService = service.NewRentalService(rentRepo, listingRepo, db, s.isAdminByUserID)
	s.receiptService = service.NewReceiptService(rentRepo)
	s.mailService = service.NewMailServiceWithDialer(&noopDialer{}, "no-reply@test", "inbox@test")

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

type noopDialer struct{}

func (noopDialer) DialAndSend(...*gomail.Message) error { return nil }

// signupUser registers a user through the API and returns its token and ID.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User.ID
}

// doJSON performs a JSON request against the test app, optionally authenticated.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
