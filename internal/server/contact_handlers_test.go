package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitContact(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Alice",
		"email":   "alice@example.com",
		"message": "Is pickup available on weekends?",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Alice",
		"email":   "not-an-email",
		"message": "hello",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
