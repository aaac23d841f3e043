package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientsapi/internal/api/dto"
	"github.com/martijn/clientsapi/internal/core/repository"
	"github.com/martijn/clientsapi/internal/core/service"
	"github.com/martijn/clientsapi/internal/infrastructure/sqlite"
)

// testEnv holds all test dependencies
type testEnv struct {
	repo          repository.ClientRepository
	router        *gin.Engine
	clientHandler *ClientHandler
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	repo := sqlite.NewClientRepository(db)
	t.Cleanup(func() { repo.Close(context.Background()) })

	return newTestEnv(repo)
}

func newTestEnv(repo repository.ClientRepository) *testEnv {
	clientService := service.NewClientService(repo)
	clientHandler := NewClientHandler(clientService)
	healthHandler := NewHealthHandler(clientService, "sqlite")

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/api/test", healthHandler.Test)
	router.GET("/health", healthHandler.Health)
	for _, prefix := range []string{"/api", ""} {
		clients := router.Group(prefix + "/clients")
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/:id", clientHandler.GetClient)
		clients.PUT("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}

	return &testEnv{
		repo:          repo,
		router:        router,
		clientHandler: clientHandler,
	}
}

// makeRequest performs a request with an optional raw JSON body
func (env *testEnv) makeRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequest(method, path, http.NoBody)
	} else {
		req, err = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// createClient posts body and fails the test unless a client was created
func (env *testEnv) createClient(t *testing.T, prefix, body string) dto.ClientResponse {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, prefix+"/clients", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	return parseClientResponse(t, w)
}

func parseClientResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ClientResponse {
	t.Helper()

	var resp dto.ClientResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseClientListResponse(t *testing.T, w *httptest.ResponseRecorder) []dto.ClientResponse {
	t.Helper()

	var resp []dto.ClientResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseMessageResponse(t *testing.T, w *httptest.ResponseRecorder) dto.MessageResponse {
	t.Helper()

	var resp dto.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
