package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientsapi/internal/api/dto"
	"github.com/martijn/clientsapi/internal/core/service"
)

const msgAPIRunning = "L'API fonctionne 🚀"

type HealthHandler struct {
	clientService *service.ClientService
	backend       string
}

func NewHealthHandler(clientService *service.ClientService, backend string) *HealthHandler {
	return &HealthHandler{
		clientService: clientService,
		backend:       backend,
	}
}

// Test handles GET /api/test
func (h *HealthHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgAPIRunning})
}

// Health handles GET /health and reports whether the backend answers a ping
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.clientService.Ping(ctx); err != nil {
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, dto.HealthResponse{
		Status:  status,
		Backend: h.backend,
		Time:    time.Now().Format(time.RFC3339),
	})
}
