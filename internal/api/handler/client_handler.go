package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientsapi/internal/api/dto"
	"github.com/martijn/clientsapi/internal/core/repository"
	"github.com/martijn/clientsapi/internal/core/service"
)

const (
	msgCreateFailed = "Erreur lors de l'ajout du client"
	msgListFailed   = "Erreur lors de la récupération des clients"
	msgGetFailed    = "Erreur lors de la récupération du client"
	msgUpdateFailed = "Erreur lors de la mise à jour du client"
	msgDeleteFailed = "Erreur lors de la suppression du client"
	msgNotFound     = "Client non trouvé"
	msgDeleted      = "Client supprimé avec succès"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// CreateClient handles POST /clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgCreateFailed, err)
		return
	}

	client := req.ToClient()
	if err := h.clientService.CreateClient(c.Request.Context(), client); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			badRequest(c, msgCreateFailed, err)
			return
		}
		internalError(c, msgCreateFailed, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewClientResponse(client))
}

// ListClients handles GET /clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		internalError(c, msgListFailed, err)
		return
	}

	response := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		response[i] = dto.NewClientResponse(client)
	}

	c.JSON(http.StatusOK, response)
}

// GetClient handles GET /clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		lookupError(c, msgGetFailed, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewClientResponse(client))
}

// UpdateClient handles PUT /clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, msgUpdateFailed, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		lookupError(c, msgUpdateFailed, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewClientResponse(client))
}

// DeleteClient handles DELETE /clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if _, err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		lookupError(c, msgDeleteFailed, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

// lookupError answers 404 for unknown ids and 500 for everything else,
// malformed ids included.
func lookupError(c *gin.Context, message string, err error) {
	if errors.Is(err, repository.ErrClientNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: msgNotFound,
			Code:    http.StatusNotFound,
		})
		return
	}
	internalError(c, message, err)
}

// internalError answers 500 and records err on the context for the error middleware to log.
func internalError(c *gin.Context, message string, err error) {
	_ = c.Error(err).SetMeta(message)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal Server Error",
		Message: message,
		Detail:  err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: message,
		Detail:  err.Error(),
		Code:    http.StatusBadRequest,
	})
}
