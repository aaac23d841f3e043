package service

import (
	"context"

	"github.com/martijn/clientsapi/internal/core/domain"
	"github.com/martijn/clientsapi/internal/core/repository"
)

type ClientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// CreateClient validates the required fields and persists a new client.
func (s *ClientService) CreateClient(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	return s.clientRepo.Create(ctx, client)
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clientRepo.FindByID(ctx, id)
}

// ListClients returns every stored client
func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []*domain.Client{}
	}
	return clients, nil
}

// UpdateClient applies patch and returns the record as stored after the write.
// An empty patch is a plain read.
func (s *ClientService) UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	if patch.IsEmpty() {
		return s.clientRepo.FindByID(ctx, id)
	}
	return s.clientRepo.Update(ctx, id, patch)
}

// DeleteClient removes a client and returns the deleted record
func (s *ClientService) DeleteClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clientRepo.Delete(ctx, id)
}

// Ping checks that the backend is reachable
func (s *ClientService) Ping(ctx context.Context) error {
	return s.clientRepo.Ping(ctx)
}

func validateClient(client *domain.Client) error {
	var missing []string
	if client.Nom == "" {
		missing = append(missing, "nom")
	}
	if client.Prenom == "" {
		missing = append(missing, "prenom")
	}
	if client.Telephone == "" {
		missing = append(missing, "telephone")
	}
	if client.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return NewValidationError(missing...)
	}
	return nil
}
