package repository

import (
	"context"
	"errors"

	"github.com/martijn/clientsapi/internal/core/domain"
)

var (
	// ErrClientNotFound is returned when no record matches the identifier.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidID is returned when the identifier is not in the backend's format.
	ErrInvalidID = errors.New("invalid client id")
)

// ClientRepository persists client records. Create assigns client.ID.
// Update and Delete locate and modify the record in a single backend call.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	Delete(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
