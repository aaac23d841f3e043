package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/martijn/clientsapi/internal/core/domain"
	"github.com/martijn/clientsapi/internal/core/repository"
)

const clientColumns = "id, nom, prenom, telephone, email, points_fidelite"

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	id := uuid.New().String()

	query := `
		INSERT INTO client (id, nom, prenom, telephone, email, points_fidelite)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		id,
		client.Nom,
		client.Prenom,
		client.Telephone,
		client.Email,
		client.PointsFidelite,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	client.ID = id
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`
	var client domain.Client
	err = r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Nom != nil {
		set("nom", *patch.Nom)
	}
	if patch.Prenom != nil {
		set("prenom", *patch.Prenom)
	}
	if patch.Telephone != nil {
		set("telephone", *patch.Telephone)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.PointsFidelite != nil {
		set("points_fidelite", *patch.PointsFidelite)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	args = append(args, id)

	// Single statement: the row is located, modified and returned atomically
	query := `UPDATE client SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? RETURNING ` + clientColumns
	var client domain.Client
	err = r.db.GetContext(ctx, &client, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) (*domain.Client, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	query := `DELETE FROM client WHERE id = ? RETURNING ` + clientColumns
	var client domain.Client
	err = r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client ORDER BY rowid`
	var clients []*domain.Client
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *clientRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

// canonicalID returns id in the hyphenated lower-case form stored in the table.
// uuid.Parse also accepts the urn:uuid:, braced and bare hex spellings.
func canonicalID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %s", repository.ErrInvalidID, id)
	}
	return parsed.String(), nil
}
