package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/martijn/clientsapi/internal/core/domain"
	"github.com/martijn/clientsapi/internal/core/repository"
)

func newTestRepo(t *testing.T) repository.ClientRepository {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	repo := NewClientRepository(db)
	t.Cleanup(func() { repo.Close(context.Background()) })
	return repo
}

func ptr[T any](v T) *T {
	return &v
}

func TestClientRepositoryCreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client := domain.NewClient("Dupont", "Jean", "0601020304", "j@d.fr", ptr(12))
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := uuid.Parse(client.ID); err != nil {
		t.Fatalf("Create() assigned non-UUID id %q", client.ID)
	}

	got, err := repo.FindByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if *got != *client {
		t.Errorf("FindByID() = %+v, want %+v", got, client)
	}
}

func TestClientRepositoryFindErrors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New().String())
	if !errors.Is(err, repository.ErrClientNotFound) {
		t.Errorf("unknown id: expected ErrClientNotFound, got %v", err)
	}

	_, err = repo.FindByID(ctx, "not-an-id")
	if !errors.Is(err, repository.ErrInvalidID) {
		t.Errorf("malformed id: expected ErrInvalidID, got %v", err)
	}
}

func TestClientRepositoryAcceptsAlternateIDSpellings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client := domain.NewClient("Dupont", "Jean", "0601020304", "j@d.fr", nil)
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	spellings := []string{
		"urn:uuid:" + client.ID,
		"{" + client.ID + "}",
		strings.ReplaceAll(client.ID, "-", ""),
		strings.ToUpper(client.ID),
	}
	for _, id := range spellings {
		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Errorf("FindByID(%q) error = %v", id, err)
			continue
		}
		if got.ID != client.ID {
			t.Errorf("FindByID(%q).ID = %q, want %q", id, got.ID, client.ID)
		}
	}

	updated, err := repo.Update(ctx, spellings[0], domain.ClientPatch{PointsFidelite: ptr(7)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.PointsFidelite != 7 {
		t.Errorf("Update() points = %d, want 7", updated.PointsFidelite)
	}

	deleted, err := repo.Delete(ctx, spellings[1])
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != client.ID {
		t.Errorf("Delete() returned %q, want %q", deleted.ID, client.ID)
	}
}

func TestClientRepositoryUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client := domain.NewClient("Dupont", "Jean", "0601020304", "j@d.fr", nil)
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := repo.Update(ctx, client.ID, domain.ClientPatch{
		Email:          ptr("jean.dupont@example.fr"),
		PointsFidelite: ptr(-5),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Email != "jean.dupont@example.fr" || updated.PointsFidelite != -5 {
		t.Errorf("Update() returned %+v", updated)
	}
	if updated.Nom != "Dupont" || updated.Prenom != "Jean" || updated.Telephone != "0601020304" {
		t.Errorf("Update() touched fields outside the patch: %+v", updated)
	}
	if updated.ID != client.ID {
		t.Errorf("Update() changed id to %q", updated.ID)
	}

	got, err := repo.FindByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if *got != *updated {
		t.Errorf("stored %+v, Update returned %+v", got, updated)
	}

	_, err = repo.Update(ctx, uuid.New().String(), domain.ClientPatch{Nom: ptr("Martin")})
	if !errors.Is(err, repository.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientRepositoryDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client := domain.NewClient("Dupont", "Jean", "0601020304", "j@d.fr", nil)
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := repo.Delete(ctx, client.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != client.ID {
		t.Errorf("Delete() returned id %q, want %q", deleted.ID, client.ID)
	}

	if _, err := repo.FindByID(ctx, client.ID); !errors.Is(err, repository.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound after delete, got %v", err)
	}
	if _, err := repo.Delete(ctx, client.ID); !errors.Is(err, repository.ErrClientNotFound) {
		t.Errorf("second delete: expected ErrClientNotFound, got %v", err)
	}
}

func TestClientRepositoryListKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	clients, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(clients) != 0 {
		t.Fatalf("List() on empty store returned %d clients", len(clients))
	}

	names := []string{"Zola", "Agnès", "Martin"}
	for _, nom := range names {
		if err := repo.Create(ctx, domain.NewClient(nom, "X", "06", "x@y.fr", nil)); err != nil {
			t.Fatalf("Create(%s) error = %v", nom, err)
		}
	}

	clients, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(clients) != len(names) {
		t.Fatalf("List() returned %d clients, want %d", len(clients), len(names))
	}
	for i, nom := range names {
		if clients[i].Nom != nom {
			t.Errorf("clients[%d].Nom = %q, want %q", i, clients[i].Nom, nom)
		}
	}
}
