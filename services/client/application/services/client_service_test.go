package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	clientdomain "github.com/ghuser/invoicing/services/client/domain"
	"github.com/ghuser/invoicing/services/client/domain/models"
)

// memoryRepo mimics the unique index on LOWER(name).
type memoryRepo struct {
	mu      sync.Mutex
	clients []*models.Client
	listErr error
}

func (m *memoryRepo) Save(_ context.Context, c *models.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.clients {
		if strings.EqualFold(existing.Name.String(), c.Name.String()) {
			return clientdomain.ErrClientAlreadyExists
		}
	}
	c.ID = int64(len(m.clients) + 1)
	m.clients = append(m.clients, c)
	return nil
}

func (m *memoryRepo) List(_ context.Context) ([]*models.Client, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.clients, nil
}

func TestClientService_Create(t *testing.T) {
	svc := NewClientService(&memoryRepo{}, nil)

	c, err := svc.Create(context.Background(), "  Acme Corp  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 1 || c.Name.String() != "Acme Corp" {
		t.Fatalf("unexpected client %+v", c)
	}
}

func TestClientService_Create_RejectsShortName(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewClientService(repo, nil)

	if _, err := svc.Create(context.Background(), " A "); !errors.Is(err, clientdomain.ErrClientNameTooShort) {
		t.Fatalf("expected ErrClientNameTooShort, got %v", err)
	}
	if len(repo.clients) != 0 {
		t.Fatal("invalid name must not reach the repository")
	}
}

func TestClientService_Create_DuplicateIgnoresCase(t *testing.T) {
	svc := NewClientService(&memoryRepo{}, nil)

	if _, err := svc.Create(context.Background(), "Acme"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), "ACME")
	if !errors.Is(err, clientdomain.ErrClientAlreadyExists) {
		t.Fatalf("expected ErrClientAlreadyExists, got %v", err)
	}
}

func TestClientService_List_WrapsError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewClientService(&memoryRepo{listErr: boom}, nil)

	if _, err := svc.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
