// Package ports defines the storage interfaces the handlers depend on.
// The fixture-backed memory adapters satisfy them today; a real backend
// adapter can replace them without touching any caller.
package ports

import (
	"context"

	"cafirm-backend/internal/domain"
)

// HealthChecker is used to probe dependencies.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type ClientStore interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, c domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id string, c domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]domain.Client, error)
}

type ServiceStore interface {
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	Create(ctx context.Context, s domain.Service) (*domain.Service, error)
	Update(ctx context.Context, id string, s domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]domain.Service, error)
}

type TicketStore interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, t domain.Ticket) (*domain.Ticket, error)
	Update(ctx context.Context, id string, t domain.Ticket) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]domain.Ticket, error)
	ByClient(ctx context.Context, clientID string) ([]domain.Ticket, error)
}

// DocumentStore has no update: documents are uploaded once and replaced by
// deleting and re-creating.
type DocumentStore interface {
	List(ctx context.Context) ([]domain.Document, error)
	Get(ctx context.Context, id string) (*domain.Document, error)
	Create(ctx context.Context, d domain.Document) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]domain.Document, error)
	ByClient(ctx context.Context, clientID string) ([]domain.Document, error)
}

// UserStore is read-only: staff accounts are provisioned out of band.
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Search(ctx context.Context, query string) ([]domain.User, error)
}
