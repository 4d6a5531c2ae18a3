package repository

import (
	"context"
	"fmt"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/relation"
)

type ClientRepository struct {
	Data   *fixtures.Dataset
	Delays Delays
}

func (r ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	if err := wait(ctx, r.Delays.List); err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(r.Data.Clients))
	for _, c := range r.Data.Clients {
		out = append(out, cloneClient(c))
	}
	return out, nil
}

func (r ClientRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	c := relation.ClientByID(r.Data.Clients, id)
	if c == nil {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	out := cloneClient(*c)
	return &out, nil
}

func (r ClientRepository) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	if err := wait(ctx, r.Delays.Create); err != nil {
		return nil, err
	}
	c.ID = newID()
	return &c, nil
}

// Update echoes the given record under the existing id. The fixture record
// itself is left untouched; the next read sees the original data again.
func (r ClientRepository) Update(ctx context.Context, id string, c domain.Client) (*domain.Client, error) {
	if err := wait(ctx, r.Delays.Update); err != nil {
		return nil, err
	}
	existing := relation.ClientByID(r.Data.Clients, id)
	if existing == nil {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	c.ID = id
	if c.DateAdded.IsZero() {
		c.DateAdded = existing.DateAdded
	}
	return &c, nil
}

func (r ClientRepository) Delete(ctx context.Context, id string) error {
	if err := wait(ctx, r.Delays.Delete); err != nil {
		return err
	}
	if relation.ClientByID(r.Data.Clients, id) == nil {
		return fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return nil
}

// Search matches a case-insensitive substring against name, email and
// business type, in fixture order.
func (r ClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	if err := wait(ctx, r.Delays.Search); err != nil {
		return nil, err
	}
	var out []domain.Client
	for _, c := range r.Data.Clients {
		if containsFold(c.Name, query) || containsFold(c.Email, query) || containsFold(c.BusinessType, query) {
			out = append(out, cloneClient(c))
		}
	}
	return out, nil
}

func cloneClient(c domain.Client) domain.Client {
	out := c
	out.Services = cloneServices(c.Services)
	return out
}

func cloneServices(services []domain.Service) []domain.Service {
	if services == nil {
		return nil
	}
	out := make([]domain.Service, 0, len(services))
	for _, s := range services {
		out = append(out, cloneService(s))
	}
	return out
}

func cloneService(s domain.Service) domain.Service {
	out := s
	if s.Activities != nil {
		out.Activities = append([]domain.Activity(nil), s.Activities...)
	}
	return out
}
