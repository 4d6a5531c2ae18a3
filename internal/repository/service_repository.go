package repository

import (
	"context"
	"fmt"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/relation"
)

type ServiceRepository struct {
	Data   *fixtures.Dataset
	Delays Delays
}

func (r ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	if err := wait(ctx, r.Delays.List); err != nil {
		return nil, err
	}
	return cloneServices(r.Data.Services), nil
}

func (r ServiceRepository) Get(ctx context.Context, id string) (*domain.Service, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	s := relation.ServiceByID(r.Data.Services, id)
	if s == nil {
		return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	out := cloneService(*s)
	return &out, nil
}

func (r ServiceRepository) Create(ctx context.Context, s domain.Service) (*domain.Service, error) {
	if err := wait(ctx, r.Delays.Create); err != nil {
		return nil, err
	}
	s.ID = newID()
	for i := range s.Activities {
		s.Activities[i].ServiceID = s.ID
	}
	return &s, nil
}

func (r ServiceRepository) Update(ctx context.Context, id string, s domain.Service) (*domain.Service, error) {
	if err := wait(ctx, r.Delays.Update); err != nil {
		return nil, err
	}
	if relation.ServiceByID(r.Data.Services, id) == nil {
		return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	s.ID = id
	return &s, nil
}

func (r ServiceRepository) Delete(ctx context.Context, id string) error {
	if err := wait(ctx, r.Delays.Delete); err != nil {
		return err
	}
	if relation.ServiceByID(r.Data.Services, id) == nil {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	return nil
}

// Search matches the service name or any of its activity names.
func (r ServiceRepository) Search(ctx context.Context, query string) ([]domain.Service, error) {
	if err := wait(ctx, r.Delays.Search); err != nil {
		return nil, err
	}
	var out []domain.Service
	for _, s := range r.Data.Services {
		if serviceMatches(s, query) {
			out = append(out, cloneService(s))
		}
	}
	return out, nil
}

func serviceMatches(s domain.Service, query string) bool {
	if containsFold(s.Name, query) {
		return true
	}
	for _, a := range s.Activities {
		if containsFold(a.Name, query) {
			return true
		}
	}
	return false
}
