package repository

import (
	"context"
	"fmt"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/fixtures"
)

type UserRepository struct {
	Data   *fixtures.Dataset
	Delays Delays
}

func (r UserRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := wait(ctx, r.Delays.List); err != nil {
		return nil, err
	}
	return append([]domain.User(nil), r.Data.Users...), nil
}

func (r UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	for _, u := range r.Data.Users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// Search matches the user name or email.
func (r UserRepository) Search(ctx context.Context, query string) ([]domain.User, error) {
	if err := wait(ctx, r.Delays.Search); err != nil {
		return nil, err
	}
	var out []domain.User
	for _, u := range r.Data.Users {
		if containsFold(u.Name, query) || containsFold(u.Email, query) {
			out = append(out, u)
		}
	}
	return out, nil
}
