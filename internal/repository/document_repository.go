package repository

import (
	"context"
	"fmt"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/relation"
)

type DocumentRepository struct {
	Data   *fixtures.Dataset
	Delays Delays
}

func (r DocumentRepository) List(ctx context.Context) ([]domain.Document, error) {
	if err := wait(ctx, r.Delays.List); err != nil {
		return nil, err
	}
	return append([]domain.Document(nil), r.Data.Documents...), nil
}

func (r DocumentRepository) Get(ctx context.Context, id string) (*domain.Document, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	for _, d := range r.Data.Documents {
		if d.ID == id {
			out := d
			return &out, nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
}

func (r DocumentRepository) Create(ctx context.Context, d domain.Document) (*domain.Document, error) {
	if err := wait(ctx, r.Delays.Create); err != nil {
		return nil, err
	}
	d.ID = newID()
	if d.UploadedOn.IsZero() {
		d.UploadedOn = time.Now()
	}
	return &d, nil
}

func (r DocumentRepository) Delete(ctx context.Context, id string) error {
	if err := wait(ctx, r.Delays.Delete); err != nil {
		return err
	}
	for _, d := range r.Data.Documents {
		if d.ID == id {
			return nil
		}
	}
	return fmt.Errorf("document %s: %w", id, ErrNotFound)
}

// Search matches the document name or financial year label.
func (r DocumentRepository) Search(ctx context.Context, query string) ([]domain.Document, error) {
	if err := wait(ctx, r.Delays.Search); err != nil {
		return nil, err
	}
	var out []domain.Document
	for _, d := range r.Data.Documents {
		if containsFold(d.Name, query) || containsFold(d.FinancialYear, query) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r DocumentRepository) ByClient(ctx context.Context, clientID string) ([]domain.Document, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	return append([]domain.Document(nil), relation.DocumentsForClient(r.Data.Documents, clientID)...), nil
}
