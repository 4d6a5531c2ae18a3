package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafirm-backend/internal/db"
	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

type DocumentRepository struct {
	DB *db.Postgres
}

func (r DocumentRepository) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, financial_year, client_id, uploaded_on FROM documents ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r DocumentRepository) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, financial_year, client_id, uploaded_on FROM documents WHERE id=$1
	`, id)
	var d domain.Document
	if err := row.Scan(&d.ID, &d.Name, &d.FinancialYear, &d.ClientID, &d.UploadedOn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return &d, nil
}

func (r DocumentRepository) Create(ctx context.Context, d domain.Document) (*domain.Document, error) {
	d.ID = newID()
	if d.UploadedOn.IsZero() {
		d.UploadedOn = time.Now()
	}
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO documents (id, name, financial_year, client_id, uploaded_on) VALUES ($1,$2,$3,$4,$5)
	`, d.ID, d.Name, d.FinancialYear, d.ClientID, d.UploadedOn)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r DocumentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r DocumentRepository) Search(ctx context.Context, query string) ([]domain.Document, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, financial_year, client_id, uploaded_on FROM documents
		WHERE name ILIKE '%'||$1||'%' OR financial_year ILIKE '%'||$1||'%'
		ORDER BY id
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (r DocumentRepository) ByClient(ctx context.Context, clientID string) ([]domain.Document, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, financial_year, client_id, uploaded_on FROM documents WHERE client_id=$1 ORDER BY id
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func collectDocuments(rows pgx.Rows) ([]domain.Document, error) {
	var items []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Name, &d.FinancialYear, &d.ClientID, &d.UploadedOn); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
