package pg

import (
	"context"
	"fmt"

	"cafirm-backend/internal/db"
	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

type ServiceRepository struct {
	DB *db.Postgres
}

func (r ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT s.id, s.name, s.status,
		       a.id, a.name, a.service_id, a.frequency, a.amount, a.deadline, a.financial_year
		FROM services s
		LEFT JOIN activities a ON a.service_id = s.id
		ORDER BY s.id, a.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

func (r ServiceRepository) Get(ctx context.Context, id string) (*domain.Service, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT s.id, s.name, s.status,
		       a.id, a.name, a.service_id, a.frequency, a.amount, a.deadline, a.financial_year
		FROM services s
		LEFT JOIN activities a ON a.service_id = s.id
		WHERE s.id = $1
		ORDER BY a.position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	services, err := collectServices(rows)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
	}
	return &services[0], nil
}

func (r ServiceRepository) Create(ctx context.Context, s domain.Service) (*domain.Service, error) {
	s.ID = newID()
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO services (id, name, status) VALUES ($1,$2,$3)`, s.ID, s.Name, s.Status); err != nil {
		return nil, err
	}
	if err := saveActivities(ctx, tx, s.ID, s.Activities); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, s.ID)
}

func (r ServiceRepository) Update(ctx context.Context, id string, s domain.Service) (*domain.Service, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE services SET name=$2, status=$3 WHERE id=$1`, id, s.Name, s.Status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE service_id=$1`, id); err != nil {
		return nil, err
	}
	if err := saveActivities(ctx, tx, id, s.Activities); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r ServiceRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE service_id=$1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
	}
	return tx.Commit(ctx)
}

func (r ServiceRepository) Search(ctx context.Context, query string) ([]domain.Service, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT s.id, s.name, s.status,
		       a.id, a.name, a.service_id, a.frequency, a.amount, a.deadline, a.financial_year
		FROM services s
		LEFT JOIN activities a ON a.service_id = s.id
		WHERE s.name ILIKE '%'||$1||'%'
		   OR EXISTS (SELECT 1 FROM activities m WHERE m.service_id = s.id AND m.name ILIKE '%'||$1||'%')
		ORDER BY s.id, a.position
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

func collectServices(rows pgx.Rows) ([]domain.Service, error) {
	var services []domain.Service
	for rows.Next() {
		var s domain.Service
		var a scannedActivity
		if err := rows.Scan(&s.ID, &s.Name, &s.Status, &a.ID, &a.Name, &a.ServiceID, &a.Frequency, &a.Amount, &a.Deadline, &a.FinancialYear); err != nil {
			return nil, err
		}
		if len(services) == 0 || services[len(services)-1].ID != s.ID {
			services = append(services, s)
		}
		if act, ok := a.toDomain(); ok {
			last := &services[len(services)-1]
			last.Activities = append(last.Activities, act)
		}
	}
	return services, rows.Err()
}

func saveActivities(ctx context.Context, tx pgx.Tx, serviceID string, activities []domain.Activity) error {
	for pos, a := range activities {
		if a.ID == "" {
			a.ID = newID() + "-" + fmt.Sprint(pos)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO activities (id, name, service_id, frequency, amount, deadline, financial_year, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, a.ID, a.Name, serviceID, a.Frequency, a.Amount, a.Deadline, a.FinancialYear, pos); err != nil {
			return fmt.Errorf("save activity %s: %w", a.Name, err)
		}
	}
	return nil
}
