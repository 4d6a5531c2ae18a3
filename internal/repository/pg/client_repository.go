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

type ClientRepository struct {
	DB *db.Postgres
}

func (r ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, email, phone, business_type, gstin, pan, address, status, assigned_to, date_added
		FROM clients
		ORDER BY date_added, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BusinessType, &c.GSTIN, &c.PAN, &c.Address, &c.Status, &c.AssignedTo, &c.DateAdded); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range items {
		services, err := r.loadServices(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Services = services
	}
	return items, nil
}

func (r ClientRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, email, phone, business_type, gstin, pan, address, status, assigned_to, date_added
		FROM clients
		WHERE id=$1
	`, id)
	var c domain.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BusinessType, &c.GSTIN, &c.PAN, &c.Address, &c.Status, &c.AssignedTo, &c.DateAdded); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("client %s: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	services, err := r.loadServices(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Services = services
	return &c, nil
}

func (r ClientRepository) Create(ctx context.Context, c domain.Client) (*domain.Client, error) {
	c.ID = newID()
	if c.DateAdded.IsZero() {
		c.DateAdded = time.Now()
	}
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO clients (id, name, email, phone, business_type, gstin, pan, address, status, assigned_to, date_added)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, c.ID, c.Name, c.Email, c.Phone, c.BusinessType, c.GSTIN, c.PAN, c.Address, c.Status, c.AssignedTo, c.DateAdded)
	if err != nil {
		return nil, err
	}
	if err := saveEnrollments(ctx, tx, c.ID, c.Services); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, c.ID)
}

func (r ClientRepository) Update(ctx context.Context, id string, c domain.Client) (*domain.Client, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE clients
		SET name=$2, email=$3, phone=$4, business_type=$5, gstin=$6, pan=$7, address=$8, status=$9, assigned_to=$10
		WHERE id=$1
	`, id, c.Name, c.Email, c.Phone, c.BusinessType, c.GSTIN, c.PAN, c.Address, c.Status, c.AssignedTo)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("client %s: %w", id, repository.ErrNotFound)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM client_services WHERE client_id=$1`, id); err != nil {
		return nil, err
	}
	if err := saveEnrollments(ctx, tx, id, c.Services); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r ClientRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r ClientRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, email, phone, business_type, gstin, pan, address, status, assigned_to, date_added
		FROM clients
		WHERE name ILIKE '%'||$1||'%' OR email ILIKE '%'||$1||'%' OR business_type ILIKE '%'||$1||'%'
		ORDER BY date_added, id
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BusinessType, &c.GSTIN, &c.PAN, &c.Address, &c.Status, &c.AssignedTo, &c.DateAdded); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range items {
		services, err := r.loadServices(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Services = services
	}
	return items, nil
}

// loadServices assembles the client's enrolled services with the selected
// activity subset, preserving enrollment order and catalog order.
func (r ClientRepository) loadServices(ctx context.Context, clientID string) ([]domain.Service, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT s.id, s.name, s.status,
		       a.id, a.name, a.service_id, a.frequency, a.amount, a.deadline, a.financial_year
		FROM client_services cs
		JOIN services s ON s.id = cs.service_id
		LEFT JOIN client_service_activities csa ON csa.client_id = cs.client_id AND csa.service_id = cs.service_id
		LEFT JOIN activities a ON a.id = csa.activity_id
		WHERE cs.client_id = $1
		ORDER BY cs.position, a.position
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func saveEnrollments(ctx context.Context, tx pgx.Tx, clientID string, services []domain.Service) error {
	for pos, s := range services {
		if _, err := tx.Exec(ctx, `
			INSERT INTO client_services (client_id, service_id, position) VALUES ($1,$2,$3)
		`, clientID, s.ID, pos); err != nil {
			return fmt.Errorf("enroll service %s: %w", s.ID, err)
		}
		for _, a := range s.Activities {
			if _, err := tx.Exec(ctx, `
				INSERT INTO client_service_activities (client_id, service_id, activity_id) VALUES ($1,$2,$3)
			`, clientID, s.ID, a.ID); err != nil {
				return fmt.Errorf("enroll activity %s: %w", a.ID, err)
			}
		}
	}
	return nil
}
