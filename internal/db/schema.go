package db

import (
	"context"
	"fmt"

	"cafirm-backend/internal/fixtures"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS services (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		service_id TEXT NOT NULL REFERENCES services(id),
		frequency TEXT NOT NULL DEFAULT '',
		amount BIGINT NOT NULL DEFAULT 0,
		deadline DATE,
		financial_year TEXT NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		business_type TEXT NOT NULL DEFAULT '',
		gstin TEXT NOT NULL DEFAULT '',
		pan TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		assigned_to TEXT NOT NULL DEFAULT '',
		date_added TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS client_services (
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		service_id TEXT NOT NULL REFERENCES services(id),
		position INT NOT NULL DEFAULT 0,
		PRIMARY KEY (client_id, service_id)
	)`,
	`CREATE TABLE IF NOT EXISTS client_service_activities (
		client_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		activity_id TEXT NOT NULL REFERENCES activities(id),
		PRIMARY KEY (client_id, service_id, activity_id),
		FOREIGN KEY (client_id, service_id) REFERENCES client_services(client_id, service_id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		client_id TEXT NOT NULL REFERENCES clients(id),
		service_id TEXT NOT NULL REFERENCES services(id),
		activity_id TEXT NOT NULL REFERENCES activities(id),
		deadline TIMESTAMPTZ NOT NULL,
		priority TEXT NOT NULL,
		status TEXT NOT NULL,
		assigned_to TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		financial_year TEXT NOT NULL DEFAULT '',
		client_id TEXT NOT NULL REFERENCES clients(id),
		uploaded_on TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'staff'
	)`,
}

// InitSchema creates all tables when they do not exist yet.
func (p *Postgres) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Seed loads the fixture dataset into an empty database so a fresh
// postgres backend starts with the same data the memory backend serves.
// A database that already has services is left alone.
func (p *Postgres) Seed(ctx context.Context, ds *fixtures.Dataset) error {
	var n int
	if err := p.Pool.QueryRow(ctx, `SELECT count(*) FROM services`).Scan(&n); err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range ds.Services {
		if _, err := tx.Exec(ctx, `INSERT INTO services (id, name, status) VALUES ($1,$2,$3)`, s.ID, s.Name, s.Status); err != nil {
			return fmt.Errorf("seed service %s: %w", s.ID, err)
		}
	}
	for i, a := range ds.Activities {
		if _, err := tx.Exec(ctx, `
			INSERT INTO activities (id, name, service_id, frequency, amount, deadline, financial_year, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, a.ID, a.Name, a.ServiceID, a.Frequency, a.Amount, a.Deadline, a.FinancialYear, i); err != nil {
			return fmt.Errorf("seed activity %s: %w", a.ID, err)
		}
	}
	for _, c := range ds.Clients {
		if _, err := tx.Exec(ctx, `
			INSERT INTO clients (id, name, email, phone, business_type, gstin, pan, address, status, assigned_to, date_added)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, c.ID, c.Name, c.Email, c.Phone, c.BusinessType, c.GSTIN, c.PAN, c.Address, c.Status, c.AssignedTo, c.DateAdded); err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
		for pos, s := range c.Services {
			if _, err := tx.Exec(ctx, `INSERT INTO client_services (client_id, service_id, position) VALUES ($1,$2,$3)`, c.ID, s.ID, pos); err != nil {
				return fmt.Errorf("seed enrollment %s/%s: %w", c.ID, s.ID, err)
			}
			for _, a := range s.Activities {
				if _, err := tx.Exec(ctx, `INSERT INTO client_service_activities (client_id, service_id, activity_id) VALUES ($1,$2,$3)`, c.ID, s.ID, a.ID); err != nil {
					return fmt.Errorf("seed enrollment activity %s/%s/%s: %w", c.ID, s.ID, a.ID, err)
				}
			}
		}
	}
	for _, t := range ds.Tickets {
		if _, err := tx.Exec(ctx, `
			INSERT INTO tickets (id, title, client_id, service_id, activity_id, deadline, priority, status, assigned_to, created_by, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, t.ID, t.Title, t.ClientID, t.ServiceID, t.ActivityID, t.Deadline, t.Priority, t.Status, t.AssignedTo, t.CreatedBy, t.CreatedAt); err != nil {
			return fmt.Errorf("seed ticket %s: %w", t.ID, err)
		}
	}
	for _, d := range ds.Documents {
		if _, err := tx.Exec(ctx, `
			INSERT INTO documents (id, name, financial_year, client_id, uploaded_on)
			VALUES ($1,$2,$3,$4,$5)
		`, d.ID, d.Name, d.FinancialYear, d.ClientID, d.UploadedOn); err != nil {
			return fmt.Errorf("seed document %s: %w", d.ID, err)
		}
	}
	for _, u := range ds.Users {
		if _, err := tx.Exec(ctx, `INSERT INTO users (id, name, email, role) VALUES ($1,$2,$3,$4)`, u.ID, u.Name, u.Email, u.Role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	return tx.Commit(ctx)
}
