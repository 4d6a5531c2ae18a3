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

type TicketRepository struct {
	DB *db.Postgres
}

const ticketColumns = `id, title, client_id, service_id, activity_id, deadline, priority, status, assigned_to, created_by, created_at`

func (r TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func (r TicketRepository) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.DB.Pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id)
	var t domain.Ticket
	if err := scanTicket(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticket %s: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r TicketRepository) Create(ctx context.Context, t domain.Ticket) (*domain.Ticket, error) {
	t.ID = newID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO tickets (`+ticketColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, t.ID, t.Title, t.ClientID, t.ServiceID, t.ActivityID, t.Deadline, t.Priority, t.Status, t.AssignedTo, t.CreatedBy, t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, t.ID)
}

func (r TicketRepository) Update(ctx context.Context, id string, t domain.Ticket) (*domain.Ticket, error) {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE tickets
		SET title=$2, client_id=$3, service_id=$4, activity_id=$5, deadline=$6, priority=$7, status=$8, assigned_to=$9
		WHERE id=$1
	`, id, t.Title, t.ClientID, t.ServiceID, t.ActivityID, t.Deadline, t.Priority, t.Status, t.AssignedTo)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("ticket %s: %w", id, repository.ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r TicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ticket %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r TicketRepository) Search(ctx context.Context, query string) ([]domain.Ticket, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+ticketColumns+` FROM tickets
		WHERE title ILIKE '%'||$1||'%' OR assigned_to ILIKE '%'||$1||'%'
		ORDER BY created_at, id
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func (r TicketRepository) ByClient(ctx context.Context, clientID string) ([]domain.Ticket, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE client_id=$1 ORDER BY created_at, id`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTickets(rows)
}

func scanTicket(row pgx.Row, t *domain.Ticket) error {
	return row.Scan(&t.ID, &t.Title, &t.ClientID, &t.ServiceID, &t.ActivityID, &t.Deadline, &t.Priority, &t.Status, &t.AssignedTo, &t.CreatedBy, &t.CreatedAt)
}

func collectTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var items []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
