package repository

import (
	"context"
	"fmt"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/relation"
)

type TicketRepository struct {
	Data   *fixtures.Dataset
	Delays Delays
}

func (r TicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	if err := wait(ctx, r.Delays.List); err != nil {
		return nil, err
	}
	out := make([]domain.Ticket, 0, len(r.Data.Tickets))
	for _, t := range r.Data.Tickets {
		out = append(out, cloneTicket(t))
	}
	return out, nil
}

func (r TicketRepository) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	t := r.find(id)
	if t == nil {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	out := cloneTicket(*t)
	return &out, nil
}

func (r TicketRepository) Create(ctx context.Context, t domain.Ticket) (*domain.Ticket, error) {
	if err := wait(ctx, r.Delays.Create); err != nil {
		return nil, err
	}
	t.ID = newID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return &t, nil
}

func (r TicketRepository) Update(ctx context.Context, id string, t domain.Ticket) (*domain.Ticket, error) {
	if err := wait(ctx, r.Delays.Update); err != nil {
		return nil, err
	}
	existing := r.find(id)
	if existing == nil {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	t.ID = id
	if t.CreatedAt.IsZero() {
		t.CreatedAt = existing.CreatedAt
	}
	if t.CreatedBy == "" {
		t.CreatedBy = existing.CreatedBy
	}
	return &t, nil
}

func (r TicketRepository) Delete(ctx context.Context, id string) error {
	if err := wait(ctx, r.Delays.Delete); err != nil {
		return err
	}
	if r.find(id) == nil {
		return fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	return nil
}

// Search matches the ticket title or assignee.
func (r TicketRepository) Search(ctx context.Context, query string) ([]domain.Ticket, error) {
	if err := wait(ctx, r.Delays.Search); err != nil {
		return nil, err
	}
	var out []domain.Ticket
	for _, t := range r.Data.Tickets {
		if containsFold(t.Title, query) || containsFold(t.AssignedTo, query) {
			out = append(out, cloneTicket(t))
		}
	}
	return out, nil
}

func (r TicketRepository) ByClient(ctx context.Context, clientID string) ([]domain.Ticket, error) {
	if err := wait(ctx, r.Delays.Get); err != nil {
		return nil, err
	}
	matched := relation.TicketsForClient(r.Data.Tickets, clientID)
	out := make([]domain.Ticket, 0, len(matched))
	for _, t := range matched {
		out = append(out, cloneTicket(t))
	}
	return out, nil
}

func (r TicketRepository) find(id string) *domain.Ticket {
	for i := range r.Data.Tickets {
		if r.Data.Tickets[i].ID == id {
			return &r.Data.Tickets[i]
		}
	}
	return nil
}

func cloneTicket(t domain.Ticket) domain.Ticket {
	out := t
	if t.Attachments != nil {
		out.Attachments = append([]domain.Attachment(nil), t.Attachments...)
	}
	return out
}
