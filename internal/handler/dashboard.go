package handler

import (
	"net/http"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/ports"
	"github.com/go-chi/chi/v5"
)

// DashboardHandler serves the overview counters shown on the landing view.
type DashboardHandler struct {
	Clients   ports.ClientStore
	Services  ports.ServiceStore
	Tickets   ports.TicketStore
	Documents ports.DocumentStore
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.summary)
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Clients.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	services, err := h.Services.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	tickets, err := h.Tickets.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	documents, err := h.Documents.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	openTickets := 0
	for _, t := range tickets {
		if t.Status == domain.TicketOpen {
			openTickets++
		}
	}
	activeServices := 0
	for _, s := range services {
		if s.Status == domain.ServiceActive {
			activeServices++
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalClients":   len(clients),
		"openTickets":    openTickets,
		"activeServices": activeServices,
		"documents":      len(documents),
	})
}
