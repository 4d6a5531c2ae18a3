package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/ports"
	"github.com/go-chi/chi/v5"
)

type TicketHandler struct {
	Repo ports.TicketStore
}

func (h TicketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tickets", h.list)
	r.Post("/tickets", h.create)
	r.Get("/tickets/{id}", h.get)
	r.Put("/tickets/{id}", h.update)
	r.Delete("/tickets/{id}", h.delete)
}

type ticketRequest struct {
	Title      string `json:"title"`
	ClientID   string `json:"clientId"`
	ServiceID  string `json:"serviceId"`
	ActivityID string `json:"activityId"`
	Deadline   string `json:"deadline"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo"`
	CreatedBy  string `json:"createdBy"`
}

func (h TicketHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.Ticket
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		items, err = h.Repo.Search(r.Context(), q)
	} else {
		items, err = h.Repo.List(r.Context())
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, t := range items {
		resp = append(resp, ticketJSON(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h TicketHandler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticketJSON(*t))
}

func (h TicketHandler) create(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	t, err := ticketFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.Repo.Create(r.Context(), *t)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticketJSON(*saved))
}

func (h TicketHandler) update(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	t, err := ticketFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.Repo.Update(r.Context(), chi.URLParam(r, "id"), *t)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticketJSON(*saved))
}

func (h TicketHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func ticketFromRequest(req ticketRequest) (*domain.Ticket, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.ClientID == "" || req.ServiceID == "" || req.ActivityID == "" {
		return nil, fmt.Errorf("clientId, serviceId and activityId are required")
	}
	priority := domain.TicketPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("unknown priority %q", req.Priority)
	}
	status := domain.TicketStatus(req.Status)
	if req.Status == "" {
		status = domain.TicketOpen
	}
	if !domain.ValidTicketStatus(status) {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}

	t := domain.Ticket{
		Title:      req.Title,
		ClientID:   req.ClientID,
		ServiceID:  req.ServiceID,
		ActivityID: req.ActivityID,
		Priority:   priority,
		Status:     status,
		AssignedTo: req.AssignedTo,
		CreatedBy:  req.CreatedBy,
	}
	if req.Deadline != "" {
		deadline, err := parseDate(req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline")
		}
		t.Deadline = deadline
	}
	return &t, nil
}

func ticketJSON(t domain.Ticket) map[string]any {
	attachments := make([]map[string]any, 0, len(t.Attachments))
	for _, a := range t.Attachments {
		attachments = append(attachments, map[string]any{
			"id":   a.ID,
			"name": a.Name,
			"size": a.Size,
			"type": a.Type,
			"url":  a.URL,
		})
	}
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"clientId":    t.ClientID,
		"serviceId":   t.ServiceID,
		"activityId":  t.ActivityID,
		"deadline":    t.Deadline.Format(time.RFC3339),
		"priority":    t.Priority,
		"status":      t.Status,
		"assignedTo":  t.AssignedTo,
		"createdBy":   t.CreatedBy,
		"createdAt":   t.CreatedAt.Format(time.RFC3339),
		"attachments": attachments,
	}
}
