package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/ports"
	"cafirm-backend/internal/view"
	"github.com/go-chi/chi/v5"
)

type ServiceHandler struct {
	Repo ports.ServiceStore
}

func (h ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/services", h.list)
	r.Post("/services", h.create)
	r.Get("/services/rows", h.rows)
	r.Get("/services/{id}", h.get)
	r.Put("/services/{id}", h.update)
	r.Delete("/services/{id}", h.delete)
	r.Get("/services/{id}/activities", h.activities)
}

type activityRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Frequency     string `json:"frequency"`
	Amount        int64  `json:"amount"`
	Deadline      string `json:"deadline"`
	FinancialYear string `json:"financialYear"`
}

type serviceRequest struct {
	Name       string            `json:"name"`
	Status     string            `json:"status"`
	Activities []activityRequest `json:"activities"`
}

func (h ServiceHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.Service
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
	for _, s := range items {
		resp = append(resp, serviceJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ServiceHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceJSON(*s))
}

func (h ServiceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s, err := serviceFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.Repo.Create(r.Context(), *s)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, serviceJSON(*saved))
}

func (h ServiceHandler) update(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s, err := serviceFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.Repo.Update(r.Context(), chi.URLParam(r, "id"), *s)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, serviceJSON(*saved))
}

func (h ServiceHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h ServiceHandler) activities(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(s.Activities))
	for _, a := range s.Activities {
		resp = append(resp, activityJSON(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ServiceHandler) rows(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.ServiceActivityRows(items))
}

func serviceFromRequest(req serviceRequest) (*domain.Service, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	status := domain.ServiceStatus(req.Status)
	if req.Status == "" {
		status = domain.ServiceActive
	}
	if status != domain.ServiceActive && status != domain.ServiceDiscontinued {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}

	activities := make([]domain.Activity, 0, len(req.Activities))
	for _, a := range req.Activities {
		if a.Name == "" {
			return nil, fmt.Errorf("activity name is required")
		}
		if a.Amount < 0 {
			return nil, fmt.Errorf("activity %q amount must not be negative", a.Name)
		}
		act := domain.Activity{
			ID:            a.ID,
			Name:          a.Name,
			Frequency:     domain.Frequency(a.Frequency),
			Amount:        a.Amount,
			FinancialYear: a.FinancialYear,
		}
		if a.Deadline != "" {
			t, err := parseDate(a.Deadline)
			if err != nil {
				return nil, fmt.Errorf("activity %q has invalid deadline", a.Name)
			}
			act.Deadline = &t
		}
		activities = append(activities, act)
	}

	return &domain.Service{
		Name:       req.Name,
		Status:     status,
		Activities: activities,
	}, nil
}

func serviceJSON(s domain.Service) map[string]any {
	activities := make([]map[string]any, 0, len(s.Activities))
	for _, a := range s.Activities {
		activities = append(activities, activityJSON(a))
	}
	return map[string]any{
		"id":         s.ID,
		"name":       s.Name,
		"status":     s.Status,
		"activities": activities,
	}
}

func activityJSON(a domain.Activity) map[string]any {
	out := map[string]any{
		"id":            a.ID,
		"name":          a.Name,
		"serviceId":     a.ServiceID,
		"frequency":     a.Frequency,
		"amount":        a.Amount,
		"financialYear": a.FinancialYear,
	}
	if a.Deadline != nil {
		out["deadline"] = a.Deadline.Format(time.RFC3339)
	}
	return out
}
