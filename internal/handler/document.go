package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/ports"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler struct {
	Repo ports.DocumentStore
}

func (h DocumentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/documents", h.list)
	r.Post("/documents", h.create)
	r.Get("/documents/{id}", h.get)
	r.Delete("/documents/{id}", h.delete)
}

func (h DocumentHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.Document
		err   error
	)
	switch {
	case r.URL.Query().Get("clientId") != "":
		items, err = h.Repo.ByClient(r.Context(), r.URL.Query().Get("clientId"))
	case r.URL.Query().Get("q") != "":
		items, err = h.Repo.Search(r.Context(), r.URL.Query().Get("q"))
	default:
		items, err = h.Repo.List(r.Context())
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, d := range items {
		resp = append(resp, documentJSON(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h DocumentHandler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentJSON(*d))
}

func (h DocumentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		FinancialYear string `json:"financialYear"`
		ClientID      string `json:"clientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" || req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "name and clientId are required")
		return
	}
	saved, err := h.Repo.Create(r.Context(), domain.Document{
		Name:          req.Name,
		FinancialYear: req.FinancialYear,
		ClientID:      req.ClientID,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, documentJSON(*saved))
}

func (h DocumentHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func documentJSON(d domain.Document) map[string]any {
	return map[string]any{
		"id":            d.ID,
		"name":          d.Name,
		"financialYear": d.FinancialYear,
		"clientId":      d.ClientID,
		"uploadedOn":    d.UploadedOn.Format(time.RFC3339),
	}
}
