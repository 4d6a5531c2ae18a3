package handler

import (
	"net/http"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/ports"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	Repo ports.UserStore
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Get("/users/{id}", h.get)
}

func (h UserHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.User
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
	for _, u := range items {
		resp = append(resp, userJSON(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h UserHandler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userJSON(*u))
}

func userJSON(u domain.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
