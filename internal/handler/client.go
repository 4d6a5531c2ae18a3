package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/enrollment"
	"cafirm-backend/internal/ports"
	"cafirm-backend/internal/relation"
	"cafirm-backend/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

type ClientHandler struct {
	Clients   ports.ClientStore
	Services  ports.ServiceStore
	Tickets   ports.TicketStore
	Documents ports.DocumentStore
}

func (h ClientHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clients", h.list)
	r.Post("/clients", h.create)
	r.Get("/clients/rows", h.rows)
	r.Get("/clients/export", h.export)
	r.Get("/clients/{id}", h.get)
	r.Put("/clients/{id}", h.update)
	r.Delete("/clients/{id}", h.delete)
	r.Get("/clients/{id}/services", h.services)
	r.Get("/clients/{id}/activities", h.activities)
	r.Get("/clients/{id}/tickets", h.tickets)
	r.Get("/clients/{id}/documents", h.documents)
}

type enrollmentRequest struct {
	ServiceID   string   `json:"serviceId"`
	ActivityIDs []string `json:"activityIds"`
}

type clientRequest struct {
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	BusinessType string              `json:"businessType"`
	GSTIN        string              `json:"gstin"`
	PAN          string              `json:"pan"`
	Address      string              `json:"address"`
	Status       string              `json:"status"`
	AssignedTo   string              `json:"assignedTo"`
	Services     []enrollmentRequest `json:"services"`
}

func (h ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.Client
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		items, err = h.Clients.Search(r.Context(), q)
	} else {
		items, err = h.Clients.List(r.Context())
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, clientJSON(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ClientHandler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientJSON(*c))
}

func (h ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	c, err := h.fromRequest(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.Clients.Create(r.Context(), *c)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clientJSON(*saved))
}

func (h ClientHandler) update(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	c, err := h.fromRequest(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := h.Clients.Update(r.Context(), chi.URLParam(r, "id"), *c)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientJSON(*saved))
}

func (h ClientHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Clients.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h ClientHandler) services(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(c.Services))
	for _, s := range c.Services {
		resp = append(resp, serviceJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ClientHandler) activities(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	activities := relation.ActivitiesOf(c.Services)
	resp := make([]map[string]any, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, activityJSON(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ClientHandler) tickets(w http.ResponseWriter, r *http.Request) {
	items, err := h.Tickets.ByClient(r.Context(), chi.URLParam(r, "id"))
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

func (h ClientHandler) documents(w http.ResponseWriter, r *http.Request) {
	items, err := h.Documents.ByClient(r.Context(), chi.URLParam(r, "id"))
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

func (h ClientHandler) rows(w http.ResponseWriter, r *http.Request) {
	items, err := h.Clients.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.ClientRows(items))
}

func (h ClientHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	items, err := h.Clients.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rows := view.ClientRows(items)
	suffix := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := exportClientsCSV(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"clients_%s.csv\"", suffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportClientsXLSX(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"clients_%s.xlsx\"", suffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

// fromRequest validates the payload and sanitizes the enrollment through
// the association editor, so a client can never be saved with an activity
// outside the chosen service's catalog.
func (h ClientHandler) fromRequest(r *http.Request, req clientRequest) (*domain.Client, error) {
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	status := domain.ClientStatus(req.Status)
	if req.Status == "" {
		status = domain.ClientActive
	}
	if !domain.ValidClientStatus(status) {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}

	catalog, err := h.Services.List(r.Context())
	if err != nil {
		return nil, err
	}
	editor := enrollment.NewEditor(catalog)
	ids := make([]string, 0, len(req.Services))
	for _, e := range req.Services {
		ids = append(ids, e.ServiceID)
	}
	editor.SelectServices(ids)
	for _, e := range req.Services {
		for _, activityID := range e.ActivityIDs {
			editor.ToggleActivity(e.ServiceID, activityID, true)
		}
	}

	return &domain.Client{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessType: req.BusinessType,
		GSTIN:        req.GSTIN,
		PAN:          req.PAN,
		Address:      req.Address,
		Services:     editor.Materialize(),
		Status:       status,
		AssignedTo:   req.AssignedTo,
	}, nil
}

func clientJSON(c domain.Client) map[string]any {
	services := make([]map[string]any, 0, len(c.Services))
	for _, s := range c.Services {
		services = append(services, serviceJSON(s))
	}
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"email":        c.Email,
		"phone":        c.Phone,
		"businessType": c.BusinessType,
		"gstin":        c.GSTIN,
		"pan":          c.PAN,
		"address":      c.Address,
		"services":     services,
		"status":       c.Status,
		"assignedTo":   c.AssignedTo,
		"dateAdded":    c.DateAdded,
	}
}

func exportClientsCSV(rows []view.ClientRow) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "name", "email", "phone", "business_type", "status", "assigned_to", "services", "activities"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.ID,
			row.Name,
			row.Email,
			row.Phone,
			row.BusinessType,
			row.Status,
			row.AssignedTo,
			row.ServiceNames,
			row.ActivityNames,
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportClientsXLSX(rows []view.ClientRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Clients"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Name", "Email", "Phone", "Business Type", "Status", "Assigned To", "Services", "Activities"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, row := range rows {
		values := []any{
			row.ID,
			row.Name,
			row.Email,
			row.Phone,
			row.BusinessType,
			row.Status,
			row.AssignedTo,
			row.ServiceNames,
			row.ActivityNames,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 30)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 24)
	_ = f.SetColWidth(sheet, "F", "F", 12)
	_ = f.SetColWidth(sheet, "G", "G", 18)
	_ = f.SetColWidth(sheet, "H", "H", 40)
	_ = f.SetColWidth(sheet, "I", "I", 60)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "I1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
