package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/handler"
	"cafirm-backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestRouter wires every handler over the fixture-backed stores with
// latency disabled.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	ds, err := fixtures.Load()
	require.NoError(t, err)

	clients := repository.ClientRepository{Data: ds}
	services := repository.ServiceRepository{Data: ds}
	tickets := repository.TicketRepository{Data: ds}
	documents := repository.DocumentRepository{Data: ds}
	users := repository.UserRepository{Data: ds}

	r := chi.NewRouter()
	handler.HealthHandler{Store: repository.Health{Data: ds}}.RegisterRoutes(r)
	handler.DashboardHandler{Clients: clients, Services: services, Tickets: tickets, Documents: documents}.RegisterRoutes(r)
	handler.ClientHandler{Clients: clients, Services: services, Tickets: tickets, Documents: documents}.RegisterRoutes(r)
	handler.ServiceHandler{Repo: services}.RegisterRoutes(r)
	handler.TicketHandler{Repo: tickets}.RegisterRoutes(r)
	handler.DocumentHandler{Repo: documents}.RegisterRoutes(r)
	handler.UserHandler{Repo: users}.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestListClients(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/clients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", env.Status)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)
	assert.Equal(t, "ABC Corporation Pvt Ltd", items[0]["name"])
}

func TestSearchClients(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/clients?q=xyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "XYZ Associates LLP", items[0]["name"])
}

func TestGetClientNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/clients/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestCreateClientSanitizesEnrollment(t *testing.T) {
	r := newTestRouter(t)

	payload := map[string]any{
		"name":  "New Client LLP",
		"email": "new@client.com",
		"services": []map[string]any{
			// Activity 4 belongs to service 2; activity "ghost" to nothing.
			{"serviceId": "1", "activityIds": []string{"1", "4", "ghost"}},
			{"serviceId": "unknown", "activityIds": []string{"1"}},
		},
	}
	rec, env := doJSON(t, r, http.MethodPost, "/clients", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Services []struct {
			ID         string `json:"id"`
			Activities []struct {
				ID string `json:"id"`
			} `json:"activities"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.Status)
	require.Len(t, created.Services, 1)
	assert.Equal(t, "1", created.Services[0].ID)
	require.Len(t, created.Services[0].Activities, 1)
	assert.Equal(t, "1", created.Services[0].Activities[0].ID)
}

func TestCreateClientValidation(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/clients", map[string]any{"email": "x@y.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "name and email")

	rec, env = doJSON(t, r, http.MethodPost, "/clients", map[string]any{
		"name": "X", "email": "x@y.com", "status": "frozen",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "unknown status")
}

func TestUpdateClientNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodPut, "/clients/404", map[string]any{
		"name": "X", "email": "x@y.com",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientSubresources(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/clients/1/services", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var services []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &services))
	assert.Len(t, services, 3)

	rec, env = doJSON(t, r, http.MethodGet, "/clients/1/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var activities []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &activities))
	assert.Len(t, activities, 8)

	rec, env = doJSON(t, r, http.MethodGet, "/clients/1/tickets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tickets []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &tickets))
	assert.Len(t, tickets, 2)

	rec, env = doJSON(t, r, http.MethodGet, "/clients/1/documents", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var documents []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &documents))
	assert.Len(t, documents, 3)
}

func TestClientRowsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/clients/rows", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		Name         string `json:"name"`
		ServiceNames string `json:"serviceNames"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, "GST Services, Income Tax Services, Accounting Services", rows[0].ServiceNames)
}

func TestExportClientsCSV(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/clients/export?format=csv", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6) // header + 5 clients
	assert.True(t, strings.HasPrefix(lines[0], "id,name,email"))
}

func TestExportClientsBadFormat(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/clients/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceRowsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/services/rows", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		ID           string `json:"id"`
		ServiceID    string `json:"serviceId"`
		ActivityName string `json:"activityName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 12)
	assert.Equal(t, "11", rows[0].ID)
	assert.Equal(t, "GST 3B Filing", rows[0].ActivityName)
}

func TestSearchServicesByActivityName(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/services?q=payroll", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Accounting Services", items[0]["name"])
}

func TestCreateTicketDefaultsAndValidation(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/tickets", map[string]any{
		"title": "GST 3B Filing for February 2024", "clientId": "1", "serviceId": "1", "activityId": "1",
		"deadline": "2024-03-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "medium", created["priority"])
	assert.Equal(t, "open", created["status"])

	rec, env = doJSON(t, r, http.MethodPost, "/tickets", map[string]any{
		"title": "No refs",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "required")

	rec, env = doJSON(t, r, http.MethodPost, "/tickets", map[string]any{
		"title": "Bad priority", "clientId": "1", "serviceId": "1", "activityId": "1",
		"priority": "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "unknown priority")
}

func TestCreateDocumentValidation(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodPost, "/documents", map[string]any{
		"name": "Bank Statements - Feb 2024",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "clientId")

	rec, env = doJSON(t, r, http.MethodPost, "/documents", map[string]any{
		"name": "Bank Statements - Feb 2024", "clientId": "1", "financialYear": "2024-25",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created["id"])
}

func TestListDocumentsByClient(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/documents?clientId=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestListUsers(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)

	rec, env = doJSON(t, r, http.MethodGet, "/users?q=sarah", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "manager", items[0]["role"])
}

func TestDashboardSummary(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, http.MethodGet, "/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		TotalClients   int `json:"totalClients"`
		OpenTickets    int `json:"openTickets"`
		ActiveServices int `json:"activeServices"`
		Documents      int `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 5, summary.TotalClients)
	assert.Equal(t, 2, summary.OpenTickets)
	assert.Equal(t, 5, summary.ActiveServices)
	assert.Equal(t, 8, summary.Documents)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
