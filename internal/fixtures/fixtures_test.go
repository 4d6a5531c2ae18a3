package fixtures

import (
	"testing"

	"cafirm-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Services, 5)
	assert.Len(t, ds.Activities, 12)
	assert.Len(t, ds.Clients, 5)
	assert.Len(t, ds.Tickets, 7)
	assert.Len(t, ds.Documents, 8)
	assert.Len(t, ds.Users, 5)
	assert.Len(t, ds.TeamMembers, 5)
}

func TestValidateDuplicateServiceID(t *testing.T) {
	ds := build()
	ds.Services = append(ds.Services, domain.Service{ID: "1", Name: "Shadow"})
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate service id")
}

func TestValidateActivityWithUnknownService(t *testing.T) {
	ds := build()
	ds.Activities = append(ds.Activities, domain.Activity{ID: "99", Name: "Orphan", ServiceID: "404"})
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service")
}

func TestValidateCatalogOwnership(t *testing.T) {
	ds := build()
	// Put an income tax activity inside the GST catalog.
	stray := ds.Activities[3]
	ds.Services[0].Activities = append(ds.Services[0].Activities, stray)
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owned by service")
}

func TestValidateEnrollmentOutsideCatalog(t *testing.T) {
	ds := build()
	// Enroll client 4 in a GST service entry carrying an audit activity.
	enrolled := ds.Clients[3].Services[0]
	enrolled.Activities = append([]domain.Activity{}, ds.Activities[6])
	ds.Clients[3].Services = []domain.Service{enrolled}
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside service")
}

func TestValidateTicketReferences(t *testing.T) {
	ds := build()
	ds.Tickets = append(ds.Tickets, domain.Ticket{
		ID: "99", Title: "Bad", ClientID: "404", ServiceID: "1", ActivityID: "1",
		Priority: domain.PriorityLow, Status: domain.TicketOpen,
	})
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown client")
}

func TestValidateTicketActivityServiceMismatch(t *testing.T) {
	ds := build()
	// Activity 4 belongs to service 2, ticket claims service 1.
	ds.Tickets = append(ds.Tickets, domain.Ticket{
		ID: "99", Title: "Bad", ClientID: "1", ServiceID: "1", ActivityID: "4",
		Priority: domain.PriorityLow, Status: domain.TicketOpen,
	})
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to service")
}

func TestValidateTicketEnums(t *testing.T) {
	ds := build()
	ds.Tickets[0].Priority = "urgent"
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown priority")

	ds = build()
	ds.Tickets[0].Status = "parked"
	err = ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestValidateDocumentWithUnknownClient(t *testing.T) {
	ds := build()
	ds.Documents = append(ds.Documents, domain.Document{ID: "99", Name: "Orphan", ClientID: "404"})
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown client")
}

func TestValidateDuplicateUserID(t *testing.T) {
	ds := build()
	ds.Users = append(ds.Users, domain.User{ID: "1", Name: "Clone"})
	err := ds.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate user id")
}
