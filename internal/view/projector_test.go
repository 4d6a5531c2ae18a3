package view_test

import (
	"testing"

	"cafirm-backend/internal/fixtures"
	"cafirm-backend/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRows(t *testing.T) {
	ds, err := fixtures.Load()
	require.NoError(t, err)

	rows := view.ClientRows(ds.Clients)
	require.Len(t, rows, len(ds.Clients))

	abc := rows[0]
	assert.Equal(t, "1", abc.ID)
	assert.Equal(t, "ABC Corporation Pvt Ltd", abc.Name)
	assert.Equal(t, "active", abc.Status)
	assert.Equal(t, "GST Services, Income Tax Services, Accounting Services", abc.ServiceNames)
	assert.Equal(t,
		"GST 3B Filing, GST 1 Filing, GST 9/9C Filing, "+
			"ITR Filing - Individual, ITR Filing - Corporate, TDS Return Filing, "+
			"Bookkeeping, Payroll Processing",
		abc.ActivityNames)
}

func TestClientRowsSingleService(t *testing.T) {
	ds, err := fixtures.Load()
	require.NoError(t, err)

	rows := view.ClientRows(ds.Clients)
	pqr := rows[3]
	assert.Equal(t, "PQR Traders & Co.", pqr.Name)
	assert.Equal(t, "GST Services", pqr.ServiceNames)
	assert.Equal(t, "GST 3B Filing, GST 1 Filing, GST 9/9C Filing", pqr.ActivityNames)
}

func TestClientRowsEmptyInput(t *testing.T) {
	assert.Empty(t, view.ClientRows(nil))
}

func TestServiceActivityRowsCrossJoin(t *testing.T) {
	ds, err := fixtures.Load()
	require.NoError(t, err)

	rows := view.ServiceActivityRows(ds.Services)
	// One row per catalog activity across all services.
	require.Len(t, rows, len(ds.Activities))

	first := rows[0]
	assert.Equal(t, "11", first.ID) // service id + activity id
	assert.Equal(t, "1", first.ServiceID)
	assert.Equal(t, "GST Services", first.ServiceName)
	assert.Equal(t, "active", first.ServiceStatus)
	assert.Equal(t, "GST 3B Filing", first.ActivityName)
	assert.Equal(t, "monthly", first.Frequency)
	assert.Equal(t, int64(1000), first.Amount)
	assert.Equal(t, "2024-25", first.FinancialYear)

	last := rows[len(rows)-1]
	assert.Equal(t, "5", last.ServiceID)
	assert.Equal(t, "Payroll Processing", last.ActivityName)
}

func TestServiceActivityRowsSkipsEmptyCatalogs(t *testing.T) {
	ds, err := fixtures.Load()
	require.NoError(t, err)

	services := ds.Services
	services[0].Activities = nil
	rows := view.ServiceActivityRows(services)
	for _, r := range rows {
		assert.NotEqual(t, "1", r.ServiceID)
	}
}
