// Package view flattens nested entities into display-ready rows for the
// tabular grids. Projections are pure functions of a snapshot and hold no
// state; callers recompute them whenever the underlying data changes.
package view

import (
	"strings"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/relation"
)

// ClientRow is one grid row per client, with the service and activity
// names pre-joined for display.
type ClientRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BusinessType  string `json:"businessType"`
	Status        string `json:"status"`
	AssignedTo    string `json:"assignedTo"`
	ServiceNames  string `json:"serviceNames"`
	ActivityNames string `json:"activityNames"`
}

// ServiceActivityRow is one grid row per (service, activity) pair across
// the full catalog of every service, not any client-specific subset.
type ServiceActivityRow struct {
	ID            string `json:"id"`
	ServiceID     string `json:"serviceId"`
	ServiceName   string `json:"serviceName"`
	ServiceStatus string `json:"serviceStatus"`
	ActivityID    string `json:"activityId"`
	ActivityName  string `json:"activityName"`
	Frequency     string `json:"frequency"`
	Amount        int64  `json:"amount"`
	FinancialYear string `json:"financialYear"`
}

// ClientRows projects one row per client. ActivityNames follows the
// resolver's concatenation order: service order, then activity order.
func ClientRows(clients []domain.Client) []ClientRow {
	rows := make([]ClientRow, 0, len(clients))
	for _, c := range clients {
		serviceNames := make([]string, 0, len(c.Services))
		for _, s := range c.Services {
			serviceNames = append(serviceNames, s.Name)
		}
		activities := relation.ActivitiesForClient(clients, c.ID)
		activityNames := make([]string, 0, len(activities))
		for _, a := range activities {
			activityNames = append(activityNames, a.Name)
		}
		rows = append(rows, ClientRow{
			ID:            c.ID,
			Name:          c.Name,
			Email:         c.Email,
			Phone:         c.Phone,
			BusinessType:  c.BusinessType,
			Status:        string(c.Status),
			AssignedTo:    c.AssignedTo,
			ServiceNames:  strings.Join(serviceNames, ", "),
			ActivityNames: strings.Join(activityNames, ", "),
		})
	}
	return rows
}

// ServiceActivityRows projects the cross-join of every service with its
// own activity catalog. The row id concatenates the two entity ids.
func ServiceActivityRows(services []domain.Service) []ServiceActivityRow {
	var rows []ServiceActivityRow
	for _, s := range services {
		for _, a := range s.Activities {
			rows = append(rows, ServiceActivityRow{
				ID:            s.ID + a.ID,
				ServiceID:     s.ID,
				ServiceName:   s.Name,
				ServiceStatus: string(s.Status),
				ActivityID:    a.ID,
				ActivityName:  a.Name,
				Frequency:     string(a.Frequency),
				Amount:        a.Amount,
				FinancialYear: a.FinancialYear,
			})
		}
	}
	return rows
}
