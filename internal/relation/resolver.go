// Package relation holds the pure lookups that derive one entity set from
// another. Everything here is synchronous and never fails: unknown ids
// resolve to empty results.
package relation

import "cafirm-backend/internal/domain"

// ActivitiesForService returns the activities owned by serviceID in
// catalog order.
func ActivitiesForService(activities []domain.Activity, serviceID string) []domain.Activity {
	var out []domain.Activity
	for _, a := range activities {
		if a.ServiceID == serviceID {
			out = append(out, a)
		}
	}
	return out
}

// ServiceByID returns the service with the given id, or nil.
func ServiceByID(services []domain.Service, id string) *domain.Service {
	for i := range services {
		if services[i].ID == id {
			return &services[i]
		}
	}
	return nil
}

// ClientByID returns the client with the given id, or nil.
func ClientByID(clients []domain.Client, id string) *domain.Client {
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i]
		}
	}
	return nil
}

// ServicesForClient returns the client's attached service list, empty when
// the client is unknown or has none.
func ServicesForClient(clients []domain.Client, clientID string) []domain.Service {
	c := ClientByID(clients, clientID)
	if c == nil {
		return nil
	}
	return c.Services
}

// ActivitiesOf flattens the activities of the given services, in service
// order then activity order. Activities appearing under more than one
// service are kept as-is, not deduplicated.
func ActivitiesOf(services []domain.Service) []domain.Activity {
	var out []domain.Activity
	for _, s := range services {
		out = append(out, s.Activities...)
	}
	return out
}

// ActivitiesForClient concatenates the activities of every service the
// client is attached to.
func ActivitiesForClient(clients []domain.Client, clientID string) []domain.Activity {
	return ActivitiesOf(ServicesForClient(clients, clientID))
}

// TicketsForClient filters tickets by client id, preserving fixture order.
func TicketsForClient(tickets []domain.Ticket, clientID string) []domain.Ticket {
	var out []domain.Ticket
	for _, t := range tickets {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out
}

// DocumentsForClient filters documents by client id, preserving fixture order.
func DocumentsForClient(documents []domain.Document, clientID string) []domain.Document {
	var out []domain.Document
	for _, d := range documents {
		if d.ClientID == clientID {
			out = append(out, d)
		}
	}
	return out
}
