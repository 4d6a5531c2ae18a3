// Package enrollment tracks a client's in-progress service/activity
// selection during a single edit session and turns it into a persistable
// Client.Services value.
package enrollment

import "cafirm-backend/internal/domain"

type pair struct {
	service  domain.Service
	selected map[string]bool // activity ids, always drawn from the catalog
}

// Editor maintains an ordered list of (service, selected activities)
// pairs, at most one per service id. The selection for a service can
// never leave that service's full catalog.
type Editor struct {
	catalog []domain.Service
	pairs   []pair
}

// NewEditor creates an editor over the full service catalog. Service ids
// passed to the mutating methods are resolved against this catalog.
func NewEditor(catalog []domain.Service) *Editor {
	return &Editor{catalog: catalog}
}

func (e *Editor) catalogService(id string) *domain.Service {
	for i := range e.catalog {
		if e.catalog[i].ID == id {
			return &e.catalog[i]
		}
	}
	return nil
}

func (e *Editor) pairFor(serviceID string) *pair {
	for i := range e.pairs {
		if e.pairs[i].service.ID == serviceID {
			return &e.pairs[i]
		}
	}
	return nil
}

// SelectServices replaces the target set of services. Pairs whose id is no
// longer targeted are dropped with their selections; pairs that survive keep
// their selections and relative order; new ids are appended in the order
// supplied, each starting with an empty selection. Duplicate and unknown ids
// are ignored.
func (e *Editor) SelectServices(ids []string) {
	target := make(map[string]bool, len(ids))
	for _, id := range ids {
		target[id] = true
	}

	kept := e.pairs[:0]
	for _, p := range e.pairs {
		if target[p.service.ID] {
			kept = append(kept, p)
		}
	}
	e.pairs = kept

	for _, id := range ids {
		if e.pairFor(id) != nil {
			continue
		}
		svc := e.catalogService(id)
		if svc == nil {
			continue
		}
		e.pairs = append(e.pairs, pair{service: *svc, selected: map[string]bool{}})
	}
}

// ToggleActivity adds or removes one activity from a service's selection.
// Adding is a no-op when the activity id is not in that service's catalog;
// both directions are no-ops when the service has no pair.
func (e *Editor) ToggleActivity(serviceID, activityID string, included bool) {
	p := e.pairFor(serviceID)
	if p == nil {
		return
	}
	if !included {
		delete(p.selected, activityID)
		return
	}
	for _, a := range p.service.Activities {
		if a.ID == activityID {
			p.selected[activityID] = true
			return
		}
	}
}

// SelectAll replaces a service's selection with its full catalog.
func (e *Editor) SelectAll(serviceID string) {
	p := e.pairFor(serviceID)
	if p == nil {
		return
	}
	p.selected = make(map[string]bool, len(p.service.Activities))
	for _, a := range p.service.Activities {
		p.selected[a.ID] = true
	}
}

// DeselectAll empties a service's selection.
func (e *Editor) DeselectAll(serviceID string) {
	p := e.pairFor(serviceID)
	if p == nil {
		return
	}
	p.selected = map[string]bool{}
}

// Selection returns the currently selected activities for a service, in
// catalog order. Nil when the service has no pair.
func (e *Editor) Selection(serviceID string) []domain.Activity {
	p := e.pairFor(serviceID)
	if p == nil {
		return nil
	}
	return pick(p.service.Activities, p.selected)
}

// ServiceIDs returns the ids of the current pairs in order.
func (e *Editor) ServiceIDs() []string {
	ids := make([]string, 0, len(e.pairs))
	for _, p := range e.pairs {
		ids = append(ids, p.service.ID)
	}
	return ids
}

// Materialize produces the Client.Services value for the current state:
// each pair's service with its activities replaced by the selected subset,
// in catalog order.
func (e *Editor) Materialize() []domain.Service {
	out := make([]domain.Service, 0, len(e.pairs))
	for _, p := range e.pairs {
		svc := p.service
		svc.Activities = pick(p.service.Activities, p.selected)
		out = append(out, svc)
	}
	return out
}

func pick(catalog []domain.Activity, selected map[string]bool) []domain.Activity {
	out := make([]domain.Activity, 0, len(selected))
	for _, a := range catalog {
		if selected[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
