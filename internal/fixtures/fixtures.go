// Package fixtures holds the static dataset that stands in for a real
// data source while no backend database is wired. Load validates every
// cross-reference once, so lookup sites can trust ids blindly.
package fixtures

import (
	"fmt"
	"time"

	"cafirm-backend/internal/domain"
	"cafirm-backend/internal/relation"
)

// Dataset is one immutable snapshot of every entity collection.
// Repositories hand out copies and never write back, which is what makes
// the memory backend deliberately non-durable.
type Dataset struct {
	Clients     []domain.Client
	Services    []domain.Service
	Activities  []domain.Activity
	Tickets     []domain.Ticket
	Documents   []domain.Document
	Users       []domain.User
	TeamMembers []string
}

// Load builds the static dataset and fails fast on any dangling reference.
func Load() (*Dataset, error) {
	ds := build()
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	return ds, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func build() *Dataset {
	activities := []domain.Activity{
		// GST
		{ID: "1", Name: "GST 3B Filing", ServiceID: "1", Frequency: domain.FrequencyMonthly, Amount: 1000, Deadline: datePtr(2024, 2, 20), FinancialYear: "2024-25"},
		{ID: "2", Name: "GST 1 Filing", ServiceID: "1", Frequency: domain.FrequencyMonthly, Amount: 1500, Deadline: datePtr(2024, 2, 11), FinancialYear: "2024-25"},
		{ID: "3", Name: "GST 9/9C Filing", ServiceID: "1", Frequency: domain.FrequencyYearly, Amount: 2000, Deadline: datePtr(2024, 3, 31), FinancialYear: "2024-25"},
		// Income tax
		{ID: "4", Name: "ITR Filing - Individual", ServiceID: "2", Frequency: domain.FrequencyYearly, Amount: 2000, Deadline: datePtr(2024, 7, 31), FinancialYear: "2024-25"},
		{ID: "5", Name: "ITR Filing - Corporate", ServiceID: "2", Frequency: domain.FrequencyYearly, Amount: 5000, Deadline: datePtr(2024, 9, 30), FinancialYear: "2024-25"},
		{ID: "6", Name: "TDS Return Filing", ServiceID: "2", Frequency: domain.FrequencyQuarterly, Amount: 2500, Deadline: datePtr(2024, 1, 31), FinancialYear: "2024-25"},
		// Audit
		{ID: "7", Name: "Statutory Audit", ServiceID: "3", Frequency: domain.FrequencyYearly, Amount: 15000, Deadline: datePtr(2024, 9, 30), FinancialYear: "2024-25"},
		{ID: "8", Name: "Tax Audit", ServiceID: "3", Frequency: domain.FrequencyYearly, Amount: 10000, Deadline: datePtr(2024, 9, 30), FinancialYear: "2024-25"},
		// ROC
		{ID: "9", Name: "Annual Return Filing", ServiceID: "4", Frequency: domain.FrequencyYearly, Amount: 8000, Deadline: datePtr(2024, 10, 28), FinancialYear: "2024-25"},
		{ID: "10", Name: "Compliance Report", ServiceID: "4", Frequency: domain.FrequencyQuarterly, Amount: 5000, Deadline: datePtr(2024, 3, 30), FinancialYear: "2024-25"},
		// Accounting
		{ID: "11", Name: "Bookkeeping", ServiceID: "5", Frequency: domain.FrequencyMonthly, Amount: 5000, Deadline: datePtr(2024, 2, 7), FinancialYear: "2024-25"},
		{ID: "12", Name: "Payroll Processing", ServiceID: "5", Frequency: domain.FrequencyMonthly, Amount: 4000, Deadline: datePtr(2024, 2, 7), FinancialYear: "2024-25"},
	}

	catalog := func(serviceID string) []domain.Activity {
		return relation.ActivitiesForService(activities, serviceID)
	}

	services := []domain.Service{
		{ID: "1", Name: "GST Services", Status: domain.ServiceActive, Activities: catalog("1")},
		{ID: "2", Name: "Income Tax Services", Status: domain.ServiceActive, Activities: catalog("2")},
		{ID: "3", Name: "Audit Services", Status: domain.ServiceActive, Activities: catalog("3")},
		{ID: "4", Name: "ROC Services", Status: domain.ServiceActive, Activities: catalog("4")},
		{ID: "5", Name: "Accounting Services", Status: domain.ServiceActive, Activities: catalog("5")},
	}

	clients := []domain.Client{
		{
			ID:           "1",
			Name:         "ABC Corporation Pvt Ltd",
			Email:        "contact@abccorp.com",
			Phone:        "+91 9876543210",
			BusinessType: "Private Limited",
			GSTIN:        "07AABCU9603R1ZM",
			PAN:          "AABCU9603R",
			Address:      "123 Business Park, Connaught Place, New Delhi, India - 110001",
			Services:     []domain.Service{services[0], services[1], services[4]}, // GST, Income Tax, Accounting
			Status:       domain.ClientActive,
			AssignedTo:   "John Doe",
			DateAdded:    date(2023, 1, 15),
		},
		{
			ID:           "2",
			Name:         "XYZ Associates LLP",
			Email:        "info@xyzassociates.com",
			Phone:        "+91 9123456789",
			BusinessType: "Limited Liability Partnership",
			GSTIN:        "08BXYZA1234M1Z2",
			PAN:          "BXYZA1234M",
			Address:      "456 Trade Center, Bandra Kurla Complex, Mumbai, India - 400051",
			Services:     []domain.Service{services[0], services[3]}, // GST, ROC
			Status:       domain.ClientPremium,
			AssignedTo:   "Jane Smith",
			DateAdded:    date(2023, 3, 20),
		},
		{
			ID:           "3",
			Name:         "DEF Enterprises",
			Email:        "support@defent.com",
			Phone:        "+91 9988776655",
			BusinessType: "Sole Proprietorship",
			GSTIN:        "09CDEFE5678N2Z3",
			PAN:          "CDEFE5678N",
			Address:      "789 Industrial Area, Electronic City, Bangalore, India - 560100",
			Services:     []domain.Service{services[0], services[1], services[2]}, // GST, Income Tax, Audit
			Status:       domain.ClientActive,
			AssignedTo:   "Mark Lee",
			DateAdded:    date(2023, 2, 10),
		},
		{
			ID:           "4",
			Name:         "PQR Traders & Co.",
			Email:        "accounts@pqrtraders.com",
			Phone:        "+91 8899776655",
			BusinessType: "Partnership Firm",
			GSTIN:        "06DPQRT9012O3Z4",
			PAN:          "DPQRT9012O",
			Address:      "321 Market Street, T Nagar, Chennai, India - 600017",
			Services:     []domain.Service{services[0]}, // only GST
			Status:       domain.ClientPending,
			AssignedTo:   "Sarah Wilson",
			DateAdded:    date(2023, 4, 5),
		},
		{
			ID:           "5",
			Name:         "LMN Industries Ltd",
			Email:        "finance@lmnindustries.com",
			Phone:        "+91 7766554433",
			BusinessType: "Public Limited",
			GSTIN:        "10ELMNI2345P4Z5",
			PAN:          "ELMNI2345P",
			Address:      "555 Corporate Tower, Salt Lake, Kolkata, India - 700091",
			Services:     services, // all services
			Status:       domain.ClientPremium,
			AssignedTo:   "John Doe",
			DateAdded:    date(2023, 5, 12),
		},
	}

	documents := []domain.Document{
		{ID: "1", Name: "PAN Card - ABC Corporation", FinancialYear: "2024-25", ClientID: "1", UploadedOn: date(2024, 1, 15)},
		{ID: "2", Name: "GST Registration Certificate", FinancialYear: "2024-25", ClientID: "1", UploadedOn: date(2024, 1, 16)},
		{ID: "3", Name: "Audited Financial Statements FY 2023-24", FinancialYear: "2023-24", ClientID: "2", UploadedOn: date(2024, 1, 10)},
		{ID: "4", Name: "ITR Acknowledgement FY 2023-24", FinancialYear: "2023-24", ClientID: "3", UploadedOn: date(2024, 1, 20)},
		{ID: "5", Name: "Partnership Deed - XYZ Associates", FinancialYear: "2024-25", ClientID: "2", UploadedOn: date(2024, 1, 5)},
		{ID: "6", Name: "Bank Statements - Jan 2024", FinancialYear: "2024-25", ClientID: "1", UploadedOn: date(2024, 1, 25)},
		{ID: "7", Name: "TDS Certificate Q3 FY24", FinancialYear: "2023-24", ClientID: "4", UploadedOn: date(2024, 1, 18)},
		{ID: "8", Name: "ROC Form MGT-7 FY 2022-23", FinancialYear: "2022-23", ClientID: "5", UploadedOn: date(2024, 1, 22)},
	}

	tickets := []domain.Ticket{
		{ID: "1", Title: "GST 3B Filing for January 2024", ClientID: "1", ServiceID: "1", ActivityID: "1", Deadline: date(2024, 2, 20), Priority: domain.PriorityHigh, Status: domain.TicketOpen, AssignedTo: "John Doe", CreatedBy: "admin", CreatedAt: date(2024, 1, 28)},
		{ID: "2", Title: "Income Tax Return FY 2023-24", ClientID: "3", ServiceID: "2", ActivityID: "4", Deadline: date(2024, 7, 31), Priority: domain.PriorityMedium, Status: domain.TicketInProgress, AssignedTo: "Jane Smith", CreatedBy: "admin", CreatedAt: date(2024, 1, 25)},
		{ID: "3", Title: "Statutory Audit FY 2023-24", ClientID: "2", ServiceID: "3", ActivityID: "7", Deadline: date(2024, 3, 15), Priority: domain.PriorityHigh, Status: domain.TicketOpen, AssignedTo: "Mark Lee", CreatedBy: "admin", CreatedAt: date(2024, 1, 20)},
		{ID: "4", Title: "Annual ROC Filing FY 2023-24", ClientID: "5", ServiceID: "4", ActivityID: "9", Deadline: date(2024, 4, 30), Priority: domain.PriorityMedium, Status: domain.TicketCompleted, AssignedTo: "Sarah Wilson", CreatedBy: "admin", CreatedAt: date(2024, 1, 15)},
		{ID: "5", Title: "Monthly Bookkeeping - January 2024", ClientID: "1", ServiceID: "5", ActivityID: "11", Deadline: date(2024, 2, 7), Priority: domain.PriorityLow, Status: domain.TicketOverdue, AssignedTo: "Mike Johnson", CreatedBy: "admin", CreatedAt: date(2024, 1, 30)},
		{ID: "6", Title: "TDS Return Q3 FY 2023-24", ClientID: "4", ServiceID: "2", ActivityID: "6", Deadline: date(2024, 1, 31), Priority: domain.PriorityHigh, Status: domain.TicketCompleted, AssignedTo: "Jane Smith", CreatedBy: "admin", CreatedAt: date(2024, 1, 10)},
		{ID: "7", Title: "GST 1 Filing for January 2024", ClientID: "2", ServiceID: "1", ActivityID: "2", Deadline: date(2024, 2, 11), Priority: domain.PriorityMedium, Status: domain.TicketInProgress, AssignedTo: "John Doe", CreatedBy: "admin", CreatedAt: date(2024, 1, 29)},
	}

	users := []domain.User{
		{ID: "1", Name: "John Doe", Email: "admin@cafirm.com", Role: domain.RoleAdmin},
		{ID: "2", Name: "Jane Smith", Email: "jane.smith@cafirm.com", Role: domain.RoleStaff},
		{ID: "3", Name: "Mark Lee", Email: "mark.lee@cafirm.com", Role: domain.RoleStaff},
		{ID: "4", Name: "Sarah Wilson", Email: "sarah.wilson@cafirm.com", Role: domain.RoleManager},
		{ID: "5", Name: "Mike Johnson", Email: "mike.johnson@cafirm.com", Role: domain.RoleStaff},
	}

	return &Dataset{
		Clients:     clients,
		Services:    services,
		Activities:  activities,
		Tickets:     tickets,
		Documents:   documents,
		Users:       users,
		TeamMembers: []string{"John Doe", "Jane Smith", "Mark Lee", "Sarah Wilson", "Mike Johnson"},
	}
}

// Validate checks id uniqueness and referential integrity across all
// collections. Lookups elsewhere assume the dataset passed this once.
func (d *Dataset) Validate() error {
	serviceByID := map[string]domain.Service{}
	for _, s := range d.Services {
		if _, dup := serviceByID[s.ID]; dup {
			return fmt.Errorf("duplicate service id %q", s.ID)
		}
		serviceByID[s.ID] = s
	}

	activityByID := map[string]domain.Activity{}
	for _, a := range d.Activities {
		if _, dup := activityByID[a.ID]; dup {
			return fmt.Errorf("duplicate activity id %q", a.ID)
		}
		if _, ok := serviceByID[a.ServiceID]; !ok {
			return fmt.Errorf("activity %q references unknown service %q", a.ID, a.ServiceID)
		}
		activityByID[a.ID] = a
	}

	for _, s := range d.Services {
		for _, a := range s.Activities {
			if a.ServiceID != s.ID {
				return fmt.Errorf("service %q catalog contains activity %q owned by service %q", s.ID, a.ID, a.ServiceID)
			}
			if _, ok := activityByID[a.ID]; !ok {
				return fmt.Errorf("service %q catalog contains unknown activity %q", s.ID, a.ID)
			}
		}
	}

	clientByID := map[string]domain.Client{}
	for _, c := range d.Clients {
		if _, dup := clientByID[c.ID]; dup {
			return fmt.Errorf("duplicate client id %q", c.ID)
		}
		clientByID[c.ID] = c
		for _, enrolled := range c.Services {
			full, ok := serviceByID[enrolled.ID]
			if !ok {
				return fmt.Errorf("client %q enrolled in unknown service %q", c.ID, enrolled.ID)
			}
			// Enrolled activities must be a subset of the service catalog.
			inCatalog := map[string]bool{}
			for _, a := range full.Activities {
				inCatalog[a.ID] = true
			}
			for _, a := range enrolled.Activities {
				if !inCatalog[a.ID] {
					return fmt.Errorf("client %q enrolled in activity %q outside service %q catalog", c.ID, a.ID, enrolled.ID)
				}
			}
		}
	}

	seenTickets := map[string]bool{}
	for _, t := range d.Tickets {
		if seenTickets[t.ID] {
			return fmt.Errorf("duplicate ticket id %q", t.ID)
		}
		seenTickets[t.ID] = true
		if _, ok := clientByID[t.ClientID]; !ok {
			return fmt.Errorf("ticket %q references unknown client %q", t.ID, t.ClientID)
		}
		if _, ok := serviceByID[t.ServiceID]; !ok {
			return fmt.Errorf("ticket %q references unknown service %q", t.ID, t.ServiceID)
		}
		act, ok := activityByID[t.ActivityID]
		if !ok {
			return fmt.Errorf("ticket %q references unknown activity %q", t.ID, t.ActivityID)
		}
		if act.ServiceID != t.ServiceID {
			return fmt.Errorf("ticket %q activity %q belongs to service %q, not %q", t.ID, t.ActivityID, act.ServiceID, t.ServiceID)
		}
		if !domain.ValidPriority(t.Priority) {
			return fmt.Errorf("ticket %q has unknown priority %q", t.ID, t.Priority)
		}
		if !domain.ValidTicketStatus(t.Status) {
			return fmt.Errorf("ticket %q has unknown status %q", t.ID, t.Status)
		}
	}

	seenDocs := map[string]bool{}
	for _, doc := range d.Documents {
		if seenDocs[doc.ID] {
			return fmt.Errorf("duplicate document id %q", doc.ID)
		}
		seenDocs[doc.ID] = true
		if _, ok := clientByID[doc.ClientID]; !ok {
			return fmt.Errorf("document %q references unknown client %q", doc.ID, doc.ClientID)
		}
	}

	seenUsers := map[string]bool{}
	for _, u := range d.Users {
		if seenUsers[u.ID] {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		seenUsers[u.ID] = true
	}

	return nil
}
