package domain

import "time"

// Enumerations
const (
	RoleAdmin      UserRole = "admin"
	RoleAccountant UserRole = "accountant"
	RoleManager    UserRole = "manager"
	RoleStaff      UserRole = "staff"

	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPremium  ClientStatus = "premium"
	ClientPending  ClientStatus = "pending"

	ServiceActive       ServiceStatus = "active"
	ServiceDiscontinued ServiceStatus = "discontinued"

	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"

	PriorityHigh   TicketPriority = "high"
	PriorityMedium TicketPriority = "medium"
	PriorityLow    TicketPriority = "low"

	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketCompleted  TicketStatus = "completed"
	TicketOverdue    TicketStatus = "overdue"
)

type UserRole string
type ClientStatus string
type ServiceStatus string
type Frequency string
type TicketPriority string
type TicketStatus string

// Activity is a single billable compliance task belonging to a service,
// e.g. "GST 3B Filing". ServiceID points back at the owning service.
type Activity struct {
	ID            string
	Name          string
	ServiceID     string
	Frequency     Frequency
	Amount        int64
	Deadline      *time.Time
	FinancialYear string
}

// Service groups activities into an offering such as "GST Services".
// At the catalog level Activities holds the full list; inside a
// Client.Services entry it holds only the subset the client is enrolled in.
type Service struct {
	ID         string
	Name       string
	Status     ServiceStatus
	Activities []Activity
}

type Client struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	BusinessType string
	GSTIN        string
	PAN          string
	Address      string
	Services     []Service
	Status       ClientStatus
	AssignedTo   string
	DateAdded    time.Time
}

type Ticket struct {
	ID          string
	Title       string
	ClientID    string
	ServiceID   string
	ActivityID  string
	Deadline    time.Time
	Priority    TicketPriority
	Status      TicketStatus
	AssignedTo  string
	CreatedBy   string
	CreatedAt   time.Time
	Attachments []Attachment
}

type Attachment struct {
	ID   string
	Name string
	Size int64
	Type string
	URL  string
}

type Document struct {
	ID            string
	Name          string
	FinancialYear string
	ClientID      string
	UploadedOn    time.Time
}

type User struct {
	ID    string
	Name  string
	Email string
	Role  UserRole
}

// ValidPriority reports whether p is one of the known ticket priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ValidTicketStatus reports whether s is one of the known ticket states.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketCompleted, TicketOverdue:
		return true
	}
	return false
}

// ValidClientStatus reports whether s is one of the known client states.
func ValidClientStatus(s ClientStatus) bool {
	switch s {
	case ClientActive, ClientInactive, ClientPremium, ClientPending:
		return true
	}
	return false
}
