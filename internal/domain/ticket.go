package domain

import "time"

// TicketPriority enumerates common urgency labels. Priority is only
// validated for presence, so values outside this set are stored as-is.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Ticket is a support request owned by exactly one user. Ownership is set
// at creation and never changes.
type Ticket struct {
	ID          string
	Subject     string
	Description string
	Priority    TicketPriority
	UserID      string
	CreatedAt   time.Time
}
