package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies what a notification is about.
type Type string

const (
	TypeOverdueNewContact Type = "OverdueNewContact"
	TypeOverdueFollowUp   Type = "OverdueFollowUp"
	TypeDueToday          Type = "DueToday"
	TypeArrivalReminder   Type = "ArrivalReminder"
)

// TypeValues lists every notification type.
var TypeValues = []Type{TypeOverdueNewContact, TypeOverdueFollowUp, TypeDueToday, TypeArrivalReminder}

// Notification is an operator-facing alert about a lead. Created by the
// sweep, marked read by the operator, never otherwise mutated.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"lead_id"`
	Type      Type      `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest is a planner decision to raise one notification.
type CreateRequest struct {
	LeadID uuid.UUID `json:"lead_id"`
	Type   Type      `json:"type"`
}
