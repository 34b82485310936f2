package leads

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is a pipeline stage. Values outside the known set parse to
// StatusUnknown so one malformed row cannot break batch evaluation.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusQualified Status = "Qualified"
	StatusFollow    Status = "Follow"
	StatusClosed    Status = "Closed"
	StatusUnknown   Status = "Unknown"
)

// StatusValues lists the pipeline stages in board order.
var StatusValues = []Status{StatusNew, StatusContacted, StatusQualified, StatusFollow, StatusClosed}

// ParseStatus maps a raw string onto the closed stage set.
func ParseStatus(s string) Status {
	for _, v := range StatusValues {
		if string(v) == s {
			return v
		}
	}
	return StatusUnknown
}

// Priority is the operator-assigned lead priority.
type Priority string

const (
	PriorityLow  Priority = "Low"
	PriorityMed  Priority = "Med"
	PriorityHigh Priority = "High"
)

// ParsePriority falls back to Med for unknown values.
func ParsePriority(s string) Priority {
	if p := Priority(s); p.IsValid() {
		return p
	}
	return PriorityMed
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh:
		return true
	}
	return false
}

// Weight returns the sort weight of a priority, higher is more urgent.
// Unknown priorities weigh the same as Med.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Lead is a prospective client tracked through the sales pipeline.
type Lead struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email"`
	PreferredLanguage string     `json:"preferred_language,omitempty"`
	Source            string     `json:"source,omitempty"`
	SourceCustom      string     `json:"source_custom,omitempty"`
	LeadType          string     `json:"lead_type,omitempty"`
	BudgetMin         *int64     `json:"budget_min,omitempty"`
	BudgetMax         *int64     `json:"budget_max,omitempty"`
	Areas             []string   `json:"areas"`
	Beds              *int       `json:"beds,omitempty"`
	Baths             *int       `json:"baths,omitempty"`
	Furnishing        string     `json:"furnishing,omitempty"`
	MoveInDate        *time.Time `json:"move_in_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Status            Status     `json:"status"`
	Priority          Priority   `json:"priority"`
	NextFollowUpAt    *time.Time `json:"next_follow_up_at,omitempty"`
	LastContactedAt   *time.Time `json:"last_contacted_at,omitempty"`
	IsInDubai         bool       `json:"is_in_dubai"`
	ArrivalDate       *time.Time `json:"arrival_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// DisplayName returns the best available label for a lead.
func (l *Lead) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	if l.Phone != "" {
		return l.Phone
	}
	if l.Email != "" {
		return l.Email
	}
	return l.ID.String()
}

// BudgetFigure returns the budget used for sorting: max when set,
// otherwise min, otherwise zero.
func (l *Lead) BudgetFigure() int64 {
	if l.BudgetMax != nil {
		return *l.BudgetMax
	}
	if l.BudgetMin != nil {
		return *l.BudgetMin
	}
	return 0
}

// DefaultFollowUpDelay is how far out a new lead's first follow-up is
// scheduled when the request does not set one.
const DefaultFollowUpDelay = 48 * time.Hour

// CreateLeadRequest is the request body for creating a lead.
type CreateLeadRequest struct {
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Email             string     `json:"email"`
	PreferredLanguage string     `json:"preferred_language"`
	Source            string     `json:"source"`
	SourceCustom      string     `json:"source_custom"`
	LeadType          string     `json:"lead_type"`
	BudgetMin         *int64     `json:"budget_min"`
	BudgetMax         *int64     `json:"budget_max"`
	Areas             []string   `json:"areas"`
	Beds              *int       `json:"beds"`
	Baths             *int       `json:"baths"`
	Furnishing        string     `json:"furnishing"`
	MoveInDate        *time.Time `json:"move_in_date"`
	Notes             string     `json:"notes"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	NextFollowUpAt    *time.Time `json:"next_follow_up_at"`
	LastContactedAt   *time.Time `json:"last_contacted_at"`
	IsInDubai         *bool      `json:"is_in_dubai"`
	ArrivalDate       *time.Time `json:"arrival_date"`
}

// Validate checks that the lead is reachable somehow.
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.Phone) == "" &&
		strings.TrimSpace(r.Email) == "" {
		return ErrMissingContact
	}
	return nil
}

// NewLead builds a Lead from the request, applying creation defaults:
// status New, priority Med, in Dubai unless stated otherwise, and a
// first follow-up two days out when none is scheduled.
func (r *CreateLeadRequest) NewLead(now time.Time) *Lead {
	lead := &Lead{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(r.Name),
		Phone:             strings.TrimSpace(r.Phone),
		Email:             strings.TrimSpace(r.Email),
		PreferredLanguage: r.PreferredLanguage,
		Source:            r.Source,
		SourceCustom:      r.SourceCustom,
		LeadType:          r.LeadType,
		BudgetMin:         r.BudgetMin,
		BudgetMax:         r.BudgetMax,
		Areas:             r.Areas,
		Beds:              r.Beds,
		Baths:             r.Baths,
		Furnishing:        r.Furnishing,
		MoveInDate:        r.MoveInDate,
		Notes:             r.Notes,
		Status:            StatusNew,
		Priority:          PriorityMed,
		NextFollowUpAt:    r.NextFollowUpAt,
		LastContactedAt:   r.LastContactedAt,
		IsInDubai:         true,
		ArrivalDate:       r.ArrivalDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if lead.Areas == nil {
		lead.Areas = []string{}
	}
	if r.Status != "" {
		lead.Status = ParseStatus(r.Status)
	}
	if r.Priority != "" {
		lead.Priority = ParsePriority(r.Priority)
	}
	if r.IsInDubai != nil {
		lead.IsInDubai = *r.IsInDubai
	}
	if lead.NextFollowUpAt == nil {
		due := now.Add(DefaultFollowUpDelay)
		lead.NextFollowUpAt = &due
	}
	return lead
}

// UpdateLeadRequest carries a partial update; nil fields are untouched.
type UpdateLeadRequest struct {
	Name              *string    `json:"name"`
	Phone             *string    `json:"phone"`
	Email             *string    `json:"email"`
	PreferredLanguage *string    `json:"preferred_language"`
	Source            *string    `json:"source"`
	SourceCustom      *string    `json:"source_custom"`
	LeadType          *string    `json:"lead_type"`
	BudgetMin         *int64     `json:"budget_min"`
	BudgetMax         *int64     `json:"budget_max"`
	Areas             *[]string  `json:"areas"`
	Beds              *int       `json:"beds"`
	Baths             *int       `json:"baths"`
	Furnishing        *string    `json:"furnishing"`
	MoveInDate        *time.Time `json:"move_in_date"`
	Notes             *string    `json:"notes"`
	Status            *string    `json:"status"`
	Priority          *string    `json:"priority"`
	NextFollowUpAt    *time.Time `json:"next_follow_up_at"`
	ClearNextFollowUp bool       `json:"clear_next_follow_up,omitempty"`
	IsInDubai         *bool      `json:"is_in_dubai"`
	ArrivalDate       *time.Time `json:"arrival_date"`
	ClearArrivalDate  bool       `json:"clear_arrival_date,omitempty"`
}

// Apply copies the set fields onto the lead.
func (r *UpdateLeadRequest) Apply(lead *Lead, now time.Time) {
	if r.Name != nil {
		lead.Name = strings.TrimSpace(*r.Name)
	}
	if r.Phone != nil {
		lead.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Email != nil {
		lead.Email = strings.TrimSpace(*r.Email)
	}
	if r.PreferredLanguage != nil {
		lead.PreferredLanguage = *r.PreferredLanguage
	}
	if r.Source != nil {
		lead.Source = *r.Source
	}
	if r.SourceCustom != nil {
		lead.SourceCustom = *r.SourceCustom
	}
	if r.LeadType != nil {
		lead.LeadType = *r.LeadType
	}
	if r.BudgetMin != nil {
		lead.BudgetMin = r.BudgetMin
	}
	if r.BudgetMax != nil {
		lead.BudgetMax = r.BudgetMax
	}
	if r.Areas != nil {
		lead.Areas = *r.Areas
	}
	if r.Beds != nil {
		lead.Beds = r.Beds
	}
	if r.Baths != nil {
		lead.Baths = r.Baths
	}
	if r.Furnishing != nil {
		lead.Furnishing = *r.Furnishing
	}
	if r.MoveInDate != nil {
		lead.MoveInDate = r.MoveInDate
	}
	if r.Notes != nil {
		lead.Notes = *r.Notes
	}
	if r.Status != nil {
		lead.Status = ParseStatus(*r.Status)
	}
	if r.Priority != nil {
		lead.Priority = ParsePriority(*r.Priority)
	}
	if r.NextFollowUpAt != nil {
		lead.NextFollowUpAt = r.NextFollowUpAt
	} else if r.ClearNextFollowUp {
		lead.NextFollowUpAt = nil
	}
	if r.IsInDubai != nil {
		lead.IsInDubai = *r.IsInDubai
	}
	if r.ArrivalDate != nil {
		lead.ArrivalDate = r.ArrivalDate
	} else if r.ClearArrivalDate {
		lead.ArrivalDate = nil
	}
	lead.UpdatedAt = now
}
