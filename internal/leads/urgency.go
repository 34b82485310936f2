package leads

import "time"

// NewContactSLA is how long a never-contacted lead may wait before it is
// flagged overdue.
const NewContactSLA = 48 * time.Hour

// OverdueReason explains why a lead is overdue.
type OverdueReason string

const (
	ReasonNone       OverdueReason = ""
	ReasonNewContact OverdueReason = "overdue_new_contact"
	ReasonFollowUp   OverdueReason = "overdue_follow_up"
)

// Urgency is the derived judgment of whether a lead needs action now.
// It is recomputed on every evaluation and never persisted.
type Urgency struct {
	IsOverdue   bool          `json:"is_overdue"`
	Reason      OverdueReason `json:"reason,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	DaysOverdue int           `json:"days_overdue"`
}

// ClassifyUrgency evaluates the overdue rules in strict order, first
// match wins:
//
//  1. Never contacted and older than the new-contact SLA. This rule only
//     fires while lastContactedAt is nil; once a lead has been contacted,
//     only explicit follow-up scheduling can make it overdue again.
//  2. Scheduled follow-up has passed.
//  3. Not overdue; the due date is the upcoming follow-up, if any.
//
// now must be supplied by the caller so results are reproducible. sla is
// the new-contact window; zero or negative falls back to NewContactSLA.
func ClassifyUrgency(l *Lead, now time.Time, sla time.Duration) Urgency {
	if sla <= 0 {
		sla = NewContactSLA
	}
	if l.LastContactedAt == nil {
		elapsed := now.Sub(l.CreatedAt)
		if elapsed >= sla {
			due := l.CreatedAt.Add(sla)
			return Urgency{
				IsOverdue:   true,
				Reason:      ReasonNewContact,
				DueDate:     &due,
				DaysOverdue: int((elapsed - sla) / (24 * time.Hour)),
			}
		}
	}

	if l.NextFollowUpAt != nil && !l.NextFollowUpAt.After(now) {
		due := *l.NextFollowUpAt
		return Urgency{
			IsOverdue:   true,
			Reason:      ReasonFollowUp,
			DueDate:     &due,
			DaysOverdue: int(now.Sub(due) / (24 * time.Hour)),
		}
	}

	return Urgency{
		IsOverdue: false,
		Reason:    ReasonNone,
		DueDate:   l.NextFollowUpAt,
	}
}

// IsDueToday reports whether the lead's follow-up falls on now's calendar
// day in the given location. A follow-up at 00:05 and now at 23:50 on the
// same day both count.
func IsDueToday(l *Lead, now time.Time, loc *time.Location) bool {
	if l.NextFollowUpAt == nil {
		return false
	}
	return sameCalendarDay(*l.NextFollowUpAt, now, loc)
}

// IsDueNext7Days reports whether the follow-up is strictly in the future
// and within the next seven 24h windows.
func IsDueNext7Days(l *Lead, now time.Time) bool {
	if l.NextFollowUpAt == nil {
		return false
	}
	due := *l.NextFollowUpAt
	return due.After(now) && !due.After(now.Add(7*24*time.Hour))
}

// IsArrivingOn reports whether a lead currently abroad arrives in Dubai
// on the target calendar day.
func IsArrivingOn(l *Lead, target time.Time, loc *time.Location) bool {
	if l.IsInDubai || l.ArrivalDate == nil {
		return false
	}
	return sameCalendarDay(*l.ArrivalDate, target, loc)
}

func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ya, ma, da := a.In(loc).Date()
	yb, mb, db := b.In(loc).Date()
	return ya == yb && ma == mb && da == db
}

// StartOfDay truncates t to midnight in the given location.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
