package notifications

import (
	"time"

	"github.com/google/uuid"
	"github.com/oasisrealty/leadcrm/internal/leads"
)

// dayKey identifies one (lead, type) pair for per-day suppression.
type dayKey struct {
	lead uuid.UUID
	typ  Type
}

// Plan decides which notifications to raise for the given lead snapshot.
// Candidates per lead, each evaluated independently:
//
//   - OverdueNewContact / OverdueFollowUp from the urgency classifier.
//   - DueToday, only while the lead is not already overdue, so a
//     follow-up that has tipped into overdue does not fire twice.
//   - ArrivalReminder the day before an abroad lead's arrival date.
//
// A candidate already present in existingToday for the current calendar
// day ([startOfDay(now), +24h)) is suppressed, which makes the plan
// idempotent within a day: feeding one call's output into the next
// call's existing set yields an empty plan. On a new day everything is
// re-evaluated from scratch.
//
// sla is the new-contact window passed through to the urgency
// classifier; zero keeps the default.
func Plan(ls []*leads.Lead, existingToday []*Notification, now time.Time, loc *time.Location, sla time.Duration) []CreateRequest {
	dayStart := leads.StartOfDay(now, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	seen := make(map[dayKey]bool, len(existingToday))
	for _, n := range existingToday {
		if n.CreatedAt.Before(dayStart) || !n.CreatedAt.Before(dayEnd) {
			continue
		}
		seen[dayKey{lead: n.LeadID, typ: n.Type}] = true
	}

	tomorrow := now.Add(24 * time.Hour)
	var plan []CreateRequest
	emit := func(l *leads.Lead, t Type) {
		k := dayKey{lead: l.ID, typ: t}
		if seen[k] {
			return
		}
		seen[k] = true
		plan = append(plan, CreateRequest{LeadID: l.ID, Type: t})
	}

	for _, l := range ls {
		urgency := leads.ClassifyUrgency(l, now, sla)

		switch urgency.Reason {
		case leads.ReasonNewContact:
			emit(l, TypeOverdueNewContact)
		case leads.ReasonFollowUp:
			emit(l, TypeOverdueFollowUp)
		}

		if leads.IsDueToday(l, now, loc) && !urgency.IsOverdue {
			emit(l, TypeDueToday)
		}

		if leads.IsArrivingOn(l, tomorrow, loc) {
			emit(l, TypeArrivalReminder)
		}
	}
	return plan
}
