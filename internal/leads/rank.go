package leads

import (
	"sort"
	"strings"
	"time"
)

// SortByUrgency returns a new slice ordered by the urgency comparator:
// overdue before not-overdue, more days overdue first, earlier due date
// first (nil due dates last), higher priority first, newest first. The
// whole ordering lives in one comparator so it forms a valid total order.
func SortByUrgency(ls []*Lead, now time.Time, sla time.Duration) []*Lead {
	out := make([]*Lead, len(ls))
	copy(out, ls)

	urgencies := make(map[*Lead]Urgency, len(out))
	for _, l := range out {
		urgencies[l] = ClassifyUrgency(l, now, sla)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return urgencyLess(out[i], out[j], urgencies[out[i]], urgencies[out[j]])
	})
	return out
}

func urgencyLess(a, b *Lead, ua, ub Urgency) bool {
	if ua.IsOverdue != ub.IsOverdue {
		return ua.IsOverdue
	}
	if ua.IsOverdue && ub.IsOverdue && ua.DaysOverdue != ub.DaysOverdue {
		return ua.DaysOverdue > ub.DaysOverdue
	}
	if (ua.DueDate != nil) != (ub.DueDate != nil) {
		return ua.DueDate != nil
	}
	if ua.DueDate != nil && ub.DueDate != nil && !ua.DueDate.Equal(*ub.DueDate) {
		return ua.DueDate.Before(*ub.DueDate)
	}
	if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
		return wa > wb
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// SortMode names the alternate list orderings exposed by the UI.
type SortMode string

const (
	SortUrgency  SortMode = "urgency"
	SortNameAsc  SortMode = "name_asc"
	SortNameDesc SortMode = "name_desc"
	SortNewest   SortMode = "newest"
	SortFollowUp SortMode = "follow_up"
	SortBudget   SortMode = "budget"
	SortPriority SortMode = "priority"
)

// ParseSortMode falls back to the urgency ordering for unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortNameAsc, SortNameDesc, SortNewest, SortFollowUp, SortBudget, SortPriority:
		return SortMode(s)
	default:
		return SortUrgency
	}
}

// SortLeads orders a copy of the leads by the requested mode. All modes
// are stable, so equal elements keep their input order.
func SortLeads(ls []*Lead, mode SortMode, now time.Time, sla time.Duration) []*Lead {
	if mode == SortUrgency {
		return SortByUrgency(ls, now, sla)
	}

	out := make([]*Lead, len(ls))
	copy(out, ls)

	var less func(a, b *Lead) bool
	switch mode {
	case SortNameAsc:
		less = func(a, b *Lead) bool {
			return strings.ToLower(a.DisplayName()) < strings.ToLower(b.DisplayName())
		}
	case SortNameDesc:
		less = func(a, b *Lead) bool {
			return strings.ToLower(a.DisplayName()) > strings.ToLower(b.DisplayName())
		}
	case SortNewest:
		less = func(a, b *Lead) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortFollowUp:
		less = func(a, b *Lead) bool {
			// Leads without a scheduled follow-up sort last.
			if (a.NextFollowUpAt != nil) != (b.NextFollowUpAt != nil) {
				return a.NextFollowUpAt != nil
			}
			if a.NextFollowUpAt == nil {
				return false
			}
			return a.NextFollowUpAt.Before(*b.NextFollowUpAt)
		}
	case SortBudget:
		less = func(a, b *Lead) bool { return a.BudgetFigure() > b.BudgetFigure() }
	case SortPriority:
		less = func(a, b *Lead) bool { return a.Priority.Weight() > b.Priority.Weight() }
	default:
		return SortByUrgency(ls, now, sla)
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
