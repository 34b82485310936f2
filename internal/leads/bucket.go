package leads

import "time"

// Buckets partitions leads for the dashboard tabs. Overdue, DueToday and
// DueNext7Days are mutually exclusive (first match wins in that order);
// the arrival buckets are independent of the other three.
type Buckets struct {
	Overdue          []*Lead `json:"overdue"`
	DueToday         []*Lead `json:"due_today"`
	DueNext7Days     []*Lead `json:"due_next_7_days"`
	ArrivingToday    []*Lead `json:"arriving_today"`
	ArrivingTomorrow []*Lead `json:"arriving_tomorrow"`
}

// BucketLeads assigns each lead to at most one of the follow-up buckets
// and, independently, to the arrival buckets.
func BucketLeads(ls []*Lead, now time.Time, loc *time.Location, sla time.Duration) Buckets {
	b := Buckets{
		Overdue:          []*Lead{},
		DueToday:         []*Lead{},
		DueNext7Days:     []*Lead{},
		ArrivingToday:    []*Lead{},
		ArrivingTomorrow: []*Lead{},
	}
	tomorrow := now.Add(24 * time.Hour)

	for _, l := range ls {
		switch {
		case ClassifyUrgency(l, now, sla).IsOverdue:
			b.Overdue = append(b.Overdue, l)
		case IsDueToday(l, now, loc):
			b.DueToday = append(b.DueToday, l)
		case IsDueNext7Days(l, now):
			b.DueNext7Days = append(b.DueNext7Days, l)
		}

		if IsArrivingOn(l, now, loc) {
			b.ArrivingToday = append(b.ArrivingToday, l)
		}
		if IsArrivingOn(l, tomorrow, loc) {
			b.ArrivingTomorrow = append(b.ArrivingTomorrow, l)
		}
	}
	return b
}
