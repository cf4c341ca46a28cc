package series

import "time"

// MonthEnds returns the last calendar day of each of the n most recent
// months, oldest first, in UTC. Day zero of the following month normalizes
// to the month's last day, so no per-month length table is needed.
func MonthEnds(now time.Time, n int) []time.Time {
	now = now.UTC()
	out := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, time.Date(now.Year(), now.Month()-time.Month(i)+1, 0, 0, 0, 0, 0, time.UTC))
	}
	return out
}

// endOfDay is the forward-fill cutoff instant for a month-end date.
func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, time.UTC)
}
