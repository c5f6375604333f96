package report

import (
	"time"

	"clinfin/internal/models"
)

// StatusAll disables status filtering in ActivitiesByStatus.
const StatusAll = "all"

// inMonth reports whether ts falls in the given UTC (year, month).
// month == 0 filters by year only; year == 0 disables filtering entirely.
func inMonth(ts time.Time, year, month int) bool {
	if year == 0 {
		return true
	}
	u := ts.UTC()
	if u.Year() != year {
		return false
	}
	return month == 0 || int(u.Month()) == month
}

// TransactionsInMonth returns the subsequence of transactions whose
// timestamp falls in (year, month). The source slice is not mutated.
func TransactionsInMonth(transactions []models.Transaction, year, month int) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if inMonth(t.Date, year, month) {
			out = append(out, t)
		}
	}
	return out
}

// ActivitiesInMonth returns the subsequence of activities whose start falls
// in (year, month).
func ActivitiesInMonth(activities []models.Activity, year, month int) []models.Activity {
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if inMonth(a.Start, year, month) {
			out = append(out, a)
		}
	}
	return out
}

// ActivitiesByStatus returns the activities whose derived status at the
// given instant matches status. The clock is an explicit parameter so the
// filter stays deterministic. An empty status or StatusAll passes everything.
func ActivitiesByStatus(activities []models.Activity, status string, now time.Time) []models.Activity {
	if status == "" || status == StatusAll {
		out := make([]models.Activity, len(activities))
		copy(out, activities)
		return out
	}

	want := models.ActivityStatus(status)
	out := make([]models.Activity, 0, len(activities))
	for i := range activities {
		if activities[i].StatusAt(now) == want {
			out = append(out, activities[i])
		}
	}
	return out
}
