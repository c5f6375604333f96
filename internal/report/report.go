// Package report derives reporting views from raw transaction and activity
// snapshots. Every function is pure: inputs are never mutated, no clock or
// store is consulted, and empty input yields an empty (or zero) result
// rather than an error.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"clinfin/internal/models"
)

// Timeframe selects the bucketing granularity for GroupByTimeframe.
type Timeframe string

const (
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeYearly  Timeframe = "yearly"
)

// limit returns how many trailing buckets a timeframe keeps.
func (tf Timeframe) limit() int {
	switch tf {
	case TimeframeWeekly:
		return 7
	case TimeframeYearly:
		return 12
	default:
		return 30
	}
}

// bucketKey returns the grouping key for a timestamp: the UTC calendar day
// for weekly/monthly, the UTC calendar month for yearly.
func (tf Timeframe) bucketKey(t time.Time) string {
	if tf == TimeframeYearly {
		return monthKey(t)
	}
	return dayKey(t)
}

func dayKey(t time.Time) string   { return t.UTC().Format("2006-01-02") }
func monthKey(t time.Time) string { return t.UTC().Format("2006-01") }

// DailyBucket is one calendar day of aggregated flows. Balance is the
// cumulative net (revenue - expense) up to and including this day.
type DailyBucket struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Summary holds category totals over a transaction set. Totals are sums of
// magnitude per category; NetBalance reconstructs the sign by subtraction.
type Summary struct {
	RevenueTotal decimal.Decimal `json:"revenue_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	RevenueCount int             `json:"revenue_count"`
	ExpenseCount int             `json:"expense_count"`
}

// TimeframeBucket is one bucket of GroupByTimeframe output.
type TimeframeBucket struct {
	Key           string          `json:"key"`
	Revenue       decimal.Decimal `json:"revenue"`
	Expense       decimal.Decimal `json:"expense"`
	ActivityCount int             `json:"activity_count"`
}

// BucketByDay groups transactions and activities by the UTC calendar day of
// their timestamp (start timestamp for activities) and returns one bucket
// per day present in either input, sorted ascending, with a running balance
// carried across the whole sequence. Days with no records are omitted, not
// zero-filled.
func BucketByDay(transactions []models.Transaction, activities []models.Activity) []DailyBucket {
	byDay := make(map[string]*DailyBucket)

	ensure := func(key string) *DailyBucket {
		b, ok := byDay[key]
		if !ok {
			b = &DailyBucket{Date: key}
			byDay[key] = b
		}
		return b
	}

	for _, t := range transactions {
		b := ensure(dayKey(t.Date))
		switch t.Category {
		case models.CategoryRevenue:
			b.Revenue = b.Revenue.Add(t.Amount.Abs())
		case models.CategoryExpense:
			b.Expense = b.Expense.Add(t.Amount.Abs())
		}
	}
	for i := range activities {
		ensure(dayKey(activities[i].Start))
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var balance decimal.Decimal
	buckets := make([]DailyBucket, 0, len(keys))
	for _, k := range keys {
		b := *byDay[k]
		balance = balance.Add(b.Revenue.Sub(b.Expense))
		b.Balance = balance
		buckets = append(buckets, b)
	}
	return buckets
}

// Summarize totals a transaction set. Each category sums the magnitude of
// its amounts, so the result is insensitive to the sign stored on any row;
// the net balance is then revenue minus expense. Summing signed amounts
// directly would double-count sign information when an expense is stored
// negative, so the two-step form is load-bearing here.
func Summarize(transactions []models.Transaction) Summary {
	var s Summary
	for _, t := range transactions {
		switch t.Category {
		case models.CategoryRevenue:
			s.RevenueTotal = s.RevenueTotal.Add(t.Amount.Abs())
			s.RevenueCount++
		case models.CategoryExpense:
			s.ExpenseTotal = s.ExpenseTotal.Add(t.Amount.Abs())
			s.ExpenseCount++
		}
	}
	s.NetBalance = s.RevenueTotal.Sub(s.ExpenseTotal)
	return s
}

// GroupByTimeframe buckets transactions and activities by the timeframe's
// granularity and keeps only the most recent buckets (7 for weekly, 30 for
// monthly, 12 for yearly). Activities count toward the bucket holding their
// start timestamp.
func GroupByTimeframe(transactions []models.Transaction, activities []models.Activity, tf Timeframe) []TimeframeBucket {
	grouped := make(map[string]*TimeframeBucket)

	ensure := func(key string) *TimeframeBucket {
		b, ok := grouped[key]
		if !ok {
			b = &TimeframeBucket{Key: key}
			grouped[key] = b
		}
		return b
	}

	for _, t := range transactions {
		b := ensure(tf.bucketKey(t.Date))
		switch t.Category {
		case models.CategoryRevenue:
			b.Revenue = b.Revenue.Add(t.Amount.Abs())
		case models.CategoryExpense:
			b.Expense = b.Expense.Add(t.Amount.Abs())
		}
	}
	for i := range activities {
		ensure(tf.bucketKey(activities[i].Start)).ActivityCount++
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if limit := tf.limit(); len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	buckets := make([]TimeframeBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *grouped[k])
	}
	return buckets
}
