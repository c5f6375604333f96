package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Renderer turns already-aggregated report data into a downloadable
// document. Implementations are presentation-only: they must not compute
// totals or reorder buckets.
type Renderer interface {
	// ContentType returns the MIME type of rendered documents.
	ContentType() string
	// RenderDaily renders the daily bucket sequence under a period label.
	RenderDaily(period string, buckets []DailyBucket) ([]byte, error)
	// RenderSummary renders a totals summary under a period label.
	RenderSummary(period string, s Summary) ([]byte, error)
}

// CSVRenderer renders reports as RFC 4180 CSV with a leading comment line
// carrying the period label.
type CSVRenderer struct{}

func (CSVRenderer) ContentType() string { return "text/csv" }

func (CSVRenderer) RenderDaily(period string, buckets []DailyBucket) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", period)

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "revenue", "expense", "balance"}); err != nil {
		return nil, err
	}
	for _, b := range buckets {
		row := []string{b.Date, b.Revenue.String(), b.Expense.String(), b.Balance.String()}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (CSVRenderer) RenderSummary(period string, s Summary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", period)

	w := csv.NewWriter(&buf)
	records := [][]string{
		{"revenue_total", "expense_total", "net_balance", "revenue_count", "expense_count"},
		{
			s.RevenueTotal.String(),
			s.ExpenseTotal.String(),
			s.NetBalance.String(),
			fmt.Sprintf("%d", s.RevenueCount),
			fmt.Sprintf("%d", s.ExpenseCount),
		},
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
