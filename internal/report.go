package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RunStats counts what happened to the input rows during a run.
type RunStats struct {
	Charges  int // charges kept for detection
	Dropped  int // payments and credits
	Excluded int // matched an exclusion pattern
	Skipped  int // unparseable rows
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Subscriptions []JSONSubscription `json:"subscriptions"`
	Summary       JSONSummary        `json:"summary"`
}

// JSONSubscription is the JSON output format for one detected subscription
type JSONSubscription struct {
	Merchant     string  `json:"merchant"`
	Charges      int     `json:"charges"`
	Average      float64 `json:"average"`
	Currency     string  `json:"currency"`
	IntervalDays int     `json:"interval_days"`
	NextDate     string  `json:"next_date"`
	Urgency      string  `json:"urgency"`
	PastDue      bool    `json:"past_due,omitempty"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count    int `json:"count"`
	Charges  int `json:"charges"`
	Dropped  int `json:"dropped"`
	Excluded int `json:"excluded"`
	Skipped  int `json:"skipped"`
}

// PrintSummaryJSON outputs the run result in JSON format
func PrintSummaryJSON(w io.Writer, groups []SubscriptionGroup, stats RunStats, now time.Time) {
	subscriptions := make([]JSONSubscription, 0, len(groups))
	for _, g := range groups {
		avg, _ := g.AvgAmount.Float64()
		subscriptions = append(subscriptions, JSONSubscription{
			Merchant:     g.Name,
			Charges:      len(g.Transactions),
			Average:      avg,
			Currency:     g.Currency,
			IntervalDays: g.IntervalDays,
			NextDate:     g.NextDate.Format("2006-01-02"),
			Urgency:      string(ClassifyUrgency(g.NextDate, now)),
			PastDue:      DaysUntil(g.NextDate, now) < 0,
		})
	}

	output := JSONOutput{
		Subscriptions: subscriptions,
		Summary: JSONSummary{
			Count:    len(subscriptions),
			Charges:  stats.Charges,
			Dropped:  stats.Dropped,
			Excluded: stats.Excluded,
			Skipped:  stats.Skipped,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// PrintSummaryTable outputs the run result as a formatted table
func PrintSummaryTable(w io.Writer, groups []SubscriptionGroup, stats RunStats, now time.Time) {
	fmt.Fprintf(w, "Found %d recurring subscriptions\n", len(groups))

	if len(groups) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Merchant", "Charges", "Average", "Cadence", "Next charge", "Urgency"})

		for _, g := range groups {
			t.AppendRow(table.Row{
				g.Name,
				len(g.Transactions),
				GetCurrency(g.Currency).Format(g.AvgAmount),
				fmt.Sprintf("every %d days", g.IntervalDays),
				g.NextDate.Format("2006-01-02"),
				urgencyCell(g.NextDate, now),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Style().Format.Header = text.FormatDefault

		// Right-align the numeric columns
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
		})

		t.Render()
	}

	fmt.Fprintf(w, "Parsed %d charges (%d payments or credits dropped, %d excluded, %d rows skipped)\n",
		stats.Charges, stats.Dropped, stats.Excluded, stats.Skipped)
}

func urgencyCell(next, now time.Time) string {
	var s string
	switch ClassifyUrgency(next, now) {
	case UrgencyUrgent:
		s = text.FgRed.Sprint(UrgencyUrgent)
	case UrgencyUpcoming:
		s = text.FgYellow.Sprint(UrgencyUpcoming)
	default:
		s = text.FgGreen.Sprint(UrgencyLater)
	}
	if DaysUntil(next, now) < 0 {
		s += " (past due)"
	}
	return s
}
