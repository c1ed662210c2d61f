package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one charge parsed from a card export. Amounts keep the sign
// from the export: negative means money left the account.
type Transaction struct {
	Date     time.Time
	Merchant string          // raw Description 1 text
	Amount   decimal.Decimal // signed decimal from the CAD$ or USD$ column
	Currency string          // "CAD" or "USD", whichever column was populated
}

// SubscriptionGroup is a merchant with enough charges to look recurring.
type SubscriptionGroup struct {
	Name         string          // display name, raw text of the most recent charge
	Key          string          // normalized merchant key used for grouping
	Transactions []Transaction   // chronological, oldest first
	AvgAmount    decimal.Decimal // mean of absolute charge amounts, 2 decimals
	IntervalDays int             // mean gap between consecutive charges, whole days
	NextDate     time.Time       // last charge date + IntervalDays
	Currency     string          // currency of the most recent charge
}

// LastDate returns the date of the most recent charge in the group.
func (g SubscriptionGroup) LastDate() time.Time {
	if len(g.Transactions) == 0 {
		return time.Time{}
	}
	return g.Transactions[len(g.Transactions)-1].Date
}

// Urgency buckets a subscription by how soon its next charge is expected.
type Urgency string

const (
	UrgencyUrgent   Urgency = "urgent"
	UrgencyUpcoming Urgency = "upcoming"
	UrgencyLater    Urgency = "later"
)
