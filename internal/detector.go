package internal

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MinOccurrences is how many charges a merchant needs before it is treated
// as a recurring subscription.
const MinOccurrences = 3

// Urgency window bounds, in days until the predicted next charge.
const (
	urgentWindowDays   = 7
	upcomingWindowDays = 30
)

// NormalizeMerchant derives the grouping key for a raw merchant description
// by lowercasing it and collapsing whitespace runs to single spaces. Keys are
// never displayed.
func NormalizeMerchant(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// DetectSubscriptions groups charges by normalized merchant description and
// keeps the merchants with at least MinOccurrences charges. Each group's
// charges are sorted chronologically and its display name and currency come
// from the most recent charge. The next charge date is predicted from the
// mean gap between consecutive charges. Groups come back ordered by descending
// charge count, ties broken by key.
func DetectSubscriptions(charges []Transaction) []SubscriptionGroup {
	byKey := make(map[string][]Transaction)
	for _, tx := range charges {
		key := NormalizeMerchant(tx.Merchant)
		byKey[key] = append(byKey[key], tx)
	}

	var groups []SubscriptionGroup
	for key, txs := range byKey {
		if len(txs) < MinOccurrences {
			continue
		}

		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].Date.Before(txs[j].Date)
		})

		latest := txs[len(txs)-1]
		interval := MeanInterval(GapDays(txs))

		groups = append(groups, SubscriptionGroup{
			Name:         latest.Merchant,
			Key:          key,
			Transactions: txs,
			AvgAmount:    AverageAmount(txs),
			IntervalDays: interval,
			NextDate:     latest.Date.AddDate(0, 0, interval),
			Currency:     latest.Currency,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Transactions) != len(groups[j].Transactions) {
			return len(groups[i].Transactions) > len(groups[j].Transactions)
		}
		return groups[i].Key < groups[j].Key
	})

	return groups
}

// AverageAmount returns the mean of the absolute charge amounts, rounded to
// two decimals.
func AverageAmount(txs []Transaction) decimal.Decimal {
	if len(txs) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount.Abs())
	}
	return sum.Div(decimal.NewFromInt(int64(len(txs)))).Round(2)
}

// GapDays returns the day gaps between consecutive charges. txs must already
// be sorted chronologically.
func GapDays(txs []Transaction) []int {
	var gaps []int
	for i := 1; i < len(txs); i++ {
		gaps = append(gaps, daysBetween(txs[i-1].Date, txs[i].Date))
	}
	return gaps
}

// MeanInterval returns the arithmetic mean of the gaps, rounded to the
// nearest whole day. An empty gap list yields 0.
func MeanInterval(gaps []int) int {
	if len(gaps) == 0 {
		return 0
	}
	sum := 0
	for _, g := range gaps {
		sum += g
	}
	return int(math.Round(float64(sum) / float64(len(gaps))))
}

// DaysUntil returns whole calendar days from now until date, negative when
// the date has already passed.
func DaysUntil(date, now time.Time) int {
	return daysBetween(now, date)
}

// ClassifyUrgency buckets a predicted next charge date relative to now.
// Anything 7 days away or less (including already past) is urgent and
// anything within 30 days is upcoming. Everything further out is later.
func ClassifyUrgency(next, now time.Time) Urgency {
	switch d := DaysUntil(next, now); {
	case d <= urgentWindowDays:
		return UrgencyUrgent
	case d <= upcomingWindowDays:
		return UrgencyUpcoming
	default:
		return UrgencyLater
	}
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}
