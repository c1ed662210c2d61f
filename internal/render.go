package internal

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed checklist.html.tmpl
var checklistTemplateText string

var checklistTemplate = template.Must(template.New("checklist").Parse(checklistTemplateText))

type checklistPage struct {
	StorageKey string
	Total      int
	Items      []checklistItem
}

type checklistItem struct {
	ID           string
	Merchant     string
	VendorURL    string
	SearchURL    string
	AvgAmount    string
	AvgRaw       string
	Count        int
	IntervalDays int
	NextDate     string
	NextDateISO  string
	Urgency      string
	PastDue      bool
	Charges      []chargeRow
}

type chargeRow struct {
	Date   string
	Amount string
}

const displayDateFormat = "Jan 2, 2006"

// RenderChecklist builds the interactive HTML checklist for the detected
// subscriptions. The document is self-contained: styles, script and all data
// are inlined, and checkbox state persists in the browser under a key scoped
// to this set of subscriptions.
func RenderChecklist(groups []SubscriptionGroup, cfg *Config, now time.Time) ([]byte, error) {
	ids := ChecklistIDs(groups)

	items := make([]checklistItem, 0, len(groups))
	for i, g := range groups {
		charges := make([]chargeRow, 0, len(g.Transactions))
		for j := len(g.Transactions) - 1; j >= 0; j-- {
			tx := g.Transactions[j]
			charges = append(charges, chargeRow{
				Date:   tx.Date.Format(displayDateFormat),
				Amount: GetCurrency(tx.Currency).Format(tx.Amount.Abs()),
			})
		}

		items = append(items, checklistItem{
			ID:           ids[i],
			Merchant:     g.Name,
			VendorURL:    cfg.VendorURL(g.Name),
			SearchURL:    googleSearchURL(g.Name + " update payment method"),
			AvgAmount:    GetCurrency(g.Currency).Format(g.AvgAmount),
			AvgRaw:       g.AvgAmount.StringFixed(2),
			Count:        len(g.Transactions),
			IntervalDays: g.IntervalDays,
			NextDate:     g.NextDate.Format(displayDateFormat),
			NextDateISO:  g.NextDate.Format("2006-01-02"),
			Urgency:      string(ClassifyUrgency(g.NextDate, now)),
			PastDue:      DaysUntil(g.NextDate, now) < 0,
			Charges:      charges,
		})
	}

	page := checklistPage{
		StorageKey: StorageKey(ids),
		Total:      len(items),
		Items:      items,
	}

	var buf bytes.Buffer
	if err := checklistTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("rendering checklist: %w", err)
	}
	return buf.Bytes(), nil
}
