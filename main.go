package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joshuascottpaul/credit-card-subscription-updater/internal"
)

type Params struct {
	Input   string `descr:"Path to the credit card transaction export" positional:"true"`
	Output  string `descr:"Path the HTML checklist is written to" positional:"true"`
	Source  string `descr:"Input format: csv, xlsx, or auto to infer it from the file extension" default:"auto"`
	Config  string `descr:"Config file with vendor URL and exclusion rules, or auto to use ~/.subscription-updater/config.yaml if present" default:"auto"`
	Summary string `descr:"Run summary printed to stdout: table, json or none" default:"table"`
}

func main() {
	boa.NewCmdT[Params]("subscription-updater").
		WithShort("Generate a payment-update checklist from credit card transactions").
		WithLong("Finds recurring charges (3+ occurrences of the same merchant) in a credit card transaction export, predicts the next billing date for each, and writes an interactive HTML checklist with links to each vendor's billing page.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, stdout, stderr io.Writer) error {
	switch params.Summary {
	case "table", "json", "none":
	default:
		return fmt.Errorf("unknown summary format: %s (available: table, json, none)", params.Summary)
	}

	cfg, err := loadConfig(params.Config)
	if err != nil {
		return err
	}

	source := params.Source
	if source == "auto" || source == "" {
		source = internal.DetectSource(params.Input)
	}
	parser, err := internal.GetParser(source)
	if err != nil {
		return err
	}

	res, err := parser.Parse(params.Input)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", params.Input, err)
	}
	for _, row := range res.Skipped {
		fmt.Fprintf(stderr, "skipping row %d: %s\n", row.Row, row.Reason)
	}

	charges, excluded := cfg.FilterExcluded(res.Charges)
	groups := internal.DetectSubscriptions(charges)

	now := time.Now()
	doc, err := internal.RenderChecklist(groups, cfg, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(params.Output, doc, 0644); err != nil {
		return fmt.Errorf("writing checklist: %w", err)
	}

	stats := internal.RunStats{
		Charges:  len(charges),
		Dropped:  res.Dropped,
		Excluded: excluded,
		Skipped:  len(res.Skipped),
	}

	switch params.Summary {
	case "table":
		internal.PrintSummaryTable(stdout, groups, stats, now)
		fmt.Fprintf(stdout, "Checklist written to %s\n", params.Output)
	case "json":
		internal.PrintSummaryJSON(stdout, groups, stats, now)
	}
	return nil
}

// loadConfig resolves the effective config. An explicit path must load; the
// default path is used only when it exists. Everything else falls back to
// the built-in defaults.
func loadConfig(path string) (*internal.Config, error) {
	if path != "auto" && path != "" {
		return internal.LoadConfig(path)
	}
	if defaultPath := internal.DefaultConfigPath(); defaultPath != "" {
		if _, err := os.Stat(defaultPath); err == nil {
			return internal.LoadConfig(defaultPath)
		}
	}
	return internal.NewDefaultConfig()
}
