package internal

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SourceCSV is the registry name of the credit card CSV parser.
const SourceCSV = "csv"

// cardDateFormat matches the export's M/D/YYYY transaction dates.
const cardDateFormat = "1/2/2006"

// Export column titles. Transaction Date, Description 1 and the two amount
// columns are required; Account Type, Account Number, Cheque Number and
// Description 2 are part of the schema but unused.
const (
	colTransactionDate = "Transaction Date"
	colDescription1    = "Description 1"
	colCAD             = "CAD$"
	colUSD             = "USD$"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCardCSV reads a credit card CSV export.
// Malformed rows are skipped and reported in the result, never silently lost.
func ParseCardCSV(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return parseCardCSV(f)
}

func parseCardCSV(r io.Reader) (*ParseResult, error) {
	br := bufio.NewReader(r)

	// Some banks export with a UTF-8 BOM; tolerate it.
	if lead, err := br.Peek(3); err == nil && bytes.Equal(lead, utf8BOM) {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &ParseResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{}
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRow{Row: row, Reason: "unreadable CSV record"})
			continue
		}
		addRow(res, row, field(rec, cols.date), field(rec, cols.desc), field(rec, cols.cad), field(rec, cols.usd))
	}
	return res, nil
}

// cardColumns holds the header positions of the fields the parser uses.
type cardColumns struct {
	date, desc, cad, usd int
}

func locateColumns(header []string) (cardColumns, error) {
	cols := cardColumns{date: -1, desc: -1, cad: -1, usd: -1}
	for i, cell := range header {
		switch strings.TrimSpace(cell) {
		case colTransactionDate:
			cols.date = i
		case colDescription1:
			cols.desc = i
		case colCAD:
			cols.cad = i
		case colUSD:
			cols.usd = i
		}
	}

	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{
		{colTransactionDate, cols.date},
		{colDescription1, cols.desc},
		{colCAD, cols.cad},
		{colUSD, cols.usd},
	} {
		if c.idx == -1 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("input is missing required column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// field returns the record value at idx, or "" when the row is short.
func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// addRow runs one export row through the shared row contract and files the
// outcome into res. Blank padding rows are ignored.
func addRow(res *ParseResult, row int, dateStr, desc, cad, usd string) {
	if strings.TrimSpace(dateStr) == "" && strings.TrimSpace(desc) == "" &&
		strings.TrimSpace(cad) == "" && strings.TrimSpace(usd) == "" {
		return
	}
	tx, keep, err := parseCardRow(dateStr, desc, cad, usd)
	if err != nil {
		res.Skipped = append(res.Skipped, SkippedRow{Row: row, Reason: err.Error()})
		return
	}
	if !keep {
		res.Dropped++
		return
	}
	res.Charges = append(res.Charges, tx)
}

// parseCardRow converts one export row into a Transaction. keep is false for
// rows that parse fine but are not charges (payments and refunds carry zero
// or positive amounts). A non-nil error means the row is malformed.
func parseCardRow(dateStr, desc, cad, usd string) (tx Transaction, keep bool, err error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return Transaction{}, false, errors.New("empty merchant description")
	}

	date, err := time.Parse(cardDateFormat, strings.TrimSpace(dateStr))
	if err != nil {
		return Transaction{}, false, fmt.Errorf("unparseable date %q", strings.TrimSpace(dateStr))
	}

	cad = strings.TrimSpace(cad)
	usd = strings.TrimSpace(usd)

	var raw, currency string
	switch {
	case cad != "" && usd != "":
		return Transaction{}, false, errors.New("amount in both CAD$ and USD$ columns")
	case cad != "":
		raw, currency = cad, "CAD"
	case usd != "":
		raw, currency = usd, "USD"
	default:
		return Transaction{}, false, errors.New("no amount in CAD$ or USD$ columns")
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Transaction{}, false, fmt.Errorf("unparseable amount %q", raw)
	}

	if amount.Sign() >= 0 {
		return Transaction{}, false, nil
	}

	return Transaction{
		Date:     date,
		Merchant: desc,
		Amount:   amount,
		Currency: currency,
	}, true, nil
}

func init() {
	RegisterParser(SourceCSV, ParserFunc(ParseCardCSV))
}
