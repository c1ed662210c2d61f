package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const SourceXLSX = "xlsx"

// ParseCardXLSX reads a credit card XLSX export. The sheet may carry banner
// rows above the column titles, so the header row is located by scanning.
func ParseCardXLSX(path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	cols := cardColumns{}
	dataStart := -1
	for i, row := range rows {
		if c, err := locateColumns(row); err == nil {
			cols = c
			dataStart = i + 1
			break
		}
	}
	if dataStart < 0 {
		return nil, fmt.Errorf("could not find header row with required columns (%s, %s, %s, %s)",
			colTransactionDate, colDescription1, colCAD, colUSD)
	}

	res := &ParseResult{}
	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		addRow(res, i+1, field(row, cols.date), field(row, cols.desc), field(row, cols.cad), field(row, cols.usd))
	}
	return res, nil
}

func init() {
	RegisterParser(SourceXLSX, ParserFunc(ParseCardXLSX))
}
