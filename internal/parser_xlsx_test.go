package internal

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var xlsxColumns = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// writeCardXLSX creates a card-format xlsx export: optional banner rows above
// the column titles, then the data rows.
func writeCardXLSX(t *testing.T, banner []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	r := 1
	for _, b := range banner {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), b)
		r++
	}

	header := []string{"Account Type", "Account Number", "Transaction Date",
		"Cheque Number", "Description 1", "Description 2", "CAD$", "USD$"}
	for i, h := range header {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", xlsxColumns[i], r), h)
	}
	r++

	for _, row := range rows {
		for i, v := range row {
			if v == "" {
				continue
			}
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", xlsxColumns[i], r), v)
		}
		r++
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to create test xlsx: %v", err)
	}
	return path
}

func TestParseCardXLSX_Charges(t *testing.T) {
	path := writeCardXLSX(t, nil, [][]string{
		{"MASTERCARD", "4512********1234", "1/5/2025", "", "NETFLIX.COM 866-716-0414", "", "-16.49", ""},
		{"MASTERCARD", "4512********1234", "1/7/2025", "", "OPENAI *CHATGPT SUBSCR OPENAI.COM", "", "", "-20.00"},
	})

	res, err := ParseCardXLSX(path)
	require.NoError(t, err)
	require.Len(t, res.Charges, 2)
	assert.Empty(t, res.Skipped)

	first := res.Charges[0]
	assert.True(t, first.Date.Equal(date("2025-01-05")))
	assert.Equal(t, "NETFLIX.COM 866-716-0414", first.Merchant)
	assert.Equal(t, "-16.49", first.Amount.StringFixed(2))
	assert.Equal(t, "CAD", first.Currency)

	assert.Equal(t, "USD", res.Charges[1].Currency)
}

func TestParseCardXLSX_HeaderBelowBannerRows(t *testing.T) {
	path := writeCardXLSX(t,
		[]string{"Credit Card Transactions", "Exported 3/31/2025"},
		[][]string{
			{"MASTERCARD", "4512********1234", "1/5/2025", "", "NETFLIX.COM 866-716-0414", "", "-16.49", ""},
			{"MASTERCARD", "4512********1234", "13/45/2025", "", "BROKEN ROW", "", "-5.00", ""},
		})

	res, err := ParseCardXLSX(path)
	require.NoError(t, err)
	assert.Len(t, res.Charges, 1)

	// banner rows 1-2, header row 3, data rows 4-5
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 5, res.Skipped[0].Row)
}

func TestParseCardXLSX_DropsPayments(t *testing.T) {
	path := writeCardXLSX(t, nil, [][]string{
		{"MASTERCARD", "4512********1234", "1/10/2025", "", "PAYMENT - THANK YOU", "", "2200.00", ""},
	})

	res, err := ParseCardXLSX(path)
	require.NoError(t, err)
	assert.Empty(t, res.Charges)
	assert.Equal(t, 1, res.Dropped)
}

func TestParseCardXLSX_MissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-header.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Just some text")
	require.NoError(t, f.SaveAs(path))

	_, err := ParseCardXLSX(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find header row")
}

func TestParseCardXLSX_AgreesWithCSV(t *testing.T) {
	rows := [][]string{
		{"MASTERCARD", "4512********1234", "1/5/2025", "", "NETFLIX.COM 866-716-0414", "", "-16.49", ""},
		{"MASTERCARD", "4512********1234", "1/7/2025", "", "OPENAI *CHATGPT SUBSCR OPENAI.COM", "", "", "-20.00"},
		{"MASTERCARD", "4512********1234", "1/10/2025", "", "PAYMENT - THANK YOU", "", "2200.00", ""},
	}

	xlsxPath := writeCardXLSX(t, nil, rows)
	var csvLines []string
	csvLines = append(csvLines, cardHeader)
	for _, row := range rows {
		csvLines = append(csvLines, fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7]))
	}
	csvPath := writeTempCSV(t, csvLines...)

	fromXLSX, err := ParseCardXLSX(xlsxPath)
	require.NoError(t, err)
	fromCSV, err := ParseCardCSV(csvPath)
	require.NoError(t, err)

	require.Equal(t, len(fromCSV.Charges), len(fromXLSX.Charges))
	for i := range fromCSV.Charges {
		assert.Equal(t, fromCSV.Charges[i].Merchant, fromXLSX.Charges[i].Merchant)
		assert.Equal(t, fromCSV.Charges[i].Currency, fromXLSX.Charges[i].Currency)
		assert.True(t, fromCSV.Charges[i].Amount.Equal(fromXLSX.Charges[i].Amount))
		assert.True(t, fromCSV.Charges[i].Date.Equal(fromXLSX.Charges[i].Date))
	}
	assert.Equal(t, fromCSV.Dropped, fromXLSX.Dropped)
}

func TestParseCardXLSX_OpenError(t *testing.T) {
	_, err := ParseCardXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")
}
