// Package statement converts uploaded bank statement files into plain text.
package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Kind is how an upload is turned into text.
type Kind int

const (
	// KindImage needs OCR.
	KindImage Kind = iota
	// KindText is used verbatim.
	KindText
	// KindSpreadsheet is flattened to CSV.
	KindSpreadsheet
)

// KindOf decides by file extension.
func KindOf(filename string) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv":
		return KindText
	case ".xlsx", ".xlsm":
		return KindSpreadsheet
	default:
		return KindImage
	}
}

// SpreadsheetToCSV renders every non-empty sheet of an XLSX workbook as CSV,
// sheets separated by a blank line.
func SpreadsheetToCSV(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	var out strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		w := csv.NewWriter(&out)
		if err := w.WriteAll(rows); err != nil {
			return "", fmt.Errorf("writing sheet %q as csv: %w", sheet, err)
		}
	}
	return out.String(), nil
}
