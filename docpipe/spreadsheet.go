package docpipe

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// extractXLSX parses an Excel workbook: each sheet becomes a level-1
// heading followed by one table, first row as headers.
func extractXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var elements []Element
	var warnings []string

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		rows = dropEmptyRows(rows)
		if len(rows) == 0 {
			warnings = append(warnings, fmt.Sprintf("sheet %q is empty", sheet))
			continue
		}

		elements = append(elements, Element{Type: ElementHeading, Text: sheet, Level: 1})
		elements = append(elements, Element{
			Type:    ElementTable,
			Headers: rows[0],
			Rows:    rows[1:],
		})
	}

	return &Result{Elements: elements, Warnings: warnings}, nil
}

// extractCSV parses a comma-separated file into a single table element,
// first record as headers.
func extractCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are common in exported plans
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	records = dropEmptyRows(records)
	if len(records) == 0 {
		return &Result{Warnings: []string{"csv file is empty"}}, nil
	}

	return &Result{
		Elements: []Element{{
			Type:    ElementTable,
			Headers: records[0],
			Rows:    records[1:],
		}},
	}, nil
}

func dropEmptyRows(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
