// excel.go
package report

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// Sheet pairs a worksheet name with its cell rows.
type Sheet struct {
	Name string
	Rows [][]string
}

// WriteWorkbook bundles the three derived tables into one xlsx file so
// the analyst gets a single spreadsheet alongside the CSVs.
func WriteWorkbook(df dataframe.DataFrame, filePath string) error {
	descriptive, err := DescriptiveRows(df)
	if err != nil {
		return err
	}
	comparison, err := GroupComparisonRows(df)
	if err != nil {
		return err
	}
	correlation, err := CorrelationRows(df)
	if err != nil {
		return err
	}

	sheets := []Sheet{
		{Name: "Descriptive Statistics", Rows: descriptive},
		{Name: "Group Comparison", Rows: comparison},
		{Name: "Correlation Matrix", Rows: correlation},
	}
	return writeSheets(filePath, sheets)
}

func writeSheets(filePath string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
			}
		}

		for rowIdx, row := range sheet.Rows {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return fmt.Errorf("bad cell coordinates in sheet %q: %w", sheet.Name, err)
				}
				if num, convErr := strconv.ParseFloat(value, 64); convErr == nil {
					f.SetCellValue(sheet.Name, cell, num)
				} else {
					f.SetCellValue(sheet.Name, cell, value)
				}
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filePath, err)
	}
	return nil
}
