package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	df := loadFinal(
		finalRow{cardio: "0", ageYears: "40.0", apHi: "120", apLo: "80", bmi: "24.0", pulsePressure: "40"},
		finalRow{cardio: "0", ageYears: "45.0", apHi: "130", apLo: "85", bmi: "26.0", pulsePressure: "45"},
		finalRow{cardio: "1", ageYears: "50.0", apHi: "140", apLo: "90", bmi: "28.0", pulsePressure: "50"},
		finalRow{cardio: "1", ageYears: "55.0", apHi: "150", apLo: "95", bmi: "30.0", pulsePressure: "55"},
	)

	path := filepath.Join(t.TempDir(), "summary_report.xlsx")
	require.NoError(t, WriteWorkbook(df, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Descriptive Statistics",
		"Group Comparison",
		"Correlation Matrix",
	}, f.GetSheetList())

	// Header cell of the group comparison sheet carries the first base
	// column name.
	got, err := f.GetCellValue("Group Comparison", "B1")
	require.NoError(t, err)
	assert.Equal(t, "age_years", got)
}
