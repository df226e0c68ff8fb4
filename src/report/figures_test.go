package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBMIHistogram(t *testing.T) {
	df := loadFinal(
		finalRow{cardio: "0", ageYears: "40.0", apHi: "120", apLo: "80", bmi: "24.0", pulsePressure: "40"},
		finalRow{cardio: "0", ageYears: "45.0", apHi: "130", apLo: "85", bmi: "26.5", pulsePressure: "45"},
		finalRow{cardio: "1", ageYears: "50.0", apHi: "140", apLo: "90", bmi: "31.2", pulsePressure: "50"},
	)

	path := filepath.Join(t.TempDir(), "bmi_distribution.png")
	require.NoError(t, WriteBMIHistogram(df, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteSystolicBoxplot(t *testing.T) {
	df := loadFinal(
		finalRow{cardio: "0", ageYears: "40.0", apHi: "120", apLo: "80", bmi: "24.0", pulsePressure: "40"},
		finalRow{cardio: "0", ageYears: "45.0", apHi: "125", apLo: "85", bmi: "26.5", pulsePressure: "40"},
		finalRow{cardio: "1", ageYears: "50.0", apHi: "140", apLo: "90", bmi: "31.2", pulsePressure: "50"},
		finalRow{cardio: "1", ageYears: "55.0", apHi: "150", apLo: "95", bmi: "33.0", pulsePressure: "55"},
	)

	path := filepath.Join(t.TempDir(), "ap_hi_boxplot_by_cardio.png")
	require.NoError(t, WriteSystolicBoxplot(df, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteSystolicBoxplotRequiresBothGroups(t *testing.T) {
	df := loadFinal(
		finalRow{cardio: "0", ageYears: "40.0", apHi: "120", apLo: "80", bmi: "24.0", pulsePressure: "40"},
	)

	path := filepath.Join(t.TempDir(), "boxplot.png")
	assert.Error(t, WriteSystolicBoxplot(df, path))
}
