package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id;age;gender;height;weight;ap_hi;ap_lo;cholesterol;gluc;smoke;alco;active;cardio
0;18393;2;168;62.0;110;80;1;1;0;0;1;0
1;20228;1;156;85.0;140;90;3;1;0;0;1;1
2;18857;1;165;64.0;130;70;3;1;0;0;0;1
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardio_train.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSVToDataFrame(t *testing.T) {
	path := writeSample(t, sampleCSV)

	df, err := ReadCSVToDataFrame(path)
	require.NoError(t, err)

	assert.Equal(t, 3, df.Nrow())
	assert.Equal(t, len(RawColumns), df.Ncol())
	assert.Equal(t, RawColumns, df.Names())

	// Values come through untouched as strings.
	assert.Equal(t, []string{"168", "156", "165"}, df.Col("height").Records())
}

func TestReadCSVToDataFrameMissingFile(t *testing.T) {
	_, err := ReadCSVToDataFrame(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestReadCSVToDataFrameMissingColumn(t *testing.T) {
	path := writeSample(t, "id;age;gender\n1;18393;2\n")

	_, err := ReadCSVToDataFrame(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReadCSVToDataFrameRaggedRow(t *testing.T) {
	ragged := "id;age;gender;height;weight;ap_hi;ap_lo;cholesterol;gluc;smoke;alco;active;cardio\n1;18393\n"
	path := writeSample(t, ragged)

	_, err := ReadCSVToDataFrame(path)
	assert.Error(t, err)
}

func TestHasColumn(t *testing.T) {
	path := writeSample(t, sampleCSV)
	df, err := ReadCSVToDataFrame(path)
	require.NoError(t, err)

	assert.True(t, HasColumn(df, "ap_hi"))
	assert.False(t, HasColumn(df, "bmi"))
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	nested := filepath.Join(base, "reports", "tables")
	require.NoError(t, EnsureDir(nested))

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is a no-op.
	assert.NoError(t, EnsureDir(nested))

	// A file in the way is an error.
	blocked := filepath.Join(base, "occupied")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))
	assert.Error(t, EnsureDir(blocked))
}
