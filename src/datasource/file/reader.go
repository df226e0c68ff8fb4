// reader.go
package file

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// RawColumns is the expected header of the survey file, in order.
var RawColumns = []string{
	"id", "age", "gender", "height", "weight",
	"ap_hi", "ap_lo", "cholesterol", "gluc",
	"smoke", "alco", "active", "cardio",
}

// ReadCSVToDataFrame parses the semicolon-delimited survey file into a
// DataFrame. Columns are kept as strings; type coercion is the
// cleaner's job, so a stray non-numeric cell is not a load error here.
// A missing file, a ragged row, or a missing schema column is.
func ReadCSVToDataFrame(filePath string) (dataframe.DataFrame, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open raw data file: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(';'),
		dataframe.HasHeader(true),
		dataframe.WithTypes(rawTypes()),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse %s: %w", filePath, df.Error())
	}

	for _, col := range RawColumns {
		if !HasColumn(df, col) {
			return dataframe.DataFrame{}, fmt.Errorf("raw data file %s is missing column %q", filePath, col)
		}
	}

	return df, nil
}

// rawTypes pins every declared column to String so nothing is silently
// coerced at load time.
func rawTypes() map[string]series.Type {
	types := make(map[string]series.Type, len(RawColumns))
	for _, col := range RawColumns {
		types[col] = series.String
	}
	return types
}

// HasColumn reports whether the DataFrame has a column with that name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// EnsureDir creates the directory if it does not already exist.
func EnsureDir(dirPath string) error {
	if info, err := os.Stat(dirPath); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", dirPath)
	}
	return os.MkdirAll(dirPath, 0755)
}
