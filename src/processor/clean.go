// clean.go
package processor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"CardioPipeline/src/config"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/montanaflynn/stats"
)

// MeasurementColumns are the columns that go through coercion, range
// masking, and median imputation, in that order.
var MeasurementColumns = []string{"height", "weight", "ap_hi", "ap_lo"}

const daysPerYear = 365.25

// Cleaner applies the deterministic cleaning policy to a raw table.
// The step order is contractual: earlier masking decides which values
// the consistency check and the medians ever see.
type Cleaner struct {
	rules *config.DataConfig
}

// NewCleaner builds a Cleaner around the validation rules.
func NewCleaner(rules *config.DataConfig) *Cleaner {
	return &Cleaner{rules: rules}
}

// Clean returns a new table with duplicates dropped, age_years derived,
// the measurement columns coerced to float, implausible and
// inconsistent values masked, and every remaining gap filled with the
// column median. After Clean the measurement columns contain no
// missing values.
func (c *Cleaner) Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	// 1) Remove full duplicates, keeping first occurrences in order.
	df = Deduplicate(df)

	// 2) Convert age in days to years, one decimal. The day count stays.
	df = df.Mutate(series.New(ageYears(df.Col("age")), series.Float, "age_years"))

	// 3) Coerce measurements to numeric; unparsable cells become NaN.
	cols := make(map[string][]float64, len(MeasurementColumns))
	for _, name := range MeasurementColumns {
		cols[name] = toFloats(df.Col(name))
	}

	// 4) Mask values outside the plausibility ranges, per column.
	for _, name := range MeasurementColumns {
		bounds, ok := c.rules.RangeFor(name)
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("no validation range configured for column %q", name)
		}
		maskRange(cols[name], bounds)
	}

	// 5) Systolic must exceed diastolic; invalid pairs are dropped
	// jointly, never repaired one side at a time.
	maskInconsistentBP(cols["ap_hi"], cols["ap_lo"])

	// 6) Fill gaps with each column's median over what survived 3-5.
	// Medians are computed once per column, not incrementally.
	for _, name := range MeasurementColumns {
		if err := imputeMedian(cols[name]); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("median imputation for column %q: %w", name, err)
		}
	}

	for _, name := range MeasurementColumns {
		df = df.Mutate(series.New(cols[name], series.Float, name))
	}
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("cleaning failed: %w", df.Error())
	}

	return df, nil
}

// Deduplicate drops rows that are exact duplicates of an earlier row,
// comparing every field. Survivor order is unchanged. Idempotent.
func Deduplicate(df dataframe.DataFrame) dataframe.DataFrame {
	records := df.Records()
	if len(records) <= 1 {
		return df
	}

	seen := make(map[string]struct{}, len(records)-1)
	keep := make([]int, 0, len(records)-1)
	for i, row := range records[1:] {
		h := rowHash(row)
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		keep = append(keep, i)
	}

	if len(keep) == df.Nrow() {
		return df
	}
	return df.Subset(keep)
}

// ageYears maps an age-in-days column to years, rounded to one decimal.
// Monotonic in the day count.
func ageYears(col series.Series) []float64 {
	out := make([]float64, col.Len())
	for i := 0; i < col.Len(); i++ {
		v, err := parseCell(col.Elem(i).String())
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = round1(v / daysPerYear)
	}
	return out
}

// toFloats coerces a column to float64, turning anything unparsable
// into NaN rather than an error.
func toFloats(col series.Series) []float64 {
	out := make([]float64, col.Len())
	for i := 0; i < col.Len(); i++ {
		v, err := parseCell(col.Elem(i).String())
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if isMissing(cell) {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(cell, 64)
}

// maskRange replaces values outside the inclusive bounds with NaN.
func maskRange(vals []float64, bounds config.Range) {
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < bounds.Min || v > bounds.Max {
			vals[i] = math.NaN()
		}
	}
}

// maskInconsistentBP nulls both pressures where both are present and
// systolic is not strictly greater than diastolic.
func maskInconsistentBP(hi, lo []float64) {
	for i := range hi {
		if math.IsNaN(hi[i]) || math.IsNaN(lo[i]) {
			continue
		}
		if hi[i] <= lo[i] {
			hi[i] = math.NaN()
			lo[i] = math.NaN()
		}
	}
}

// imputeMedian fills every NaN with the median of the non-NaN values.
// A column with nothing left to take a median over is a degenerate
// input; the error from the stats library is propagated as-is.
func imputeMedian(vals []float64) error {
	present := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == len(vals) {
		return nil
	}

	median, err := stats.Median(present)
	if err != nil {
		return err
	}

	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = median
		}
	}
	return nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
