package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// GroupColumns are compared across the cardio outcome groups.
var GroupColumns = []string{"age_years", "ap_hi", "ap_lo", "bmi", "pulse_pressure"}

// CorrelationColumns is the fixed set the correlation matrix covers.
var CorrelationColumns = []string{
	"age_years", "ap_hi", "ap_lo", "bmi", "pulse_pressure",
	"cholesterol", "gluc", "smoke", "alco", "active", "cardio",
}

var describeLabels = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// WriteDescriptiveStats persists per-column summary statistics, one
// statistic per row, column labels across the top.
func WriteDescriptiveStats(df dataframe.DataFrame, filePath string) error {
	rows, err := DescriptiveRows(df)
	if err != nil {
		return err
	}
	return writeCSVFile(filePath, rows)
}

// DescriptiveRows computes count/mean/std/min/quartiles/max for every
// numeric column, rounded to two decimals. The table is read, never
// modified.
func DescriptiveRows(df dataframe.DataFrame) ([][]string, error) {
	names := numericColumns(df)
	if len(names) == 0 {
		return nil, fmt.Errorf("no numeric columns to describe")
	}

	header := append([]string{""}, names...)
	rows := [][]string{header}
	cells := make(map[string][]string, len(describeLabels))
	for _, label := range describeLabels {
		cells[label] = []string{label}
	}

	for _, name := range names {
		vals := present(columnFloats(df, name))
		if len(vals) == 0 {
			return nil, fmt.Errorf("column %q has no values to describe", name)
		}

		mean, err := stats.Mean(vals)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", name, err)
		}
		std, err := stats.StandardDeviationSample(vals)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", name, err)
		}
		min, err := stats.Min(vals)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", name, err)
		}
		max, err := stats.Max(vals)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", name, err)
		}
		median, err := stats.Median(vals)
		if err != nil {
			return nil, fmt.Errorf("describe %q: %w", name, err)
		}
		q25 := quantile(vals, 0.25)
		q75 := quantile(vals, 0.75)

		cells["count"] = append(cells["count"], strconv.Itoa(len(vals)))
		cells["mean"] = append(cells["mean"], format2(mean))
		cells["std"] = append(cells["std"], format2(std))
		cells["min"] = append(cells["min"], format2(min))
		cells["25%"] = append(cells["25%"], format2(q25))
		cells["50%"] = append(cells["50%"], format2(median))
		cells["75%"] = append(cells["75%"], format2(q75))
		cells["max"] = append(cells["max"], format2(max))
	}

	for _, label := range describeLabels {
		rows = append(rows, cells[label])
	}
	return rows, nil
}

// WriteGroupComparison persists mean/median/std of the comparison
// columns split by the cardio outcome.
func WriteGroupComparison(df dataframe.DataFrame, filePath string) error {
	rows, err := GroupComparisonRows(df)
	if err != nil {
		return err
	}
	return writeCSVFile(filePath, rows)
}

// GroupComparisonRows builds a two-level header (base column over
// statistic) with one row per cardio group, values rounded to two
// decimals.
func GroupComparisonRows(df dataframe.DataFrame) ([][]string, error) {
	groups := map[string][]int{"0": nil, "1": nil}
	cardio := df.Col("cardio").Records()
	for i, v := range cardio {
		v = strings.TrimSpace(v)
		if _, ok := groups[v]; ok {
			groups[v] = append(groups[v], i)
		}
	}

	top := []string{""}
	second := []string{""}
	for _, name := range GroupColumns {
		top = append(top, name, name, name)
		second = append(second, "mean", "median", "std")
	}
	indexLine := make([]string, len(top))
	indexLine[0] = "cardio"

	rows := [][]string{top, second, indexLine}

	for _, group := range []string{"0", "1"} {
		idx := groups[group]
		line := []string{group}
		for _, name := range GroupColumns {
			vals := present(pick(columnFloats(df, name), idx))
			if len(vals) == 0 {
				return nil, fmt.Errorf("cardio group %s has no values for %q", group, name)
			}

			mean, err := stats.Mean(vals)
			if err != nil {
				return nil, fmt.Errorf("group comparison %q: %w", name, err)
			}
			median, err := stats.Median(vals)
			if err != nil {
				return nil, fmt.Errorf("group comparison %q: %w", name, err)
			}
			std, err := stats.StandardDeviationSample(vals)
			if err != nil {
				return nil, fmt.Errorf("group comparison %q: %w", name, err)
			}

			line = append(line, format2(mean), format2(median), format2(std))
		}
		rows = append(rows, line)
	}

	return rows, nil
}

// WriteCorrelationMatrix persists the Pearson correlation matrix over
// the fixed column set.
func WriteCorrelationMatrix(df dataframe.DataFrame, filePath string) error {
	rows, err := CorrelationRows(df)
	if err != nil {
		return err
	}
	return writeCSVFile(filePath, rows)
}

// CorrelationRows builds the square labeled correlation matrix.
func CorrelationRows(df dataframe.DataFrame) ([][]string, error) {
	cols := make([][]float64, len(CorrelationColumns))
	for i, name := range CorrelationColumns {
		cols[i] = columnFloats(df, name)
	}

	rows := [][]string{append([]string{""}, CorrelationColumns...)}
	for i, name := range CorrelationColumns {
		line := []string{name}
		for j := range CorrelationColumns {
			r := pearson(cols[i], cols[j])
			line = append(line, strconv.FormatFloat(r, 'f', -1, 64))
		}
		rows = append(rows, line)
	}
	return rows, nil
}

// quantile computes the p-quantile over a sorted copy with linear
// interpolation. Defined for any non-empty input, single values
// included.
func quantile(vals []float64, p float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// pearson correlates the pairwise-complete observations of two columns.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return stat.Correlation(xs, ys, nil)
}

// columnFloats extracts a column as float64; gota maps anything that
// is not a number to NaN.
func columnFloats(df dataframe.DataFrame, name string) []float64 {
	return df.Col(name).Float()
}

// numericColumns lists, in table order, the columns whose non-missing
// cells all parse as numbers.
func numericColumns(df dataframe.DataFrame) []string {
	var names []string
	for _, name := range df.Names() {
		numeric := false
		ok := true
		for _, rec := range df.Col(name).Records() {
			rec = strings.TrimSpace(rec)
			if rec == "" || rec == "NA" || rec == "NaN" {
				continue
			}
			if _, err := strconv.ParseFloat(rec, 64); err != nil {
				ok = false
				break
			}
			numeric = true
		}
		if ok && numeric {
			names = append(names, name)
		}
	}
	return names
}

func present(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func pick(vals []float64, idx []int) []float64 {
	out := make([]float64, 0, len(idx))
	for _, i := range idx {
		out = append(out, vals[i])
	}
	return out
}

func format2(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

func writeCSVFile(filePath string, rows [][]string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filePath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return nil
}
