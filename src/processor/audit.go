// audit.go
package processor

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// AuditSummary is a one-row snapshot of ingestion quality, computed on
// the raw table before any cleaning.
type AuditSummary struct {
	Rows            int
	Columns         int
	Duplicates      int
	MaxMissingRatio float64
}

// Audit counts rows, columns, exact duplicate rows, and the worst
// per-column missing-value ratio. Pure; the DataFrame is not modified.
func Audit(df dataframe.DataFrame) AuditSummary {
	summary := AuditSummary{
		Rows:    df.Nrow(),
		Columns: df.Ncol(),
	}

	records := df.Records()
	if len(records) <= 1 {
		return summary
	}
	rows := records[1:]

	seen := make(map[string]struct{}, len(rows))
	missing := make([]int, summary.Columns)

	for _, row := range rows {
		h := rowHash(row)
		if _, ok := seen[h]; ok {
			summary.Duplicates++
		} else {
			seen[h] = struct{}{}
		}

		for j, cell := range row {
			if j < len(missing) && isMissing(cell) {
				missing[j]++
			}
		}
	}

	for _, count := range missing {
		ratio := float64(count) / float64(summary.Rows)
		if ratio > summary.MaxMissingRatio {
			summary.MaxMissingRatio = ratio
		}
	}

	return summary
}

// WriteCSV persists the summary as a single-row CSV.
func (a AuditSummary) WriteCSV(filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create audit summary file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"rows", "columns", "duplicates", "max_missing_ratio"},
		{
			strconv.Itoa(a.Rows),
			strconv.Itoa(a.Columns),
			strconv.Itoa(a.Duplicates),
			strconv.FormatFloat(a.MaxMissingRatio, 'f', -1, 64),
		},
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write audit summary: %w", err)
	}
	return nil
}

// rowHash fingerprints a full record for exact-duplicate detection.
func rowHash(row []string) string {
	hash := md5.Sum([]byte(strings.Join(row, "\x1f")))
	return hex.EncodeToString(hash[:])
}

// isMissing treats empty cells and the NA spellings produced by
// upstream exports as absent values, distinct from zero.
func isMissing(cell string) bool {
	switch strings.TrimSpace(cell) {
	case "", "NA", "NaN", "nan":
		return true
	}
	return false
}
