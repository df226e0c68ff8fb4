package main

import (
	"CardioPipeline/src/config"
	"CardioPipeline/src/datasource/file"
	"CardioPipeline/src/processor"
	"CardioPipeline/src/report"
	"CardioPipeline/src/storage"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/robfig/cron"
)

func main() {
	jsonFolder := "./config"
	jsonFile := "config.json"
	dataJsonFile := "dataconfig.json"
	cfg, dcfg, err := config.LoadConfig(jsonFolder, jsonFile, dataJsonFile)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	if err := runPipeline(cfg, dcfg, logger); err != nil {
		logger.Error("pipeline failed: " + err.Error())
		log.Fatal("pipeline failed: ", err)
	}

	fmt.Println(completionMessage(cfg))

	if cfg.Watch.Enabled {
		watchAndRerun(cfg, dcfg, logger)
	}
}

// completionMessage names the two output roots of a finished run: the
// cleaned-table directory and the common parent of tables, figures and
// the workbook.
func completionMessage(cfg *config.Config) string {
	return fmt.Sprintf("DONE. Output saved to %s and %s.",
		filepath.Dir(cfg.ProcessedPath), filepath.Dir(cfg.TablesDir))
}

// runPipeline executes one full pass: load, audit, clean, derive
// features, write tables and figures, persist the final table. Any
// failure aborts the run; data-quality anomalies are handled by the
// cleaning policy and are not failures.
func runPipeline(cfg *config.Config, dcfg *config.DataConfig, logger *storage.Logger) error {
	t1 := time.Now()

	for _, dir := range []string{filepath.Dir(cfg.ProcessedPath), cfg.TablesDir, cfg.FiguresDir} {
		if err := file.EnsureDir(dir); err != nil {
			return err
		}
	}

	raw, err := file.ReadCSVToDataFrame(cfg.RawDataPath)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("loaded %d rows x %d columns from %s",
		raw.Nrow(), raw.Ncol(), cfg.RawDataPath))

	audit := processor.Audit(raw)
	if err := audit.WriteCSV(filepath.Join(cfg.TablesDir, "audit_summary.csv")); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("audit: %d duplicates, worst missing ratio %.4f",
		audit.Duplicates, audit.MaxMissingRatio))

	cleaned, err := processor.NewCleaner(dcfg).Clean(raw)
	if err != nil {
		return err
	}

	final := processor.NewFeaturizer(dcfg).AddFeatures(cleaned)

	if err := report.WriteDescriptiveStats(final, filepath.Join(cfg.TablesDir, "descriptive_statistics.csv")); err != nil {
		return err
	}
	if err := report.WriteGroupComparison(final, filepath.Join(cfg.TablesDir, "group_comparison.csv")); err != nil {
		return err
	}
	if err := report.WriteCorrelationMatrix(final, filepath.Join(cfg.TablesDir, "correlation_matrix.csv")); err != nil {
		return err
	}
	if err := report.WriteWorkbook(final, filepath.Join(cfg.TablesDir, "summary_report.xlsx")); err != nil {
		return err
	}

	if err := report.WriteBMIHistogram(final, filepath.Join(cfg.FiguresDir, "bmi_distribution.png")); err != nil {
		return err
	}
	if err := report.WriteSystolicBoxplot(final, filepath.Join(cfg.FiguresDir, "ap_hi_boxplot_by_cardio.png")); err != nil {
		return err
	}

	if err := persistFinal(final, cfg.ProcessedPath); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("pipeline finished: %d rows written in %v",
		final.Nrow(), time.Since(t1)))
	return nil
}

// persistFinal writes the feature-augmented table as a comma-delimited
// CSV with a header row and no index column.
func persistFinal(final dataframe.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := final.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// watchAndRerun keeps the process up, re-running the pipeline when the
// raw data file changes and on the configured re-check interval.
func watchAndRerun(cfg *config.Config, dcfg *config.DataConfig, logger *storage.Logger) {
	rerun := func(reason string) {
		logger.Info("re-running pipeline: " + reason)
		if err := runPipeline(cfg, dcfg, logger); err != nil {
			logger.Error("pipeline re-run failed: " + err.Error())
		}
		logger.CheckRotate(cfg)
	}

	monitor, err := file.NewFileMonitor(cfg.RawDataPath)
	if err != nil {
		logger.Error("failed to start file monitor: " + err.Error())
		os.Exit(1)
	}
	defer monitor.Close()

	go func() {
		if err := monitor.Watch(func(path string) {
			rerun("raw data file updated: " + path)
		}); err != nil {
			logger.Error("file monitoring error: " + err.Error())
		}
	}()

	c := cron.New()
	interval := time.Duration(cfg.Watch.CheckInterval).String()
	cronSpec := fmt.Sprintf("@every %s", interval)
	if err := c.AddFunc(cronSpec, func() {
		rerun(fmt.Sprintf("scheduled check (interval: %v)", interval))
	}); err != nil {
		logger.Error("failed to schedule periodic run: " + err.Error())
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	logger.Info(fmt.Sprintf("watch mode on: monitoring %s (re-check interval %v)",
		cfg.RawDataPath, interval))
	select {}
}
