package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds the run-level settings of the pipeline: where the raw
// survey file lives, where outputs go, and how logging and the optional
// watch mode behave. Every field has a compiled-in default so the
// program runs with no config files present.
type Config struct {
	RawDataPath   string `json:"raw_data_path"`  // semicolon-delimited survey CSV
	ProcessedPath string `json:"processed_path"` // final cleaned table (comma CSV)
	TablesDir     string `json:"tables_dir"`     // derived statistics tables
	FiguresDir    string `json:"figures_dir"`    // rendered PNG figures

	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`

	Watch struct {
		Enabled       bool     `json:"enabled"`        // stay up and re-run on new data
		CheckInterval Duration `json:"check_interval"` // cron re-check interval
	} `json:"watch"`
}

// Range is an inclusive plausibility interval for a measurement column.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DataConfig holds the domain validation rules: per-column plausibility
// ranges and the clinical risk cutoffs. Bounds come from domain
// literature, not from the data.
type DataConfig struct {
	Ranges map[string]Range `json:"ranges"`

	Risk struct {
		SystolicCutoff  float64 `json:"systolic_cutoff"`
		DiastolicCutoff float64 `json:"diastolic_cutoff"`
		ObesityBMI      float64 `json:"obesity_bmi"`
	} `json:"risk"`
}

var (
	once               sync.Once
	instance           *Config
	dataConfigInstance *DataConfig
	mu                 sync.RWMutex
)

// Default returns the fixed paths and logging settings the pipeline uses
// when no config.json is present.
func Default() *Config {
	cfg := &Config{
		RawDataPath:   "data/raw/cardio_train.csv",
		ProcessedPath: "data/processed/cardio_clean.csv",
		TablesDir:     "reports/tables",
		FiguresDir:    "reports/figures",
		LogName:       "pipeline.log",
		LogMaxSize:    "10 * 1024 * 1024",
	}
	cfg.Watch.Enabled = false
	cfg.Watch.CheckInterval = Duration(5 * time.Minute)
	return cfg
}

// DefaultDataConfig returns the literature plausibility bounds and risk
// cutoffs used when no dataconfig.json is present.
func DefaultDataConfig() *DataConfig {
	dcfg := &DataConfig{
		Ranges: map[string]Range{
			"height": {Min: 120, Max: 220},
			"weight": {Min: 35, Max: 200},
			"ap_hi":  {Min: 70, Max: 250},
			"ap_lo":  {Min: 40, Max: 150},
		},
	}
	dcfg.Risk.SystolicCutoff = 140
	dcfg.Risk.DiastolicCutoff = 90
	dcfg.Risk.ObesityBMI = 30
	return dcfg
}

// LoadConfig loads both configuration files once per process. Missing
// files fall back to the compiled-in defaults; malformed files are
// errors.
func LoadConfig(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	var err error
	once.Do(func() {
		instance, dataConfigInstance, err = loadConfigs(jsonFolder, jsonFile, dataJsonFile)
	})
	return instance, dataConfigInstance, err
}

func loadConfigs(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	dataConfigFile := filepath.Join(jsonFolder, dataJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dataConfigData, err := readFile(dataConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read data config file: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	dcfgChan := make(chan *DataConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseDataConfig(dataConfigData, dcfgChan, errChan)

	cfg, dcfg, err := waitForResults(cfgChan, dcfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	return cfg, dcfg, nil
}

// readFile returns nil data, without error, when the file does not
// exist; the parse step substitutes the defaults in that case.
func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read file %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	cfg := Default()
	if data != nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			errChan <- fmt.Errorf("failed to parse Config: %w", err)
			return
		}
	}
	resultChan <- cfg
}

func parseDataConfig(data []byte, resultChan chan<- *DataConfig, errChan chan<- error) {
	dcfg := DefaultDataConfig()
	if data != nil {
		if err := json.Unmarshal(data, dcfg); err != nil {
			errChan <- fmt.Errorf("failed to parse DataConfig: %w", err)
			return
		}
	}
	resultChan <- dcfg
}

func waitForResults(
	cfgChan <-chan *Config,
	dcfgChan <-chan *DataConfig,
	errChan <-chan error,
) (*Config, *DataConfig, error) {
	var (
		cfg    *Config
		dcfg   *DataConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-dcfgChan:
			dcfg = d
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || dcfg == nil {
		return nil, nil, fmt.Errorf("some configuration failed to load")
	}

	return cfg, dcfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "configuration loading hit multiple errors:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// Duration wraps time.Duration so intervals can be written as "5m" in
// JSON config files.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// RangeFor returns the plausibility bounds for a measurement column.
func (dc *DataConfig) RangeFor(colName string) (Range, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := dc.Ranges[colName]
	return r, ok
}

// SetRange replaces the plausibility bounds for a measurement column.
func (dc *DataConfig) SetRange(colName string, r Range) {
	mu.Lock()
	defer mu.Unlock()
	dc.Ranges[colName] = r
}
