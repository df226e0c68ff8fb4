package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigsDefaultsWhenFilesAbsent(t *testing.T) {
	cfg, dcfg, err := loadConfigs(t.TempDir(), "config.json", "dataconfig.json")
	require.NoError(t, err)

	assert.Equal(t, "data/raw/cardio_train.csv", cfg.RawDataPath)
	assert.Equal(t, "reports/tables", cfg.TablesDir)
	assert.False(t, cfg.Watch.Enabled)

	r, ok := dcfg.RangeFor("height")
	require.True(t, ok)
	assert.Equal(t, Range{Min: 120, Max: 220}, r)
	assert.Equal(t, 140.0, dcfg.Risk.SystolicCutoff)
	assert.Equal(t, 90.0, dcfg.Risk.DiastolicCutoff)
	assert.Equal(t, 30.0, dcfg.Risk.ObesityBMI)
}

func TestLoadConfigsOverridesFromJSON(t *testing.T) {
	dir := t.TempDir()

	appJSON := `{
		"raw_data_path": "input/survey.csv",
		"watch": {"enabled": true, "check_interval": "2m"}
	}`
	dataJSON := `{
		"ranges": {
			"height": {"min": 100, "max": 250},
			"weight": {"min": 35, "max": 200},
			"ap_hi": {"min": 70, "max": 250},
			"ap_lo": {"min": 40, "max": 150}
		},
		"risk": {"systolic_cutoff": 130, "diastolic_cutoff": 85, "obesity_bmi": 30}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(appJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dataconfig.json"), []byte(dataJSON), 0644))

	cfg, dcfg, err := loadConfigs(dir, "config.json", "dataconfig.json")
	require.NoError(t, err)

	assert.Equal(t, "input/survey.csv", cfg.RawDataPath)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "reports/figures", cfg.FiguresDir)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 2*time.Minute, time.Duration(cfg.Watch.CheckInterval))

	r, ok := dcfg.RangeFor("height")
	require.True(t, ok)
	assert.Equal(t, Range{Min: 100, Max: 250}, r)
	assert.Equal(t, 130.0, dcfg.Risk.SystolicCutoff)
}

func TestLoadConfigsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644))

	_, _, err := loadConfigs(dir, "config.json", "dataconfig.json")
	assert.Error(t, err)
}

func TestDurationJSONRoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(data))

	var back Duration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDurationUnmarshalRejectsGarbage(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
}

func TestSetRange(t *testing.T) {
	dcfg := DefaultDataConfig()
	dcfg.SetRange("height", Range{Min: 110, Max: 230})

	r, ok := dcfg.RangeFor("height")
	require.True(t, ok)
	assert.Equal(t, Range{Min: 110, Max: 230}, r)

	_, ok = dcfg.RangeFor("bmi")
	assert.False(t, ok)
}
