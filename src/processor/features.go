// features.go
package processor

import (
	"CardioPipeline/src/config"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Featurizer derives the clinical feature columns from a cleaned
// table. The cleaner guarantees the four measurement columns are fully
// populated, so no missing-value handling happens here.
type Featurizer struct {
	rules *config.DataConfig
}

// NewFeaturizer builds a Featurizer around the risk cutoffs.
func NewFeaturizer(rules *config.DataConfig) *Featurizer {
	return &Featurizer{rules: rules}
}

// AddFeatures returns the table with bmi, pulse_pressure, and the
// hypertension and obesity flags appended. Pure and row-wise.
func (f *Featurizer) AddFeatures(df dataframe.DataFrame) dataframe.DataFrame {
	height := df.Col("height").Float()
	weight := df.Col("weight").Float()
	apHi := df.Col("ap_hi").Float()
	apLo := df.Col("ap_lo").Float()

	n := df.Nrow()
	bmi := make([]float64, n)
	pulsePressure := make([]float64, n)
	hypertension := make([]int, n)
	obesity := make([]int, n)

	for i := 0; i < n; i++ {
		heightM := height[i] / 100.0
		bmi[i] = round2(weight[i] / (heightM * heightM))
		pulsePressure[i] = apHi[i] - apLo[i]

		if apHi[i] >= f.rules.Risk.SystolicCutoff || apLo[i] >= f.rules.Risk.DiastolicCutoff {
			hypertension[i] = 1
		}
		if bmi[i] >= f.rules.Risk.ObesityBMI {
			obesity[i] = 1
		}
	}

	df = df.Mutate(series.New(bmi, series.Float, "bmi"))
	df = df.Mutate(series.New(pulsePressure, series.Float, "pulse_pressure"))
	df = df.Mutate(series.New(hypertension, series.Int, "hypertension"))
	df = df.Mutate(series.New(obesity, series.Int, "obesity"))

	return df
}
