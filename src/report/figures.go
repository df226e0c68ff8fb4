// figures.go
package report

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const histogramBins = 40

// WriteBMIHistogram renders the BMI distribution to a PNG.
func WriteBMIHistogram(df dataframe.DataFrame, filePath string) error {
	vals := present(columnFloats(df, "bmi"))
	if len(vals) == 0 {
		return fmt.Errorf("no bmi values to plot")
	}

	p := plot.New()
	p.Title.Text = "BMI distribution"
	p.X.Label.Text = "BMI"
	p.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(plotter.Values(vals), histogramBins)
	if err != nil {
		return fmt.Errorf("failed to build bmi histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, filePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", filePath, err)
	}
	return nil
}

// WriteSystolicBoxplot renders ap_hi split by the cardio outcome to a
// PNG, one box per group.
func WriteSystolicBoxplot(df dataframe.DataFrame, filePath string) error {
	apHi := columnFloats(df, "ap_hi")
	cardio := df.Col("cardio").Records()

	byGroup := map[string][]float64{"0": nil, "1": nil}
	for i, v := range cardio {
		v = strings.TrimSpace(v)
		if _, ok := byGroup[v]; ok {
			byGroup[v] = append(byGroup[v], apHi[i])
		}
	}

	p := plot.New()
	p.Title.Text = "Systolic blood pressure by cardio group"
	p.X.Label.Text = "Cardio (0=no, 1=yes)"
	p.Y.Label.Text = "ap_hi"

	for loc, group := range []string{"0", "1"} {
		vals := present(byGroup[group])
		if len(vals) == 0 {
			return fmt.Errorf("no ap_hi values for cardio group %s", group)
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(loc), plotter.Values(vals))
		if err != nil {
			return fmt.Errorf("failed to build boxplot for cardio group %s: %w", group, err)
		}
		p.Add(box)
	}
	p.NominalX("0", "1")

	if err := p.Save(8*vg.Inch, 5*vg.Inch, filePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", filePath, err)
	}
	return nil
}
