package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

/*
RenderStratifiedSurvival takes a path, two curve labels and the two
Kaplan-Meier curves of a binary stratification and renders them as a
step-line comparison plot on a PNG file at the path.
*/
func RenderStratifiedSurvival(path, label0, label1 string, curve0, curve1 []CurvePoint) error {
	p := plot.New()
	p.Title.Text = "Stratified survival"
	p.X.Label.Text = "time"
	p.Y.Label.Text = "survival probability"
	p.Y.Min, p.Y.Max = 0, 1
	for i, c := range []struct {
		label string
		curve []CurvePoint
	}{{label0, curve0}, {label1, curve1}} {
		line, err := plotter.NewLine(curveXYs(c.curve))
		if err != nil {
			return fmt.Errorf("building %s curve: %v", c.label, err)
		}
		line.StepStyle = plotter.PostStep
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(c.label, line)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving stratified survival plot to %s: %v", path, err)
	}
	return nil
}

/*
RenderImportance takes a path, per-feature importance scores keyed by
feature name and a k, and renders the k highest-scoring features as a
bar chart on a PNG file at the path, highest first.
*/
func RenderImportance(path string, importance map[string]float64, k int) error {
	if k < 1 {
		return fmt.Errorf("importance chart needs at least 1 feature, got %d", k)
	}
	names := make([]string, 0, len(importance))
	for name := range importance {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if importance[names[i]] != importance[names[j]] {
			return importance[names[i]] > importance[names[j]]
		}
		return names[i] < names[j]
	})
	if k > len(names) {
		k = len(names)
	}
	names = names[:k]
	values := make(plotter.Values, len(names))
	for i, name := range names {
		values[i] = importance[name]
	}
	p := plot.New()
	p.Title.Text = "Variable importance"
	p.Y.Label.Text = "importance"
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("building importance bars: %v", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -0.9
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving importance plot to %s: %v", path, err)
	}
	return nil
}

/*
RenderSubjectCurves takes a path, the ordered timepoint sequence, a
survival-probability grid aligned with it, the subject indices to
compare and one label per subject, and renders the subjects'
predicted survival curves on a PNG file at the path.
*/
func RenderSubjectCurves(path string, timepoints []float64, survival [][]float64, subjects []int, labels []string) error {
	if len(subjects) != len(labels) {
		return fmt.Errorf("got %d subjects and %d labels", len(subjects), len(labels))
	}
	p := plot.New()
	p.Title.Text = "Predicted survival"
	p.X.Label.Text = "time"
	p.Y.Label.Text = "survival probability"
	p.Y.Min, p.Y.Max = 0, 1
	for i, s := range subjects {
		xys := make(plotter.XYs, len(timepoints))
		for k, t := range timepoints {
			xys[k].X = t
			xys[k].Y = survival[s][k]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("building curve for subject %d: %v", s, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(labels[i], line)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving subject curves plot to %s: %v", path, err)
	}
	return nil
}

func curveXYs(curve []CurvePoint) plotter.XYs {
	xys := make(plotter.XYs, 0, len(curve)+1)
	xys = append(xys, plotter.XY{X: 0, Y: 1})
	for _, cp := range curve {
		xys = append(xys, plotter.XY{X: cp.Time, Y: cp.Probability})
	}
	return xys
}
