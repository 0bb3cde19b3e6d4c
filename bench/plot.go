package bench

import (
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot renders the per-op latency of every workload as a grouped bar chart,
// one bar per structure/config, and saves it to path (format by extension).
func Plot(path string, results []BenchResult) error {
	var ops []string
	opIdx := map[string]int{}
	var series []string
	values := map[string]plotter.Values{}

	for _, r := range results {
		if !strings.HasPrefix(r.Operation, "Workload_") {
			continue
		}
		op := strings.TrimPrefix(r.Operation, "Workload_")
		if _, ok := opIdx[op]; !ok {
			opIdx[op] = len(ops)
			ops = append(ops, op)
		}
		name := r.Name + "(" + r.Config + ")"
		if _, ok := values[name]; !ok {
			series = append(series, name)
		}
		v := values[name]
		for len(v) <= opIdx[op] {
			v = append(v, 0)
		}
		v[opIdx[op]] = float64(r.LatencyNs)
		values[name] = v
	}
	if len(series) == 0 {
		return errors.New("bench: nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Per-operation latency"
	p.Y.Label.Text = "ns/op"

	w := vg.Points(10)
	for i, name := range series {
		v := values[name]
		for len(v) < len(ops) {
			v = append(v, 0)
		}
		bars, err := plotter.NewBarChart(v, w)
		if err != nil {
			return errors.Wrapf(err, "bench: bars for %s", name)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(i-len(series)/2) * w
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	p.Legend.Top = true
	p.NominalX(ops...)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "bench: save plot %s", path)
	}
	return nil
}
