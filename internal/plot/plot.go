// Package plot renders solver convergence and the final value function as
// an HTML page.
package plot

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pandaypr/ReinforcementLearning/gridworld"
	"github.com/pandaypr/ReinforcementLearning/mdp"
)

const theme = "shine"

func Report(w io.Writer, grid gridworld.GridWorld, sol *mdp.Solution) error {
	if sol == nil || len(sol.Evaluations) == 0 {
		return errors.New("plot: solution has no evaluations")
	}

	page := components.NewPage()
	page.AddCharts(
		convergenceChart(sol),
		iterationChart(sol),
		valueHeatMap(grid, sol.Values),
	)
	return page.Render(w)
}

func WriteFile(path string, grid gridworld.GridWorld, sol *mdp.Solution) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Report(f, grid, sol); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Serve exposes dir over HTTP until the server fails.
func Serve(dir, addr string) error {
	log.Printf("running server at http://%s", addr)
	return http.ListenAndServe(addr, http.FileServer(http.Dir(dir)))
}

func convergenceChart(sol *mdp.Solution) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "policy evaluation",
			Subtitle: "largest value change per sweep",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: theme,
		}),
	)

	numSweeps := 0
	for _, ev := range sol.Evaluations {
		numSweeps = max(numSweeps, len(ev.Deltas))
	}
	var steps []string
	for i := 1; i <= numSweeps; i++ {
		steps = append(steps, fmt.Sprintf("%d", i))
	}
	line.SetXAxis(steps)

	for i, ev := range sol.Evaluations {
		items := make([]opts.LineData, 0, len(ev.Deltas))
		for _, d := range ev.Deltas {
			items = append(items, opts.LineData{Value: d})
		}
		line.AddSeries(fmt.Sprintf("iteration %d", i+1), items)
	}
	return line
}

func iterationChart(sol *mdp.Solution) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "policy iteration",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: theme,
		}),
	)

	var iterations []string
	sweeps := make([]opts.BarData, 0, len(sol.Evaluations))
	changed := make([]opts.BarData, 0, len(sol.Changed))
	for i, ev := range sol.Evaluations {
		iterations = append(iterations, fmt.Sprintf("%d", i+1))
		sweeps = append(sweeps, opts.BarData{Value: ev.Sweeps})
	}
	for _, n := range sol.Changed {
		changed = append(changed, opts.BarData{Value: n})
	}

	bar.SetXAxis(iterations).
		AddSeries("sweeps", sweeps).
		AddSeries("changed states", changed)
	return bar
}

func valueHeatMap(grid gridworld.GridWorld, V mdp.ValueFunction) *charts.HeatMap {
	cols := make([]string, grid.Cols)
	for c := range cols {
		cols[c] = fmt.Sprintf("%d", c)
	}
	rows := make([]string, grid.Rows)
	for r := range rows {
		rows[r] = fmt.Sprintf("%d", r)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	items := make([]opts.HeatMapData, 0, grid.Size())
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			v := V.Estimate(grid.State(r, c))
			lo, hi = math.Min(lo, v), math.Max(hi, v)
			// y is flipped so row 0 sits at the top, as in the text grid.
			items = append(items, opts.HeatMapData{Value: [3]interface{}{c, grid.Rows - 1 - r, v}})
		}
	}
	if lo == hi {
		lo--
	}

	flipped := make([]string, len(rows))
	for i, r := range rows {
		flipped[len(rows)-1-i] = r
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "state values",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: theme,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			Data: cols,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Data: flipped,
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: float32(lo),
			Max: float32(hi),
		}),
	)
	hm.AddSeries("V", items)
	return hm
}
