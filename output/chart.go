package output

import (
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrTooFewPoints is returned when a plot needs more iterations than the run
// has.
var ErrTooFewPoints = errors.New("at least two iterations are needed to plot")

// PlotAvVels renders the average velocity of every iteration as a PNG line
// chart.
func PlotAvVels(w io.Writer, avVels []float64) error {
	if len(avVels) < 2 {
		return ErrTooFewPoints
	}

	xs := make([]float64, len(avVels))
	for i := range xs {
		xs[i] = float64(i)
	}

	graph := chart.Chart{
		Title:  "Average velocity",
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "iteration",
		},
		YAxis: chart.YAxis{
			Name:  "average x velocity",
			Range: yRange(avVels),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "av_vels",
				XValues: xs,
				YValues: avVels,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

func yRange(values []float64) chart.Range {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	if lo == hi {
		pad := max(1e-12, 0.5*abs(lo))
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}

	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}

// SaveAvVelsPlot writes the average velocity chart into dir.
func SaveAvVelsPlot(dir string, avVels []float64) (string, error) {
	if len(avVels) < 2 {
		return "", ErrTooFewPoints
	}

	return saveFile(dir, AvVelsPlotFile, func(w io.Writer) error {
		return PlotAvVels(w, avVels)
	})
}
