package render

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// DefaultWindow is the default number of episodes averaged over by the
// moving average series of a return chart
const DefaultWindow int = 20

// ReturnChart returns a line chart of the return of each episode
// together with its moving average over window episodes. If window < 1,
// DefaultWindow is used.
func ReturnChart(returns []float64, window int) *charts.Line {
	if window < 1 {
		window = DefaultWindow
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Episodic Return",
			Subtitle: fmt.Sprintf("%d episodes", len(returns)),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "gemgrid",
			Theme:     "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Return"}),
	)

	episodes := make([]string, len(returns))
	for i := range returns {
		episodes[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(episodes)

	items := make([]opts.LineData, len(returns))
	for i, r := range returns {
		items[i] = opts.LineData{Value: r}
	}
	line.AddSeries("Return", items)

	averages := MovingAverage(returns, window)
	items = make([]opts.LineData, len(averages))
	for i, r := range averages {
		items[i] = opts.LineData{Value: r}
	}
	line.AddSeries(fmt.Sprintf("Mean of last %d", window), items)

	return line
}

// MovingAverage returns the mean of each element of data and the up to
// window-1 elements before it
func MovingAverage(data []float64, window int) []float64 {
	averages := make([]float64, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		averages[i] = stat.Mean(data[start:i+1], nil)
	}
	return averages
}

// WriteReturnChart renders the return chart of returns to w as HTML
func WriteReturnChart(w io.Writer, returns []float64, window int) error {
	if err := ReturnChart(returns, window).Render(w); err != nil {
		return fmt.Errorf("writeReturnChart: %w", err)
	}
	return nil
}

// SaveReturnChart renders the return chart of returns to filename
func SaveReturnChart(filename string, returns []float64, window int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveReturnChart: could not create file: %w", err)
	}
	defer file.Close()

	if err := WriteReturnChart(file, returns, window); err != nil {
		return fmt.Errorf("saveReturnChart: %w", err)
	}
	return nil
}
