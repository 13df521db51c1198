package sensitivity

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// WriteCSV writes the sweep as CSV, creating parent directories as needed.
func WriteCSV(path string, points []Point) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"domestic_interest", "foreign_interest", "predicted_change_exact", "predicted_change_approx", "approximation_gap"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		record := []string{
			formatFloat(p.DomesticRate),
			formatFloat(p.ForeignRate),
			formatFloat(p.Exact),
			formatFloat(p.Approx),
			formatFloat(p.Gap),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePNG renders exact and approximate predicted change against the
// domestic rate, with the gap on the secondary axis.
func WritePNG(path string, points []Point) error {
	if len(points) < 2 {
		return errors.New("chart needs at least 2 points")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]float64, len(points))
	exact := make([]float64, len(points))
	approx := make([]float64, len(points))
	gap := make([]float64, len(points))

	for i, p := range points {
		x[i] = p.DomesticRate * 100
		exact[i] = p.Exact
		approx[i] = p.Approx
		gap[i] = p.Gap
	}

	pctFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name:           "Domestic interest rate (%)",
			ValueFormatter: pctFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Predicted change (%)",
			ValueFormatter: pctFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Exact - approx (pp)",
			ValueFormatter: pctFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Exact",
				XValues: x,
				YValues: exact,
			},
			chart.ContinuousSeries{
				Name:    "Approximate",
				XValues: x,
				YValues: approx,
			},
		},
	}
	// go-chart cannot scale a flat series on its own axis.
	if hasSpread(gap) {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    "Gap",
			XValues: x,
			YValues: gap,
			YAxis:   chart.YAxisSecondary,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func hasSpread(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
