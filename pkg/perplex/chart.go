package perplex

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 512
	maxTicks      = 20 // labelled positions on the x axis
)

// ChartOpts controls the size and format of a chart. Zero values get
// defaults.
type ChartOpts struct {
	Width  int
	Height int
	Format string // "png" or "svg"
}

var (
	fontOnce  sync.Once
	chartFont *truetype.Font
	fontErr   error
)

// getFont parses the Go regular font once.
func getFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		chartFont, fontErr = truetype.Parse(goregular.TTF)
	})
	return chartFont, fontErr
}

// ChartFormat checks a format name, or takes it from the suffix of a
// file name.
func ChartFormat(s string) (string, error) {
	s = strings.ToLower(s)
	switch {
	case s == "", s == "png", strings.HasSuffix(s, ".png"):
		return "png", nil
	case s == "svg", strings.HasSuffix(s, ".svg"):
		return "svg", nil
	}
	return "", fmt.Errorf("chart format must be png or svg, not %q", s)
}

// xTicks labels positions 1, 1+step, ... so there are never more than
// maxTicks labels.
func xTicks(n int) []chart.Tick {
	step := (n + maxTicks - 1) / maxTicks
	ticks := []chart.Tick{}
	for i := 1; i <= n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: strconv.Itoa(i)})
	}
	return ticks
}

// RenderChart draws position against perplexity as a line with a
// marker at each site and writes the image to w.
func RenderChart(w io.Writer, p Profile, kind Kind, opts ChartOpts) error {
	if len(p) == 0 {
		return ErrNoInput
	}
	format, err := ChartFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	font, err := getFont()
	if err != nil {
		return fmt.Errorf("chart font: %w", err)
	}

	xValues := make([]float64, len(p))
	yMax := 1.0
	for i, v := range p {
		xValues[i] = float64(i + 1)
		yMax = math.Max(yMax, v)
	}

	// Explicit ranges, since go-chart refuses a range of zero width,
	// as we would have with one site or a conserved alignment.
	graph := chart.Chart{
		Title:  "Perplexity Values for " + kind.String(),
		Width:  opts.Width,
		Height: opts.Height,
		Font:   font,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Position",
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(p)) + 0.5},
			Ticks: xTicks(len(p)),
		},
		YAxis: chart.YAxis{
			Name:  "Perplexity",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(yMax) + 0.5},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    kind.String(),
				XValues: xValues,
				YValues: []float64(p),
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	rp := chart.PNG
	if format == "svg" {
		rp = chart.SVG
	}
	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("drawing chart: %w", err)
	}
	return nil
}
