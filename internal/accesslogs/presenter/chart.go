package presenter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/errgroup"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

const (
	barTitle = "Error Codes"
	pieTitle = "Error Code Distribution"

	DefaultWidth  = 800
	DefaultHeight = 480
)

var (
	barFill   = drawing.Color{R: 75, G: 192, B: 192, A: 153}
	barStroke = drawing.Color{R: 75, G: 192, B: 192, A: 255}

	// Pie slices cycle through these when there are more codes than colors.
	pieFills = []drawing.Color{
		{R: 255, G: 99, B: 132, A: 153},
		{R: 54, G: 162, B: 235, A: 153},
		{R: 255, G: 206, B: 86, A: 153},
		{R: 75, G: 192, B: 192, A: 153},
		{R: 153, G: 102, B: 255, A: 153},
	}
	pieStrokes = []drawing.Color{
		{R: 255, G: 99, B: 132, A: 255},
		{R: 54, G: 162, B: 235, A: 255},
		{R: 255, G: 206, B: 86, A: 255},
		{R: 75, G: 192, B: 192, A: 255},
		{R: 153, G: 102, B: 255, A: 255},
	}
)

// Drawing is the rendered output for one snapshot.
type Drawing struct {
	RunID int64
	Bar   []byte
	Pie   []byte
}

type ChartConfig struct {
	Width  int
	Height int
}

// ChartRenderer keeps the SVG charts of the latest snapshot.
type ChartRenderer struct {
	caps   *Capabilities
	width  int
	height int

	mu      sync.RWMutex
	drawing *Drawing
}

func NewChartRenderer(caps *Capabilities, cfg ChartConfig) (*ChartRenderer, error) {
	if caps == nil {
		return nil, errors.New("chart renderer requires registered capabilities")
	}

	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}

	return &ChartRenderer{caps: caps, width: cfg.Width, height: cfg.Height}, nil
}

// Render drops the previous drawing and, for a non-empty snapshot, draws the
// bar and pie charts.
func (r *ChartRenderer) Render(ctx context.Context, snap entity.Snapshot) error {
	r.release()

	freq := snap.Result.Frequencies
	if freq.Len() == 0 {
		slog.DebugContext(ctx, "nothing to draw", "run_id", snap.RunID)
		return nil
	}

	labels := freq.Labels()
	values := freq.Values()

	var bar, pie bytes.Buffer
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.barChart(labels, values).Render(chart.SVG, &bar)
	})
	g.Go(func() error {
		return r.pieChart(labels, values).Render(chart.SVG, &pie)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	r.mu.Lock()
	r.drawing = &Drawing{RunID: snap.RunID, Bar: bar.Bytes(), Pie: pie.Bytes()}
	r.mu.Unlock()

	slog.InfoContext(ctx, "charts rendered", "run_id", snap.RunID, "codes", len(labels))

	return nil
}

func (r *ChartRenderer) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drawing = nil
}

// Current returns the drawing held for the latest snapshot.
func (r *ChartRenderer) Current() (Drawing, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.drawing == nil {
		return Drawing{}, false
	}
	return *r.drawing, true
}

func (r *ChartRenderer) Bar() ([]byte, bool) {
	d, ok := r.Current()
	return d.Bar, ok
}

func (r *ChartRenderer) Pie() ([]byte, bool) {
	d, ok := r.Current()
	return d.Pie, ok
}

func (r *ChartRenderer) barChart(labels []entity.StatusCode, values []int) chart.BarChart {
	bars := make([]chart.Value, len(labels))
	peak := 0
	for i, label := range labels {
		peak = max(peak, values[i])
		bars[i] = chart.Value{
			Label: string(label),
			Value: float64(values[i]),
			Style: chart.Style{FillColor: barFill, StrokeColor: barStroke, StrokeWidth: 1},
		}
	}

	top, ticks := integerTicks(peak)
	barWidth := max(2, min(60, (r.width-140)*2/(3*len(labels))))

	return chart.BarChart{
		Title:      barTitle,
		Width:      r.width,
		Height:     r.height,
		Font:       r.caps.style.Font,
		BarWidth:   barWidth,
		BarSpacing: max(1, barWidth/2),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Ticks: ticks,
		},
		Bars: bars,
	}
}

func (r *ChartRenderer) pieChart(labels []entity.StatusCode, values []int) chart.PieChart {
	parts := make([]chart.Value, len(labels))
	for i, label := range labels {
		parts[i] = chart.Value{
			Label: string(label),
			Value: float64(values[i]),
			Style: chart.Style{
				FillColor:   pieFills[i%len(pieFills)],
				StrokeColor: pieStrokes[i%len(pieStrokes)],
				StrokeWidth: 1,
			},
		}
	}

	return chart.PieChart{
		Title:  pieTitle,
		Width:  r.width,
		Height: r.height,
		Font:   r.caps.style.Font,
		Values: parts,
	}
}

// integerTicks returns an axis top and whole-number ticks from zero to it.
func integerTicks(peak int) (float64, []chart.Tick) {
	peak = max(peak, 1)
	step := max(1, int(math.Ceil(float64(peak)/8)))
	top := step * int(math.Ceil(float64(peak)/float64(step)))

	ticks := make([]chart.Tick, 0, top/step+1)
	for v := 0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}

	return float64(top), ticks
}
