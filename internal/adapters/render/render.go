// Package render draws chart specifications as PNG images with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/podium/internal/domain/chart"
)

// Sentinel errors.
var (
	// ErrEmptyChart is returned for specs without data points. go-chart
	// cannot draw an empty series, so callers show a placeholder instead.
	ErrEmptyChart   = errors.New("chart has no data")
	ErrUnsupported  = errors.New("unsupported chart kind")
	ErrRenderFailed = errors.New("chart render failed")
)

// Default image size.
const (
	defaultWidth  = 640
	defaultHeight = 420
	titlePadding  = 50
	sidePadding   = 20
	headroom      = 1.1
	maxBarWidth   = 60
	minBarWidth   = 8
)

// Renderer draws specs at a fixed size.
type Renderer struct {
	width  int
	height int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the image size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PNG writes spec to w as a PNG image.
func (r *Renderer) PNG(w io.Writer, spec chart.Spec) error {
	if spec.Empty || len(spec.Series) == 0 || len(spec.Series[0].Points) == 0 {
		return ErrEmptyChart
	}

	var err error
	switch spec.Kind {
	case chart.KindLine:
		err = r.line(spec).Render(gochart.PNG, w)
	case chart.KindBar:
		err = r.bar(spec).Render(gochart.PNG, w)
	case chart.KindPie:
		err = r.pie(spec).Render(gochart.PNG, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupported, spec.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, spec.Name, err)
	}
	return nil
}

func (r *Renderer) background() gochart.Style {
	return gochart.Style{Padding: gochart.Box{Top: titlePadding, Left: sidePadding, Right: sidePadding, Bottom: sidePadding}}
}

func (r *Renderer) line(spec chart.Spec) gochart.Chart {
	points := spec.Series[0].Points
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Value
	}
	col := color(spec.Colors, 0)

	xr := &gochart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]}
	if xr.Min == xr.Max {
		xr.Min--
		xr.Max++
	}

	return gochart.Chart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: r.background(),
		XAxis:      gochart.XAxis{Name: spec.XLabel, Range: xr, ValueFormatter: integer},
		YAxis:      gochart.YAxis{Name: spec.YLabel, Range: countRange(ys), ValueFormatter: integer},
		Series: []gochart.Series{gochart.ContinuousSeries{
			Name:    spec.Series[0].Name,
			XValues: xs,
			YValues: ys,
			Style:   markerStyle(col, spec.Markers),
		}},
	}
}

func (r *Renderer) bar(spec chart.Spec) gochart.BarChart {
	points := spec.Series[0].Points
	bars := make([]gochart.Value, len(points))
	ys := make([]float64, len(points))
	col := color(spec.Colors, 0)
	for i, p := range points {
		bars[i] = gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: col, StrokeColor: col},
		}
		ys[i] = p.Value
	}

	barWidth := r.width / (2 * len(bars))
	barWidth = max(minBarWidth, min(maxBarWidth, barWidth))

	return gochart.BarChart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth,
		Background: r.background(),
		YAxis:      gochart.YAxis{Name: spec.YLabel, Range: countRange(ys), ValueFormatter: integer},
		Bars:       bars,
	}
}

func (r *Renderer) pie(spec chart.Spec) gochart.PieChart {
	points := spec.Series[0].Points
	values := make([]gochart.Value, len(points))
	for i, p := range points {
		col := color(spec.Colors, i)
		values[i] = gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: col, StrokeColor: drawing.ColorWhite},
		}
	}
	return gochart.PieChart{
		Title:      spec.Title,
		Width:      r.width,
		Height:     r.height,
		Background: r.background(),
		Values:     values,
	}
}

// markerStyle draws the series line, with dots on each point when markers is set.
func markerStyle(col drawing.Color, markers bool) gochart.Style {
	st := gochart.Style{StrokeColor: col, StrokeWidth: 2}
	if markers {
		st.DotColor = col
		st.DotWidth = 4
	}
	return st
}

// countRange starts at zero and leaves headroom above the largest value.
func countRange(values []float64) *gochart.ContinuousRange {
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	if top == 0 {
		top = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: math.Ceil(top * headroom)}
}

// integer formats axis ticks without decimals (years and counts).
func integer(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return fmt.Sprint(v)
}

// color returns the i-th spec color, cycling, or gray when none is set.
func color(colors []string, i int) drawing.Color {
	if len(colors) == 0 {
		return gochart.ColorAlternateGray
	}
	return drawing.ColorFromHex(strings.TrimPrefix(colors[i%len(colors)], "#"))
}
