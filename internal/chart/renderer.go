// Package chart renders candlestick charts for the recommendation
// request and computes the support/resistance pair drawn onto them.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pplcc/plotext/custplotter"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tradevisor/internal/models"
)

// srWindow is the trailing sample count used for support/resistance.
const srWindow = 14

// RenderedChart points at a written chart image plus the levels drawn
// onto it.
type RenderedChart struct {
	Path       string
	Support    float64
	Resistance float64
}

// Renderer writes candlestick charts under a base directory, one image
// per asset and range, overwritten on every run.
type Renderer struct {
	baseDir string
	logger  *zap.Logger
}

// NewRenderer returns a Renderer rooted at baseDir.
func NewRenderer(baseDir string, logger *zap.Logger) *Renderer {
	return &Renderer{baseDir: baseDir, logger: logger}
}

// SupportResistance computes the rolling support (minimum low) and
// resistance (maximum high) over the trailing window. A series shorter
// than the window uses every sample it has.
func SupportResistance(candles []models.Candle, window int) (support, resistance float64) {
	if len(candles) == 0 {
		return 0, 0
	}
	start := len(candles) - window
	if start < 0 {
		start = 0
	}

	lo := candles[start].Low
	hi := candles[start].High
	for _, c := range candles[start+1:] {
		if c.Low.LessThan(lo) {
			lo = c.Low
		}
		if c.High.GreaterThan(hi) {
			hi = c.High
		}
	}

	support, _ = lo.Float64()
	resistance, _ = hi.Float64()
	return support, resistance
}

// Render trims the series to the trailing window the range token spans,
// draws a candlestick chart with support/resistance lines, and writes it
// to <baseDir>/<symbol>/<range>.png.
func (r *Renderer) Render(series *models.Series, rng models.TimeRange) (*RenderedChart, error) {
	if len(series.Candles) == 0 {
		return nil, fmt.Errorf("render chart for %s: empty series", series.Symbol)
	}

	last := series.Candles[len(series.Candles)-1].Timestamp
	from, err := rng.LookbackFrom(last)
	if err != nil {
		return nil, fmt.Errorf("render chart for %s: %w", series.Symbol, err)
	}

	candles := series.Since(from).Candles
	if len(candles) == 0 {
		// interval coarser than the range; fall back to the full series
		candles = series.Candles
	}

	support, resistance := SupportResistance(candles, srWindow)
	r.logger.Debug("support/resistance computed",
		zap.String("symbol", series.Symbol),
		zap.Float64("support", support),
		zap.Float64("resistance", resistance))

	data := make(custplotter.TOHLCVs, len(candles))
	for i, c := range candles {
		data[i].T = float64(c.Timestamp.Unix())
		data[i].O, _ = c.Open.Float64()
		data[i].H, _ = c.High.Float64()
		data[i].L, _ = c.Low.Float64()
		data[i].C, _ = c.Close.Float64()
		data[i].V = float64(c.Volume)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", series.Symbol, rng)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Y.Label.Text = fmt.Sprintf("Price (%s)", series.Meta.Currency)

	sticks, err := custplotter.NewCandlesticks(data)
	if err != nil {
		return nil, fmt.Errorf("render chart for %s: %w", series.Symbol, err)
	}
	p.Add(sticks)

	supportLine, err := levelLine(data, support, color.RGBA{G: 160, A: 255})
	if err != nil {
		return nil, fmt.Errorf("render chart for %s: %w", series.Symbol, err)
	}
	resistanceLine, err := levelLine(data, resistance, color.RGBA{R: 200, A: 255})
	if err != nil {
		return nil, fmt.Errorf("render chart for %s: %w", series.Symbol, err)
	}
	p.Add(supportLine, resistanceLine)
	p.Legend.Add("support", supportLine)
	p.Legend.Add("resistance", resistanceLine)
	p.Legend.Top = true

	dir := filepath.Join(r.baseDir, strings.ReplaceAll(series.Symbol, "/", "_"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("render chart for %s: %w", series.Symbol, err)
	}
	path := filepath.Join(dir, string(rng)+".png")

	if err := p.Save(16*vg.Inch, 9*vg.Inch, path); err != nil {
		return nil, fmt.Errorf("render chart for %s: %w", series.Symbol, err)
	}

	r.logger.Info("chart rendered", zap.String("path", path))
	return &RenderedChart{Path: path, Support: support, Resistance: resistance}, nil
}

// levelLine builds a dashed horizontal line spanning the plotted window.
func levelLine(data custplotter.TOHLCVs, level float64, c color.Color) (*plotter.Line, error) {
	pts := plotter.XYs{
		{X: data[0].T, Y: level},
		{X: data[len(data)-1].T, Y: level},
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	return line, nil
}
