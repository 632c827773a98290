package plotting

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/agbru/frankestudy/internal/sweep"
)

// heatmapColors is the number of discrete palette steps of a heatmap.
const heatmapColors = 256

// gridXYZ exposes a degree × parameter matrix as plotter.GridXYZ with
// categorical axes: column c sits at x = c, and the first degree is drawn
// at the top.
type gridXYZ struct {
	values *mat.Dense
}

func (g gridXYZ) Dims() (c, r int) {
	r, c = g.values.Dims()
	return c, r
}

func (g gridXYZ) Z(c, r int) float64 {
	rows, _ := g.values.Dims()
	return g.values.At(rows-1-r, c)
}

func (g gridXYZ) X(c int) float64 { return float64(c) }
func (g gridXYZ) Y(r int) float64 { return float64(r) }

// Gridsearch draws grid as a heatmap with λ on the x axis, degree on the
// y axis and a colour bar labelled with the metric.
func (r *Renderer) Gridsearch(grid *sweep.GridResult, title string, save Save) (string, error) {
	if grid == nil || grid.Values == nil {
		return "", fmt.Errorf("plotting: empty grid")
	}
	rows, cols := grid.Values.Dims()
	if rows != len(grid.Degrees) || cols != len(grid.Params) {
		return "", fmt.Errorf("plotting: %d×%d grid for %d degrees and %d params", rows, cols, len(grid.Degrees), len(grid.Params))
	}

	lo, hi := finiteRange(grid.Values)
	cm := moreland.ExtendedBlackBody()
	cm.SetMin(lo)
	cm.SetMax(hi)
	pal := cm.Palette(heatmapColors)

	p := r.Style.newPlot()
	p.Title.Text = title
	p.X.Label.Text = "Lambda"
	p.Y.Label.Text = degreeLabel
	hm := plotter.NewHeatMap(gridXYZ{values: grid.Values}, pal)
	hm.Min, hm.Max = lo, hi
	hm.NaN = r.Style.Background
	p.Add(hm)

	xticks := make([]plot.Tick, cols)
	for j, v := range grid.Params {
		xticks[j] = plot.Tick{Value: float64(j), Label: strconv.FormatFloat(v, 'g', 3, 64)}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	yticks := make([]plot.Tick, rows)
	for i, d := range grid.Degrees {
		yticks[i] = plot.Tick{Value: float64(rows - 1 - i), Label: strconv.Itoa(d)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)

	bar := plot.New()
	bar.HideX()
	bar.Y.Label.Text = metricLabel(grid.Metric)
	bar.Y.Label.TextStyle.Font.Size = r.Style.LabelSize
	bar.Y.Tick.Label.Font.Size = r.Style.TickSize
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: heatmapColors})

	return r.writeWithBar(save, p, bar)
}

// writeWithBar saves a plot with a narrow colour-bar plot on its right.
func (r *Renderer) writeWithBar(save Save, p, bar *plot.Plot) (string, error) {
	if !save.Enabled {
		return "", nil
	}
	return r.writeDrawn(save, r.Style.PanelWidth, r.Style.PanelHeight, func(dc draw.Canvas) {
		barWidth := dc.Size().X / 7
		main := draw.Crop(dc, 0, -barWidth, 0, 0)
		side := draw.Crop(dc, dc.Size().X-barWidth, 0, 0, 0)
		p.Draw(main)
		bar.Draw(side)
	})
}

func metricLabel(m sweep.Metric) string {
	switch m {
	case sweep.MSETest, sweep.MSETrain:
		return "MSE"
	case sweep.R2Test, sweep.R2Train:
		return "R2"
	case sweep.Bias:
		return "Bias"
	case sweep.Variance:
		return "Variance"
	}
	return m.String()
}

// finiteRange returns the smallest and largest finite entries of m. A
// constant or empty matrix gets a unit-wide range so the colour map is valid.
func finiteRange(m *mat.Dense) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}
