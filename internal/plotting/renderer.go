package plotting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/agbru/frankestudy/internal/sweep"
)

// ErrPanels is returned when panel data and titles disagree in count.
var ErrPanels = errors.New("plotting: panel count mismatch")

const degreeLabel = "Order of polynomial"

// Save controls whether and where a figure is written.
type Save struct {
	Enabled bool
	// Dir is the category sub-directory under the renderer root.
	Dir string
	// Name is the file name without extension.
	Name string
}

// Renderer draws figures below Root using Style.
type Renderer struct {
	Root   string
	Style  Style
	logger zerolog.Logger
}

// NewRenderer returns a renderer writing below root.
func NewRenderer(root string, style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{Root: root, Style: style, logger: zerolog.Nop()}, nil
}

// SetLogger configures the logger for written figures.
func (r *Renderer) SetLogger(l zerolog.Logger) {
	r.logger = l
}

// MSE draws one panel per entry of train/test, sharing the y axis. Each
// panel shows train and test MSE against degree.
func (r *Renderer) MSE(degrees []float64, train, test [][]float64, titles []string, save Save) (string, error) {
	if len(train) == 0 || len(train) != len(test) || len(train) != len(titles) {
		return "", fmt.Errorf("%w: %d train, %d test, %d titles", ErrPanels, len(train), len(test), len(titles))
	}
	ymax := 0.0
	plots := make([]*plot.Plot, len(train))
	for i := range train {
		p := r.Style.newPlot()
		p.Title.Text = titles[i]
		p.X.Label.Text = degreeLabel
		if i == 0 {
			p.Y.Label.Text = "MSE"
		}
		if err := r.addLine(p, degrees, train[i], "Train", 0, nil); err != nil {
			return "", err
		}
		if err := r.addLine(p, degrees, test[i], "Test", 1, nil); err != nil {
			return "", err
		}
		ymax = math.Max(ymax, math.Max(maxFinite(train[i]), maxFinite(test[i])))
		plots[i] = p
	}
	for _, p := range plots {
		p.Y.Min = 0
		p.Y.Max = ymax * 1.05
	}
	return r.write(save, plots...)
}

// MSER2 draws MSE and R² against degree side by side.
func (r *Renderer) MSER2(degrees, mseTrain, mseTest, r2Train, r2Test []float64, save Save) (string, error) {
	mse := r.Style.newPlot()
	mse.X.Label.Text = degreeLabel
	mse.Y.Label.Text = "MSE"
	mse.Y.Min = 0
	r2 := r.Style.newPlot()
	r2.X.Label.Text = degreeLabel
	r2.Y.Label.Text = "R2"
	for _, l := range []struct {
		p       *plot.Plot
		ys      []float64
		label   string
		colorIx int
	}{
		{mse, mseTrain, "Train", 0},
		{mse, mseTest, "Test", 1},
		{r2, r2Train, "Train", 0},
		{r2, r2Test, "Test", 1},
	} {
		if err := r.addLine(l.p, degrees, l.ys, l.label, l.colorIx, nil); err != nil {
			return "", err
		}
	}
	return r.write(save, mse, r2)
}

// Coefficients draws the first n coefficients against degree, keeping the
// first maxDegrees degrees. beta holds one row per coefficient and one
// column per degree. maxDegrees <= 0 keeps every degree.
func (r *Renderer) Coefficients(degrees []float64, beta *mat.Dense, n, maxDegrees int, save Save) (string, error) {
	if beta == nil {
		return "", fmt.Errorf("plotting: nil coefficient matrix")
	}
	rows, cols := beta.Dims()
	if cols != len(degrees) {
		return "", fmt.Errorf("plotting: %d coefficient columns for %d degrees", cols, len(degrees))
	}
	if maxDegrees <= 0 || maxDegrees > cols {
		maxDegrees = cols
	}
	if n > rows {
		n = rows
	}
	p := r.Style.newPlot()
	p.X.Label.Text = degreeLabel
	p.Y.Label.Text = "Optimal parameter"
	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, beta)
		if err := r.addLine(p, degrees[:maxDegrees], row[:maxDegrees], fmt.Sprintf("β%d", i), i, nil); err != nil {
			return "", err
		}
	}
	return r.write(save, p)
}

// BiasVariance draws bias, variance and test MSE against degree.
func (r *Renderer) BiasVariance(degrees, bias, variance, mse []float64, save Save) (string, error) {
	p := r.Style.newPlot()
	p.X.Label.Text = degreeLabel
	p.Y.Label.Text = "Numerical estimate"
	for i, s := range []struct {
		ys    []float64
		label string
	}{
		{bias, "Bias"},
		{variance, "Variance"},
		{mse, "MSE"},
	} {
		if err := r.addLine(p, degrees, s.ys, s.label, i, nil); err != nil {
			return "", err
		}
	}
	return r.write(save, p)
}

// Line dash patterns for error, bias and variance.
var (
	dotted = []vg.Length{vg.Points(1.5), vg.Points(2.5)}
	dashed = []vg.Length{vg.Points(5.5), vg.Points(2.4)}
)

// BiasVarianceLambdas draws one log-scale panel per method. Each λ gets a
// colour; test error is solid, bias dotted and variance dashed.
func (r *Renderer) BiasVarianceLambdas(cmp *sweep.Comparison, save Save) (string, error) {
	if cmp == nil || len(cmp.Methods) == 0 || len(cmp.Entries) != len(cmp.Methods) {
		return "", fmt.Errorf("%w: comparison has no method panels", ErrPanels)
	}
	plots := make([]*plot.Plot, len(cmp.Methods))
	for i, method := range cmp.Methods {
		p := r.Style.newPlot()
		p.Title.Text = method.Title()
		p.X.Label.Text = degreeLabel
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		if len(cmp.Entries[i]) != len(cmp.Lambdas) {
			return "", fmt.Errorf("%w: %d entries for %d lambdas", ErrPanels, len(cmp.Entries[i]), len(cmp.Lambdas))
		}
		for j, lambda := range cmp.Lambdas {
			e := cmp.Entries[i][j]
			if err := r.addLine(p, cmp.Degrees, positive(e.MSETest), fmt.Sprintf("λ=%g", lambda), j, nil); err != nil {
				return "", err
			}
			if err := r.addLine(p, cmp.Degrees, positive(e.Bias), "", j, dotted); err != nil {
				return "", err
			}
			if err := r.addLine(p, cmp.Degrees, positive(e.Variance), "", j, dashed); err != nil {
				return "", err
			}
		}
		plots[i] = p
	}
	return r.write(save, plots...)
}

// write lays the plots out in one row and saves them when requested.
func (r *Renderer) write(save Save, plots ...*plot.Plot) (string, error) {
	if !save.Enabled {
		return "", nil
	}
	w := r.Style.PanelWidth * vg.Length(len(plots))
	return r.writeDrawn(save, w, r.Style.PanelHeight, func(dc draw.Canvas) {
		if len(plots) == 1 {
			plots[0].Draw(dc)
			return
		}
		tiles := draw.Tiles{Rows: 1, Cols: len(plots), PadX: vg.Millimeter * 4}
		canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
		for j, p := range plots {
			p.Draw(canvases[0][j])
		}
	})
}

// writeDrawn creates <Root>/<Dir>/<Name>.<format> on a w×h canvas painted by fn.
func (r *Renderer) writeDrawn(save Save, w, h vg.Length, fn func(draw.Canvas)) (string, error) {
	dir := filepath.Join(r.Root, save.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("plotting: creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, save.Name+"."+r.Style.Format)

	c, err := r.canvas(w, h)
	if err != nil {
		return "", err
	}
	fn(draw.New(c))
	if err := writeCanvas(c, path); err != nil {
		return "", err
	}
	r.logger.Debug().Str("path", path).Msg("figure written")
	return path, nil
}

func (r *Renderer) canvas(w, h vg.Length) (vg.CanvasWriterTo, error) {
	if r.Style.Format == "png" {
		img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.Style.DPI))
		return vgimg.PngCanvas{Canvas: img}, nil
	}
	return draw.NewFormattedCanvas(w, h, r.Style.Format)
}

func writeCanvas(c vg.CanvasWriterTo, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plotting: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("plotting: %w", cerr)
		}
	}()
	if _, err := c.WriteTo(f); err != nil {
		return fmt.Errorf("plotting: writing %s: %w", path, err)
	}
	return nil
}

// addLine adds ys against xs in palette colour colorIx. An empty label keeps
// the line out of the legend.
func (r *Renderer) addLine(p *plot.Plot, xs, ys []float64, label string, colorIx int, dashes []vg.Length) error {
	pts := xys(xs, ys)
	if len(pts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting: %s: %w", label, err)
	}
	line.Color = r.Style.Color(colorIx)
	line.Width = r.Style.LineWidth
	line.Dashes = dashes
	p.Add(line)
	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

// xys pairs xs and ys, dropping NaN entries and extra points of the longer slice.
func xys(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

// positive replaces values a log axis cannot show with NaN, which xys drops.
func positive(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x > 0 {
			out[i] = x
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func maxFinite(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) && x > m {
			m = x
		}
	}
	return m
}
