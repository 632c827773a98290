package plotting

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SupportedFormats lists the output formats a Style may use.
var SupportedFormats = []string{"pdf", "svg", "eps", "png"}

// Style holds every visual setting of the figures.
type Style struct {
	// Palette colours series in order; it wraps around when exhausted.
	Palette    []color.Color
	Background color.Color
	GridColor  color.Color

	TitleSize  vg.Length
	LabelSize  vg.Length
	TickSize   vg.Length
	LegendSize vg.Length
	LineWidth  vg.Length

	// PanelWidth and PanelHeight size one panel; multi-panel figures grow
	// horizontally.
	PanelWidth  vg.Length
	PanelHeight vg.Length

	// Format is the file extension and encoder: pdf, svg, eps or png.
	Format string
	// DPI is used by raster formats only.
	DPI int
}

// deepPalette is the ten-colour "deep" qualitative palette.
var deepPalette = []string{
	"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3",
	"#937860", "#DA8BC3", "#8C8C8C", "#CCB974", "#64B5CD",
}

// DefaultStyle returns the darkgrid look with the deep palette, 7×5 inch
// panels and PDF output.
func DefaultStyle() Style {
	pal := make([]color.Color, len(deepPalette))
	for i, h := range deepPalette {
		pal[i] = mustHex(h)
	}
	return Style{
		Palette:     pal,
		Background:  mustHex("#EAEAF2"),
		GridColor:   color.White,
		TitleSize:   vg.Points(18),
		LabelSize:   vg.Points(14),
		TickSize:    vg.Points(13),
		LegendSize:  vg.Points(13),
		LineWidth:   vg.Points(1.5),
		PanelWidth:  7 * vg.Inch,
		PanelHeight: 5 * vg.Inch,
		Format:      "pdf",
		DPI:         300,
	}
}

// Validate checks the format and sizes.
func (s Style) Validate() error {
	if !supportedFormat(s.Format) {
		return fmt.Errorf("plotting: unsupported format %q (want one of %s)", s.Format, strings.Join(SupportedFormats, ", "))
	}
	if s.PanelWidth <= 0 || s.PanelHeight <= 0 {
		return fmt.Errorf("plotting: panel size must be positive")
	}
	if len(s.Palette) == 0 {
		return fmt.Errorf("plotting: empty palette")
	}
	return nil
}

func supportedFormat(f string) bool {
	for _, s := range SupportedFormats {
		if s == f {
			return true
		}
	}
	return false
}

// Color returns the i-th palette colour.
func (s Style) Color(i int) color.Color {
	return s.Palette[i%len(s.Palette)]
}

// newPlot returns an empty plot with the style's background, grid and fonts.
func (s Style) newPlot() *plot.Plot {
	p := plot.New()
	p.BackgroundColor = s.Background
	p.Title.TextStyle.Font.Size = s.TitleSize
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = s.LabelSize
		ax.Tick.Label.Font.Size = s.TickSize
		ax.LineStyle.Width = 0
		ax.Tick.LineStyle.Width = 0
	}
	p.Legend.TextStyle.Font.Size = s.LegendSize
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = s.GridColor
	grid.Horizontal.Color = s.GridColor
	grid.Vertical.Dashes = nil
	grid.Horizontal.Dashes = nil
	p.Add(grid)
	return p
}

func mustHex(h string) color.RGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(h, "#"), 16, 32)
	if err != nil {
		panic(fmt.Sprintf("plotting: bad colour %q", h))
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
