// Package histogram renders opaque PNG distribution artifacts for
// numeric and date sequences. Callers pass already-cleaned values;
// missing and infinite observations must be stripped beforehand.
package histogram

import (
	"bytes"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultBins is the bin count used when the caller passes a
// non-positive value.
const DefaultBins = 10

// Options controls the rendered artifact.
type Options struct {
	Bins   int
	Width  vg.Length
	Height vg.Length

	// Mini hides axes and titles for thumbnail rendering.
	Mini bool
}

// Render draws a histogram of the values and returns the PNG bytes.
// An empty sequence yields a nil artifact and no error.
func Render(values []float64, opts Options) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}

	bins := opts.Bins
	if bins <= 0 {
		bins = DefaultBins
	}

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Add(h)

	if opts.Mini {
		p.HideAxes()
	} else {
		p.X.Label.Text = "value"
		p.Y.Label.Text = "count"
	}

	width := opts.Width
	if width == 0 {
		width = 6 * vg.Inch
	}

	height := opts.Height
	if height == 0 {
		height = 4 * vg.Inch
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Full renders the report-resolution artifact.
func Full(values []float64, bins int) ([]byte, error) {
	return Render(values, Options{Bins: bins})
}

// Mini renders the thumbnail artifact.
func Mini(values []float64, bins int) ([]byte, error) {
	return Render(values, Options{
		Bins:   bins,
		Width:  2 * vg.Inch,
		Height: 0.75 * vg.Inch,
		Mini:   true,
	})
}
