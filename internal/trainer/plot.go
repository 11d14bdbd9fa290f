package trainer

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot writes the loss curve to path. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func (h *History) Plot(path string) error {
	if len(h.Epochs) == 0 {
		return errors.New("trainer: plot: no epochs recorded")
	}

	pts := make(plotter.XYs, len(h.Epochs))
	for i, e := range h.Epochs {
		pts[i].X = float64(e.Index)
		pts[i].Y = e.Loss
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Mean squared error"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("trainer: plot: %w", err)
	}
	p.Add(line, points)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("trainer: plot: %w", err)
	}
	return nil
}
