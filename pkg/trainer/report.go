package trainer

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteRewardPlot renders the per-episode reward curve to an image file. The
// format follows from the path extension (.png, .svg, .pdf).
func WriteRewardPlot(path string, rewards []float64) error {
	if len(rewards) == 0 {
		return fmt.Errorf("no episodes recorded, nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Training Progress"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Episode Reward"

	pts := make(plotter.XYs, len(rewards))
	for i, r := range rewards {
		pts[i].X = float64(i + 1)
		pts[i].Y = r
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("create line plotter: %w", err)
	}
	p.Add(line)
	p.Legend.Add("episode reward", line)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save reward plot: %w", err)
	}
	return nil
}
