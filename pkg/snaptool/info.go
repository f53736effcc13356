package snaptool

import (
	"flag"
	"fmt"
	"math"

	"github.com/logrusorgru/aurora"
)

// RunInfo implements the `info` subcommand.
func (a *App) RunInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	file := fs.String("file", "", "Snapshot file (required)")
	_ = fs.Parse(args)

	snap := loadSnapshot(*file)

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	actions := 0
	for _, row := range snap.Rows {
		actions = len(row)
		for _, v := range row {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}

	fmt.Printf("Snapshot %s\n", aurora.Bold(*file))
	fmt.Printf("  round   = %d\n", snap.Round)
	if math.IsNaN(snap.Epsilon) {
		fmt.Printf("  epsilon = %s\n", aurora.Yellow("not recorded"))
	} else {
		fmt.Printf("  epsilon = %.4f\n", snap.Epsilon)
	}
	fmt.Printf("  states  = %d (x %d actions)\n", len(snap.Rows), actions)
	if len(snap.Rows) > 0 {
		fmt.Printf("  values  = [%.4f, %.4f]\n", minVal, maxVal)
	}
}
