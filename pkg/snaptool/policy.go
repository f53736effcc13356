package snaptool

import (
	"flag"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"

	"uavsim/pkg/rl"
	"uavsim/pkg/uavenv"
)

var actionArrows = map[int]string{
	uavenv.ActionUp:    "^",
	uavenv.ActionDown:  "v",
	uavenv.ActionLeft:  "<",
	uavenv.ActionRight: ">",
}

// RunPolicy implements the `policy` subcommand: for every grid cell it
// averages each action's value over all flight steps present in the table,
// then prints the greedy direction on the default map. It is a diagnostic
// view; the true policy is step-dependent.
func (a *App) RunPolicy(args []string) {
	fs := flag.NewFlagSet("policy", flag.ExitOnError)
	file := fs.String("file", "", "Snapshot file (required)")
	_ = fs.Parse(args)

	snap := loadSnapshot(*file)

	env, err := uavenv.New(uavenv.DefaultLayout(), uavenv.DefaultComm())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building environment: %v\n", err)
		os.Exit(1)
	}
	layout := env.Layout()

	sums, counts := aggregateByCell(snap, layout)

	obstacles := make(map[uavenv.Cell]bool, len(layout.Obstacles))
	for _, obs := range layout.Obstacles {
		obstacles[obs] = true
	}

	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Cols; col++ {
			cell := uavenv.Cell{Col: col, Row: row}
			switch {
			case obstacles[cell]:
				fmt.Print(aurora.Gray(8, " # "))
			case cell == layout.Start:
				fmt.Print(aurora.Green(" S "))
			case counts[cell] == 0:
				fmt.Print(aurora.Yellow(" . "))
			default:
				best := greedyAction(sums[cell])
				fmt.Print(aurora.Blue(fmt.Sprintf(" %s ", actionArrows[best])))
			}
		}
		fmt.Println()
	}
	fmt.Println()
	fmt.Printf("%s start/return  %s obstacle  %s unvisited\n",
		aurora.Green("S"), aurora.Gray(8, "#"), aurora.Yellow("."))
}

// aggregateByCell folds the step-indexed table into per-cell action sums.
func aggregateByCell(snap *rl.Snapshot, layout uavenv.Layout) (map[uavenv.Cell][]float64, map[uavenv.Cell]int) {
	sums := make(map[uavenv.Cell][]float64)
	counts := make(map[uavenv.Cell]int)

	for key, row := range snap.Rows {
		var col, rowIdx, step int
		if _, err := fmt.Sscanf(key, "(%d,%d,%d)", &col, &rowIdx, &step); err != nil {
			continue
		}
		if col < 0 || col >= layout.Cols || rowIdx < 0 || rowIdx >= layout.Rows {
			continue
		}
		cell := uavenv.Cell{Col: col, Row: rowIdx}
		if sums[cell] == nil {
			sums[cell] = make([]float64, len(row))
		}
		for a, v := range row {
			sums[cell][a] += v
		}
		counts[cell]++
	}
	return sums, counts
}

func greedyAction(values []float64) int {
	best := 0
	for a, v := range values {
		if v > values[best] {
			best = a
		}
	}
	return best
}
