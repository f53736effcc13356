package snaptool

import (
	"flag"
	"fmt"
	"sort"

	"github.com/logrusorgru/aurora"

	"uavsim/pkg/uavenv"
)

// RunTop implements the `top` subcommand: the states whose best action value
// is highest, which is where the learner believes the trajectory pays off.
func (a *App) RunTop(args []string) {
	fs := flag.NewFlagSet("top", flag.ExitOnError)
	file := fs.String("file", "", "Snapshot file (required)")
	n := fs.Int("n", 10, "How many states to show")
	_ = fs.Parse(args)

	snap := loadSnapshot(*file)

	type entry struct {
		key    string
		action int
		value  float64
	}
	entries := make([]entry, 0, len(snap.Rows))
	for key, row := range snap.Rows {
		best := greedyAction(row)
		entries = append(entries, entry{key: key, action: best, value: row[best]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].key < entries[j].key
	})

	if *n > len(entries) {
		*n = len(entries)
	}
	fmt.Printf("Top %d states of %d\n", *n, len(entries))
	for _, e := range entries[:*n] {
		fmt.Printf("  %s  %s  %s\n",
			aurora.Blue(fmt.Sprintf("%-14s", e.key)),
			aurora.Green(fmt.Sprintf("%-6s", uavenv.ActionName(e.action))),
			aurora.Bold(fmt.Sprintf("%8.4f", e.value)),
		)
	}
}
