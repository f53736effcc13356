// Package snaptool contains the human-facing CLI commands for inspecting
// value-table snapshots:
//   - "info"   : round, epsilon and table size of a snapshot
//   - "policy" : greedy action per grid cell, rendered on the map
//   - "top"    : highest-valued states in the table
//
// This package is the CLI shell around the rl snapshot reader; the trainer
// never depends on it.
package snaptool

import (
	"fmt"
	"os"

	"uavsim/pkg/rl"
)

// App groups the inspection commands. It carries no state; every command
// loads the snapshot it is pointed at.
type App struct{}

// NewApp builds a new App.
func NewApp() *App {
	return &App{}
}

// loadSnapshot reads the snapshot or exits with an error message, shared by
// all commands.
func loadSnapshot(path string) *rl.Snapshot {
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		os.Exit(1)
	}
	snap, err := rl.ReadSnapshot(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
		os.Exit(1)
	}
	return snap
}

// PrintGlobalUsage prints CLI help.
func PrintGlobalUsage() {
	fmt.Println("uavsim-snaptool: inspect UAV trainer value-table snapshots")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  uavsim-snaptool <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  info      Show round, epsilon and table size of a snapshot")
	fmt.Println("  policy    Render the greedy action per grid cell on the map")
	fmt.Println("  top       List the highest-valued states")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  uavsim-snaptool info -file 'SARSA-[2024-05-01][10h30m00s].json'")
	fmt.Println("  uavsim-snaptool policy -file SARSA-load.json")
	fmt.Println("  uavsim-snaptool top -file SARSA-load.json -n 20")
}
