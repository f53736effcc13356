package main

import (
	"fmt"
	"os"

	"uavsim/pkg/snaptool"
)

func main() {
	if len(os.Args) < 2 {
		snaptool.PrintGlobalUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	app := snaptool.NewApp()

	switch cmd {
	case "info":
		app.RunInfo(os.Args[2:])
	case "policy":
		app.RunPolicy(os.Args[2:])
	case "top":
		app.RunTop(os.Args[2:])
	case "help", "-h", "--help":
		snaptool.PrintGlobalUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		snaptool.PrintGlobalUsage()
		os.Exit(1)
	}
}
