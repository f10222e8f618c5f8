package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/hypersdk/orchestrator/cmd/exportctl/cmd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "exportctl crashed: %v\n", r)
			if os.Getenv("EXPORTCTL_DEBUG") != "" {
				debug.PrintStack()
			}
			os.Exit(2)
		}
	}()

	cmd.Execute()
}
