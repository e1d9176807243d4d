// Command sheetdemo hosts a draggable bottom sheet in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/modalsheet/cmd/sheetdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
