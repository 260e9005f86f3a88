// ./main.go
package main

import (
	"github.com/xkilldash9x/cdpdriver/cmd"
)

// main is the entry point for the cdpdriver CLI.
func main() {
	// Execute handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
