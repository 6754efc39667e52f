// Package main is the entrypoint of framerec.
package main

import (
	"fmt"
	"os"

	"framerec/internal/cfg"
	"framerec/internal/domain/paths"
	"framerec/internal/utils/logging"
)

// main is the main entrypoint of the program.
func main() {
	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "framerec exiting with error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	if err := logging.SetupLogging(paths.LogFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging, proceeding without: %v\n", err)
	}

	err := cfg.Execute(openStore, paths.DBFilePath, os.Args[1:], os.Stdout)
	if err != nil {
		logging.E("Error: %v", err)
	}
	if closeErr := logging.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", closeErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
