// Command mpnctl classifies manufacturer part numbers and checks whether
// one part may replace another.
//
// Usage:
//
//	mpnctl <command> [flags] [args]
//
// Commands:
//
//	classify   Classify part numbers
//	compare    Explain whether a candidate may replace a required part
//	rank       Order admissible substitutes for a required part
//	series     Print the series code of part numbers
//	package    Print the package designator of part numbers
//	batch      Classify or compare part numbers read from a file
//	lint       Check vendor catalogs for problems
//	catalog    List or export the loaded catalog
//	shell      Interactive query shell
//	log        View and summarize decision trace files
//
// Examples:
//
//	# Classify with the built-in catalog
//	mpnctl classify SN74HC00N GRM188R71H104KA93D
//
//	# Explain a replacement decision using an extra vendor directory
//	mpnctl --catalog ./vendors compare QCC3034 QCC3056
//
//	# Record decisions and review the failures afterwards
//	mpnctl --trace-file run.mtrace batch --pairs pairs.txt
//	mpnctl log view --outcome miss run.mtrace
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
