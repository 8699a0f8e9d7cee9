// Command datasetctl inspects and converts careermaps employer datasets.
//
// Usage:
//
//	datasetctl validate data/employers.json
//	datasetctl industries data/employers.xlsx --sheet Employers
//	datasetctl template --out employers.xlsx
//	datasetctl convert data/employers.xlsx --out employers.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
