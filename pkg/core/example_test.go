package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/stackaudit/stackaudit/pkg/core"
)

// ExampleScan demonstrates how to perform a simple scan of a directory.
func ExampleScan() {
	cfg := core.Config{
		Root:        ".",         // scan the current directory
		Workers:     4,           // number of concurrent workers
		MaxFileSize: 1024 * 1024, // skip files larger than 1MB
	}

	findings, err := core.Scan(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		return
	}

	if len(findings) == 0 {
		fmt.Println("No issues found.")
	} else {
		fmt.Printf("Found %d issues.\n", len(findings))
	}
}

// ExampleScanWithStats shows how to run a scan and retrieve execution statistics.
func ExampleScanWithStats() {
	cfg := core.Config{Root: "testdata"}

	result, err := core.ScanWithStats(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Scanned %d files in %s\n", result.FilesScanned, result.Duration)
	fmt.Printf("Detected profiles: %v\n", result.Profiles)
	_ = core.WriteResult(os.Stdout, result)
}
