package main

import (
	"fmt"
	"strings"

	"github.com/jaimergp/fixbibtex/internal/fixer"
)

// printSummary reports the run outcome to the operator.
func printSummary(report *fixer.Report, oldPath, newPath string) {
	fmt.Printf("Entries: %d total, %d patched, %d unmatched, %d failed, %d skipped\n",
		report.Total, len(report.Patched), len(report.Unmatched),
		len(report.Failed), len(report.Skipped))

	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped (not a journal article, or preprint): %s\n",
			strings.Join(report.Skipped, ", "))
	}
	if len(report.LowConfidence) > 0 {
		fmt.Printf("Low-confidence matches, check by hand: %s\n",
			strings.Join(report.LowConfidence, ", "))
	}

	fmt.Println("Patched file:", newPath)
	fmt.Println("Original file:", oldPath)
	fmt.Println("Use a diff tool to see changes:")
	fmt.Println("   colordiff", oldPath, newPath)
}
