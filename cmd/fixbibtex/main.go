// Package main provides the fixbibtex CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// strictMode elevates bibliography parse warnings to hard failures
var strictMode bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fixbibtex <file.bib>",
	Short: "Fix .bib files automatically using Crossref metadata",
	Long: `fixbibtex reads a BibTeX bibliography, queries the Crossref works API
for each journal article, and rewrites journal, pages, year, DOI,
authors and related fields from the best-matching record.

Given input name.bib it writes name.old.bib (the original, unchanged)
and name.new.bib (the patched bibliography).

Set CROSSREF_MAILTO to your mail address to gain access to Crossref's
priority queue; FIXBIBTEX_WORKERS overrides the lookup parallelism.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Arguments are validated at this point; usage output on
		// runtime failures would only bury the real error.
		cmd.SilenceUsage = true
		return runFix(args[0], strictMode)
	},
}

func init() {
	// Load .env file if present (for CROSSREF_MAILTO)
	_ = godotenv.Load()

	rootCmd.Flags().BoolVar(&strictMode, "strict", false, "treat bibliography parse warnings as errors")
	rootCmd.Version = Version
}
