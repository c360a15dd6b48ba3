package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rubrica",
	Short: "Rubrica - anchor resolution and placement for graded documents",
	Long: `Rubrica locates grading evidence on rendered document pages and draws
score and comment marks at the matched positions without collisions.

It consumes:
- A positioned-text document (word-box JSON or hOCR)
- Grade sheets (JSON, YAML, or legacy flat CSV)

and produces an annotated-document export plus a placement report.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(inspectCmd)
}
