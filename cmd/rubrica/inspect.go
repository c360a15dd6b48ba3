package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmcrae/rubrica/page"
	"github.com/jmcrae/rubrica/source"
)

var inspectPage int

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Print a document's detected text lines",
	Long: `Inspect loads a positioned-text document and prints the text lines the
engine would search, with their coordinates. Useful for debugging why an
evidence string did or did not resolve.

Examples:
  rubrica inspect answers.json
  rubrica inspect scan.hocr --page 3
`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectPage, "page", 0, "Only show this page (default all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := source.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	for _, p := range doc.Pages {
		if inspectPage > 0 && p.Number != inspectPage {
			continue
		}

		fmt.Printf("--- page %d (%.0fx%.0f, %d words) ---\n",
			p.Number, p.Width, p.Height, len(p.Words))
		idx := page.NewIndex(p)
		for _, line := range idx.Lines() {
			fmt.Printf("y=%6.1f  x=%6.1f  %s\n", line.Rect.Y0, line.Rect.X0, line.Text)
		}
	}

	return nil
}
