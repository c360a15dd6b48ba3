package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jmcrae/rubrica"
	"github.com/jmcrae/rubrica/grade"
	"github.com/jmcrae/rubrica/mutate"
	"github.com/jmcrae/rubrica/place"
	"github.com/jmcrae/rubrica/source"
)

var (
	inputPath   string
	sheetPath   string
	outputPath  string
	reportPath  string
	tuningPath  string
	allowedPage []int
	verbose     bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate a document with grading marks",
	Long: `Annotate resolves each grade sheet's evidence against the document's
pages and draws underlines, score labels, and comment notes.

Examples:
  # Annotate with a JSON grade sheet
  rubrica annotate --input answers.json --sheet grades.json --output annotated.json

  # Restrict the search to specific pages, in order
  rubrica annotate --input answers.json --sheet grades.yaml --pages 2,3,4

  # Override placement tunables from a file
  rubrica annotate --input scan.hocr --sheet grades.csv --tuning tuning.yaml
`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Positioned-text document (word-box JSON or hOCR)")
	annotateCmd.Flags().StringVarP(&sheetPath, "sheet", "s", "", "Grade sheet file (JSON, YAML, or CSV)")
	annotateCmd.Flags().StringVarP(&outputPath, "output", "o", "annotated.json", "Annotated document output path")
	annotateCmd.Flags().StringVarP(&reportPath, "report", "r", "", "Placement report output path (default stdout)")
	annotateCmd.Flags().StringVarP(&tuningPath, "tuning", "t", "", "Placement tuning file (YAML)")
	annotateCmd.Flags().IntSliceVarP(&allowedPage, "pages", "p", nil, "Allowed pages in search order (default all)")
	annotateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	annotateCmd.MarkFlagRequired("input")
	annotateCmd.MarkFlagRequired("sheet")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	doc, err := source.Load(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	sheets, err := grade.Load(sheetPath)
	if err != nil {
		return fmt.Errorf("failed to load sheets: %w", err)
	}

	config, err := loadTuning(tuningPath)
	if err != nil {
		return fmt.Errorf("failed to load tuning: %w", err)
	}

	annotator := rubrica.New(doc).
		WithLogger(logger).
		WithConfig(config).
		WithSaver(mutate.FileSaver{Path: outputPath})
	if len(allowedPage) > 0 {
		annotator = annotator.Pages(allowedPage...)
	}

	for _, sheet := range sheets {
		report, err := annotator.Apply(sheet)
		if err != nil {
			return fmt.Errorf("failed to annotate question %s: %w", sheet.Question, err)
		}

		if err := writeReport(report); err != nil {
			return err
		}
	}

	return nil
}

// loadTuning reads placement overrides from a viper-backed tuning file;
// absent keys keep their defaults
func loadTuning(path string) (place.Config, error) {
	config := place.DefaultConfig()
	if path == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("y_tolerance", config.YTolerance)
	v.SetDefault("stagger_step", config.StaggerStep)
	v.SetDefault("stagger_retries", config.StaggerRetries)
	v.SetDefault("margin_offset", config.MarginOffset)
	v.SetDefault("underline_width", config.UnderlineWidth)
	v.SetDefault("score_font_size", config.ScoreFontSize)
	v.SetDefault("main_score_font_size", config.MainScoreFontSize)
	v.SetDefault("note_title", config.NoteTitle)
	v.SetDefault("note_opacity", config.NoteOpacity)

	if err := v.ReadInConfig(); err != nil {
		return config, err
	}

	config.YTolerance = v.GetFloat64("y_tolerance")
	config.StaggerStep = v.GetFloat64("stagger_step")
	config.StaggerRetries = v.GetInt("stagger_retries")
	config.MarginOffset = v.GetFloat64("margin_offset")
	config.UnderlineWidth = v.GetFloat64("underline_width")
	config.ScoreFontSize = v.GetFloat64("score_font_size")
	config.MainScoreFontSize = v.GetFloat64("main_score_font_size")
	config.NoteTitle = v.GetString("note_title")
	config.NoteOpacity = v.GetFloat64("note_opacity")

	return config, nil
}

// writeReport emits the placement report to the report path or stdout
func writeReport(report *rubrica.Report) error {
	data, err := report.JSON()
	if err != nil {
		return err
	}

	if reportPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
