package cmd

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/surveylens/internal/analysis"
	"github.com/KaramelBytes/surveylens/internal/chart"
	"github.com/KaramelBytes/surveylens/internal/dataset"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/telemetry"
	"github.com/KaramelBytes/surveylens/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaJSON       bool
	anaPlotPath   string
	anaLang       string
	anaTheme      string
	anaXColumn    string
	anaYColumn    string
	anaDelimiter  string
	anaSampleRows int
	anaSheetName  string
	anaSheetIndex int
	anaDecimal    string
	anaThousands  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a survey dataset (XLSX/CSV) and print the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := effectiveConfig()

		loadOpt, err := datasetOptions(anaDelimiter, anaDecimal, anaThousands, anaSheetName, anaSheetIndex)
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.XColumn, opt.YColumn = c.XColumn, c.YColumn
		if anaXColumn != "" {
			opt.XColumn = anaXColumn
		}
		if anaYColumn != "" {
			opt.YColumn = anaYColumn
		}
		opt.PreviewRows = c.SampleRows
		if cmd.Flags().Changed("sample-rows") {
			opt.PreviewRows = anaSampleRows
		}
		langVal := c.Language
		if anaLang != "" {
			langVal = anaLang
		}
		if opt.Lang, err = locale.Parse(langVal); err != nil {
			return err
		}

		rec := newRecorder(context.Background(), c)
		defer closeRecorder(rec)

		res, err := runAnalyze(path, loadOpt, opt)
		recordCLI(rec, path, opt.Lang, res, err)
		if err != nil {
			return err
		}

		if anaPlotPath != "" {
			themeVal := c.Theme
			if anaTheme != "" {
				themeVal = anaTheme
			}
			theme, err := chart.ParseTheme(themeVal)
			if err != nil {
				return err
			}
			if err := writePlot(anaPlotPath, res, theme); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote scatter plot to %s\n", anaPlotPath)
		}

		var out []byte
		if anaJSON {
			if out, err = utils.PrettyJSON(res); err != nil {
				return err
			}
		} else {
			out = []byte(res.Markdown())
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func runAnalyze(path string, loadOpt dataset.Options, opt analysis.Options) (*analysis.Result, error) {
	ds, err := dataset.LoadFile(path, loadOpt)
	if err != nil {
		return nil, err
	}
	return analysis.Analyze(ds, opt)
}

func datasetOptions(delimiter, decimal, thousands, sheetName string, sheetIndex int) (dataset.Options, error) {
	opt := dataset.Options{SheetName: sheetName, SheetIndex: sheetIndex}
	switch delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
	}
	// Locale separators
	switch strings.ToLower(strings.TrimSpace(decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", decimal)
	}
	switch strings.ToLower(strings.TrimSpace(thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thousands)
	}
	return opt, nil
}

func writePlot(path string, res *analysis.Result, theme chart.Theme) error {
	format := "svg"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		format = "png"
	}
	pk := res.Lang.Pack()
	img, err := chart.Scatter(res.XValues, res.YValues, chart.Options{
		XLabel: pk.XTitle,
		YLabel: pk.YTitle,
		Theme:  theme,
		Format: format,
	})
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, img); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}

func recordCLI(rec telemetry.Recorder, path string, lang locale.Lang, res *analysis.Result, err error) {
	format := "csv"
	if dataset.IsWorkbook(path) {
		format = "xlsx"
	}
	a := telemetry.Analysis{Format: format, Lang: string(lang), Surface: "cli", Err: err}
	if res != nil {
		a.Rows = res.Rows
		a.AbsR = math.Abs(res.Corr.R)
	}
	rec.RecordAnalysis(context.Background(), a)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit the result as JSON instead of Markdown")
	analyzeCmd.Flags().StringVar(&anaPlotPath, "plot", "", "write the X/Y scatter plot to this .svg or .png file")
	analyzeCmd.Flags().StringVar(&anaLang, "lang", "", "report language: en | id (default from config)")
	analyzeCmd.Flags().StringVar(&anaTheme, "theme", "", "plot theme: light | dark (default from config)")
	analyzeCmd.Flags().StringVar(&anaXColumn, "x", "", "screen-time score column (default X_TOTAL)")
	analyzeCmd.Flags().StringVar(&anaYColumn, "y", "", "productivity score column (default Y_TOTAL)")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeCmd.Flags().StringVar(&anaDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVar(&anaThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 20, "raw rows to preview (0 = all; default from config)")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
