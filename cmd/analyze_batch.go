package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/surveylens/internal/analysis"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abOutDir     string
	abLang       string
	abXColumn    string
	abYColumn    string
	abDelimiter  string
	abDecimal    string
	abThousands  string
	abSampleRows int
	abSheetName  string
	abSheetIndex int
	abJSON       bool
	abQuiet      bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze several survey files and print a correlation summary table",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path if exists
				if _, err := os.Stat(arg); err == nil {
					matches = []string{arg}
				}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		c := effectiveConfig()
		loadOpt, err := datasetOptions(abDelimiter, abDecimal, abThousands, abSheetName, abSheetIndex)
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		opt.XColumn, opt.YColumn = c.XColumn, c.YColumn
		if abXColumn != "" {
			opt.XColumn = abXColumn
		}
		if abYColumn != "" {
			opt.YColumn = abYColumn
		}
		opt.PreviewRows = c.SampleRows
		if cmd.Flags().Changed("sample-rows") {
			opt.PreviewRows = abSampleRows
		}
		langVal := c.Language
		if abLang != "" {
			langVal = abLang
		}
		if opt.Lang, err = locale.Parse(langVal); err != nil {
			return err
		}

		rec := newRecorder(context.Background(), c)
		defer closeRecorder(rec)

		if abOutDir != "" {
			if err := os.MkdirAll(abOutDir, 0o755); err != nil {
				return err
			}
		}

		var results []*analysis.Result
		var failed int
		total := len(files)
		for i, path := range files {
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			res, err := runAnalyze(path, loadOpt, opt)
			recordCLI(rec, path, opt.Lang, res, err)
			if err != nil {
				// one bad file does not stop the batch
				failed++
				fmt.Fprintf(out, "⚠ Skipped %s: %v\n", filepath.Base(path), err)
				continue
			}
			results = append(results, res)
			if abOutDir == "" {
				continue
			}
			outFile := uniqueReportPath(abOutDir, path, abJSON)
			var body []byte
			if abJSON {
				if body, err = utils.PrettyJSON(res); err != nil {
					return err
				}
			} else {
				body = []byte(res.Markdown())
			}
			if err := utils.SafeWriteFile(outFile, body); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !abQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", outFile)
			}
		}

		fmt.Fprintln(out, batchSummary(results, opt.Lang))
		if len(results) == 0 {
			return fmt.Errorf("all %d files failed", failed)
		}
		return nil
	},
}

// uniqueReportPath picks <base>.report.md in dir, adding __2, __3... when two
// inputs share a basename.
func uniqueReportPath(dir, path string, asJSON bool) string {
	ext := ".report.md"
	if asJSON {
		ext = ".report.json"
	}
	base := filepath.Base(path)
	safe := strings.TrimSuffix(base, filepath.Ext(base))
	outFile := filepath.Join(dir, safe+ext)
	if _, statErr := os.Stat(outFile); statErr != nil {
		return outFile
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", safe, idx, ext))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

// batchSummary is a Markdown table of one row per analyzed file.
func batchSummary(results []*analysis.Result, lang locale.Lang) string {
	pk := lang.Pack()
	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s\n", pk.CorrTitle)
	b.WriteString("| File | n | r | p | |\n| --- | --- | --- | --- | --- |\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f | %s |\n", r.Name, r.Corr.N, r.Corr.R, r.Corr.P, r.Narrative.Label(lang))
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "write one report per input file into this directory")
	analyzeBatchCmd.Flags().BoolVar(&abJSON, "json", false, "write per-file reports as JSON")
	analyzeBatchCmd.Flags().StringVar(&abLang, "lang", "", "report language: en | id (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abXColumn, "x", "", "screen-time score column (default X_TOTAL)")
	analyzeBatchCmd.Flags().StringVar(&abYColumn, "y", "", "productivity score column (default Y_TOTAL)")
	analyzeBatchCmd.Flags().StringVar(&abDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeBatchCmd.Flags().StringVar(&abDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	analyzeBatchCmd.Flags().StringVar(&abThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	analyzeBatchCmd.Flags().IntVar(&abSampleRows, "sample-rows", 20, "raw rows to preview per report (0 = all; default from config)")
	analyzeBatchCmd.Flags().StringVar(&abSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeBatchCmd.Flags().IntVar(&abSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
