package analysis

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/surveylens/internal/locale"
)

// FormatStat renders a statistic with three decimals; undefined values
// render as NaN.
func FormatStat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.3f", f)
}

// Markdown renders the report in the result's language.
func (r *Result) Markdown() string {
	pk := r.Lang.Pack()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n", pk.Title))
	b.WriteString(fmt.Sprintf("_%s_\n\n", pk.Subtitle))
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Columns)))

	b.WriteString(fmt.Sprintf("\n## %s\n", pk.RawData))
	if len(r.Preview) < r.Rows {
		b.WriteString(fmt.Sprintf("%s\n\n", fmt.Sprintf(pk.ShowingRows, len(r.Preview), r.Rows)))
	}
	writeTable(&b, r.Columns, r.Preview)

	b.WriteString(fmt.Sprintf("\n## %s\n", pk.DescStats))
	writeDescribe(&b, pk.StatLabels, r.Describe...)

	b.WriteString(fmt.Sprintf("\n## %s\n", pk.Composite))
	b.WriteString(fmt.Sprintf("\n### %s\n", pk.XTitle))
	writeDescribe(&b, pk.StatLabels, r.X)
	b.WriteString(fmt.Sprintf("\n### %s\n", pk.YTitle))
	writeDescribe(&b, pk.StatLabels, r.Y)

	b.WriteString(fmt.Sprintf("\n## %s\n", pk.CorrTitle))
	b.WriteString(fmt.Sprintf("**%s:** %.3f\n", pk.CorrLabel, r.Corr.R))
	b.WriteString(fmt.Sprintf("**%s:** %.3f\n", pk.PValueLabel, r.Corr.P))
	b.WriteString(fmt.Sprintf("**%s:** %d\n", pk.SampleSize, r.Corr.N))

	b.WriteString(fmt.Sprintf("\n## %s\n", pk.InterpTitle))
	b.WriteString(r.Narrative.Text)
	b.WriteString("\n")
	return b.String()
}

func writeDescribe(b *strings.Builder, labels locale.StatLabels, cols ...Summary) {
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	names := labels.List()
	rows := make([][]string, len(names))
	for i := range names {
		row := []string{names[i]}
		for _, c := range cols {
			if i == 0 {
				row = append(row, fmt.Sprintf("%d", c.Count))
				continue
			}
			row = append(row, FormatStat(c.Values()[i]))
		}
		rows[i] = row
	}
	writeTable(b, append([]string{""}, header...), rows)
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| ")
	for i, h := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(h))
	}
	b.WriteString(" |\n| ")
	for i := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range header {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			b.WriteString(safeVal(truncate(val, 80)))
		}
		b.WriteString(" |\n")
	}
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
