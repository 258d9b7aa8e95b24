package templates

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/KaramelBytes/surveylens/internal/analysis"
	"github.com/KaramelBytes/surveylens/internal/locale"
)

type tableData struct {
	Header []string
	Rows   [][]string
}

type themeOption struct {
	Value string
	Label string
}

func themeOptions(pk locale.Pack) []themeOption {
	return []themeOption{{"light", pk.LightMode}, {"dark", pk.DarkMode}}
}

// Bold escapes s and turns **text** pairs into <strong> elements. An
// unpaired marker is left as literal asterisks.
func Bold(s string) string {
	parts := strings.Split(templ.EscapeString(s), "**")
	var b strings.Builder
	for i, part := range parts {
		switch {
		case i == 0:
		case i%2 == 1 && i < len(parts)-1:
			b.WriteString("<strong>")
		case i%2 == 0:
			b.WriteString("</strong>")
		default:
			b.WriteString("**")
		}
		b.WriteString(part)
	}
	return b.String()
}

// inlineSVG drops the XML prolog so the image can sit inside HTML.
func inlineSVG(svg []byte) string {
	if i := bytes.Index(svg, []byte("<svg")); i > 0 {
		svg = svg[i:]
	}
	return string(svg)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func formatCorr(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func showingRows(p Page) string {
	return fmt.Sprintf(p.pack().ShowingRows, len(p.Result.Preview), p.Result.Rows)
}

func previewTable(res *analysis.Result) tableData {
	return tableData{Header: res.Columns, Rows: res.Preview}
}

// describeTable lays out one column per summary and one row per statistic.
func describeTable(labels locale.StatLabels, cols ...analysis.Summary) tableData {
	header := []string{""}
	for _, c := range cols {
		header = append(header, c.Name)
	}
	names := labels.List()
	rows := make([][]string, len(names))
	for i, name := range names {
		row := []string{name}
		for _, c := range cols {
			if i == 0 {
				row = append(row, fmt.Sprintf("%d", c.Count))
				continue
			}
			row = append(row, analysis.FormatStat(c.Values()[i]))
		}
		rows[i] = row
	}
	return tableData{Header: header, Rows: rows}
}

func stylesheet(dark bool) templ.Component {
	css := baseCSS
	if dark {
		css += darkCSS
	}
	return templ.Raw("<style>" + css + "</style>")
}

const baseCSS = `body{margin:0;font-family:"Source Sans Pro",system-ui,sans-serif;background:#fff;color:#31333f}
.layout{display:flex;min-height:100vh}
aside{width:18rem;padding:1.5rem;background:#f0f2f6}
aside select,aside fieldset{width:100%;margin:.5rem 0 1rem}
main{flex:1;padding:2rem 3rem;max-width:60rem}
.upload{display:flex;flex-direction:column;gap:.5rem;margin:1rem 0 2rem}
.alert{padding:1rem;border-radius:.5rem;margin:1rem 0}
.alert.info{background:#e8f0fe}
.alert.success{background:#e6f4ea}
.alert.error{background:#fde8e8}
.table{overflow-x:auto}
table{border-collapse:collapse;margin:.5rem 0}
th,td{border:1px solid #ddd;padding:.25rem .6rem;text-align:right}
.columns{display:flex;gap:2rem}
.caption{font-size:.85rem;opacity:.75}
.scatter svg{max-width:100%;height:auto}
`

const darkCSS = `body,main{background:#0e1117;color:#fff}
aside{background:#262730;color:#fff}
th,td{border-color:#3a3f4b}
.alert.info{background:#1c2a3f}
.alert.success{background:#173b2a}
.alert.error{background:#4a1c1c}
`
