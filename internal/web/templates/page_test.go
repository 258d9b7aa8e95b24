package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/KaramelBytes/surveylens/internal/analysis"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/narrative"
)

func TestBold(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a **b** c", "a <strong>b</strong> c"},
		{"**x** and **y**.", "<strong>x</strong> and <strong>y</strong>."},
		{"open **end", "open **end"},
		{"<b>**i**</b>", "&lt;b&gt;<strong>i</strong>&lt;/b&gt;"},
	}
	for _, tt := range tests {
		if got := Bold(tt.in); got != tt.want {
			t.Errorf("Bold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDashboardEscapesCells(t *testing.T) {
	res := &analysis.Result{
		Name:      "x.csv",
		Lang:      locale.English,
		Rows:      1,
		Columns:   []string{"<script>"},
		Preview:   [][]string{{"<img>"}},
		Narrative: narrative.Interpret(0.1, 0.5, locale.English),
	}
	var buf bytes.Buffer
	if err := Dashboard(Page{Lang: locale.English, Theme: "light", Result: res}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	if strings.Contains(html, "<script>") || strings.Contains(html, "<img>") {
		t.Fatalf("cells were not escaped")
	}
	if !strings.Contains(html, "<strong>weak positive relationship</strong>") {
		t.Fatalf("narrative not rendered:\n%s", html)
	}
}

func TestInlineSVGDropsProlog(t *testing.T) {
	got := inlineSVG([]byte("<?xml version=\"1.0\"?>\n<svg width=\"1\"></svg>"))
	if got != "<svg width=\"1\"></svg>" {
		t.Fatalf("got %q", got)
	}
}

func TestSidebarMarksCurrentChoices(t *testing.T) {
	var buf bytes.Buffer
	if err := Sidebar(Page{Lang: locale.Indonesian, Theme: "dark"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{`<option value="id" selected>`, `value="dark" checked>`, `<option value="en">`} {
		if !strings.Contains(html, want) {
			t.Errorf("sidebar missing %q\n%s", want, html)
		}
	}
}

func TestDescribeTableLayout(t *testing.T) {
	s := analysis.Summary{Name: "X_TOTAL", Count: 3, Mean: 2, Std: 1, Min: 1, Q1: 1.5, Median: 2, Q3: 2.5, Max: 3}
	tbl := describeTable(locale.English.Pack().StatLabels, s)
	if len(tbl.Header) != 2 || tbl.Header[1] != "X_TOTAL" || len(tbl.Rows) != 8 {
		t.Fatalf("table = %+v", tbl)
	}
	if tbl.Rows[0][1] != "3" || tbl.Rows[1][1] != "2.000" {
		t.Fatalf("rows = %v", tbl.Rows)
	}
}
