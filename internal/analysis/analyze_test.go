package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KaramelBytes/surveylens/internal/dataset"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/narrative"
)

const surveyCSV = `Name,X_TOTAL,Y_TOTAL
a,1,2
b,2,4
c,3,6
d,4,8
e,5,10
`

func loadSurvey(t *testing.T, body string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load("survey.csv", strings.NewReader(body), dataset.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ds
}

func TestAnalyzePerfectPositive(t *testing.T) {
	ds := loadSurvey(t, surveyCSV)
	res, err := Analyze(ds, DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if math.Abs(res.Corr.R-1) > 1e-9 || res.Corr.P > 1e-9 || res.Corr.N != 5 {
		t.Fatalf("corr = %+v", res.Corr)
	}
	n := res.Narrative
	if n.Strength != narrative.Strong || n.Direction != narrative.Positive || !n.Significant {
		t.Fatalf("narrative = %+v", n)
	}
	if res.X.Name != "X_TOTAL" || res.Y.Mean != 6 {
		t.Fatalf("summaries = %+v / %+v", res.X, res.Y)
	}
	if res.Rows != 5 || len(res.Preview) != 5 {
		t.Fatalf("rows = %d preview = %d", res.Rows, len(res.Preview))
	}
}

func TestAnalyzeMissingColumn(t *testing.T) {
	ds := loadSurvey(t, "Name,X_TOTAL\na,1\nb,2\n")
	_, err := Analyze(ds, DefaultOptions())
	if !errors.Is(err, dataset.ErrColumnNotFound) {
		t.Fatalf("err = %v, want ErrColumnNotFound", err)
	}
	if !strings.Contains(err.Error(), "Y_TOTAL") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestAnalyzeLowercaseColumnIsMissing(t *testing.T) {
	ds := loadSurvey(t, "X_TOTAL,y_total\n1,2\n2,3\n3,5\n")
	res, err := Analyze(ds, DefaultOptions())
	if !errors.Is(err, dataset.ErrColumnNotFound) || res != nil {
		t.Fatalf("err = %v res = %v, want ErrColumnNotFound", err, res)
	}
}

func TestMarkdownTruncatesLongCellsByRune(t *testing.T) {
	comment := strings.Repeat("é", 90)
	ds := loadSurvey(t, "X_TOTAL,Y_TOTAL,Comment\n1,2,"+comment+"\n2,3,ok\n3,5,ok\n")
	res, err := Analyze(ds, DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	md := res.Markdown()
	if !utf8.ValidString(md) {
		t.Fatal("report is not valid UTF-8")
	}
	if !strings.Contains(md, strings.Repeat("é", 77)+"...") || strings.Contains(md, strings.Repeat("é", 78)) {
		t.Fatal("long cell should be cut to 77 runes plus ellipsis")
	}
}

func TestAnalyzeCustomColumns(t *testing.T) {
	ds := loadSurvey(t, "hours,score\n1,9\n2,7\n3,8\n4,3\n5,1\n")
	opt := DefaultOptions()
	opt.XColumn, opt.YColumn = "hours", "score"
	opt.Lang = locale.Indonesian
	opt.PreviewRows = 2
	res, err := Analyze(ds, opt)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Corr.R >= 0 || res.Narrative.Direction != narrative.Negative {
		t.Fatalf("expected negative relationship, got %+v", res.Corr)
	}
	if !strings.Contains(res.Narrative.Text, "negatif") {
		t.Fatalf("text = %q", res.Narrative.Text)
	}
	if len(res.Preview) != 2 {
		t.Fatalf("preview = %d rows", len(res.Preview))
	}
}

func TestAnalyzeConstantColumn(t *testing.T) {
	ds := loadSurvey(t, "X_TOTAL,Y_TOTAL\n1,5\n2,5\n3,5\n")
	if _, err := Analyze(ds, DefaultOptions()); !errors.Is(err, ErrConstantInput) {
		t.Fatalf("err = %v, want ErrConstantInput", err)
	}
}

func TestMarkdownReport(t *testing.T) {
	ds := loadSurvey(t, surveyCSV)
	res, err := Analyze(ds, DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	md := res.Markdown()
	for _, want := range []string{
		"Raw Data Preview",
		"| count | 5 | 5 |",
		"| mean | 3.000 | 6.000 |",
		"1.000",
		"strong positive relationship",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n%s", want, md)
		}
	}
}

func TestAnalyzeIdenticalColumns(t *testing.T) {
	ds := loadSurvey(t, "X_TOTAL,Y_TOTAL\n1,1\n2,2\n3,3\n4,4\n5,5\n")
	res, err := Analyze(ds, DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := fmt.Sprintf("%.3f/%.3f", res.Corr.R, res.Corr.P); got != "1.000/0.000" {
		t.Fatalf("r/p = %s, want 1.000/0.000", got)
	}
	text := res.Narrative.Text
	if !strings.Contains(text, "strong positive") || !strings.Contains(text, "statistically significant") || strings.Contains(text, "not statistically") {
		t.Fatalf("narrative = %q", text)
	}
}
