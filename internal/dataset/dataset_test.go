package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var surveyRows = []string{
	"Respondent,X_TOTAL,Y_TOTAL,Faculty",
	"r1,12,30,Engineering",
	"r2,18,27,Economics",
	"r3,25,22,Engineering",
	"r4,31,20,Law",
	"r5,40,15,Economics",
}

func TestLoadCSV(t *testing.T) {
	ds, err := Load("survey.csv", strings.NewReader(strings.Join(surveyRows, "\n")), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Name != "survey.csv" {
		t.Fatalf("name = %q", ds.Name)
	}
	if ds.NumRows() != 5 {
		t.Fatalf("rows = %d, want 5", ds.NumRows())
	}
	if !equalStrings(ds.Columns, []string{"Respondent", "X_TOTAL", "Y_TOTAL", "Faculty"}) {
		t.Fatalf("columns = %#v", ds.Columns)
	}
	x, err := ds.Column("X_TOTAL")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !equalFloats(x, []float64{12, 18, 25, 31, 40}) {
		t.Fatalf("X_TOTAL = %v", x)
	}
	if got := ds.NumericColumns(); !equalStrings(got, []string{"X_TOTAL", "Y_TOTAL"}) {
		t.Fatalf("numeric columns = %#v", got)
	}
	if got := ds.Head(2); len(got) != 2 || got[1][0] != "r2" {
		t.Fatalf("head = %#v", got)
	}
}

func TestLoadCSVSniffsSemicolonAndLocaleNumbers(t *testing.T) {
	content := "X_TOTAL;Y_TOTAL\n1,5;1.000,0\n2,5;2.000,5\n"
	ds, err := Load("export.csv", strings.NewReader(content), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	xs, ys, err := ds.Pairs("X_TOTAL", "Y_TOTAL")
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if !equalFloats(xs, []float64{1.5, 2.5}) || !equalFloats(ys, []float64{1000, 2000.5}) {
		t.Fatalf("pairs = %v %v", xs, ys)
	}
}

func TestColumnErrors(t *testing.T) {
	ds, err := Load("survey.csv", strings.NewReader("X_TOTAL,Note\n1,a\n2,b\n"), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := ds.Column("Y_TOTAL"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	if _, err := ds.Column("Note"); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("expected ErrNotNumeric, got %v", err)
	}
	if _, _, err := ds.Pairs("X_TOTAL", "Y_TOTAL"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound from Pairs, got %v", err)
	}
}

func TestMissingValues(t *testing.T) {
	ds, err := Load("survey.csv", strings.NewReader("X_TOTAL,Y_TOTAL\n1,2\n,3\n4,NaN\n"), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	x, err := ds.Column("X_TOTAL")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !equalFloats(x, []float64{1, 4}) {
		t.Fatalf("X_TOTAL = %v", x)
	}
	if _, _, err := ds.Pairs("X_TOTAL", "Y_TOTAL"); !errors.Is(err, ErrMissingValue) {
		t.Fatalf("expected ErrMissingValue, got %v", err)
	}
}

func TestIndexMatchesExactNames(t *testing.T) {
	ds := &Dataset{Columns: []string{"\ufeff X_TOTAL ", "y_total"}}
	if i, ok := ds.Index("X_TOTAL"); !ok || i != 0 {
		t.Fatalf("Index = %d, %v", i, ok)
	}
	if _, ok := ds.Index("Y_TOTAL"); ok {
		t.Fatal("lowercase header must not satisfy Y_TOTAL")
	}
	if _, _, err := ds.Pairs("X_TOTAL", "Y_TOTAL"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestColumnReadsQuotedThousands(t *testing.T) {
	ds, err := Load("survey.csv", strings.NewReader("X_TOTAL,Y_TOTAL\n\"1,200\",1\n\"2,400\",2\n\"3,600\",3\n"), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	x, err := ds.Column("X_TOTAL")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if !equalFloats(x, []float64{1200, 2400, 3600}) {
		t.Fatalf("X_TOTAL = %v", x)
	}
}

func TestLoadEmpty(t *testing.T) {
	if _, err := Load("empty.csv", strings.NewReader(""), Options{}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t)

	ds, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if ds.Name != "survey.xlsx" {
		t.Fatalf("name = %q", ds.Name)
	}
	if !equalStrings(ds.Columns, []string{"X_TOTAL", "Y_TOTAL"}) {
		t.Fatalf("columns = %#v", ds.Columns)
	}
	xs, ys, err := ds.Pairs("X_TOTAL", "Y_TOTAL")
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if !equalFloats(xs, []float64{10, 20, 30}) || !equalFloats(ys, []float64{3, 2.5, 1}) {
		t.Fatalf("pairs = %v %v", xs, ys)
	}

	byName, err := LoadFile(path, Options{SheetName: "raw"})
	if err != nil {
		t.Fatalf("LoadFile by name: %v", err)
	}
	if !equalStrings(byName.Columns, []string{"Respondent"}) {
		t.Fatalf("sheet by name columns = %#v", byName.Columns)
	}
	byIndex, err := LoadFile(path, Options{SheetIndex: 2})
	if err != nil {
		t.Fatalf("LoadFile by index: %v", err)
	}
	if byIndex.NumRows() != 1 {
		t.Fatalf("sheet by index rows = %d", byIndex.NumRows())
	}
	if _, err := LoadFile(path, Options{SheetName: "missing"}); err == nil || !strings.Contains(err.Error(), "Available sheets") {
		t.Fatalf("expected sheet-not-found error, got %v", err)
	}
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"X_TOTAL", "Y_TOTAL"},
		{10, 3},
		{20, 2.5},
		{30, 1},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if _, err := f.NewSheet("raw"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("raw", "A1", "Respondent"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SetCellValue("raw", "A2", "r1"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx fixture: %v", err)
	}
	return path
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"12", Options{}, 12, true},
		{"3,5", Options{}, 3.5, true},
		{"1.000,25", Options{}, 1000.25, true},
		{"1,000.25", Options{}, 1000.25, true},
		{"1,200", Options{}, 1200, true},
		{"-12,500,000", Options{}, -12500000, true},
		{"1,25", Options{}, 1.25, true},
		{"1,200", Options{DecimalSeparator: ','}, 1.2, true},
		{"40%", Options{}, 40, true},
		{"1 234", Options{DecimalSeparator: '.', ThousandsSeparator: ' '}, 1234, true},
		{"abc", Options{}, 0, false},
		{"inf", Options{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumeric(tt.in, tt.opt)
		if ok != tt.ok || (ok && math.Abs(got-tt.want) > 1e-9) {
			t.Errorf("parseNumeric(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}
