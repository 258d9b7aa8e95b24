package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options controls how an uploaded file is parsed.
type Options struct {
	// Delimiter for delimited text. If 0, sniffed from the header line.
	Delimiter rune
	// XLSX sheet selection. SheetName wins over SheetIndex (1-based);
	// both empty selects the first sheet.
	SheetName  string
	SheetIndex int
	// Numeric locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune
}

// IsWorkbook reports whether name is loaded as a spreadsheet rather than
// delimited text.
func IsWorkbook(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx")
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(filepath.Base(path), f, opt)
}

// Load parses r as a workbook when name ends in .xlsx and as delimited text
// otherwise.
func Load(name string, r io.Reader, opt Options) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	if IsWorkbook(name) {
		ds, err = loadXLSX(r, opt)
	} else {
		ds, err = loadCSV(r, opt)
	}
	if err != nil {
		return nil, err
	}
	ds.Name = filepath.Base(name)
	ds.opt = opt
	return ds, nil
}

func loadCSV(r io.Reader, opt Options) (*Dataset, error) {
	br := bufio.NewReader(r)
	delim := opt.Delimiter
	if delim == 0 {
		head, _ := br.Peek(4096)
		delim = sniffDelimiter(head)
	}
	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ds := &Dataset{Columns: cleanHeader(header)}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(ds.Rows)+1, err)
		}
		if blank(rec) {
			continue
		}
		ds.Rows = append(ds.Rows, normalize(rec, len(ds.Columns)))
	}
	return ds, nil
}

func loadXLSX(r io.Reader, opt Options) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	sheet := sheets[0]
	switch {
	case opt.SheetName != "":
		found := false
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet, found = s, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("sheet '%s' not found.\nAvailable sheets: %s", opt.SheetName, strings.Join(sheets, ", "))
		}
	case opt.SheetIndex > 0:
		if opt.SheetIndex > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", opt.SheetIndex, len(sheets))
		}
		sheet = sheets[opt.SheetIndex-1]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	// Leading blank rows are skipped so the first populated row is the header.
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	ds := &Dataset{Columns: cleanHeader(rows[0])}
	for _, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		ds.Rows = append(ds.Rows, normalize(rec, len(ds.Columns)))
	}
	return ds, nil
}

// sniffDelimiter picks the most frequent of ',', ';' and tab on the first line.
func sniffDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(head, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
		if v == "" {
			v = fmt.Sprintf("Unnamed: %d", i)
		}
		out[i] = v
	}
	return out
}

// normalize pads or truncates a record to the header width.
func normalize(rec []string, n int) []string {
	row := make([]string, n)
	copy(row, rec)
	return row
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
