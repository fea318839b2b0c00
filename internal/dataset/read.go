package dataset

// read.go loads tabular source files.
//
// CSV reading handles the messy reality of user exports: UTF-8 BOMs, invalid
// byte sequences from legacy encodings, and ragged rows. XLSX workbooks are
// read through excelize so pullsheets maintained in Excel can be used without
// a conversion step.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile loads a dataset from path, dispatching on the file extension.
// Supported extensions: .csv, .xlsx.
func ReadFile(name, path string) (Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(name, path)
	case ".xlsx":
		return ReadWorkbook(name, path)
	default:
		return Dataset{}, fmt.Errorf("unsupported file type for %s: %q", name, filepath.Ext(path))
	}
}

// ReadCSV loads a CSV file whose first row is the header.
func ReadCSV(name, path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("reading %s: %w", name, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	data = sanitizeUTF8(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("parsing %s csv %s: %w", name, filepath.Base(path), err)
	}

	return fromRecords(name, records), nil
}

// ReadWorkbook loads the first sheet of an XLSX workbook whose first row is
// the header.
func ReadWorkbook(name, path string) (Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("opening %s workbook %s: %w", name, filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Dataset{}, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return Dataset{}, fmt.Errorf("reading %s sheet %q: %w", name, sheets[0], err)
	}

	return fromRecords(name, records), nil
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character. Exports from older tools occasionally carry Windows-1252 bytes;
// replacing them keeps the row intact so validation can judge the cell value
// instead of the whole file failing to parse.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
