package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	importererrors "go-leave/internal/importer/errors"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// xlsMaxRows bounds how many rows are pulled out of a legacy workbook.
const xlsMaxRows = 100000

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by the header text exactly as it appeared in
// the file.
type Row map[string]string

// SupportedExtension reports whether filename has an importable extension.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}

// Parse picks a reader by file extension.
func Parse(filename string, data []byte) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(bytes.NewReader(data))
	case ".xlsx":
		return ParseXLSX(bytes.NewReader(data))
	case ".xls":
		return ParseXLS(bytes.NewReader(data))
	default:
		return nil, importererrors.ErrUnsupportedFile
	}
}

func ParseCSV(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rowsFromGrid(grid), nil
}

// ParseXLSX reads the first worksheet.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("no worksheet found")
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rowsFromGrid(grid), nil
}

// ParseXLS reads the first worksheet of a legacy BIFF workbook. The decoder
// panics on some malformed files; that is reported as an error.
func ParseXLS(r io.ReadSeeker) (rows []Row, err error) {
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("read xls: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("no worksheet found")
	}
	return rowsFromGrid(wb.ReadAllCells(xlsMaxRows)), nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// rowsFromGrid treats the first non-blank line as the header and skips
// blank lines after it. Columns with an empty header are dropped.
func rowsFromGrid(grid [][]string) []Row {
	start := 0
	for start < len(grid) && blank(grid[start]) {
		start++
	}
	if start >= len(grid) {
		return nil
	}

	header := grid[start]
	rows := make([]Row, 0, len(grid)-start-1)
	for _, cells := range grid[start+1:] {
		if blank(cells) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if strings.TrimSpace(h) == "" {
				continue
			}
			if _, dup := row[h]; dup {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
