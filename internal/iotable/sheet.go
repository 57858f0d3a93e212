// Package iotable reads input tables from CSV or Excel files and writes
// derived tables as CSV.
package iotable

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ccslim/ccslim/internal/iofs"
	"github.com/xuri/excelize/v2"
)

// Sheet is a raw table with a header row. Every row has the length of
// the header.
type Sheet struct {
	Path   string
	Header []string
	Rows   [][]string
}

// Index returns the position of a column, or -1. Names are compared
// ignoring surrounding spaces.
func (sh *Sheet) Index(col string) int {
	col = strings.TrimSpace(col)
	for i, v := range sh.Header {
		if strings.TrimSpace(v) == col {
			return i
		}
	}
	return -1
}

// IndexFold is Index with case-insensitive comparison.
func (sh *Sheet) IndexFold(col string) int {
	col = strings.TrimSpace(col)
	for i, v := range sh.Header {
		if strings.EqualFold(strings.TrimSpace(v), col) {
			return i
		}
	}
	return -1
}

// Require returns positions of the columns or a MissingColumnError.
func (sh *Sheet) Require(cols ...string) ([]int, error) {
	res := make([]int, len(cols))
	for i, c := range cols {
		idx := sh.Index(c)
		if idx < 0 {
			return nil, MissingColumnError(sh.Path, c)
		}
		res[i] = idx
	}
	return res, nil
}

// ReadTable reads a CSV or XLSX file. For Excel files sheet selects the
// worksheet, empty sheet means the first one.
func ReadTable(path, sheet string) (*Sheet, error) {
	format, err := iofs.CheckInput(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case iofs.FormatXLSX:
		rows, err = readXLSX(path, sheet)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, EmptyTableError(path)
	}

	res := &Sheet{Path: path, Header: trimAll(rows[0])}
	width := len(res.Header)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		res.Rows = append(res.Rows, normRow(row, width))
	}
	return res, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var res [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, iofs.ReadFileError(path, err)
		}
		res = append(res, row)
	}
	if len(res) > 0 && len(res[0]) > 0 {
		res[0][0] = strings.TrimPrefix(res[0][0], "\ufeff")
	}
	return res, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, EmptyTableError(path)
		}
		sheet = list[0]
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, MissingSheetError(filepath.Base(path), sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	return rows, nil
}

func normRow(row []string, width int) []string {
	res := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		res[i] = strings.TrimSpace(row[i])
	}
	return res
}

func trimAll(row []string) []string {
	res := make([]string, len(row))
	for i, v := range row {
		res[i] = strings.TrimSpace(v)
	}
	return res
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
