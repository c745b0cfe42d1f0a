package employee

import (
	"encoding/csv"
	"io"
	"strconv"
)

const (
	csvContentType = "text/csv; charset=utf-8"
	csvFilename    = "employees_export.csv"
	utf8BOM        = "\ufeff"
)

var csvHeader = []string{"Name", "Department", "Total Leaves", "Available Leaves", "Used Leaves"}

// WriteCSV renders employees as a BOM-prefixed UTF-8 sheet so spreadsheet
// tools keep non-latin names intact. Rows keep the order given.
func WriteCSV(w io.Writer, employees []EmployeeResponse) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range employees {
		used := e.TotalLeaves - e.AvailableLeaves
		if err := cw.Write([]string{
			e.Name,
			e.Department,
			strconv.Itoa(e.TotalLeaves),
			strconv.Itoa(e.AvailableLeaves),
			strconv.Itoa(used),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
