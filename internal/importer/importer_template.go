package importer

import "github.com/xuri/excelize/v2"

const templateSheet = "Employee Template"

var templateRows = [][]any{
	{"John Doe", "IT", 25, 25},
	{"Jane Smith", "HR", 30, 30},
}

// Template builds the downloadable workbook: the required columns plus two
// example rows.
func (s *service) Template() ([]byte, error) {
	return BuildTemplate()
}

func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, err
	}

	header := make([]any, len(RequiredFields))
	for i, field := range RequiredFields {
		header[i] = field
	}
	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range templateRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(templateSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
