package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"go-leave/internal/importer"
	importererrors "go-leave/internal/importer/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("strips bom and keeps header text", func(t *testing.T) {
		data := "\xEF\xBB\xBFName,Department,Total Leaves,Available Leaves\nJohn Doe,IT,25,25\n"

		rows, err := importer.ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "John Doe", rows[0]["Name"])
		assert.Equal(t, "25", rows[0]["Total Leaves"])
	})

	t.Run("utf8 right to left text survives", func(t *testing.T) {
		data := "name,department,total_leaves,available_leaves\nأحمد علي,المالية,20,18\n"

		rows, err := importer.ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "أحمد علي", rows[0]["name"])
		assert.Equal(t, "المالية", rows[0]["department"])
	})

	t.Run("skips blank lines and pads short rows", func(t *testing.T) {
		data := "name,department,total_leaves,available_leaves\n\n,,,\nJane,HR,30\n"

		rows, err := importer.ParseCSV(strings.NewReader(data))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "30", rows[0]["total_leaves"])
		assert.Equal(t, "", rows[0]["available_leaves"])
	})

	t.Run("header only", func(t *testing.T) {
		rows, err := importer.ParseCSV(strings.NewReader("name,department\n"))

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestParseXLSX_Template(t *testing.T) {
	data, err := importer.BuildTemplate()
	require.NoError(t, err)

	rows, err := importer.ParseXLSX(bytes.NewReader(data))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, importer.Row{
		"name": "John Doe", "department": "IT", "total_leaves": "25", "available_leaves": "25",
	}, rows[0])
	assert.Equal(t, "Jane Smith", rows[1]["name"])
	assert.Equal(t, "30", rows[1]["available_leaves"])
}

func TestParse(t *testing.T) {
	t.Run("dispatches on extension", func(t *testing.T) {
		rows, err := importer.Parse("staff.CSV", []byte("name\nJohn\n"))

		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := importer.Parse("staff.txt", []byte("name\n"))

		assert.ErrorIs(t, err, importererrors.ErrUnsupportedFile)
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		_, err := importer.Parse("staff.xlsx", []byte("not a zip"))
		assert.Error(t, err)

		_, err = importer.Parse("staff.xls", []byte("not a workbook"))
		assert.Error(t, err)
	})
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, importer.SupportedExtension("a.csv"))
	assert.True(t, importer.SupportedExtension("a.XLSX"))
	assert.True(t, importer.SupportedExtension("a.xls"))
	assert.False(t, importer.SupportedExtension("a.pdf"))
	assert.False(t, importer.SupportedExtension("xlsx"))
}
