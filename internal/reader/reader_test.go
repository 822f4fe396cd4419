package reader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHTML(t *testing.T) {
	text, err := HTML("<html><body><p>Hello <b>world</b></p></body></html>")
	require.NoError(t, err)
	assert.Contains(t, text, "Hello")
	assert.Contains(t, text, "world")
	assert.NotContains(t, text, "<")
}

func TestXlsxRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "count"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "widgets"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 42))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	text, err := Xlsx(path)
	require.NoError(t, err)
	assert.Contains(t, text, "name\tcount")
	assert.Contains(t, text, "widgets\t42")
}

func TestStripDocxXML(t *testing.T) {
	xml := `<w:document><w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second &amp; third</w:t></w:r></w:p></w:document>`

	text := stripDocxXML(xml)
	assert.Equal(t, "First paragraph\nSecond & third", text)
}

func TestMissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	t.Run("PDF", func(t *testing.T) {
		_, err := PDF(missing + ".pdf")
		assert.Error(t, err)
	})

	t.Run("Docx", func(t *testing.T) {
		_, err := Docx(missing + ".docx")
		assert.Error(t, err)
	})

	t.Run("Xlsx", func(t *testing.T) {
		_, err := Xlsx(missing + ".xlsx")
		assert.Error(t, err)
	})
}
