package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/chalamkotahemanth/slidekpi/kpi"
)

const nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// Workbook part boilerplate. Strings are inlined in the worksheet so no
// sharedStrings part is needed.
const (
	xlsxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
  <Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
</Types>`

	xlsxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

	xlsxWorkbookRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`
)

// worksheetXML represents a xl/worksheets/sheet*.xml file structure.
type worksheetXML struct {
	XMLName   xml.Name     `xml:"worksheet"`
	Xmlns     string       `xml:"xmlns,attr"`
	Dimension dimensionXML `xml:"dimension"`
	SheetData sheetDataXML `xml:"sheetData"`
}

type dimensionXML struct {
	Ref string `xml:"ref,attr"` // e.g., "A1:J3"
}

type sheetDataXML struct {
	Rows []rowXML `xml:"row"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // Row number (1-indexed)
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string        `xml:"r,attr"`           // Cell reference (e.g., "A1")
	T  string        `xml:"t,attr,omitempty"` // Type: inlineStr for text, empty for number
	V  string        `xml:"v,omitempty"`      // Numeric value
	Is *inlineStrXML `xml:"is,omitempty"`     // Inline string
}

type inlineStrXML struct {
	T string `xml:"t"`
}

// XLSX writes the table as a single-sheet workbook. Absent numeric
// values render as blank cells (the cell is emitted with no value so
// spreadsheet tools show it as empty rather than zero).
func XLSX(w io.Writer, t *kpi.Table, sheetName string) error {
	if sheetName == "" {
		sheetName = "KPIs"
	}

	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", xlsxContentTypes},
		{"_rels/.rels", xlsxRootRels},
		{"xl/_rels/workbook.xml.rels", xlsxWorkbookRels},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, []byte(part.content)); err != nil {
			return err
		}
	}

	// The workbook part carries a namespace-prefixed r:id attribute,
	// which encoding/xml cannot round-trip on output, so it is rendered
	// from a template with the sheet name escaped.
	workbook := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="%s" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="%s" sheetId="1" r:id="rId1"/>
  </sheets>
</workbook>`, nsSpreadsheetML, escapeAttr(sheetName))
	if err := writePart(zw, "xl/workbook.xml", []byte(workbook)); err != nil {
		return err
	}

	ws, err := marshalPart(buildWorksheet(t))
	if err != nil {
		return err
	}
	if err := writePart(zw, "xl/worksheets/sheet1.xml", ws); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing workbook archive: %w", err)
	}
	return nil
}

// buildWorksheet lays the table out as one header row plus one data row
// per table row.
func buildWorksheet(t *kpi.Table) worksheetXML {
	rows := make([]rowXML, 0, len(t.Rows)+1)

	header := rowXML{R: 1, Cells: make([]cellXML, 0, len(Columns))}
	for col, name := range Columns {
		header.Cells = append(header.Cells, stringCell(col, 1, name))
	}
	rows = append(rows, header)

	for i := range t.Rows {
		r := &t.Rows[i]
		num := i + 2
		row := rowXML{R: num, Cells: make([]cellXML, 0, len(Columns))}
		row.Cells = append(row.Cells, stringCell(0, num, r.Source))
		for col, v := range []kpi.Value{
			r.AchievementRate, r.RevenueTarget, r.Achieved, r.RevenueReached,
			r.TargetOf, r.RevenuePercent, r.QualityScore, r.BestAchieved, r.BestTarget,
		} {
			row.Cells = append(row.Cells, numberCell(col+1, num, v))
		}
		rows = append(rows, row)
	}

	return worksheetXML{
		Xmlns:     nsSpreadsheetML,
		Dimension: dimensionXML{Ref: fmt.Sprintf("A1:%s%d", columnName(len(Columns)-1), len(rows))},
		SheetData: sheetDataXML{Rows: rows},
	}
}

func stringCell(col, row int, text string) cellXML {
	return cellXML{
		R:  cellRef(col, row),
		T:  "inlineStr",
		Is: &inlineStrXML{T: text},
	}
}

func numberCell(col, row int, v kpi.Value) cellXML {
	c := cellXML{R: cellRef(col, row)}
	if v.Valid {
		c.V = strconv.FormatFloat(v.Float64, 'f', -1, 64)
	}
	return c
}

// cellRef builds an A1-style reference from 0-indexed coordinates.
func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", columnName(col), row)
}

// columnName converts a 0-indexed column to its letter form (A, B, ...,
// Z, AA, ...).
func columnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}

func writePart(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func escapeAttr(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling workbook part: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}
