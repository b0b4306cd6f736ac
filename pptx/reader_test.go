package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// writeZipFile writes a file into a zip archive.
func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
</Types>`

const presentationXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rId1"/>
  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000"/>
</p:presentation>`

// slideWithRuns renders a slide XML with one shape per run group.
func slideWithRuns(runGroups ...[]string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>`)
	for i, runs := range runGroups {
		sb.WriteString(fmt.Sprintf(`
      <p:sp>
        <p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/></p:nvSpPr>
        <p:txBody>
          <a:bodyPr/>
          <a:p>`, i+2, i+1))
		for _, r := range runs {
			sb.WriteString("<a:r><a:t>" + r + "</a:t></a:r>")
		}
		sb.WriteString(`</a:p>
        </p:txBody>
      </p:sp>`)
	}
	sb.WriteString(`
    </p:spTree>
  </p:cSld>
</p:sld>`)
	return sb.String()
}

// buildDeck creates an in-memory PPTX with the given slide bodies keyed
// by member path (e.g. "ppt/slides/slide1.xml").
func buildDeck(t *testing.T, slides map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	writeZipFile(t, zw, "[Content_Types].xml", contentTypesXML)
	writeZipFile(t, zw, "ppt/presentation.xml", presentationXML)
	for name, content := range slides {
		writeZipFile(t, zw, name, content)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func TestOpenBytes(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideWithRuns([]string{"Quarterly Review"}),
	})

	deck, err := OpenBytes(data, "review.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	if deck.Source != "review.pptx" {
		t.Errorf("Source = %q, want %q", deck.Source, "review.pptx")
	}
	if deck.SlideCount() != 1 {
		t.Errorf("SlideCount = %d, want 1", deck.SlideCount())
	}
}

func TestOpenBytesInvalidData(t *testing.T) {
	if _, err := OpenBytes([]byte("not a zip archive"), "bad.pptx"); err == nil {
		t.Error("Expected error for non-ZIP data")
	}
}

func TestOpenBytesMissingPresentation(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeZipFile(t, zw, "[Content_Types].xml", contentTypesXML)
	writeZipFile(t, zw, "ppt/slides/slide1.xml", slideWithRuns([]string{"x"}))
	zw.Close()

	if _, err := OpenBytes(buf.Bytes(), "partial.pptx"); err == nil {
		t.Error("Expected error for missing ppt/presentation.xml")
	}
}

func TestOpenBytesNoSlides(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	writeZipFile(t, zw, "[Content_Types].xml", contentTypesXML)
	writeZipFile(t, zw, "ppt/presentation.xml", presentationXML)
	zw.Close()

	if _, err := OpenBytes(buf.Bytes(), "empty.pptx"); err == nil {
		t.Error("Expected error for presentation with no slides")
	}
}

func TestShapeTextJoinsSplitRuns(t *testing.T) {
	// The authoring tool splits the currency symbol from its digits.
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideWithRuns([]string{"₹", "1,234"}),
	})

	deck, err := OpenBytes(data, "split.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "₹ 1,234" {
		t.Errorf("FullText = %q, want %q", got, "₹ 1,234")
	}
}

func TestShapeTextSkipsWhitespaceRuns(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideWithRuns([]string{"Revenue", "   ", "Target:", "", "10,000"}),
	})

	deck, err := OpenBytes(data, "ws.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "Revenue Target: 10,000" {
		t.Errorf("FullText = %q, want %q", got, "Revenue Target: 10,000")
	}
}

func TestFullTextSlideOrder(t *testing.T) {
	// slide10 must sort after slide2 numerically, not lexically.
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml":  slideWithRuns([]string{"first"}),
		"ppt/slides/slide2.xml":  slideWithRuns([]string{"second"}),
		"ppt/slides/slide10.xml": slideWithRuns([]string{"tenth"}),
	})

	deck, err := OpenBytes(data, "order.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "first second tenth" {
		t.Errorf("FullText = %q, want %q", got, "first second tenth")
	}
}

func TestFullTextSkipsEmptyShapes(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideWithRuns([]string{"before"}, []string{"  "}, []string{"after"}),
	})

	deck, err := OpenBytes(data, "gaps.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "before after" {
		t.Errorf("FullText = %q, want %q", got, "before after")
	}
}

func TestExtractGroupedShapes(t *testing.T) {
	slide := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:grpSp>
        <p:sp>
          <p:nvSpPr><p:cNvPr id="2" name="Grouped"/></p:nvSpPr>
          <p:txBody><a:bodyPr/><a:p><a:r><a:t>outer</a:t></a:r></a:p></p:txBody>
        </p:sp>
        <p:grpSp>
          <p:sp>
            <p:nvSpPr><p:cNvPr id="3" name="Nested"/></p:nvSpPr>
            <p:txBody><a:bodyPr/><a:p><a:r><a:t>inner</a:t></a:r></a:p></p:txBody>
          </p:sp>
        </p:grpSp>
      </p:grpSp>
    </p:spTree>
  </p:cSld>
</p:sld>`
	data := buildDeck(t, map[string]string{"ppt/slides/slide1.xml": slide})

	deck, err := OpenBytes(data, "groups.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "outer inner" {
		t.Errorf("FullText = %q, want %q", got, "outer inner")
	}
}

func TestExtractTableCellText(t *testing.T) {
	slide := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:graphicFrame>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tr>
                <a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>Achieved:</a:t></a:r></a:p></a:txBody></a:tc>
                <a:tc><a:txBody><a:bodyPr/><a:p><a:r><a:t>8,000</a:t></a:r></a:p></a:txBody></a:tc>
              </a:tr>
            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
    </p:spTree>
  </p:cSld>
</p:sld>`
	data := buildDeck(t, map[string]string{"ppt/slides/slide1.xml": slide})

	deck, err := OpenBytes(data, "table.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "Achieved: 8,000" {
		t.Errorf("FullText = %q, want %q", got, "Achieved: 8,000")
	}
}

func TestFieldValuesIncluded(t *testing.T) {
	slide := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:sp>
        <p:nvSpPr><p:cNvPr id="2" name="Footer"/></p:nvSpPr>
        <p:txBody>
          <a:bodyPr/>
          <a:p>
            <a:r><a:t>Slide</a:t></a:r>
            <a:fld type="slidenum"><a:t>3</a:t></a:fld>
          </a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`
	data := buildDeck(t, map[string]string{"ppt/slides/slide1.xml": slide})

	deck, err := OpenBytes(data, "fields.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	got := deck.FullText()
	if got != "Slide 3" {
		t.Errorf("FullText = %q, want %q", got, "Slide 3")
	}
}

func TestMalformedSlideSkipped(t *testing.T) {
	data := buildDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slideWithRuns([]string{"good"}),
		"ppt/slides/slide2.xml": "<p:sld this is not xml",
	})

	deck, err := OpenBytes(data, "partial.pptx")
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	if deck.SlideCount() != 1 {
		t.Errorf("SlideCount = %d, want 1 (malformed slide skipped)", deck.SlideCount())
	}
	if got := deck.FullText(); got != "good" {
		t.Errorf("FullText = %q, want %q", got, "good")
	}
}
