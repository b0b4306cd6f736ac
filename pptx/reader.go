// Package pptx provides PPTX (Office Open XML Presentation) document parsing.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Open reads and parses a PPTX file from disk.
func Open(filename string) (*Deck, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return OpenBytes(data, filename)
}

// OpenBytes parses a PPTX document from an in-memory byte buffer.
// The source name is recorded on the returned Deck for identification.
func OpenBytes(data []byte, source string) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	if err := validate(zr); err != nil {
		return nil, err
	}

	slides, err := parseSlides(zr)
	if err != nil {
		return nil, err
	}

	return &Deck{Source: source, Slides: slides}, nil
}

// validate checks that required PPTX files exist.
func validate(zr *zip.Reader) error {
	required := []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range zr.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	// Check for at least one slide
	hasSlide := false
	for name := range fileMap {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			hasSlide = true
			break
		}
	}
	if !hasSlide {
		return fmt.Errorf("no slides found in presentation")
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func getFileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseSlides parses all slide files in numeric order.
func parseSlides(zr *zip.Reader) ([]*Slide, error) {
	slideFiles := make([]string, 0)
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			// Exclude relationship files
			if !strings.Contains(f.Name, "_rels") {
				slideFiles = append(slideFiles, f.Name)
			}
		}
	}

	sort.Slice(slideFiles, func(i, j int) bool {
		return extractSlideNumber(slideFiles[i]) < extractSlideNumber(slideFiles[j])
	})

	slides := make([]*Slide, 0, len(slideFiles))

	for _, slidePath := range slideFiles {
		slide, err := parseSlide(zr, slidePath, len(slides))
		if err != nil {
			continue // Skip slides that fail to parse
		}
		slides = append(slides, slide)
	}

	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides could be parsed")
	}

	return slides, nil
}

// extractSlideNumber extracts the slide number from a path like "ppt/slides/slide1.xml"
func extractSlideNumber(path string) int {
	name := strings.TrimPrefix(path, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// parseSlide parses a single slide file.
func parseSlide(zr *zip.Reader, slidePath string, index int) (*Slide, error) {
	data, err := getFileContent(zr, slidePath)
	if err != nil {
		return nil, err
	}

	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, err
	}

	slide := &Slide{
		Index:  index,
		Shapes: make([]Shape, 0),
	}

	extractShapes(&sx.CSld.SpTree, slide)

	return slide, nil
}

// extractShapes collects text-bearing shapes from the shape tree.
func extractShapes(spTree *spTreeXML, slide *Slide) {
	// Regular shapes
	for i := range spTree.Sp {
		if shape, ok := extractShape(&spTree.Sp[i]); ok {
			slide.Shapes = append(slide.Shapes, shape)
		}
	}

	// Graphic frames: each table cell's text body becomes its own shape
	// so cell contents participate in text assembly like any other frame.
	for i := range spTree.GraphicFrame {
		tbl := spTree.GraphicFrame[i].Graphic.GraphicData.Tbl
		if tbl == nil {
			continue
		}
		for _, tr := range tbl.Tr {
			for _, tc := range tr.Tc {
				if tc.TxBody == nil {
					continue
				}
				shape := Shape{Paragraphs: extractParagraphs(tc.TxBody)}
				if len(shape.Paragraphs) > 0 {
					slide.Shapes = append(slide.Shapes, shape)
				}
			}
		}
	}

	// Grouped shapes (recursive)
	for i := range spTree.GrpSp {
		extractGroupedShapes(&spTree.GrpSp[i], slide)
	}
}

// extractGroupedShapes collects shapes from a group.
func extractGroupedShapes(grpSp *grpSpXML, slide *Slide) {
	for i := range grpSp.Sp {
		if shape, ok := extractShape(&grpSp.Sp[i]); ok {
			slide.Shapes = append(slide.Shapes, shape)
		}
	}

	// Recursively process nested groups
	for i := range grpSp.GrpSp {
		extractGroupedShapes(&grpSp.GrpSp[i], slide)
	}
}

// extractShape converts a shape element into a Shape. Shapes without a
// text frame, or with no runs at all, report ok=false.
func extractShape(sp *spXML) (Shape, bool) {
	if sp.TxBody == nil || len(sp.TxBody.P) == 0 {
		return Shape{}, false
	}

	shape := Shape{
		Name:       sp.NvSpPr.CNvPr.Name,
		Paragraphs: extractParagraphs(sp.TxBody),
	}
	if len(shape.Paragraphs) == 0 {
		return Shape{}, false
	}
	return shape, true
}

// extractParagraphs converts a text body into paragraphs of runs.
// Field values (slide numbers, dates) are carried as ordinary runs.
func extractParagraphs(body *txBodyXML) []Paragraph {
	paras := make([]Paragraph, 0, len(body.P))
	for _, p := range body.P {
		para := Paragraph{Runs: make([]Run, 0, len(p.R))}
		for _, run := range p.R {
			para.Runs = append(para.Runs, Run{Text: run.T})
		}
		for _, fld := range p.Fld {
			para.Runs = append(para.Runs, Run{Text: fld.T})
		}
		if len(para.Runs) > 0 {
			paras = append(paras, para)
		}
	}
	return paras
}
