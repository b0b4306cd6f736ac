package pptx

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Deck represents a parsed presentation.
type Deck struct {
	Source string   // Display name of the originating file
	Slides []*Slide // Slides in presentation order
}

// Slide represents a parsed slide.
type Slide struct {
	Index  int     // 0-indexed slide number
	Shapes []Shape // Shapes in document order
}

// Shape represents a shape on a slide that carries a text frame.
// Shapes without a text frame are not retained.
type Shape struct {
	Name       string // Shape name from the non-visual properties
	Paragraphs []Paragraph
}

// Paragraph represents a paragraph within a shape's text frame.
type Paragraph struct {
	Runs []Run
}

// Run represents a contiguous span of text with uniform formatting.
// Authoring tools frequently split a value across runs, e.g. a currency
// symbol in one run and its digits in the next.
type Run struct {
	Text string
}

// Text assembles the shape's text by trimming each run, dropping runs
// that become empty, and joining the rest with single spaces across all
// paragraphs in document order. The result is NFC-normalized so that
// downstream matching sees composed code points.
func (s *Shape) Text() string {
	var parts []string
	for _, para := range s.Paragraphs {
		for _, run := range para.Runs {
			t := strings.TrimSpace(run.Text)
			if t != "" {
				parts = append(parts, t)
			}
		}
	}
	return norm.NFC.String(strings.Join(parts, " "))
}

// Text returns the slide's text: every shape's assembled text in shape
// order, joined with single spaces, skipping shapes that yield nothing.
func (s *Slide) Text() string {
	var parts []string
	for i := range s.Shapes {
		if t := s.Shapes[i].Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// FullText returns the whole deck as one blob: slide order, then shape
// order, single-space separated, with empty shapes skipped so no
// double-space artifacts appear.
func (d *Deck) FullText() string {
	var parts []string
	for _, slide := range d.Slides {
		if t := slide.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}
