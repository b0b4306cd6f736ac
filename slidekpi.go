// Package slidekpi provides a fluent API for extracting key performance
// indicators from presentation decks.
//
// Basic usage:
//
//	row, warnings, err := slidekpi.Open("review.pptx").Row()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidekpi.FormatWarnings(warnings))
//	}
//
// For batches of decks and archives, the lower-level batch package is
// available.
package slidekpi

import (
	"fmt"
	"os"
	"strings"

	"github.com/chalamkotahemanth/slidekpi/kpi"
	"github.com/chalamkotahemanth/slidekpi/pptx"
)

// Warning represents a non-fatal issue encountered during extraction.
type Warning struct {
	Code    string
	Message string
}

// FormatWarnings renders warnings as one semicolon-separated string.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.Message)
	}
	return strings.Join(msgs, "; ")
}

// Extractor provides a fluent interface for extracting KPIs from a
// single deck. Errors are accumulated and surfaced by the terminal
// operations Text and Row.
type Extractor struct {
	filename string
	data     []byte
	name     string

	deck   *pptx.Deck
	opened bool

	err      error
	warnings []Warning
}

// Open prepares an Extractor for a PPTX file on disk. The file is read
// lazily by the first terminal operation.
//
// Example:
//
//	row, warnings, err := slidekpi.Open("review.pptx").Row()
func Open(filename string) *Extractor {
	return &Extractor{filename: filename}
}

// FromBytes prepares an Extractor for an in-memory deck with the given
// display name.
func FromBytes(data []byte, name string) *Extractor {
	return &Extractor{data: data, name: name}
}

// ensureDeck parses the deck if it has not been parsed yet.
func (e *Extractor) ensureDeck() error {
	if e.err != nil {
		return e.err
	}
	if e.opened {
		return nil
	}

	if e.data == nil {
		if e.filename == "" {
			e.err = fmt.Errorf("no input specified")
			return e.err
		}
		data, err := os.ReadFile(e.filename)
		if err != nil {
			e.err = fmt.Errorf("reading %s: %w", e.filename, err)
			return e.err
		}
		e.data = data
		e.name = e.filename
	}

	deck, err := pptx.OpenBytes(e.data, e.name)
	if err != nil {
		e.err = fmt.Errorf("opening deck: %w", err)
		return e.err
	}

	e.deck = deck
	e.opened = true
	return nil
}

// Text returns the deck's assembled full text. Warnings indicate
// non-fatal issues such as a deck with no text content.
func (e *Extractor) Text() (string, []Warning, error) {
	if err := e.ensureDeck(); err != nil {
		return "", e.warnings, err
	}

	text := e.deck.FullText()
	if text == "" {
		e.warn("empty-text", fmt.Sprintf("%s contains no text content", e.name))
	}
	return text, e.warnings, nil
}

// Row extracts and reconciles the deck's KPI row.
func (e *Extractor) Row() (kpi.Row, []Warning, error) {
	text, warnings, err := e.Text()
	if err != nil {
		return kpi.Row{}, warnings, err
	}

	row := kpi.FromText(e.name, text)
	row.Reconcile()

	if !anyFieldPresent(&row) {
		e.warn("no-kpis", fmt.Sprintf("no KPI phrasings matched in %s", e.name))
	}
	return row, e.warnings, nil
}

func anyFieldPresent(r *kpi.Row) bool {
	for _, v := range []kpi.Value{
		r.AchievementRate, r.RevenueTarget, r.Achieved, r.RevenueReached,
		r.TargetOf, r.RevenuePercent, r.QualityScore,
	} {
		if v.Valid {
			return true
		}
	}
	return false
}

func (e *Extractor) warn(code, message string) {
	e.warnings = append(e.warnings, Warning{Code: code, Message: message})
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRow wraps a terminal operation returning (T, []Warning, error),
// panicking on error and discarding warnings.
//
// Example:
//
//	row := slidekpi.MustRow(slidekpi.Open("review.pptx").Row())
func MustRow[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
