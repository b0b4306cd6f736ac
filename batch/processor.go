// Package batch processes collections of presentation decks into a KPI
// table. Each document runs inside its own failure boundary: a corrupt
// deck is recorded and skipped while the rest of the batch continues.
package batch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/chalamkotahemanth/slidekpi/kpi"
	"github.com/chalamkotahemanth/slidekpi/pptx"
)

// Input is one named byte buffer: either a standalone deck or an
// archive of decks, depending on which argument of Run it is passed to.
type Input struct {
	Name string
	Data []byte
}

// Failure records one excluded input. Failures are advisory; they never
// abort the batch.
type Failure struct {
	Name string
	Err  error
}

// Result holds the assembled table and the per-input failures.
type Result struct {
	Table    *kpi.Table
	Failures []Failure
}

// Processor turns deck and archive inputs into a reconciled KPI table.
type Processor struct {
	log        *zap.Logger
	deckExt    string
	onProgress func(source string)
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger attaches a structured logger for per-document diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithDeckExtension overrides the file extension used to select deck
// entries inside archives. Matching is case-insensitive.
func WithDeckExtension(ext string) Option {
	return func(p *Processor) { p.deckExt = strings.ToLower(ext) }
}

// WithProgress registers a callback invoked after each document attempt
// (success, failure, or duplicate skip).
func WithProgress(fn func(source string)) Option {
	return func(p *Processor) { p.onProgress = fn }
}

// New returns a Processor with default settings: no logging, ".pptx"
// archive entry filter.
func New(opts ...Option) *Processor {
	p := &Processor{
		log:     zap.NewNop(),
		deckExt: ".pptx",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessDeck parses one deck and extracts its KPI row. The row is not
// reconciled; Run handles the table-wide pass.
func (p *Processor) ProcessDeck(data []byte, name string) (kpi.Row, error) {
	deck, err := pptx.OpenBytes(data, name)
	if err != nil {
		return kpi.Row{}, fmt.Errorf("parsing %s: %w", name, err)
	}
	return kpi.FromText(name, deck.FullText()), nil
}

// Run processes standalone decks first (in order), then every deck
// entry of every archive (in archive-listing order). A source name
// already present in the table causes later occurrences to be skipped.
// Docs that fail to parse are recorded as Failures; an unreadable
// archive yields a single Failure covering all its entries. After all
// inputs are assembled the table-wide reconciliation pass runs once.
func (p *Processor) Run(decks, archives []Input) *Result {
	res := &Result{Table: &kpi.Table{}}
	seen := make(map[string]bool)

	for _, d := range decks {
		p.processOne(res, seen, d.Name, d.Data)
	}

	for _, a := range archives {
		zr, err := zip.NewReader(bytes.NewReader(a.Data), int64(len(a.Data)))
		if err != nil {
			p.log.Warn("unreadable archive", zap.String("archive", a.Name), zap.Error(err))
			res.Failures = append(res.Failures, Failure{
				Name: a.Name,
				Err:  fmt.Errorf("reading archive %s: %w", a.Name, err),
			})
			continue
		}
		for _, f := range zr.File {
			if !strings.HasSuffix(strings.ToLower(f.Name), p.deckExt) {
				continue
			}
			data, err := readEntry(f)
			if err != nil {
				res.Failures = append(res.Failures, Failure{
					Name: f.Name,
					Err:  fmt.Errorf("reading %s from %s: %w", f.Name, a.Name, err),
				})
				continue
			}
			p.processOne(res, seen, f.Name, data)
		}
	}

	res.Table.Reconcile()
	return res
}

// processOne is the per-document failure boundary. Names are marked
// seen only on success, so the first successfully processed occurrence
// of a name wins.
func (p *Processor) processOne(res *Result, seen map[string]bool, name string, data []byte) {
	if p.onProgress != nil {
		defer p.onProgress(name)
	}
	if seen[name] {
		p.log.Debug("skipping duplicate source", zap.String("source", name))
		return
	}

	row, err := p.ProcessDeck(data, name)
	if err != nil {
		p.log.Warn("document excluded", zap.String("source", name), zap.Error(err))
		res.Failures = append(res.Failures, Failure{Name: name, Err: err})
		return
	}

	seen[name] = true
	res.Table.Rows = append(res.Table.Rows, row)
	p.log.Debug("document processed", zap.String("source", name))
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
