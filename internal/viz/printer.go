package viz

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/ecosim/internal/census"
	"github.com/san-kum/ecosim/internal/sim"
)

type Format int

const (
	FormatText Format = iota
	FormatCSV
)

// Printer is a sim.Observer that writes one census row per step. The
// first write error is kept and later rows are dropped.
type Printer struct {
	w             io.Writer
	format        Format
	headerWritten bool
	err           error
}

func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

func (p *Printer) OnStep(step int, v sim.View) {
	if p.err != nil {
		return
	}
	p.err = p.Write(census.Count(v))
}

// Write emits c directly.
func (p *Printer) Write(c census.Census) error {
	if p.format == FormatText {
		_, err := fmt.Fprintln(p.w, c)
		return err
	}

	records := []census.Census{c}
	if !p.headerWritten {
		if err := gocsv.Marshal(records, p.w); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		p.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, p.w); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

func (p *Printer) Err() error { return p.err }
