package census

import (
	"github.com/san-kum/ecosim/internal/organism"
	"github.com/san-kum/ecosim/internal/sim"
)

// Peak tracks the largest head count a species reached during a run.
type Peak struct {
	name string
	kind organism.Kind
	peak int
}

func NewPeak(k organism.Kind) *Peak {
	return &Peak{name: "peak_" + k.String(), kind: k}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(v sim.View) {
	if n := v.Count(p.kind); n > p.peak {
		p.peak = n
	}
}

func (p *Peak) Value() float64 { return float64(p.peak) }

func (p *Peak) Reset() { p.peak = 0 }

// Deaths sums deaths of one cause over a run.
type Deaths struct {
	name  string
	cause organism.Cause
	total int
}

func NewDeaths(c organism.Cause) *Deaths {
	return &Deaths{name: "deaths_" + c.String(), cause: c}
}

func (d *Deaths) Name() string { return d.name }

func (d *Deaths) Observe(v sim.View) {
	d.total += v.Tally().Deaths[d.cause]
}

func (d *Deaths) Value() float64 { return float64(d.total) }

func (d *Deaths) Reset() { d.total = 0 }

// DefaultMetrics is the metric set recorded with every stored run.
func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		NewPeak(organism.Fox),
		NewPeak(organism.Rabbit),
		NewDeaths(organism.Eaten),
		NewDeaths(organism.Starvation),
		NewDeaths(organism.Overcrowding),
	}
}
