package sim

import (
	"context"
	"errors"
	"testing"
)

func TestEnsembleSeedsAndDeterminism(t *testing.T) {
	run := func() []Outcome {
		e := NewEnsemble(15, 15, 6, 100, WithLogger(quiet)).WithWorkers(3)
		out, err := e.Run(context.Background(), 20)
		if err != nil {
			t.Fatalf("ensemble failed: %v", err)
		}
		return out
	}

	first, second := run(), run()
	if len(first) != 6 {
		t.Fatalf("expected 6 outcomes, got %d", len(first))
	}
	for i := range first {
		if first[i].Seed != int64(100+i) {
			t.Errorf("outcome %d: expected seed %d, got %d", i, 100+i, first[i].Seed)
		}
		if first[i].Steps != 20 {
			t.Errorf("outcome %d: expected 20 steps, got %d", i, first[i].Steps)
		}
		if first[i].Foxes != second[i].Foxes || first[i].Rabbits != second[i].Rabbits {
			t.Errorf("outcome %d differs between identical ensembles", i)
		}
	}
}

func TestEnsembleFreshMetricsPerMember(t *testing.T) {
	var made []*countMetric
	e := NewEnsemble(10, 10, 4, 1, WithLogger(quiet)).WithMetrics(func() []Metric {
		m := &countMetric{}
		made = append(made, m)
		return []Metric{m}
	})
	// One worker so the factory is never called concurrently.
	e.WithWorkers(1)

	out, err := e.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(made) != 4 {
		t.Fatalf("expected 4 metric sets, got %d", len(made))
	}
	for i, o := range out {
		if o.Metrics["count"] != 6 {
			t.Errorf("outcome %d: expected 6 observations, got %v", i, o.Metrics["count"])
		}
	}
}

func TestEnsembleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEnsemble(10, 10, 3, 1, WithLogger(quiet)).Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
