package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

func TestEnsemble_Reproducible(t *testing.T) {
	a, err := NewEnsemble(steps.OpBubbleSort, 8, 16, 42).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEnsemble(steps.OpBubbleSort, 8, 16, 42).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 16 {
		t.Fatalf("got %d results, want 16", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestEnsemble_SearchAlwaysFinds(t *testing.T) {
	for _, op := range []steps.Operation{steps.OpLinearSearch, steps.OpBinarySearch} {
		stats, err := NewEnsemble(op, 10, 20, 1).Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range stats {
			if s.Found < 0 {
				t.Errorf("%s run %d: value drawn from the array was not found", op, i)
			}
		}
	}
}

func TestEnsemble_Errors(t *testing.T) {
	if _, err := NewEnsemble(steps.OpBubbleSort, 5, 0, 1).Run(context.Background()); err == nil {
		t.Error("expected error for zero runs")
	}
	if _, err := NewEnsemble(steps.OpBubbleSort, 0, 3, 1).Run(context.Background()); !errors.Is(err, array.ErrInvalidArraySize) {
		t.Errorf("got %v, want ErrInvalidArraySize", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEnsemble(steps.OpBubbleSort, 5, 3, 1).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestAggregate(t *testing.T) {
	s := Aggregate([]Stats{
		{Steps: 4, Comparisons: 2, Swaps: 1},
		{Steps: 8, Comparisons: 6, Swaps: 3, Shifts: 2},
	})
	if s.Runs != 2 || s.MeanSteps != 6 || s.MeanComparisons != 4 || s.MeanSwaps != 2 || s.MeanShifts != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.MinSteps != 4 || s.MaxSteps != 8 {
		t.Errorf("min/max = %d/%d, want 4/8", s.MinSteps, s.MaxSteps)
	}
	if (Aggregate(nil) != Summary{}) {
		t.Error("empty aggregate should be zero")
	}
}
