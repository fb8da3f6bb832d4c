package analysis

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

// Ensemble generates traces of one operation over many random arrays. Run i
// uses seed seedStart+i, so results are reproducible.
type Ensemble struct {
	op        steps.Operation
	size      int
	numRuns   int
	seedStart int64
}

func NewEnsemble(op steps.Operation, size, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{op: op, size: size, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]Stats, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("analysis: ensemble needs at least one run, got %d", e.numRuns)
	}
	if err := array.CheckSize(e.size); err != nil {
		return nil, err
	}

	results := make([]Stats, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = e.runOne(e.seedStart + int64(idx))
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// runOne searches for a value drawn from the array itself, and inserts or
// updates at a random index.
func (e *Ensemble) runOne(seed int64) (Stats, error) {
	rng := rand.New(rand.NewSource(seed))
	a, err := array.NewStore(rng).Create(e.size)
	if err != nil {
		return Stats{}, err
	}
	if e.op == steps.OpBinarySearch {
		a = a.Sorted()
	}
	p := steps.Params{Value: a[rng.Intn(len(a))], Index: rng.Intn(len(a))}

	seq, err := steps.Generate(e.op, a, p)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(seq), nil
}

// Summary aggregates ensemble results.
type Summary struct {
	Runs            int
	MeanSteps       float64
	MeanComparisons float64
	MeanSwaps       float64
	MeanShifts      float64
	MaxSteps        int
	MinSteps        int
}

func Aggregate(stats []Stats) Summary {
	if len(stats) == 0 {
		return Summary{}
	}
	s := Summary{Runs: len(stats), MinSteps: stats[0].Steps}
	for _, st := range stats {
		s.MeanSteps += float64(st.Steps)
		s.MeanComparisons += float64(st.Comparisons)
		s.MeanSwaps += float64(st.Swaps)
		s.MeanShifts += float64(st.Shifts)
		s.MaxSteps = max(s.MaxSteps, st.Steps)
		s.MinSteps = min(s.MinSteps, st.Steps)
	}
	n := float64(len(stats))
	s.MeanSteps /= n
	s.MeanComparisons /= n
	s.MeanSwaps /= n
	s.MeanShifts /= n
	return s
}
