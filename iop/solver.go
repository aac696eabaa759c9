package iop

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/plonkworks/plonky2go/logger"
)

// GenerateWitness drains the generators into the witness with a breadth-first
// wavefront over the dependency graph. targetIndex must be injective over every
// target a generator watches or writes, with values below numIndices.
//
// Every generator is attempted at least once. A generator that reports finished
// is retired and never attempted again; an unfinished one is re-queued whenever
// one of its watched targets is written. The loop terminates when a full round
// produces no new writes. Generators whose dependencies never became jointly
// present are reported as a typed error rather than leaving the witness
// silently incomplete.
func GenerateWitness(w *PartialWitness, generators []WitnessGenerator, targetIndex func(Target) int, numIndices int) error {
	// Index generator indices by their watched targets.
	watchers := make([][]int, numIndices)
	for i, g := range generators {
		for _, t := range g.WatchList() {
			idx := targetIndex(t)
			watchers[idx] = append(watchers[idx], i)
		}
	}

	// All generators are queued for the first round: some have empty watch
	// lists, and the caller may have pre-populated watched targets.
	pending := make([]int, len(generators))
	for i := range pending {
		pending[i] = i
	}

	retired := bitset.New(uint(len(generators)))
	var buffer GeneratedValues

	for len(pending) > 0 {
		var next []int

		for _, gi := range pending {
			if retired.Test(uint(gi)) {
				// Queued more than once this round; unsatisfied attempts are
				// no-ops so duplicates are harmless, but finished generators
				// must not fire twice.
				continue
			}

			if generators[gi].Run(w, &buffer) {
				retired.Set(uint(gi))
			}

			// Re-queue unfinished generators watching a newly written target.
			for _, tv := range buffer.Pairs {
				for _, watcher := range watchers[targetIndex(tv.Target)] {
					if !retired.Test(uint(watcher)) {
						next = append(next, watcher)
					}
				}
			}

			for _, tv := range buffer.Pairs {
				w.Set(tv.Target, tv.Value)
			}
			buffer.Reset()
		}

		pending = next
	}

	if retired.Count() != uint(len(generators)) {
		var unsatisfied []int
		for i := range generators {
			if !retired.Test(uint(i)) {
				unsatisfied = append(unsatisfied, i)
			}
		}
		log := logger.Logger()
		log.Error().Ints("generators", unsatisfied).Msg("witness generation reached a fixpoint with unsatisfied generators")
		return &UnsatisfiedGeneratorsError{Indices: unsatisfied}
	}

	return nil
}
