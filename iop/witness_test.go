package iop

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

func TestPartialWitnessWriteOnce(t *testing.T) {
	w := NewPartialWitness()
	target := NewWireTarget(0, 0)

	w.Set(target, goldilocks.NewElement(5))
	require.Equal(t, 1, w.Len())

	// Rewriting the same value is a no-op.
	w.Set(target, goldilocks.NewElement(5))
	require.Equal(t, 1, w.Len())

	// A conflicting rewrite is a programming error.
	require.Panics(t, func() {
		w.Set(target, goldilocks.NewElement(6))
	})
}

func TestPartialWitnessGetMissingPanics(t *testing.T) {
	w := NewPartialWitness()
	require.Panics(t, func() { w.Get(NewVirtualTarget(3)) })

	_, ok := w.TryGet(NewVirtualTarget(3))
	require.False(t, ok)
}

func TestPartialWitnessContainsAll(t *testing.T) {
	w := NewPartialWitness()
	a := NewWireTarget(1, 2)
	b := NewPublicInputTarget(0)

	require.False(t, w.ContainsAll([]Target{a, b}))
	w.Set(a, goldilocks.NewElement(1))
	require.False(t, w.ContainsAll([]Target{a, b}))
	w.Set(b, goldilocks.NewElement(2))
	require.True(t, w.ContainsAll([]Target{a, b}))
}

func TestFullWitness(t *testing.T) {
	const degree, numWires = 2, 3
	w := NewPartialWitness()
	for row := 0; row < degree; row++ {
		for column := 0; column < numWires; column++ {
			w.SetWire(Wire{Row: row, Column: column}, goldilocks.NewElement(uint64(10*row+column)))
		}
	}
	// Non-wire targets are ignored by the grid.
	w.Set(NewVirtualTarget(0), goldilocks.NewElement(99))

	full, err := w.FullWitness(degree, numWires)
	require.NoError(t, err)
	got := full.GetWire(Wire{Row: 1, Column: 2})
	want := goldilocks.NewElement(12)
	require.True(t, got.Equal(&want))
}

func TestFullWitnessIncomplete(t *testing.T) {
	const degree, numWires = 2, 2
	w := NewPartialWitness()
	w.SetWire(Wire{Row: 0, Column: 0}, goldilocks.NewElement(1))
	w.SetWire(Wire{Row: 1, Column: 1}, goldilocks.NewElement(2))

	_, err := w.FullWitness(degree, numWires)
	require.Error(t, err)

	var incomplete *IncompleteWitnessError
	require.True(t, errors.As(err, &incomplete))
	require.ElementsMatch(t, []Wire{{Row: 0, Column: 1}, {Row: 1, Column: 0}}, incomplete.Missing)
}

func TestTargetRoutability(t *testing.T) {
	const numRouted = 4

	require.True(t, NewWireTarget(0, 0).IsRoutable(numRouted))
	require.True(t, NewWireTarget(7, numRouted-1).IsRoutable(numRouted))
	require.False(t, NewWireTarget(7, numRouted).IsRoutable(numRouted))
	require.True(t, NewPublicInputTarget(0).IsRoutable(numRouted))
	require.False(t, NewVirtualTarget(0).IsRoutable(numRouted))
}

func TestTargetFlatIndexInjective(t *testing.T) {
	const numWires, numPublicInputs, degree, numVirtual = 3, 2, 4, 2

	seen := make(map[int]Target)
	check := func(target Target) {
		idx := target.FlatIndex(numWires, numPublicInputs, degree)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, degree*numWires+numPublicInputs+numVirtual)
		prev, dup := seen[idx]
		require.False(t, dup, "index %d assigned to both %v and %v", idx, prev, target)
		seen[idx] = target
	}

	for row := 0; row < degree; row++ {
		for column := 0; column < numWires; column++ {
			check(NewWireTarget(row, column))
		}
	}
	for i := 0; i < numPublicInputs; i++ {
		check(NewPublicInputTarget(i))
	}
	for i := 0; i < numVirtual; i++ {
		check(NewVirtualTarget(i))
	}
	require.Len(t, seen, degree*numWires+numPublicInputs+numVirtual)
}
