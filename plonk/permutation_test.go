package plonk

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// chainForest builds a forest over a single-column wire grid, so flat indices
// coincide with rows.
func chainForest(degree int) *Forest {
	f := NewForest(1, 1, 0, degree, 0)
	for row := 0; row < degree; row++ {
		f.Add(iop.NewWireTarget(row, 0))
	}
	return f
}

func TestForestAddOutOfOrderPanics(t *testing.T) {
	f := NewForest(1, 1, 0, 4, 0)
	f.Add(iop.NewWireTarget(0, 0))
	require.Panics(t, func() { f.Add(iop.NewWireTarget(2, 0)) })
}

func TestForestUnionFindModel(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	const n = 16
	properties.Property("find agrees with a naive labeling model", prop.ForAll(
		func(xs, ys []int) bool {
			f := chainForest(n)

			// Naive model: every element carries a class label, merging
			// rewrites labels wholesale.
			labels := make([]int, n)
			for i := range labels {
				labels[i] = i
			}

			for i := range xs {
				f.Merge(iop.NewWireTarget(xs[i], 0), iop.NewWireTarget(ys[i], 0))
				from, to := labels[xs[i]], labels[ys[i]]
				for j := range labels {
					if labels[j] == from {
						labels[j] = to
					}
				}
			}

			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if (labels[i] == labels[j]) != (f.Find(i) == f.Find(j)) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(12, gen.IntRange(0, n-1)),
		gen.SliceOfN(12, gen.IntRange(0, n-1)),
	))

	properties.Property("compressed parents are roots", prop.ForAll(
		func(xs, ys []int) bool {
			f := chainForest(n)
			for i := range xs {
				f.Merge(iop.NewWireTarget(xs[i], 0), iop.NewWireTarget(ys[i], 0))
			}
			f.CompressPaths()
			parents := f.Parents()
			for _, p := range parents {
				if parents[p] != p {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(12, gen.IntRange(0, n-1)),
		gen.SliceOfN(12, gen.IntRange(0, n-1)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestForestMergeIdempotent(t *testing.T) {
	f := chainForest(4)
	f.Merge(iop.NewWireTarget(0, 0), iop.NewWireTarget(1, 0))
	f.Merge(iop.NewWireTarget(0, 0), iop.NewWireTarget(1, 0))
	f.Merge(iop.NewWireTarget(1, 0), iop.NewWireTarget(0, 0))
	require.Equal(t, f.Find(0), f.Find(1))
	require.NotEqual(t, f.Find(0), f.Find(2))
}

func TestWirePartitionDropsNonWires(t *testing.T) {
	const numWires, numRouted, numPI, degree = 2, 2, 1, 2
	f := NewForest(numWires, numRouted, numPI, degree, 1)
	for row := 0; row < degree; row++ {
		for column := 0; column < numWires; column++ {
			f.Add(iop.NewWireTarget(row, column))
		}
	}
	f.Add(iop.NewPublicInputTarget(0))
	f.Add(iop.NewVirtualTarget(0))

	// Merge a public input and a virtual target into wire classes: neither
	// may surface in the wire partition.
	f.Merge(iop.NewWireTarget(0, 0), iop.NewPublicInputTarget(0))
	f.Merge(iop.NewWireTarget(1, 1), iop.NewVirtualTarget(0))
	f.Merge(iop.NewWireTarget(0, 0), iop.NewWireTarget(0, 1))
	f.CompressPaths()

	partitions := f.WirePartition().Partitions()

	total := 0
	for _, class := range partitions {
		total += len(class)
	}
	require.Equal(t, degree*numRouted, total, "every routed wire appears exactly once")

	// (0,0) and (0,1) share a class; (1,0) and (1,1) are singletons.
	require.Len(t, partitions, 3)
	require.ElementsMatch(t, []iop.Wire{{Row: 0, Column: 0}, {Row: 0, Column: 1}}, partitions[0])
}

func TestSigmaPolysCyclicOrbit(t *testing.T) {
	const numRouted, degreeBits = 2, 2
	const degree = 1 << degreeBits

	f := NewForest(numRouted, numRouted, 0, degree, 0)
	for row := 0; row < degree; row++ {
		for column := 0; column < numRouted; column++ {
			f.Add(iop.NewWireTarget(row, column))
		}
	}
	// One class of size three plus singletons.
	class := []iop.Wire{{Row: 0, Column: 0}, {Row: 1, Column: 1}, {Row: 2, Column: 0}}
	f.Merge(iop.FromWire(class[0]), iop.FromWire(class[1]))
	f.Merge(iop.FromWire(class[1]), iop.FromWire(class[2]))
	f.CompressPaths()

	shifts := field.CosetShifts(numRouted)
	subgroup := field.TwoAdicSubgroup(degreeBits)
	sigma := f.WirePartition().SigmaPolys(degreeBits, shifts, subgroup)
	require.Len(t, sigma, numRouted)

	key := func(w iop.Wire) goldilocks.Element {
		var k goldilocks.Element
		k.Mul(&shifts[w.Column], &subgroup[w.Row])
		return k
	}
	lookup := func(w iop.Wire) goldilocks.Element {
		return sigma[w.Column][w.Row]
	}

	// Singleton wires are fixed points.
	for row := 0; row < degree; row++ {
		for column := 0; column < numRouted; column++ {
			w := iop.Wire{Row: row, Column: column}
			inClass := false
			for _, c := range class {
				if c == w {
					inClass = true
				}
			}
			if inClass {
				continue
			}
			want := key(w)
			got := lookup(w)
			require.True(t, got.Equal(&want), "wire %v must map to itself", w)
		}
	}

	// The merged class forms a single cycle: starting from any member and
	// following sigma keys visits every member exactly once before returning.
	keyToWire := make(map[goldilocks.Element]iop.Wire)
	for _, w := range class {
		keyToWire[key(w)] = w
	}
	current := class[0]
	visited := map[iop.Wire]bool{}
	for i := 0; i < len(class); i++ {
		require.False(t, visited[current])
		visited[current] = true
		next, ok := keyToWire[lookup(current)]
		require.True(t, ok, "sigma must stay inside the class")
		current = next
	}
	require.Equal(t, class[0], current, "orbit must close after one pass over the class")
}
