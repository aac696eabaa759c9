package iop

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

// virtualIndex addresses the virtual-only target space used by these tests.
func virtualIndex(t Target) int {
	if t.Kind != TargetVirtual {
		panic("test uses virtual targets only")
	}
	return t.Index
}

func TestGenerateWitnessCopyChain(t *testing.T) {
	v := func(i int) Target { return NewVirtualTarget(i) }

	// Deliberately out of dependency order: the wavefront has to discover the
	// chain rather than rely on registration order.
	generators := []WitnessGenerator{
		Adapt(CopyGenerator{Src: v(2), Dst: v(3)}),
		Adapt(CopyGenerator{Src: v(1), Dst: v(2)}),
		Adapt(CopyGenerator{Src: v(0), Dst: v(1)}),
	}

	w := NewPartialWitness()
	seed := goldilocks.NewElement(7)
	w.Set(v(0), seed)

	require.NoError(t, GenerateWitness(w, generators, virtualIndex, 4))
	for i := 0; i < 4; i++ {
		got := w.Get(v(i))
		require.True(t, got.Equal(&seed), "target %d", i)
	}
}

// countingGenerator records how many times it actually fires.
type countingGenerator struct {
	deps  []Target
	dst   Target
	fired *int
}

func (g countingGenerator) Dependencies() []Target { return g.deps }

func (g countingGenerator) RunOnce(w *PartialWitness, out *GeneratedValues) {
	*g.fired++
	var sum goldilocks.Element
	for _, d := range g.deps {
		v := w.Get(d)
		sum.Add(&sum, &v)
	}
	out.Set(g.dst, sum)
}

func TestGenerateWitnessSingleFire(t *testing.T) {
	v := func(i int) Target { return NewVirtualTarget(i) }

	fired := 0
	generators := []WitnessGenerator{
		Adapt(countingGenerator{deps: []Target{v(0), v(1)}, dst: v(2), fired: &fired}),
		Adapt(CopyGenerator{Src: v(0), Dst: v(1)}),
	}

	w := NewPartialWitness()
	w.Set(v(0), goldilocks.NewElement(3))

	require.NoError(t, GenerateWitness(w, generators, virtualIndex, 3))
	require.Equal(t, 1, fired, "a finished generator must never run twice")

	got := w.Get(v(2))
	want := goldilocks.NewElement(6)
	require.True(t, got.Equal(&want))
}

func TestGenerateWitnessUnsatisfied(t *testing.T) {
	v := func(i int) Target { return NewVirtualTarget(i) }

	generators := []WitnessGenerator{
		Adapt(CopyGenerator{Src: v(0), Dst: v(1)}),
		// v(2) is never assigned by anything, so this generator can never fire.
		Adapt(CopyGenerator{Src: v(2), Dst: v(3)}),
	}

	w := NewPartialWitness()
	w.Set(v(0), goldilocks.NewElement(1))

	err := GenerateWitness(w, generators, virtualIndex, 4)
	require.Error(t, err)

	var unsatisfied *UnsatisfiedGeneratorsError
	require.True(t, errors.As(err, &unsatisfied))
	require.Equal(t, []int{1}, unsatisfied.Indices)

	// The satisfiable part of the graph was still solved.
	require.True(t, w.Contains(v(1)))
	require.False(t, w.Contains(v(3)))
}

func TestGenerateWitnessEmpty(t *testing.T) {
	w := NewPartialWitness()
	require.NoError(t, GenerateWitness(w, nil, virtualIndex, 0))
	require.Equal(t, 0, w.Len())
}

func TestNonzeroTestGenerator(t *testing.T) {
	v := func(i int) Target { return NewVirtualTarget(i) }

	generators := []WitnessGenerator{
		Adapt(NonzeroTestGenerator{ToTest: v(0), Dummy: v(1)}),
		Adapt(NonzeroTestGenerator{ToTest: v(2), Dummy: v(3)}),
	}

	w := NewPartialWitness()
	w.Set(v(0), goldilocks.NewElement(4))
	w.Set(v(2), goldilocks.Element{})

	require.NoError(t, GenerateWitness(w, generators, virtualIndex, 4))

	four := goldilocks.NewElement(4)
	var inv goldilocks.Element
	inv.Inverse(&four)
	got := w.Get(v(1))
	require.True(t, got.Equal(&inv))

	got = w.Get(v(3))
	require.True(t, got.IsOne(), "zero input falls back to a dummy value of one")
}
