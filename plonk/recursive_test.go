package plonk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/gates"
	"github.com/plonkworks/plonky2go/iop"
)

func randomExtRow(t *testing.T, n int) []field.QuadraticExt {
	t.Helper()
	row := make([]field.QuadraticExt, n)
	for i := range row {
		_, err := row[i].SetRandom()
		require.NoError(t, err)
	}
	return row
}

func constantExtRow(b *CircuitBuilder, row []field.QuadraticExt) []iop.ExtTarget {
	targets := make([]iop.ExtTarget, len(row))
	for i, v := range row {
		targets[i] = b.ConstantExtension(v)
	}
	return targets
}

// recursiveCoherence checks that a gate's in-circuit gadget computes the same
// constraint values as its native extension evaluation: the gadget is built in
// a host circuit over constant inputs, the host witness is solved, and the
// gadget outputs are compared against the native results.
func recursiveCoherence(t *testing.T, g gates.Gate) {
	t.Helper()

	constants := randomExtRow(t, g.NumConstants())
	wires := randomExtRow(t, g.NumWires())
	native := g.EvalUnfiltered(gates.EvaluationVars{
		LocalConstants: constants,
		LocalWires:     wires,
	})
	require.Len(t, native, g.NumConstraints())

	b, err := NewBuilder(testConfig())
	require.NoError(t, err)

	outputs := g.EvalUnfilteredRecursive(b, gates.EvaluationTargets{
		LocalConstants: constantExtRow(b, constants),
		LocalWires:     constantExtRow(b, wires),
	})
	require.Len(t, outputs, g.NumConstraints())

	data, err := b.Build()
	require.NoError(t, err)

	inputs := iop.NewPartialWitness()
	_, err = data.GenerateWitness(inputs)
	require.NoError(t, err)

	for i, et := range outputs {
		got := inputs.GetExt(et)
		require.True(t, got.Equal(&native[i]),
			"constraint %d of %s: gadget produced %s, native %s", i, g.ID(), got.String(), native[i].String())
	}
}

func TestConstantGateRecursiveCoherence(t *testing.T) {
	recursiveCoherence(t, gates.ConstantGate{})
}

func TestArithmeticGateRecursiveCoherence(t *testing.T) {
	recursiveCoherence(t, gates.ArithmeticGate{NumOps: 2})
}

func TestArithmeticExtensionGateRecursiveCoherence(t *testing.T) {
	recursiveCoherence(t, gates.ArithmeticExtensionGate{NumOps: 2})
}

// Gadget ops share gate rows: a run of same-shape ops must not cost a row each.
func TestExtensionOpPacking(t *testing.T) {
	b, err := NewBuilder(testConfig())
	require.NoError(t, err)

	x := b.ConstantExtension(field.NewQuadraticExt(3, 4))
	y := b.ConstantExtension(field.NewQuadraticExt(5, 6))

	opsPerGate := gates.NewArithmeticExtensionGate(b.Config().NumRoutedWires).NumOps
	before := b.NumGates()
	for i := 0; i < opsPerGate; i++ {
		b.MulAddExtension(x, y, x)
	}
	added := b.NumGates() - before
	require.Equal(t, 1, added, "%d same-shape ops must fit one gate", opsPerGate)
}

func TestExtensionOpsComputeFieldValues(t *testing.T) {
	b, err := NewBuilder(testConfig())
	require.NoError(t, err)

	xv := field.NewQuadraticExt(3, 4)
	yv := field.NewQuadraticExt(5, 6)
	x := b.ConstantExtension(xv)
	y := b.ConstantExtension(yv)

	sum := b.AddExtension(x, y)
	diff := b.SubExtension(x, y)
	prod := b.MulExtension(x, y)

	data, err := b.Build()
	require.NoError(t, err)

	inputs := iop.NewPartialWitness()
	_, err = data.GenerateWitness(inputs)
	require.NoError(t, err)

	var want field.QuadraticExt
	want.Add(&xv, &yv)
	got := inputs.GetExt(sum)
	require.True(t, got.Equal(&want))

	want.Sub(&xv, &yv)
	got = inputs.GetExt(diff)
	require.True(t, got.Equal(&want))

	want.Mul(&xv, &yv)
	got = inputs.GetExt(prod)
	require.True(t, got.Equal(&want))
}
