package gates

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/stretchr/testify/require"
)

// Test helpers shared by all gate implementations. Any new gate kind should
// pass CheckModeCoherence, CheckBatchCoherence and CheckLowDegree.

// randomBaseVars draws a random base-field row for the gate.
func randomBaseVars(t *testing.T, g Gate) EvaluationVarsBase {
	t.Helper()
	constants := make([]goldilocks.Element, g.NumConstants())
	wires := make([]goldilocks.Element, g.NumWires())
	for i := range constants {
		_, err := constants[i].SetRandom()
		require.NoError(t, err)
	}
	for i := range wires {
		_, err := wires[i].SetRandom()
		require.NoError(t, err)
	}
	return EvaluationVarsBase{LocalConstants: constants, LocalWires: wires}
}

// embed lifts base vars into the extension field.
func embed(vars EvaluationVarsBase) EvaluationVars {
	constants := make([]field.QuadraticExt, len(vars.LocalConstants))
	wires := make([]field.QuadraticExt, len(vars.LocalWires))
	for i := range constants {
		constants[i].SetFromBase(&vars.LocalConstants[i])
	}
	for i := range wires {
		wires[i].SetFromBase(&vars.LocalWires[i])
	}
	return EvaluationVars{LocalConstants: constants, LocalWires: wires}
}

// CheckModeCoherence verifies that the base evaluation embedded into the
// extension field equals the extension evaluation on embedded inputs,
// element for element.
func CheckModeCoherence(t *testing.T, g Gate) {
	t.Helper()
	varsBase := randomBaseVars(t, g)
	baseValues := g.EvalUnfilteredBase(varsBase)
	extValues := g.EvalUnfiltered(embed(varsBase))

	require.Equal(t, g.NumConstraints(), len(baseValues), "base evaluation constraint count")
	require.Equal(t, g.NumConstraints(), len(extValues), "extension evaluation constraint count")
	for i := range baseValues {
		require.True(t, extValues[i].IsInBaseField(), "constraint %d left the base field", i)
		got := extValues[i].BaseComponent()
		require.True(t, got.Equal(&baseValues[i]), "constraint %d differs between modes", i)
	}
}

// CheckBatchCoherence verifies that batch evaluation over slot-major buffers
// matches row-by-row base evaluation.
func CheckBatchCoherence(t *testing.T, g Gate, batchSize int) {
	t.Helper()
	rows := make([]EvaluationVarsBase, batchSize)
	for i := range rows {
		rows[i] = randomBaseVars(t, g)
	}

	// Transpose into slot-major layout.
	constants := make([]goldilocks.Element, g.NumConstants()*batchSize)
	wires := make([]goldilocks.Element, g.NumWires()*batchSize)
	for j := 0; j < g.NumConstants(); j++ {
		for i := 0; i < batchSize; i++ {
			constants[j*batchSize+i] = rows[i].LocalConstants[j]
		}
	}
	for j := 0; j < g.NumWires(); j++ {
		for i := 0; i < batchSize; i++ {
			wires[j*batchSize+i] = rows[i].LocalWires[j]
		}
	}

	batch := NewEvaluationVarsBaseBatch(batchSize, constants, wires)
	got := EvalUnfilteredBaseBatch(g, batch)
	require.Len(t, got, batchSize)
	for i := range rows {
		want := g.EvalUnfilteredBase(rows[i])
		require.Equal(t, len(want), len(got[i]))
		for j := range want {
			require.True(t, got[i][j].Equal(&want[j]), "row %d constraint %d", i, j)
		}
	}
}

// witnessTestDegree is the degree of the random wire polynomials used by
// CheckLowDegree.
const witnessTestDegree = 5

// CheckLowDegree samples random degree-witnessTestDegree polynomials for every
// wire, evaluates the gate's constraints pointwise, interpolates each
// constraint polynomial and verifies its degree does not exceed
// witnessTestDegree * g.Degree().
func CheckLowDegree(t *testing.T, g Gate) {
	t.Helper()
	maxDegree := witnessTestDegree * g.Degree()
	numPoints := maxDegree + 2

	constants := make([]goldilocks.Element, g.NumConstants())
	for i := range constants {
		_, err := constants[i].SetRandom()
		require.NoError(t, err)
	}

	// One random coefficient vector per wire.
	wirePolys := make([][]goldilocks.Element, g.NumWires())
	for i := range wirePolys {
		wirePolys[i] = make([]goldilocks.Element, witnessTestDegree+1)
		for j := range wirePolys[i] {
			_, err := wirePolys[i][j].SetRandom()
			require.NoError(t, err)
		}
	}

	xs := make([]goldilocks.Element, numPoints)
	ys := make([][]goldilocks.Element, g.NumConstraints())
	for j := range ys {
		ys[j] = make([]goldilocks.Element, numPoints)
	}
	wires := make([]goldilocks.Element, g.NumWires())
	for p := 0; p < numPoints; p++ {
		xs[p] = goldilocks.NewElement(uint64(p + 1))
		for i := range wires {
			wires[i] = evalPoly(wirePolys[i], xs[p])
		}
		values := g.EvalUnfilteredBase(EvaluationVarsBase{LocalConstants: constants, LocalWires: wires})
		require.Equal(t, g.NumConstraints(), len(values), "constraint count at point %d", p)
		for j := range values {
			ys[j][p] = values[j]
		}
	}

	for j := 0; j < g.NumConstraints(); j++ {
		coeffs := interpolate(xs, ys[j])
		deg := polyDegree(coeffs)
		require.LessOrEqual(t, deg, maxDegree, "constraint %d exceeds the degree bound", j)
	}
}

func evalPoly(coeffs []goldilocks.Element, x goldilocks.Element) goldilocks.Element {
	var acc goldilocks.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &coeffs[i])
	}
	return acc
}

func polyDegree(coeffs []goldilocks.Element) int {
	for i := len(coeffs) - 1; i >= 0; i-- {
		if !coeffs[i].IsZero() {
			return i
		}
	}
	return 0
}

// interpolate returns the coefficients of the unique polynomial of degree
// < len(xs) through the given points, by Lagrange interpolation.
func interpolate(xs []goldilocks.Element, ys []goldilocks.Element) []goldilocks.Element {
	n := len(xs)

	// full = prod (x - xs[i])
	full := []goldilocks.Element{goldilocks.NewElement(1)}
	for i := 0; i < n; i++ {
		var negX goldilocks.Element
		negX.Neg(&xs[i])
		next := make([]goldilocks.Element, len(full)+1)
		for j := range full {
			var t goldilocks.Element
			t.Mul(&full[j], &negX)
			next[j].Add(&next[j], &t)
			next[j+1].Add(&next[j+1], &full[j])
		}
		full = next
	}

	acc := make([]goldilocks.Element, n)
	quotient := make([]goldilocks.Element, n)
	for i := 0; i < n; i++ {
		// quotient = full / (x - xs[i]) by synthetic division, highest
		// coefficient first.
		var carry goldilocks.Element
		for j := n; j >= 1; j-- {
			var t goldilocks.Element
			t.Mul(&carry, &xs[i])
			carry.Add(&full[j], &t)
			quotient[j-1] = carry
		}

		denom := evalPoly(quotient, xs[i])
		var scale goldilocks.Element
		scale.Inverse(&denom)
		scale.Mul(&scale, &ys[i])
		for j := 0; j < n; j++ {
			var t goldilocks.Element
			t.Mul(&quotient[j], &scale)
			acc[j].Add(&acc[j], &t)
		}
	}
	return acc
}
