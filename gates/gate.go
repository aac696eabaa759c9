// Package gates defines the contract every gate kind satisfies and the handful
// of gates the circuit builder itself relies on. The vocabulary is open: new
// gate kinds plug in behind the Gate interface without touching the engine.
package gates

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// Gate is one reusable unit of constraint logic, placed at a row of the
// circuit. The three evaluation modes must agree: the base evaluation is the
// restriction of the extension evaluation to embedded inputs, and the
// recursive evaluation emits a gadget computing the same values in-circuit.
// Metadata is fixed per gate type, independent of any instance's constants.
type Gate interface {
	// ID uniquely identifies the gate type, including any footprint-affecting
	// parameters. Used for deduplication and deterministic ordering.
	ID() string

	// NumWires is the number of witness cells the gate uses per row.
	NumWires() int

	// NumConstants is the number of configuration constants per instance.
	NumConstants() int

	// Degree is the maximum degree of the constraint polynomials in the wires.
	Degree() int

	// NumConstraints is the exact number of constraint polynomials emitted by
	// each evaluation mode.
	NumConstraints() int

	// EvalUnfiltered evaluates the constraints over the extension field.
	EvalUnfiltered(vars EvaluationVars) []field.QuadraticExt

	// EvalUnfilteredBase is the numerically identical evaluation specialized
	// to the base field.
	EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element

	// EvalUnfilteredRecursive emits a gadget in the given builder computing
	// the constraint values from target-valued inputs.
	EvalUnfilteredRecursive(b RecursiveBuilder, vars EvaluationTargets) []iop.ExtTarget

	// Generators returns witness generators able to compute this gate's
	// non-input wires at the given row once the input wires are known.
	Generators(row int, localConstants []goldilocks.Element) []iop.WitnessGenerator
}

// RecursiveBuilder is the capability surface a gate needs from an enclosing
// circuit builder to express its constraints recursively. plonk.CircuitBuilder
// implements it.
type RecursiveBuilder interface {
	ZeroExtension() iop.ExtTarget
	OneExtension() iop.ExtTarget
	ConstantExtension(v field.QuadraticExt) iop.ExtTarget
	AddExtension(a, b iop.ExtTarget) iop.ExtTarget
	SubExtension(a, b iop.ExtTarget) iop.ExtTarget
	MulExtension(a, b iop.ExtTarget) iop.ExtTarget
	// MulAddExtension returns a*b + c.
	MulAddExtension(a, b, c iop.ExtTarget) iop.ExtTarget
}

// GateInstance is an immutable placement of a gate type with its constants at
// some row of the gate sequence.
type GateInstance struct {
	Gate      Gate
	Constants []goldilocks.Element
}

// EvalUnfilteredBaseBatch evaluates a gate over every row of a batch,
// returning one constraint-value slice per row. Gates with a data-parallel
// kernel can shadow this; the generic path evaluates row by row.
func EvalUnfilteredBaseBatch(g Gate, batch EvaluationVarsBaseBatch) [][]goldilocks.Element {
	out := make([][]goldilocks.Element, batch.Len())
	for i := 0; i < batch.Len(); i++ {
		out[i] = g.EvalUnfilteredBase(batch.View(i))
	}
	return out
}
