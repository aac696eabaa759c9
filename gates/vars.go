package gates

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// EvaluationVars carries one row of constants and wires, lifted to the
// extension field. This is the evaluation mode used for out-of-domain
// soundness checks.
type EvaluationVars struct {
	LocalConstants []field.QuadraticExt
	LocalWires     []field.QuadraticExt
}

// GetLocalExtAlgebra reads the algebra element stored at two consecutive wire
// slots starting at start.
func (v EvaluationVars) GetLocalExtAlgebra(start int) field.ExtAlgebra {
	return field.ExtAlgebra{v.LocalWires[start], v.LocalWires[start+1]}
}

// EvaluationVarsBase is the same row view specialized to the base field.
type EvaluationVarsBase struct {
	LocalConstants []goldilocks.Element
	LocalWires     []goldilocks.Element
}

// GetLocalExt reads the extension element stored as base limbs at two
// consecutive wire slots starting at start.
func (v EvaluationVarsBase) GetLocalExt(start int) field.QuadraticExt {
	return field.QuadraticExt{v.LocalWires[start], v.LocalWires[start+1]}
}

// EvaluationVarsBaseBatch packs many independent base-field rows. Storage is
// slot-major: constant i for all rows, then constant i+1, and likewise for
// wires, so per-slot data is contiguous for data-parallel evaluation.
type EvaluationVarsBaseBatch struct {
	batchSize      int
	localConstants []goldilocks.Element
	localWires     []goldilocks.Element
}

// NewEvaluationVarsBaseBatch builds a batch view over slot-major buffers.
func NewEvaluationVarsBaseBatch(batchSize int, localConstants, localWires []goldilocks.Element) EvaluationVarsBaseBatch {
	if batchSize == 0 || len(localConstants)%batchSize != 0 || len(localWires)%batchSize != 0 {
		panic("gates: batch buffers must hold a whole number of rows")
	}
	return EvaluationVarsBaseBatch{
		batchSize:      batchSize,
		localConstants: localConstants,
		localWires:     localWires,
	}
}

// Len returns the number of rows in the batch.
func (v EvaluationVarsBaseBatch) Len() int { return v.batchSize }

// View gathers row i into a contiguous EvaluationVarsBase.
func (v EvaluationVarsBaseBatch) View(i int) EvaluationVarsBase {
	nc := len(v.localConstants) / v.batchSize
	nw := len(v.localWires) / v.batchSize
	constants := make([]goldilocks.Element, nc)
	wires := make([]goldilocks.Element, nw)
	for j := 0; j < nc; j++ {
		constants[j] = v.localConstants[j*v.batchSize+i]
	}
	for j := 0; j < nw; j++ {
		wires[j] = v.localWires[j*v.batchSize+i]
	}
	return EvaluationVarsBase{LocalConstants: constants, LocalWires: wires}
}

// EvaluationTargets carries one row of constants and wires as in-circuit
// extension targets, for recursive evaluation inside an enclosing circuit.
type EvaluationTargets struct {
	LocalConstants []iop.ExtTarget
	LocalWires     []iop.ExtTarget
}
