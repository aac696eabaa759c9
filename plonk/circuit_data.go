package plonk

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/plonkworks/plonky2go/gates"
	"github.com/plonkworks/plonky2go/hash"
	"github.com/plonkworks/plonky2go/iop"
	"github.com/plonkworks/plonky2go/poly"
)

// CommonCircuitData is the circuit description shared by prover and verifier.
// All fields are fixed at build time.
type CommonCircuitData struct {
	Config     CircuitConfig
	DegreeBits int

	// GateTypes lists the gate kinds used by the circuit, sorted by ID. The
	// position of a gate in this list is its selector column.
	GateTypes []gates.Gate

	// NumGateConstraints is the maximum NumConstraints over GateTypes.
	NumGateConstraints int

	// NumConstants is the maximum NumConstants over GateTypes, i.e. the number
	// of per-row constant columns following the selector columns.
	NumConstants int

	NumPublicInputs   int
	NumVirtualTargets int

	// CosetShifts holds one coset representative per routed wire column.
	CosetShifts []goldilocks.Element

	ConstantsRoot hash.Digest
	SigmasRoot    hash.Digest

	// CircuitDigest commits to the whole preprocessed circuit; two circuits
	// agree on it exactly when their tables agree.
	CircuitDigest hash.Digest
}

// Degree returns the padded number of gate rows.
func (c *CommonCircuitData) Degree() int { return 1 << c.DegreeBits }

// ProverOnlyCircuitData holds the material only witness generation and
// proving need.
type ProverOnlyCircuitData struct {
	Generators []iop.WitnessGenerator

	// ConstantsTable and SigmasTable are the uncommitted column values behind
	// the roots in CommonCircuitData.
	ConstantsTable []poly.Values
	SigmasTable    []poly.Values

	// Subgroup is the order-2^DegreeBits multiplicative subgroup indexing rows.
	Subgroup []goldilocks.Element

	// RepresentativeMap sends each flat target index to the index of its copy
	// class representative, fully compressed.
	RepresentativeMap []int

	PublicInputs []iop.Target
}

// VerifierOnlyCircuitData is the succinct commitment material a verifier keeps.
type VerifierOnlyCircuitData struct {
	ConstantsRoot hash.Digest
	ConstantsCap  []hash.Digest
	SigmasRoot    hash.Digest
	SigmasCap     []hash.Digest
	CircuitDigest hash.Digest
}

// CircuitData bundles the three artifact groups produced by Build.
type CircuitData struct {
	Common       CommonCircuitData
	ProverOnly   ProverOnlyCircuitData
	VerifierOnly VerifierOnlyCircuitData
}

// targetIndex returns the flat-index function used to address targets of this
// circuit in dense arrays.
func (d *CircuitData) targetIndex() (func(iop.Target) int, int) {
	degree := d.Common.Degree()
	numWires := d.Common.Config.NumWires
	numPublicInputs := d.Common.NumPublicInputs
	numIndices := degree*numWires + numPublicInputs + d.Common.NumVirtualTargets
	return func(t iop.Target) int {
		return t.FlatIndex(numWires, numPublicInputs, degree)
	}, numIndices
}

// GenerateWitness solves the circuit's generators against the given
// assignments and returns a complete witness grid. The inputs are consumed:
// generated values are accumulated into the same partial witness.
func (d *CircuitData) GenerateWitness(inputs *iop.PartialWitness) (iop.Witness, error) {
	index, numIndices := d.targetIndex()
	if err := iop.GenerateWitness(inputs, d.ProverOnly.Generators, index, numIndices); err != nil {
		return iop.Witness{}, fmt.Errorf("running witness generators: %w", err)
	}
	return inputs.FullWitnessZeroFill(d.Common.Degree(), d.Common.Config.NumWires), nil
}

// PublicInputValues reads back the public input assignments from a solved
// partial witness.
func (d *CircuitData) PublicInputValues(w *iop.PartialWitness) ([]goldilocks.Element, error) {
	values := make([]goldilocks.Element, len(d.ProverOnly.PublicInputs))
	for i, t := range d.ProverOnly.PublicInputs {
		v, ok := w.TryGet(t)
		if !ok {
			return nil, fmt.Errorf("public input %d was never assigned", i)
		}
		values[i] = v
	}
	return values, nil
}
