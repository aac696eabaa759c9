package gates

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// ArithmeticGate computes c0*m0*m1 + c1*addend for several independent
// operations packed into one row. All operations in a row share the two gate
// constants c0 and c1.
type ArithmeticGate struct {
	NumOps int
}

const wiresPerOp = 4

// NewArithmeticGate packs as many operations as the routed wires allow.
func NewArithmeticGate(numRoutedWires int) ArithmeticGate {
	return ArithmeticGate{NumOps: numRoutedWires / wiresPerOp}
}

// WireMultiplicand0 returns the wire slot of the i-th op's first multiplicand.
func (g ArithmeticGate) WireMultiplicand0(i int) int { return wiresPerOp * i }

// WireMultiplicand1 returns the wire slot of the i-th op's second multiplicand.
func (g ArithmeticGate) WireMultiplicand1(i int) int { return wiresPerOp*i + 1 }

// WireAddend returns the wire slot of the i-th op's addend.
func (g ArithmeticGate) WireAddend(i int) int { return wiresPerOp*i + 2 }

// WireOutput returns the wire slot of the i-th op's output.
func (g ArithmeticGate) WireOutput(i int) int { return wiresPerOp*i + 3 }

func (g ArithmeticGate) ID() string {
	return fmt.Sprintf("ArithmeticGate{numOps=%d}", g.NumOps)
}

func (g ArithmeticGate) NumWires() int       { return wiresPerOp * g.NumOps }
func (g ArithmeticGate) NumConstants() int   { return 2 }
func (g ArithmeticGate) Degree() int         { return 3 }
func (g ArithmeticGate) NumConstraints() int { return g.NumOps }

func (g ArithmeticGate) EvalUnfiltered(vars EvaluationVars) []field.QuadraticExt {
	c0 := vars.LocalConstants[0]
	c1 := vars.LocalConstants[1]
	constraints := make([]field.QuadraticExt, 0, g.NumOps)
	for i := 0; i < g.NumOps; i++ {
		m0 := vars.LocalWires[g.WireMultiplicand0(i)]
		m1 := vars.LocalWires[g.WireMultiplicand1(i)]
		addend := vars.LocalWires[g.WireAddend(i)]
		output := vars.LocalWires[g.WireOutput(i)]

		var computed, t field.QuadraticExt
		computed.Mul(&m0, &m1)
		computed.Mul(&computed, &c0)
		t.Mul(&c1, &addend)
		computed.Add(&computed, &t)
		computed.Sub(&computed, &output)
		constraints = append(constraints, computed)
	}
	return constraints
}

func (g ArithmeticGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	c0 := vars.LocalConstants[0]
	c1 := vars.LocalConstants[1]
	constraints := make([]goldilocks.Element, 0, g.NumOps)
	for i := 0; i < g.NumOps; i++ {
		m0 := vars.LocalWires[g.WireMultiplicand0(i)]
		m1 := vars.LocalWires[g.WireMultiplicand1(i)]
		addend := vars.LocalWires[g.WireAddend(i)]
		output := vars.LocalWires[g.WireOutput(i)]

		var computed, t goldilocks.Element
		computed.Mul(&m0, &m1)
		computed.Mul(&computed, &c0)
		t.Mul(&c1, &addend)
		computed.Add(&computed, &t)
		computed.Sub(&computed, &output)
		constraints = append(constraints, computed)
	}
	return constraints
}

func (g ArithmeticGate) EvalUnfilteredRecursive(b RecursiveBuilder, vars EvaluationTargets) []iop.ExtTarget {
	c0 := vars.LocalConstants[0]
	c1 := vars.LocalConstants[1]
	constraints := make([]iop.ExtTarget, 0, g.NumOps)
	for i := 0; i < g.NumOps; i++ {
		m0 := vars.LocalWires[g.WireMultiplicand0(i)]
		m1 := vars.LocalWires[g.WireMultiplicand1(i)]
		addend := vars.LocalWires[g.WireAddend(i)]
		output := vars.LocalWires[g.WireOutput(i)]

		product := b.MulExtension(b.MulExtension(c0, m0), m1)
		computed := b.MulAddExtension(c1, addend, product)
		constraints = append(constraints, b.SubExtension(computed, output))
	}
	return constraints
}

func (g ArithmeticGate) Generators(row int, localConstants []goldilocks.Element) []iop.WitnessGenerator {
	generators := make([]iop.WitnessGenerator, 0, g.NumOps)
	for i := 0; i < g.NumOps; i++ {
		generators = append(generators, iop.Adapt(arithmeticOpGenerator{
			gate: g,
			row:  row,
			c0:   localConstants[0],
			c1:   localConstants[1],
			op:   i,
		}))
	}
	return generators
}

type arithmeticOpGenerator struct {
	gate ArithmeticGate
	row  int
	c0   goldilocks.Element
	c1   goldilocks.Element
	op   int
}

func (g arithmeticOpGenerator) Dependencies() []iop.Target {
	return []iop.Target{
		iop.NewWireTarget(g.row, g.gate.WireMultiplicand0(g.op)),
		iop.NewWireTarget(g.row, g.gate.WireMultiplicand1(g.op)),
		iop.NewWireTarget(g.row, g.gate.WireAddend(g.op)),
	}
}

func (g arithmeticOpGenerator) RunOnce(w *iop.PartialWitness, out *iop.GeneratedValues) {
	m0 := w.GetWire(iop.Wire{Row: g.row, Column: g.gate.WireMultiplicand0(g.op)})
	m1 := w.GetWire(iop.Wire{Row: g.row, Column: g.gate.WireMultiplicand1(g.op)})
	addend := w.GetWire(iop.Wire{Row: g.row, Column: g.gate.WireAddend(g.op)})

	var result, t goldilocks.Element
	result.Mul(&m0, &m1)
	result.Mul(&result, &g.c0)
	t.Mul(&g.c1, &addend)
	result.Add(&result, &t)

	out.SetWire(iop.Wire{Row: g.row, Column: g.gate.WireOutput(g.op)}, result)
}
