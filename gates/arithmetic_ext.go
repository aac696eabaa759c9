package gates

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// ArithmeticExtensionGate computes c0*m0*m1 + c1*addend over the extension
// field, with operands laid out as consecutive base-field limbs. It is the
// workhorse behind the builder's extension gadget ops, and therefore behind
// recursive gate evaluation.
type ArithmeticExtensionGate struct {
	NumOps int
}

const extWiresPerOp = 4 * field.ExtensionDegree

// NewArithmeticExtensionGate packs as many operations as the routed wires allow.
func NewArithmeticExtensionGate(numRoutedWires int) ArithmeticExtensionGate {
	return ArithmeticExtensionGate{NumOps: numRoutedWires / extWiresPerOp}
}

// WiresMultiplicand0 returns the first limb slot of the i-th op's first multiplicand.
func (g ArithmeticExtensionGate) WiresMultiplicand0(i int) int { return extWiresPerOp * i }

// WiresMultiplicand1 returns the first limb slot of the i-th op's second multiplicand.
func (g ArithmeticExtensionGate) WiresMultiplicand1(i int) int {
	return extWiresPerOp*i + field.ExtensionDegree
}

// WiresAddend returns the first limb slot of the i-th op's addend.
func (g ArithmeticExtensionGate) WiresAddend(i int) int {
	return extWiresPerOp*i + 2*field.ExtensionDegree
}

// WiresOutput returns the first limb slot of the i-th op's output.
func (g ArithmeticExtensionGate) WiresOutput(i int) int {
	return extWiresPerOp*i + 3*field.ExtensionDegree
}

func (g ArithmeticExtensionGate) ID() string {
	return fmt.Sprintf("ArithmeticExtensionGate{numOps=%d}", g.NumOps)
}

func (g ArithmeticExtensionGate) NumWires() int       { return extWiresPerOp * g.NumOps }
func (g ArithmeticExtensionGate) NumConstants() int   { return 2 }
func (g ArithmeticExtensionGate) Degree() int         { return 3 }
func (g ArithmeticExtensionGate) NumConstraints() int { return field.ExtensionDegree * g.NumOps }

func (g ArithmeticExtensionGate) EvalUnfiltered(vars EvaluationVars) []field.QuadraticExt {
	c0 := vars.LocalConstants[0]
	c1 := vars.LocalConstants[1]
	constraints := make([]field.QuadraticExt, 0, g.NumConstraints())
	for i := 0; i < g.NumOps; i++ {
		m0 := vars.GetLocalExtAlgebra(g.WiresMultiplicand0(i))
		m1 := vars.GetLocalExtAlgebra(g.WiresMultiplicand1(i))
		addend := vars.GetLocalExtAlgebra(g.WiresAddend(i))
		output := vars.GetLocalExtAlgebra(g.WiresOutput(i))

		var computed, scaled field.ExtAlgebra
		computed.Mul(&m0, &m1)
		computed.ScalarMul(&computed, &c0)
		scaled.ScalarMul(&addend, &c1)
		computed.Add(&computed, &scaled)
		computed.Sub(&computed, &output)
		constraints = append(constraints, computed[0], computed[1])
	}
	return constraints
}

func (g ArithmeticExtensionGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	c0 := vars.LocalConstants[0]
	c1 := vars.LocalConstants[1]
	constraints := make([]goldilocks.Element, 0, g.NumConstraints())
	for i := 0; i < g.NumOps; i++ {
		m0 := vars.GetLocalExt(g.WiresMultiplicand0(i))
		m1 := vars.GetLocalExt(g.WiresMultiplicand1(i))
		addend := vars.GetLocalExt(g.WiresAddend(i))
		output := vars.GetLocalExt(g.WiresOutput(i))

		var computed, scaled field.QuadraticExt
		computed.Mul(&m0, &m1)
		computed.MulByBase(&computed, &c0)
		scaled.MulByBase(&addend, &c1)
		computed.Add(&computed, &scaled)
		computed.Sub(&computed, &output)
		constraints = append(constraints, computed[0], computed[1])
	}
	return constraints
}

func (g ArithmeticExtensionGate) EvalUnfilteredRecursive(b RecursiveBuilder, vars EvaluationTargets) []iop.ExtTarget {
	c0 := vars.LocalConstants[0]
	c1 := vars.LocalConstants[1]
	w := b.ConstantExtension(field.NewQuadraticExt(7, 0))

	// Multiplies two algebra elements given as limb pairs of extension targets.
	mulAlgebra := func(a0, a1, b0, b1 iop.ExtTarget) (iop.ExtTarget, iop.ExtTarget) {
		t0 := b.MulExtension(a0, b0)
		t1 := b.MulExtension(a1, b1)
		r0 := b.MulAddExtension(w, t1, t0)
		r1 := b.MulAddExtension(a0, b1, b.MulExtension(a1, b0))
		return r0, r1
	}

	constraints := make([]iop.ExtTarget, 0, g.NumConstraints())
	for i := 0; i < g.NumOps; i++ {
		m00 := vars.LocalWires[g.WiresMultiplicand0(i)]
		m01 := vars.LocalWires[g.WiresMultiplicand0(i)+1]
		m10 := vars.LocalWires[g.WiresMultiplicand1(i)]
		m11 := vars.LocalWires[g.WiresMultiplicand1(i)+1]
		add0 := vars.LocalWires[g.WiresAddend(i)]
		add1 := vars.LocalWires[g.WiresAddend(i)+1]
		out0 := vars.LocalWires[g.WiresOutput(i)]
		out1 := vars.LocalWires[g.WiresOutput(i)+1]

		p0, p1 := mulAlgebra(m00, m01, m10, m11)
		p0 = b.MulExtension(c0, p0)
		p1 = b.MulExtension(c0, p1)
		r0 := b.MulAddExtension(c1, add0, p0)
		r1 := b.MulAddExtension(c1, add1, p1)
		constraints = append(constraints, b.SubExtension(r0, out0), b.SubExtension(r1, out1))
	}
	return constraints
}

func (g ArithmeticExtensionGate) Generators(row int, localConstants []goldilocks.Element) []iop.WitnessGenerator {
	generators := make([]iop.WitnessGenerator, 0, g.NumOps)
	for i := 0; i < g.NumOps; i++ {
		generators = append(generators, iop.Adapt(arithmeticExtOpGenerator{
			gate: g,
			row:  row,
			c0:   localConstants[0],
			c1:   localConstants[1],
			op:   i,
		}))
	}
	return generators
}

type arithmeticExtOpGenerator struct {
	gate ArithmeticExtensionGate
	row  int
	c0   goldilocks.Element
	c1   goldilocks.Element
	op   int
}

func (g arithmeticExtOpGenerator) extWires(start int) iop.ExtTarget {
	return iop.NewExtTarget(
		iop.NewWireTarget(g.row, start),
		iop.NewWireTarget(g.row, start+1),
	)
}

func (g arithmeticExtOpGenerator) Dependencies() []iop.Target {
	var deps []iop.Target
	deps = append(deps, g.extWires(g.gate.WiresMultiplicand0(g.op)).Targets()...)
	deps = append(deps, g.extWires(g.gate.WiresMultiplicand1(g.op)).Targets()...)
	deps = append(deps, g.extWires(g.gate.WiresAddend(g.op)).Targets()...)
	return deps
}

func (g arithmeticExtOpGenerator) RunOnce(w *iop.PartialWitness, out *iop.GeneratedValues) {
	m0 := w.GetExt(g.extWires(g.gate.WiresMultiplicand0(g.op)))
	m1 := w.GetExt(g.extWires(g.gate.WiresMultiplicand1(g.op)))
	addend := w.GetExt(g.extWires(g.gate.WiresAddend(g.op)))

	var result, scaled field.QuadraticExt
	result.Mul(&m0, &m1)
	result.MulByBase(&result, &g.c0)
	scaled.MulByBase(&addend, &g.c1)
	result.Add(&result, &scaled)

	out.SetExt(g.extWires(g.gate.WiresOutput(g.op)), result)
}
