package gates

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// ConstantGate exposes one constant value on a routable output wire. The
// builder deduplicates constants, so a finished circuit has at most one of
// these per distinct value.
type ConstantGate struct{}

// WireOutput is the wire slot carrying the constant.
const WireOutput = 0

func (ConstantGate) ID() string          { return "ConstantGate" }
func (ConstantGate) NumWires() int       { return 1 }
func (ConstantGate) NumConstants() int   { return 1 }
func (ConstantGate) Degree() int         { return 1 }
func (ConstantGate) NumConstraints() int { return 1 }

func (ConstantGate) EvalUnfiltered(vars EvaluationVars) []field.QuadraticExt {
	var c field.QuadraticExt
	c.Sub(&vars.LocalConstants[0], &vars.LocalWires[WireOutput])
	return []field.QuadraticExt{c}
}

func (ConstantGate) EvalUnfilteredBase(vars EvaluationVarsBase) []goldilocks.Element {
	var c goldilocks.Element
	c.Sub(&vars.LocalConstants[0], &vars.LocalWires[WireOutput])
	return []goldilocks.Element{c}
}

func (ConstantGate) EvalUnfilteredRecursive(b RecursiveBuilder, vars EvaluationTargets) []iop.ExtTarget {
	return []iop.ExtTarget{b.SubExtension(vars.LocalConstants[0], vars.LocalWires[WireOutput])}
}

func (ConstantGate) Generators(row int, localConstants []goldilocks.Element) []iop.WitnessGenerator {
	return []iop.WitnessGenerator{iop.Adapt(constantGenerator{row: row, value: localConstants[0]})}
}

type constantGenerator struct {
	row   int
	value goldilocks.Element
}

func (g constantGenerator) Dependencies() []iop.Target { return nil }

func (g constantGenerator) RunOnce(_ *iop.PartialWitness, out *iop.GeneratedValues) {
	out.SetWire(iop.Wire{Row: g.row, Column: WireOutput}, g.value)
}
