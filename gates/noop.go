package gates

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/iop"
)

// NoopGate does nothing. It pads the gate sequence to a power of two.
type NoopGate struct{}

func (NoopGate) ID() string          { return "NoopGate" }
func (NoopGate) NumWires() int       { return 0 }
func (NoopGate) NumConstants() int   { return 0 }
func (NoopGate) Degree() int         { return 0 }
func (NoopGate) NumConstraints() int { return 0 }

func (NoopGate) EvalUnfiltered(EvaluationVars) []field.QuadraticExt { return nil }

func (NoopGate) EvalUnfilteredBase(EvaluationVarsBase) []goldilocks.Element { return nil }

func (NoopGate) EvalUnfilteredRecursive(RecursiveBuilder, EvaluationTargets) []iop.ExtTarget {
	return nil
}

func (NoopGate) Generators(int, []goldilocks.Element) []iop.WitnessGenerator { return nil }
