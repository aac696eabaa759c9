package iop

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
)

// WitnessGenerator participates in witness generation. Whenever a target in its
// watch list is populated, the generator is queued to run.
type WitnessGenerator interface {
	// WatchList returns the targets this generator depends on.
	WatchList() []Target

	// Run attempts to run the generator, returning whether it is finished. A
	// finished generator is never run again; an unfinished one is re-queued the
	// next time a watched target is populated. Outputs go into out, not
	// directly into the witness, so the scheduler controls write ordering.
	Run(w *PartialWitness, out *GeneratedValues) bool
}

// SimpleGenerator runs exactly once, after all of its dependencies are present.
type SimpleGenerator interface {
	Dependencies() []Target
	RunOnce(w *PartialWitness, out *GeneratedValues)
}

type simpleAdapter struct {
	SimpleGenerator
}

func (a simpleAdapter) WatchList() []Target { return a.Dependencies() }

func (a simpleAdapter) Run(w *PartialWitness, out *GeneratedValues) bool {
	if !w.ContainsAll(a.Dependencies()) {
		return false
	}
	a.RunOnce(w, out)
	return true
}

// Adapt turns a SimpleGenerator into a WitnessGenerator.
func Adapt(sg SimpleGenerator) WitnessGenerator {
	return simpleAdapter{sg}
}

// TargetValue is one (target, value) pair produced by a generator.
type TargetValue struct {
	Target Target
	Value  goldilocks.Element
}

// GeneratedValues buffers the outputs of one generator invocation.
type GeneratedValues struct {
	Pairs []TargetValue
}

// Set records a value for a target.
func (g *GeneratedValues) Set(t Target, v goldilocks.Element) {
	g.Pairs = append(g.Pairs, TargetValue{Target: t, Value: v})
}

// SetWire records a value for a wire cell.
func (g *GeneratedValues) SetWire(w Wire, v goldilocks.Element) {
	g.Set(FromWire(w), v)
}

// SetExt records the coefficients of an extension element.
func (g *GeneratedValues) SetExt(et ExtTarget, v field.QuadraticExt) {
	g.Set(et[0], v[0])
	g.Set(et[1], v[1])
}

// Reset clears the buffer for reuse.
func (g *GeneratedValues) Reset() {
	g.Pairs = g.Pairs[:0]
}

// CopyGenerator copies Src to Dst once Src is known.
type CopyGenerator struct {
	Src Target
	Dst Target
}

func (g CopyGenerator) Dependencies() []Target { return []Target{g.Src} }

func (g CopyGenerator) RunOnce(w *PartialWitness, out *GeneratedValues) {
	out.Set(g.Dst, w.Get(g.Src))
}

// RandomValueGenerator writes a uniformly random value; used for
// zero-knowledge blinding rows.
type RandomValueGenerator struct {
	Target Target
}

func (g RandomValueGenerator) Dependencies() []Target { return nil }

func (g RandomValueGenerator) RunOnce(_ *PartialWitness, out *GeneratedValues) {
	var v goldilocks.Element
	if _, err := v.SetRandom(); err != nil {
		panic(err) // entropy source failure
	}
	out.Set(g.Target, v)
}

// NonzeroTestGenerator writes the inverse of ToTest into Dummy, or one when
// ToTest is zero, supporting nonzero assertions.
type NonzeroTestGenerator struct {
	ToTest Target
	Dummy  Target
}

func (g NonzeroTestGenerator) Dependencies() []Target { return []Target{g.ToTest} }

func (g NonzeroTestGenerator) RunOnce(w *PartialWitness, out *GeneratedValues) {
	v := w.Get(g.ToTest)
	var dummy goldilocks.Element
	if v.IsZero() {
		dummy.SetOne()
	} else {
		dummy.Inverse(&v)
	}
	out.Set(g.Dummy, dummy)
}
