// Package iop contains the witness-side objects of the protocol: target
// addressing, the partial witness, witness generators and the dependency-driven
// scheduler that turns a set of inputs into a full assignment.
package iop

import "fmt"

// Wire addresses a single witness cell by (gate row, input column).
// Construction never bounds-checks; validity is checked where the wire is used.
type Wire struct {
	Row    int
	Column int
}

// TargetKind discriminates the Target union.
type TargetKind uint8

const (
	// TargetWire is a concrete witness cell.
	TargetWire TargetKind = iota
	// TargetPublicInput is a public input slot. Public inputs are routable but
	// are not wires; their values reach the witness grid through routing.
	TargetPublicInput
	// TargetVirtual is a transient placeholder not bound to any wire. It lets a
	// generator stage an intermediate value before a copy moves it onto a real
	// wire. Virtual targets never participate in the permutation argument.
	TargetVirtual
)

// Target identifies a value in the witness: a wire cell, a public input or a
// virtual placeholder. Targets are comparable; equality is structural.
type Target struct {
	Kind  TargetKind
	Wire  Wire // valid when Kind == TargetWire
	Index int  // public input or virtual index otherwise
}

// NewWireTarget returns the target for the wire at (row, column).
func NewWireTarget(row, column int) Target {
	return Target{Kind: TargetWire, Wire: Wire{Row: row, Column: column}}
}

// FromWire wraps a Wire as a Target.
func FromWire(w Wire) Target {
	return Target{Kind: TargetWire, Wire: w}
}

// NewPublicInputTarget returns the target for the i-th public input.
func NewPublicInputTarget(i int) Target {
	return Target{Kind: TargetPublicInput, Index: i}
}

// NewVirtualTarget returns the i-th virtual target. Virtual indices are handed
// out by the circuit builder.
func NewVirtualTarget(i int) Target {
	return Target{Kind: TargetVirtual, Index: i}
}

// IsRoutable reports whether the target may participate in copy constraints: a
// wire in the routed prefix, or a public input. Virtual targets never route.
func (t Target) IsRoutable(numRoutedWires int) bool {
	switch t.Kind {
	case TargetWire:
		return t.Wire.Column < numRoutedWires
	case TargetPublicInput:
		return true
	default:
		return false
	}
}

// FlatIndex maps the target into the flat index space used by the union-find
// forest and the scheduler: wires in row-major order, then public inputs, then
// virtual targets. It is injective for given (numWires, numPublicInputs, degree).
func (t Target) FlatIndex(numWires, numPublicInputs, degree int) int {
	switch t.Kind {
	case TargetWire:
		return t.Wire.Row*numWires + t.Wire.Column
	case TargetPublicInput:
		return degree*numWires + t.Index
	default:
		return degree*numWires + numPublicInputs + t.Index
	}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetWire:
		return fmt.Sprintf("wire(%d, %d)", t.Wire.Row, t.Wire.Column)
	case TargetPublicInput:
		return fmt.Sprintf("public_input(%d)", t.Index)
	default:
		return fmt.Sprintf("virtual(%d)", t.Index)
	}
}

// ExtTarget is an extension field element laid out as consecutive targets, one
// per coefficient. It is what recursive gate evaluation operates on.
type ExtTarget [2]Target

// NewExtTarget builds an ExtTarget from its coefficient targets.
func NewExtTarget(c0, c1 Target) ExtTarget {
	return ExtTarget{c0, c1}
}

// Targets returns the coefficient targets as a slice.
func (et ExtTarget) Targets() []Target {
	return []Target{et[0], et[1]}
}
