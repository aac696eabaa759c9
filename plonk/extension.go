package plonk

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/gates"
	"github.com/plonkworks/plonky2go/iop"
)

// CircuitBuilder implements gates.RecursiveBuilder, so any gate can express
// its own constraints as a gadget inside a host circuit. Every op below packs
// into shared ArithmeticExtensionGate rows keyed by the constant pair, so a
// burst of same-shape ops costs a fraction of a row each.
var _ gates.RecursiveBuilder = (*CircuitBuilder)(nil)

// ZeroExtension returns the extension element 0.
func (b *CircuitBuilder) ZeroExtension() iop.ExtTarget {
	return iop.NewExtTarget(b.Zero(), b.Zero())
}

// OneExtension returns the extension element 1.
func (b *CircuitBuilder) OneExtension() iop.ExtTarget {
	return iop.NewExtTarget(b.One(), b.Zero())
}

// ConstantExtension returns an extension element with the given constant
// value, one memoized constant wire per limb.
func (b *CircuitBuilder) ConstantExtension(v field.QuadraticExt) iop.ExtTarget {
	return iop.NewExtTarget(b.Constant(v[0]), b.Constant(v[1]))
}

// AddExtension returns a+b.
func (b *CircuitBuilder) AddExtension(x, y iop.ExtTarget) iop.ExtTarget {
	one := goldilocks.NewElement(1)
	return b.arithmeticExtension(one, one, x, b.OneExtension(), y)
}

// SubExtension returns a-b.
func (b *CircuitBuilder) SubExtension(x, y iop.ExtTarget) iop.ExtTarget {
	one := goldilocks.NewElement(1)
	var negOne goldilocks.Element
	negOne.Neg(&one)
	return b.arithmeticExtension(one, negOne, x, b.OneExtension(), y)
}

// MulExtension returns a*b.
func (b *CircuitBuilder) MulExtension(x, y iop.ExtTarget) iop.ExtTarget {
	return b.MulAddExtension(x, y, b.ZeroExtension())
}

// MulAddExtension returns a*b + c.
func (b *CircuitBuilder) MulAddExtension(x, y, z iop.ExtTarget) iop.ExtTarget {
	one := goldilocks.NewElement(1)
	return b.arithmeticExtension(one, one, x, y, z)
}

// ScalarMulExtension returns c*x for a compile-time constant c.
func (b *CircuitBuilder) ScalarMulExtension(c goldilocks.Element, x iop.ExtTarget) iop.ExtTarget {
	return b.arithmeticExtension(c, goldilocks.Element{}, x, b.OneExtension(), b.ZeroExtension())
}

// arithmeticExtension computes c0*m0*m1 + c1*addend, claiming the next free
// operation slot of an ArithmeticExtensionGate configured with (c0, c1) and
// placing a fresh one when none has capacity left.
func (b *CircuitBuilder) arithmeticExtension(c0, c1 goldilocks.Element, m0, m1, addend iop.ExtTarget) iop.ExtTarget {
	key := arithKey{c0, c1}
	slot := b.freeArithmeticExt[key]
	if slot == nil || slot.used == slot.gate.NumOps {
		gate := gates.NewArithmeticExtensionGate(b.config.NumRoutedWires)
		row := b.mustAddGate(gate, []goldilocks.Element{c0, c1})
		slot = &arithSlot{gate: gate, row: row}
		b.freeArithmeticExt[key] = slot
	}
	op := slot.used
	slot.used++

	b.routeExtOperand(m0, slot.row, slot.gate.WiresMultiplicand0(op))
	b.routeExtOperand(m1, slot.row, slot.gate.WiresMultiplicand1(op))
	b.routeExtOperand(addend, slot.row, slot.gate.WiresAddend(op))

	return iop.NewExtTarget(
		iop.NewWireTarget(slot.row, slot.gate.WiresOutput(op)),
		iop.NewWireTarget(slot.row, slot.gate.WiresOutput(op)+1),
	)
}

// routeExtOperand moves an operand's limbs onto a gate's input wires. Routable
// sources are also connected in the permutation argument; virtual targets are
// only reachable through the copy generator.
func (b *CircuitBuilder) routeExtOperand(src iop.ExtTarget, row, startColumn int) {
	for i, limb := range src {
		dst := iop.NewWireTarget(row, startColumn+i)
		if limb.IsRoutable(b.config.NumRoutedWires) {
			// Both ends are routed wires, so this cannot fail.
			if err := b.Route(limb, dst); err != nil {
				panic(err)
			}
		} else {
			b.GenerateCopy(limb, dst)
		}
	}
}

// fillArithmeticExtGates gives every unused operation slot zero operands, so
// the per-op generators can fire and the constraints hold on the padding.
func (b *CircuitBuilder) fillArithmeticExtGates() {
	for _, slot := range b.freeArithmeticExt {
		zero := b.ZeroExtension()
		for op := slot.used; op < slot.gate.NumOps; op++ {
			b.routeExtOperand(zero, slot.row, slot.gate.WiresMultiplicand0(op))
			b.routeExtOperand(zero, slot.row, slot.gate.WiresMultiplicand1(op))
			b.routeExtOperand(zero, slot.row, slot.gate.WiresAddend(op))
		}
		slot.used = slot.gate.NumOps
	}
}
