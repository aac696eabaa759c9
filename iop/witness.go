package iop

import (
	"fmt"
	"sort"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/field"
)

// PartialWitness is a partial assignment of field values to targets. It grows
// monotonically and is write-once: setting an already-present target to a
// different value is a bug in a generator or gadget and panics.
type PartialWitness struct {
	values map[Target]goldilocks.Element
}

// NewPartialWitness returns an empty witness.
func NewPartialWitness() *PartialWitness {
	return &PartialWitness{values: make(map[Target]goldilocks.Element)}
}

// Set records a value for a target. Re-setting a target with the value it
// already holds is a no-op; re-setting it with a different value panics.
func (w *PartialWitness) Set(t Target, v goldilocks.Element) {
	if old, ok := w.values[t]; ok {
		if !old.Equal(&v) {
			panic(fmt.Sprintf("target %v was set twice with different values: %s != %s", t, old.String(), v.String()))
		}
		return
	}
	w.values[t] = v
}

// SetWire sets the value of a wire cell.
func (w *PartialWitness) SetWire(wire Wire, v goldilocks.Element) {
	w.Set(FromWire(wire), v)
}

// SetExt sets the coefficient targets of an extension element.
func (w *PartialWitness) SetExt(et ExtTarget, v field.QuadraticExt) {
	w.Set(et[0], v[0])
	w.Set(et[1], v[1])
}

// TryGet returns the value of a target if present.
func (w *PartialWitness) TryGet(t Target) (goldilocks.Element, bool) {
	v, ok := w.values[t]
	return v, ok
}

// Get returns the value of a target, panicking if it is absent.
func (w *PartialWitness) Get(t Target) goldilocks.Element {
	v, ok := w.values[t]
	if !ok {
		panic(fmt.Sprintf("target %v is not set", t))
	}
	return v
}

// GetWire returns the value of a wire cell.
func (w *PartialWitness) GetWire(wire Wire) goldilocks.Element {
	return w.Get(FromWire(wire))
}

// GetExt reassembles an extension element from its coefficient targets.
func (w *PartialWitness) GetExt(et ExtTarget) field.QuadraticExt {
	return field.QuadraticExt{w.Get(et[0]), w.Get(et[1])}
}

// Contains reports whether the target has been written.
func (w *PartialWitness) Contains(t Target) bool {
	_, ok := w.values[t]
	return ok
}

// ContainsAll reports whether every target has been written.
func (w *PartialWitness) ContainsAll(targets []Target) bool {
	for _, t := range targets {
		if !w.Contains(t) {
			return false
		}
	}
	return true
}

// Len returns the number of populated targets.
func (w *PartialWitness) Len() int { return len(w.values) }

// Witness is the full concrete assignment: one column of values per wire, each
// of length degree.
type Witness struct {
	WireValues [][]goldilocks.Element
}

// GetWire returns the value at (row, column).
func (w *Witness) GetWire(wire Wire) goldilocks.Element {
	return w.WireValues[wire.Column][wire.Row]
}

// FullWitnessZeroFill extracts the wire grid, defaulting never-written cells
// to zero. Padding rows and unused gate slots are legitimately untouched, so
// this is the extraction a finalized circuit uses; unsolvable generator graphs
// are caught earlier, by the scheduler.
func (w *PartialWitness) FullWitnessZeroFill(degree, numWires int) Witness {
	grid := make([][]goldilocks.Element, numWires)
	for c := range grid {
		grid[c] = make([]goldilocks.Element, degree)
	}
	for t, v := range w.values {
		if t.Kind == TargetWire && t.Wire.Row < degree && t.Wire.Column < numWires {
			grid[t.Wire.Column][t.Wire.Row] = v
		}
	}
	return Witness{WireValues: grid}
}

// FullWitness extracts the complete wire grid, requiring every cell to have
// been written. Any wire cell that was never written makes this fail with an
// IncompleteWitnessError; use it when the caller expects full coverage.
func (w *PartialWitness) FullWitness(degree, numWires int) (Witness, error) {
	grid := make([][]goldilocks.Element, numWires)
	for c := range grid {
		grid[c] = make([]goldilocks.Element, degree)
	}
	var missing []Wire
	for r := 0; r < degree; r++ {
		for c := 0; c < numWires; c++ {
			v, ok := w.TryGet(NewWireTarget(r, c))
			if !ok {
				missing = append(missing, Wire{Row: r, Column: c})
				continue
			}
			grid[c][r] = v
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool {
			if missing[i].Row != missing[j].Row {
				return missing[i].Row < missing[j].Row
			}
			return missing[i].Column < missing[j].Column
		})
		return Witness{}, &IncompleteWitnessError{Missing: missing}
	}
	return Witness{WireValues: grid}, nil
}
