package plonk

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/internal/parallel"
	"github.com/plonkworks/plonky2go/iop"
	"github.com/plonkworks/plonky2go/poly"
)

// ForestNode is one node of the disjoint-set forest. A root is a node whose
// parent is its own index.
type ForestNode struct {
	Parent int
	Size   int
}

// Forest is an arena-based union-find over the flat target index space: wires
// first, then public inputs, then virtual targets. It accumulates ad-hoc
// equality assertions and is collapsed into wire partitions at finalize time.
type Forest struct {
	nodes []ForestNode

	numWires        int
	numRoutedWires  int
	numPublicInputs int
	degree          int
}

// NewForest prepares a forest for the given circuit shape.
func NewForest(numWires, numRoutedWires, numPublicInputs, degree, numVirtualTargets int) *Forest {
	return &Forest{
		nodes:           make([]ForestNode, 0, numWires*degree+numPublicInputs+numVirtualTargets),
		numWires:        numWires,
		numRoutedWires:  numRoutedWires,
		numPublicInputs: numPublicInputs,
		degree:          degree,
	}
}

// TargetIndex maps a target into the forest's arena.
func (f *Forest) TargetIndex(t iop.Target) int {
	return t.FlatIndex(f.numWires, f.numPublicInputs, f.degree)
}

// Add appends a fresh singleton set for t. Targets must be added in flat index
// order.
func (f *Forest) Add(t iop.Target) {
	index := len(f.nodes)
	if got := f.TargetIndex(t); got != index {
		panic("forest: targets must be added in index order")
	}
	f.nodes = append(f.nodes, ForestNode{Parent: index, Size: 1})
}

// Find returns the representative of the set containing index x, halving the
// path on the way up. Callable at any time, including mid-construction.
func (f *Forest) Find(x int) int {
	for f.nodes[x].Parent != x {
		f.nodes[x].Parent = f.nodes[f.nodes[x].Parent].Parent
		x = f.nodes[x].Parent
	}
	return x
}

// Merge unions the sets containing tx and ty, by size.
func (f *Forest) Merge(tx, ty iop.Target) {
	x := f.Find(f.TargetIndex(tx))
	y := f.Find(f.TargetIndex(ty))
	if x == y {
		return
	}
	if f.nodes[x].Size < f.nodes[y].Size {
		x, y = y, x
	}
	f.nodes[y].Parent = x
	f.nodes[x].Size += f.nodes[y].Size
}

// CompressPaths makes every parent pointer point directly at its
// representative.
func (f *Forest) CompressPaths() {
	for i := range f.nodes {
		root := f.Find(i)
		f.nodes[i].Parent = root
	}
}

// Parents returns the representative map, parent pointer per flat index.
// Assumes CompressPaths has been called.
func (f *Forest) Parents() []int {
	parents := make([]int, len(f.nodes))
	for i := range f.nodes {
		parents[i] = f.nodes[i].Parent
	}
	return parents
}

// WirePartition groups the routable wires by representative. Public inputs and
// virtual targets do not appear in any partition: they take no part in the
// permutation even when they were merged with wires. Assumes CompressPaths has
// been called.
func (f *Forest) WirePartition() *WirePartition {
	indexOf := make(map[int]int)
	var partitions [][]iop.Wire

	// Iteration order fixes the cyclic order within each partition.
	for row := 0; row < f.degree; row++ {
		for column := 0; column < f.numRoutedWires; column++ {
			w := iop.Wire{Row: row, Column: column}
			root := f.nodes[f.TargetIndex(iop.FromWire(w))].Parent
			i, ok := indexOf[root]
			if !ok {
				i = len(partitions)
				indexOf[root] = i
				partitions = append(partitions, nil)
			}
			partitions[i] = append(partitions[i], w)
		}
	}

	return &WirePartition{partitions: partitions}
}

// WirePartition is the partition of routed wires into equivalence classes
// under the asserted equalities.
type WirePartition struct {
	partitions [][]iop.Wire
}

// Partitions exposes the underlying classes.
func (p *WirePartition) Partitions() [][]iop.Wire { return p.partitions }

// neighbors maps every wire to the next wire of its partition, cyclically. A
// singleton partition maps the wire to itself.
func (p *WirePartition) neighbors() map[iop.Wire]iop.Wire {
	res := make(map[iop.Wire]iop.Wire)
	for _, subset := range p.partitions {
		for i, w := range subset {
			res[w] = subset[(i+1)%len(subset)]
		}
	}
	return res
}

// sigmaMap flattens the neighbor permutation over the (column, row) index
// space: entry column*degree+row holds the flat index of the wire's neighbor.
func (p *WirePartition) sigmaMap(degree, numRoutedWires int) []int {
	neighbors := p.neighbors()
	sigma := make([]int, 0, numRoutedWires*degree)
	for column := 0; column < numRoutedWires; column++ {
		for row := 0; row < degree; row++ {
			n := neighbors[iop.Wire{Row: row, Column: column}]
			sigma = append(sigma, n.Column*degree+n.Row)
		}
	}
	return sigma
}

// SigmaPolys evaluates the sigma permutation as one polynomial per routed-wire
// column: position x maps to shifts[x/degree] * subgroup[x%degree], the unique
// field element identifying the neighbor's cell across shifted cosets.
func (p *WirePartition) SigmaPolys(degreeBits int, shifts, subgroup []goldilocks.Element) []poly.Values {
	degree := 1 << degreeBits
	numRoutedWires := len(shifts)
	sigma := p.sigmaMap(degree, numRoutedWires)

	polys := make([]poly.Values, numRoutedWires)
	parallel.Execute(numRoutedWires, func(start, end int) {
		for column := start; column < end; column++ {
			values := poly.NewValues(degree)
			for row := 0; row < degree; row++ {
				x := sigma[column*degree+row]
				values[row].Mul(&shifts[x/degree], &subgroup[x%degree])
			}
			polys[column] = values
		}
	})
	return polys
}
