package plonk

import (
	"context"
	"fmt"
	"sort"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"golang.org/x/sync/errgroup"

	"github.com/plonkworks/plonky2go/field"
	"github.com/plonkworks/plonky2go/gates"
	"github.com/plonkworks/plonky2go/hash"
	"github.com/plonkworks/plonky2go/iop"
	"github.com/plonkworks/plonky2go/logger"
	"github.com/plonkworks/plonky2go/poly"
)

type copyConstraint struct {
	a, b iop.Target
}

// CircuitBuilder accumulates gate placements, constants, equality assertions
// and witness generators, and finalizes them into immutable circuit data. It
// is mutated sequentially by a single owner; it is not safe for concurrent use.
type CircuitBuilder struct {
	config CircuitConfig

	// gateTypes dedups gate kinds by ID.
	gateTypes     map[string]gates.Gate
	gateInstances []gates.GateInstance

	publicInputs       []iop.Target
	virtualTargetCount int

	copyConstraints []copyConstraint
	generators      []iop.WitnessGenerator

	constantsToTargets map[goldilocks.Element]iop.Target
	targetsToConstants map[iop.Target]goldilocks.Element

	// freeArithmeticExt tracks, per constant pair, a placed extension
	// arithmetic gate with unused operation slots.
	freeArithmeticExt map[arithKey]*arithSlot

	committer hash.Committer
}

type arithKey [2]goldilocks.Element

type arithSlot struct {
	gate gates.ArithmeticExtensionGate
	row  int
	used int
}

// NewBuilder validates the configuration once and returns a fresh builder.
// Validation up front is what lets the built-in gadget ops place gates without
// re-checking the wire budget at every call.
func NewBuilder(config CircuitConfig) (*CircuitBuilder, error) {
	if err := config.check(); err != nil {
		return nil, err
	}
	return &CircuitBuilder{
		config:             config,
		gateTypes:          make(map[string]gates.Gate),
		constantsToTargets: make(map[goldilocks.Element]iop.Target),
		targetsToConstants: make(map[iop.Target]goldilocks.Element),
		freeArithmeticExt:  make(map[arithKey]*arithSlot),
		committer:          hash.MerkleCommitter{RateBits: config.RateBits, CapHeight: config.CapHeight},
	}, nil
}

// SetCommitter overrides the commitment collaborator used at finalize time.
func (b *CircuitBuilder) SetCommitter(c hash.Committer) {
	b.committer = c
}

// Config returns the builder's configuration.
func (b *CircuitBuilder) Config() CircuitConfig { return b.config }

// NumGates returns the number of placed gate instances.
func (b *CircuitBuilder) NumGates() int { return len(b.gateInstances) }

// AddGate places a gate instance and returns its row. The gate type is
// validated against the configuration on first sight; a gate that needs more
// wires than configured is rejected here, not at proving time.
func (b *CircuitBuilder) AddGate(g gates.Gate, constants []goldilocks.Element) (int, error) {
	if _, seen := b.gateTypes[g.ID()]; !seen {
		if g.NumWires() > b.config.NumWires {
			return 0, fmt.Errorf("%w: %s needs %d wires, config has %d",
				ErrGateTooWide, g.ID(), g.NumWires(), b.config.NumWires)
		}
		b.gateTypes[g.ID()] = g
	}
	if len(constants) != g.NumConstants() {
		return 0, fmt.Errorf("%w: %s declares %d constants, got %d",
			ErrConstantCount, g.ID(), g.NumConstants(), len(constants))
	}

	row := len(b.gateInstances)
	b.AddGenerators(g.Generators(row, constants))
	b.gateInstances = append(b.gateInstances, gates.GateInstance{Gate: g, Constants: constants})
	return row, nil
}

// mustAddGate places one of the built-in gates, whose fit was established by
// config validation.
func (b *CircuitBuilder) mustAddGate(g gates.Gate, constants []goldilocks.Element) int {
	row, err := b.AddGate(g, constants)
	if err != nil {
		panic(err)
	}
	return row
}

// AddGenerators appends witness generators.
func (b *CircuitBuilder) AddGenerators(gs []iop.WitnessGenerator) {
	b.generators = append(b.generators, gs...)
}

// AddSimpleGenerator appends a run-once generator.
func (b *CircuitBuilder) AddSimpleGenerator(sg iop.SimpleGenerator) {
	b.generators = append(b.generators, iop.Adapt(sg))
}

// AddVirtualTarget allocates a new virtual target. It is not a wire in the
// witness grid; a generator can assign it a value which is then copied onto
// real wires.
func (b *CircuitBuilder) AddVirtualTarget() iop.Target {
	t := iop.NewVirtualTarget(b.virtualTargetCount)
	b.virtualTargetCount++
	return t
}

// AddVirtualTargets allocates n virtual targets.
func (b *CircuitBuilder) AddVirtualTargets(n int) []iop.Target {
	ts := make([]iop.Target, n)
	for i := range ts {
		ts[i] = b.AddVirtualTarget()
	}
	return ts
}

// AddVirtualExtTarget allocates an extension element of virtual targets.
func (b *CircuitBuilder) AddVirtualExtTarget() iop.ExtTarget {
	return iop.NewExtTarget(b.AddVirtualTarget(), b.AddVirtualTarget())
}

// AddPublicInput allocates a new public input target.
func (b *CircuitBuilder) AddPublicInput() iop.Target {
	t := iop.NewPublicInputTarget(len(b.publicInputs))
	b.publicInputs = append(b.publicInputs, t)
	return t
}

// AddPublicInputs allocates n public input targets.
func (b *CircuitBuilder) AddPublicInputs(n int) []iop.Target {
	ts := make([]iop.Target, n)
	for i := range ts {
		ts[i] = b.AddPublicInput()
	}
	return ts
}

// Constant returns a routable target carrying the given constant value,
// placing a ConstantGate on first sight and memoizing it afterwards. A
// finished circuit holds at most one constant wire per distinct value.
func (b *CircuitBuilder) Constant(c goldilocks.Element) iop.Target {
	if t, ok := b.constantsToTargets[c]; ok {
		return t
	}
	row := b.mustAddGate(gates.ConstantGate{}, []goldilocks.Element{c})
	t := iop.NewWireTarget(row, gates.WireOutput)
	b.constantsToTargets[c] = t
	b.targetsToConstants[t] = c
	return t
}

// Zero returns a routable target with value 0.
func (b *CircuitBuilder) Zero() iop.Target { return b.Constant(goldilocks.Element{}) }

// One returns a routable target with value 1.
func (b *CircuitBuilder) One() iop.Target { return b.Constant(goldilocks.NewElement(1)) }

// Two returns a routable target with value 2.
func (b *CircuitBuilder) Two() iop.Target { return b.Constant(goldilocks.NewElement(2)) }

// NegOne returns a routable target with value -1.
func (b *CircuitBuilder) NegOne() iop.Target {
	var c goldilocks.Element
	c.SetOne()
	c.Neg(&c)
	return b.Constant(c)
}

// TargetAsConstant returns the constant a target was created from, if any.
func (b *CircuitBuilder) TargetAsConstant(t iop.Target) (goldilocks.Element, bool) {
	c, ok := b.targetsToConstants[t]
	return c, ok
}

// GenerateCopy registers a generator copying src to dst during witness
// generation. It does not constrain the two to be equal; use Route for that.
func (b *CircuitBuilder) GenerateCopy(src, dst iop.Target) {
	b.AddSimpleGenerator(iop.CopyGenerator{Src: src, Dst: dst})
}

// Connect asserts, via the permutation argument, that two targets carry the
// same value. Both must be routable.
func (b *CircuitBuilder) Connect(x, y iop.Target) error {
	if !x.IsRoutable(b.config.NumRoutedWires) {
		return fmt.Errorf("%w: %v", ErrNotRoutable, x)
	}
	if !y.IsRoutable(b.config.NumRoutedWires) {
		return fmt.Errorf("%w: %v", ErrNotRoutable, y)
	}
	b.copyConstraints = append(b.copyConstraints, copyConstraint{a: x, b: y})
	return nil
}

// ConnectExt connects two extension elements coefficient-wise.
func (b *CircuitBuilder) ConnectExt(x, y iop.ExtTarget) error {
	for i := range x {
		if err := b.Connect(x[i], y[i]); err != nil {
			return err
		}
	}
	return nil
}

// Route copies src onto dst during witness generation and constrains them
// equal in the permutation argument. On a routability error nothing is
// registered.
func (b *CircuitBuilder) Route(src, dst iop.Target) error {
	if err := b.Connect(src, dst); err != nil {
		return err
	}
	b.GenerateCopy(src, dst)
	return nil
}

// AssertZero constrains x to be zero.
func (b *CircuitBuilder) AssertZero(x iop.Target) error {
	return b.Connect(x, b.Zero())
}

// AssertNonzero constrains nothing but stages the inverse-or-one witness
// helper for x on a virtual target, which gadget code can then consume.
func (b *CircuitBuilder) AssertNonzero(x iop.Target) iop.Target {
	dummy := b.AddVirtualTarget()
	b.AddSimpleGenerator(iop.NonzeroTestGenerator{ToTest: x, Dummy: dummy})
	return dummy
}

// blind appends rows of random values so openings of the witness and
// permutation polynomials leak nothing. Plain rows blind the witness
// polynomials; paired rows with copy constraints blind the permutation
// grand-product polynomials.
func (b *CircuitBuilder) blind() error {
	regularRows := 2 * b.config.NumChallenges
	pairedRows := b.config.NumChallenges

	for i := 0; i < regularRows; i++ {
		row := b.mustAddGate(gates.NoopGate{}, nil)
		for w := 0; w < b.config.NumWires; w++ {
			b.AddSimpleGenerator(iop.RandomValueGenerator{Target: iop.NewWireTarget(row, w)})
		}
	}

	for i := 0; i < pairedRows; i++ {
		row1 := b.mustAddGate(gates.NoopGate{}, nil)
		row2 := b.mustAddGate(gates.NoopGate{}, nil)
		for w := 0; w < b.config.NumRoutedWires; w++ {
			b.AddSimpleGenerator(iop.RandomValueGenerator{Target: iop.NewWireTarget(row1, w)})
			if err := b.Route(iop.NewWireTarget(row1, w), iop.NewWireTarget(row2, w)); err != nil {
				return err
			}
		}
	}
	return nil
}

// constantPolys lays out one one-hot selector column per gate type followed by
// the per-row gate constants, padded to numConstants.
func (b *CircuitBuilder) constantPolys(sorted []gates.Gate, numConstants int) []poly.Values {
	degree := len(b.gateInstances)
	ordinal := make(map[string]int, len(sorted))
	for i, g := range sorted {
		ordinal[g.ID()] = i
	}

	columns := make([]poly.Values, len(sorted)+numConstants)
	for i := range columns {
		columns[i] = poly.NewValues(degree)
	}
	one := goldilocks.NewElement(1)
	for row, inst := range b.gateInstances {
		columns[ordinal[inst.Gate.ID()]][row] = one
		for k, c := range inst.Constants {
			columns[len(sorted)+k][row] = c
		}
	}
	return columns
}

// sigmaVecs runs the permutation argument over the finalized gate sequence.
func (b *CircuitBuilder) sigmaVecs(degreeBits int, shifts, subgroup []goldilocks.Element) ([]poly.Values, *Forest) {
	degree := len(b.gateInstances)
	forest := NewForest(b.config.NumWires, b.config.NumRoutedWires, len(b.publicInputs), degree, b.virtualTargetCount)

	for row := 0; row < degree; row++ {
		for column := 0; column < b.config.NumWires; column++ {
			forest.Add(iop.NewWireTarget(row, column))
		}
	}
	for i := range b.publicInputs {
		forest.Add(iop.NewPublicInputTarget(i))
	}
	for i := 0; i < b.virtualTargetCount; i++ {
		forest.Add(iop.NewVirtualTarget(i))
	}

	for _, cc := range b.copyConstraints {
		forest.Merge(cc.a, cc.b)
	}
	forest.CompressPaths()

	return forest.WirePartition().SigmaPolys(degreeBits, shifts, subgroup), forest
}

// Build finalizes the circuit into immutable prover, verifier and common data.
func (b *CircuitBuilder) Build() (*CircuitData, error) {
	log := logger.Logger()

	b.fillArithmeticExtGates()

	if b.config.ZeroKnowledge {
		if err := b.blind(); err != nil {
			return nil, err
		}
	}

	log.Debug().Int("gates", len(b.gateInstances)).Msg("degree before padding")
	if len(b.gateInstances) == 0 {
		b.mustAddGate(gates.NoopGate{}, nil)
	}
	for len(b.gateInstances)&(len(b.gateInstances)-1) != 0 {
		b.mustAddGate(gates.NoopGate{}, nil)
	}
	degree := len(b.gateInstances)
	degreeBits := log2Strict(degree)
	log.Debug().Int("gates", degree).Msg("degree after padding")

	// Deterministic gate ordering.
	sorted := make([]gates.Gate, 0, len(b.gateTypes))
	for _, g := range b.gateTypes {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

	numConstants := 0
	numGateConstraints := 0
	for _, g := range sorted {
		if g.NumConstants() > numConstants {
			numConstants = g.NumConstants()
		}
		if g.NumConstraints() > numGateConstraints {
			numGateConstraints = g.NumConstraints()
		}
	}

	constantColumns := b.constantPolys(sorted, numConstants)
	subgroup := field.TwoAdicSubgroup(degreeBits)
	shifts := field.CosetShifts(b.config.NumRoutedWires)
	sigmaColumns, forest := b.sigmaVecs(degreeBits, shifts, subgroup)

	var (
		constantsRoot, sigmasRoot hash.Digest
		constantsCap, sigmasCap   []hash.Digest
	)
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		constantsRoot, constantsCap, err = b.committer.Commit(constantColumns)
		return err
	})
	g.Go(func() error {
		var err error
		sigmasRoot, sigmasCap, err = b.committer.Commit(sigmaColumns)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("committing circuit tables: %w", err)
	}

	circuitDigest := hash.HashDigests(constantsRoot, sigmasRoot)

	common := CommonCircuitData{
		Config:             b.config,
		DegreeBits:         degreeBits,
		GateTypes:          sorted,
		NumGateConstraints: numGateConstraints,
		NumConstants:       numConstants,
		NumPublicInputs:    len(b.publicInputs),
		NumVirtualTargets:  b.virtualTargetCount,
		CosetShifts:        shifts,
		ConstantsRoot:      constantsRoot,
		SigmasRoot:         sigmasRoot,
		CircuitDigest:      circuitDigest,
	}
	proverOnly := ProverOnlyCircuitData{
		Generators:        b.generators,
		ConstantsTable:    constantColumns,
		SigmasTable:       sigmaColumns,
		Subgroup:          subgroup,
		RepresentativeMap: forest.Parents(),
		PublicInputs:      b.publicInputs,
	}
	verifierOnly := VerifierOnlyCircuitData{
		ConstantsRoot: constantsRoot,
		ConstantsCap:  constantsCap,
		SigmasRoot:    sigmasRoot,
		SigmasCap:     sigmasCap,
		CircuitDigest: circuitDigest,
	}

	log.Info().
		Int("degreeBits", degreeBits).
		Int("gateTypes", len(sorted)).
		Int("generators", len(b.generators)).
		Int("copyConstraints", len(b.copyConstraints)).
		Msg("circuit built")

	return &CircuitData{Common: common, ProverOnly: proverOnly, VerifierOnly: verifierOnly}, nil
}

func log2Strict(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		panic("log2Strict: not a power of two")
	}
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}
