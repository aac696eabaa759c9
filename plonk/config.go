// Package plonk contains the circuit builder, the permutation argument and the
// finalized circuit artifacts.
package plonk

import "fmt"

// CircuitConfig fixes the wire layout and commitment parameters of a circuit.
// All gate registration and routability checks are defined relative to it.
type CircuitConfig struct {
	// NumWires is the total number of witness cells per row.
	NumWires int
	// NumRoutedWires is the prefix of wires eligible for copy constraints.
	NumRoutedWires int
	// RateBits is the log2 blow-up of the low-degree extension applied by the
	// commitment collaborator.
	RateBits int
	// CapHeight is the Merkle cap height for the constant and sigma tables.
	CapHeight int
	// NumChallenges is the parallel-repetition factor for later protocol
	// stages; it also sizes the zero-knowledge blinding.
	NumChallenges int
	// SecurityBits is the targeted security level.
	SecurityBits int
	// ZeroKnowledge enables blinding rows.
	ZeroKnowledge bool
}

// StandardConfig returns the standard recursion-friendly configuration.
func StandardConfig() CircuitConfig {
	return CircuitConfig{
		NumWires:       135,
		NumRoutedWires: 80,
		RateBits:       3,
		CapHeight:      4,
		NumChallenges:  2,
		SecurityBits:   100,
	}
}

// NumAdviceWires is the number of non-routed wires per row.
func (c CircuitConfig) NumAdviceWires() int {
	return c.NumWires - c.NumRoutedWires
}

// minRoutedWires is what one op of the built-in extension arithmetic needs.
const minRoutedWires = 8

func (c CircuitConfig) check() error {
	if c.NumWires <= 0 {
		return fmt.Errorf("%w: NumWires must be positive", ErrInvalidConfig)
	}
	if c.NumRoutedWires < minRoutedWires || c.NumRoutedWires > c.NumWires {
		return fmt.Errorf("%w: NumRoutedWires must be in [%d, NumWires]", ErrInvalidConfig, minRoutedWires)
	}
	if c.RateBits < 0 || c.CapHeight < 0 {
		return fmt.Errorf("%w: negative commitment parameters", ErrInvalidConfig)
	}
	if c.NumChallenges < 1 {
		return fmt.Errorf("%w: NumChallenges must be at least 1", ErrInvalidConfig)
	}
	return nil
}
