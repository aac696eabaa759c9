package plonk

import "errors"

var (
	// ErrInvalidConfig rejects a CircuitConfig at builder construction.
	ErrInvalidConfig = errors.New("plonk: invalid circuit config")

	// ErrGateTooWide rejects a gate whose wire footprint exceeds the config.
	ErrGateTooWide = errors.New("plonk: gate requires more wires than configured")

	// ErrConstantCount rejects a gate instance whose constants do not match
	// the gate's declared footprint.
	ErrConstantCount = errors.New("plonk: wrong number of gate constants")

	// ErrNotRoutable rejects an equality assertion on a target that cannot
	// participate in copy constraints.
	ErrNotRoutable = errors.New("plonk: target is not routable")
)
