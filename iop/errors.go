package iop

import "fmt"

// IncompleteWitnessError reports wire cells that were never written by any
// generator. It means the circuit's generators do not cover the whole grid, a
// modeling bug in the circuit rather than bad prover inputs.
type IncompleteWitnessError struct {
	Missing []Wire
}

func (e *IncompleteWitnessError) Error() string {
	const show = 8
	if len(e.Missing) <= show {
		return fmt.Sprintf("witness incomplete: %d wire(s) never written: %v", len(e.Missing), e.Missing)
	}
	return fmt.Sprintf("witness incomplete: %d wire(s) never written, first %d: %v", len(e.Missing), show, e.Missing[:show])
}

// UnsatisfiedGeneratorsError reports generators whose watch lists never became
// fully present, so they never ran. The indices refer to the generator list the
// scheduler was given.
type UnsatisfiedGeneratorsError struct {
	Indices []int
}

func (e *UnsatisfiedGeneratorsError) Error() string {
	return fmt.Sprintf("%d generator(s) never satisfied their dependencies: indices %v", len(e.Indices), e.Indices)
}
