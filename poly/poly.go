// Package poly holds the evaluation-form polynomial representation exchanged
// with the commitment collaborator. Coefficient-form arithmetic and FFTs are
// out of scope here; columns are handed over as plain evaluation vectors.
package poly

import "github.com/consensys/gnark-crypto/field/goldilocks"

// Values is a polynomial in evaluation form over a power-of-two domain.
type Values []goldilocks.Element

// NewValues returns a zero polynomial over a domain of the given size.
func NewValues(size int) Values {
	return make(Values, size)
}

// Len returns the domain size.
func (v Values) Len() int { return len(v) }
