// Package field provides the small amount of glue this library needs on top of
// the Goldilocks field implementation from gnark-crypto: multiplicative domain
// enumeration, coset shifts and a degree-2 algebraic extension.
//
// The field is p = 2^64 - 2^32 + 1. Its multiplicative group has two-adicity 32,
// which is what lets the prover work over power-of-two evaluation domains.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// TwoAdicity is the largest n such that 2^n divides p-1.
const TwoAdicity = 32

// powerOfTwoGenerator is a primitive 2^32-th root of unity.
const powerOfTwoGenerator uint64 = 1753635133440165772

// multiplicativeGenerator generates the full multiplicative group of the field.
const multiplicativeGenerator uint64 = 7

// PrimitiveRootOfUnity returns a primitive 2^nBits-th root of unity.
// nBits must be at most TwoAdicity.
func PrimitiveRootOfUnity(nBits int) goldilocks.Element {
	if nBits > TwoAdicity {
		panic("field: no root of unity of the requested order")
	}
	base := goldilocks.NewElement(powerOfTwoGenerator)
	exp := new(big.Int).Lsh(big.NewInt(1), uint(TwoAdicity-nBits))
	var res goldilocks.Element
	res.Exp(base, exp)
	return res
}

// TwoAdicSubgroup returns the cyclic subgroup of order 2^nBits, enumerated as
// successive powers of its generator, starting at one.
func TwoAdicSubgroup(nBits int) []goldilocks.Element {
	g := PrimitiveRootOfUnity(nBits)
	subgroup := make([]goldilocks.Element, 1<<nBits)
	subgroup[0].SetOne()
	for i := 1; i < len(subgroup); i++ {
		subgroup[i].Mul(&subgroup[i-1], &g)
	}
	return subgroup
}

// CosetShifts returns n field elements g^0, ..., g^(n-1) with g the
// multiplicative group generator. Since g has order p-1, which is not divisible
// by 2^64, the cosets g^i * H of any proper two-adic subgroup H are pairwise
// disjoint, which is the property the permutation argument relies on.
func CosetShifts(n int) []goldilocks.Element {
	g := goldilocks.NewElement(multiplicativeGenerator)
	shifts := make([]goldilocks.Element, n)
	shifts[0].SetOne()
	for i := 1; i < n; i++ {
		shifts[i].Mul(&shifts[i-1], &g)
	}
	return shifts
}
