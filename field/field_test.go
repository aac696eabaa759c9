package field

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveRootOfUnityOrder(t *testing.T) {
	for nBits := 0; nBits <= 12; nBits++ {
		r := PrimitiveRootOfUnity(nBits)

		var full goldilocks.Element
		full.Exp(r, new(big.Int).Lsh(big.NewInt(1), uint(nBits)))
		require.True(t, full.IsOne(), "root must have order dividing 2^%d", nBits)

		if nBits > 0 {
			var half goldilocks.Element
			half.Exp(r, new(big.Int).Lsh(big.NewInt(1), uint(nBits-1)))
			require.False(t, half.IsOne(), "root of order 2^%d must be primitive", nBits)
		}
	}
}

func TestPrimitiveRootOfUnityTooLarge(t *testing.T) {
	require.Panics(t, func() { PrimitiveRootOfUnity(TwoAdicity + 1) })
}

func TestTwoAdicSubgroup(t *testing.T) {
	const nBits = 5
	sub := TwoAdicSubgroup(nBits)
	require.Len(t, sub, 1<<nBits)
	require.True(t, sub[0].IsOne())

	// Successive powers of a primitive root enumerate the subgroup without
	// repetition.
	seen := make(map[goldilocks.Element]struct{}, len(sub))
	for _, x := range sub {
		_, dup := seen[x]
		require.False(t, dup)
		seen[x] = struct{}{}
	}

	g := PrimitiveRootOfUnity(nBits)
	var next goldilocks.Element
	next.Mul(&sub[len(sub)-1], &g)
	require.True(t, next.IsOne(), "subgroup must be cyclic of order 2^%d", nBits)
}

func TestCosetShiftsDisjoint(t *testing.T) {
	const nBits = 4
	shifts := CosetShifts(20)
	require.True(t, shifts[0].IsOne())

	sub := TwoAdicSubgroup(nBits)
	seen := make(map[goldilocks.Element]struct{})
	for _, s := range shifts {
		for _, x := range sub {
			var y goldilocks.Element
			y.Mul(&s, &x)
			_, dup := seen[y]
			require.False(t, dup, "cosets of distinct shifts must not intersect")
			seen[y] = struct{}{}
		}
	}
	require.Len(t, seen, len(shifts)*len(sub))
}
