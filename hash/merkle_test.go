package hash

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/require"

	"github.com/plonkworks/plonky2go/poly"
)

func TestHashDeterministicAndSensitive(t *testing.T) {
	values := []goldilocks.Element{
		goldilocks.NewElement(1),
		goldilocks.NewElement(2),
		goldilocks.NewElement(3),
	}
	d1 := Hash(values)
	d2 := Hash(values)
	require.Equal(t, d1, d2)

	swapped := []goldilocks.Element{values[1], values[0], values[2]}
	require.NotEqual(t, d1, Hash(swapped))
	require.NotEqual(t, d1, Hash(values[:2]))
}

func TestHashDigestsOrderSensitive(t *testing.T) {
	a := Hash([]goldilocks.Element{goldilocks.NewElement(1)})
	b := Hash([]goldilocks.Element{goldilocks.NewElement(2)})
	require.NotEqual(t, HashDigests(a, b), HashDigests(b, a))
}

func testTable(numColumns, height int) []poly.Values {
	columns := make([]poly.Values, numColumns)
	for c := range columns {
		columns[c] = poly.NewValues(height)
		for r := 0; r < height; r++ {
			columns[c][r] = goldilocks.NewElement(uint64(c*height + r + 1))
		}
	}
	return columns
}

func TestMerkleRootRejectsBadTables(t *testing.T) {
	_, _, err := MerkleRoot(nil, 0)
	require.Error(t, err)

	ragged := testTable(2, 4)
	ragged[1] = ragged[1][:3]
	_, _, err = MerkleRoot(ragged, 0)
	require.Error(t, err)

	_, _, err = MerkleRoot(testTable(1, 3), 0)
	require.Error(t, err, "height must be a power of two")

	_, _, err = MerkleRoot(testTable(1, 4), 3)
	require.Error(t, err, "cap must not exceed the tree")
}

func TestMerkleRootCap(t *testing.T) {
	columns := testTable(3, 8)

	root0, cap0, err := MerkleRoot(columns, 0)
	require.NoError(t, err)
	require.Len(t, cap0, 1)
	require.Equal(t, HashDigests(cap0...), root0)

	root2, cap2, err := MerkleRoot(columns, 2)
	require.NoError(t, err)
	require.Len(t, cap2, 4)
	require.Equal(t, HashDigests(cap2...), root2)

	// Reducing the wider cap by hand reproduces the narrow one.
	reduced := []Digest{
		HashDigests(cap2[0], cap2[1]),
		HashDigests(cap2[2], cap2[3]),
	}
	require.Equal(t, cap0[0], HashDigests(reduced[0], reduced[1]))
}

func TestMerkleRootBindsEveryCell(t *testing.T) {
	columns := testTable(2, 4)
	root, _, err := MerkleRoot(columns, 0)
	require.NoError(t, err)

	columns[1][2] = goldilocks.NewElement(999)
	changed, _, err := MerkleRoot(columns, 0)
	require.NoError(t, err)
	require.NotEqual(t, root, changed)
}

func TestMerkleCommitterWrapsRoot(t *testing.T) {
	columns := testTable(2, 4)
	mc := MerkleCommitter{RateBits: 3, CapHeight: 1}

	root, cap, err := mc.Commit(columns)
	require.NoError(t, err)
	wantRoot, wantCap, err := MerkleRoot(columns, 1)
	require.NoError(t, err)
	require.Equal(t, wantRoot, root)
	require.Equal(t, wantCap, cap)
}

func TestMerkleCommitterClampsCap(t *testing.T) {
	// 4 rows but a cap sized for a taller, low-degree-extended tree: the cap
	// clamps to the table height instead of failing.
	columns := testTable(2, 4)
	root, cap, err := MerkleCommitter{RateBits: 3, CapHeight: 5}.Commit(columns)
	require.NoError(t, err)
	require.Len(t, cap, 4)

	wantRoot, wantCap, err := MerkleRoot(columns, 2)
	require.NoError(t, err)
	require.Equal(t, wantRoot, root)
	require.Equal(t, wantCap, cap)
}
