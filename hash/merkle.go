package hash

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/plonkworks/plonky2go/internal/parallel"
	"github.com/plonkworks/plonky2go/poly"
)

// Committer turns a batch of polynomial columns into a commitment root and a
// cap of intermediate digests. The builder treats it as an opaque collaborator;
// a prover implementation would additionally low-degree-extend the columns
// before committing.
type Committer interface {
	Commit(columns []poly.Values) (root Digest, cap []Digest, err error)
}

// MerkleCommitter commits to the evaluation table as-is with a capped binary
// Merkle tree. RateBits is recorded for downstream consumers; the blow-up
// itself is the FFT collaborator's job.
type MerkleCommitter struct {
	RateBits  int
	CapHeight int
}

func (mc MerkleCommitter) Commit(columns []poly.Values) (Digest, []Digest, error) {
	// CapHeight is sized for the low-degree-extended tree, which is RateBits
	// levels taller than the bare table committed here. A small table gets the
	// cap clamped to its own height rather than rejected.
	capHeight := mc.CapHeight
	if len(columns) > 0 {
		maxHeight := 0
		for 1<<(maxHeight+1) <= columns[0].Len() {
			maxHeight++
		}
		if capHeight > maxHeight {
			capHeight = maxHeight
		}
	}
	root, cap, err := MerkleRoot(columns, capHeight)
	if err != nil {
		return Digest{}, nil, fmt.Errorf("merkle commit: %w", err)
	}
	return root, cap, nil
}

// MerkleRoot builds a capped Merkle tree over a column-major table. Leaf i is
// the hash of row i across all columns. The tree is reduced until 2^capHeight
// digests remain; the root is the hash of that cap.
func MerkleRoot(columns []poly.Values, capHeight int) (Digest, []Digest, error) {
	if len(columns) == 0 {
		return Digest{}, nil, fmt.Errorf("empty table")
	}
	n := columns[0].Len()
	for i := range columns {
		if columns[i].Len() != n {
			return Digest{}, nil, fmt.Errorf("ragged table: column %d has %d rows, want %d", i, columns[i].Len(), n)
		}
	}
	if n&(n-1) != 0 {
		return Digest{}, nil, fmt.Errorf("table height %d is not a power of two", n)
	}
	if 1<<capHeight > n {
		return Digest{}, nil, fmt.Errorf("cap height %d exceeds tree height", capHeight)
	}

	leaves := make([]Digest, n)
	parallel.Execute(n, func(start, end int) {
		row := make([]goldilocks.Element, len(columns))
		for i := start; i < end; i++ {
			for j := range columns {
				row[j] = columns[j][i]
			}
			leaves[i] = Hash(row)
		}
	})

	level := leaves
	for len(level) > 1<<capHeight {
		next := make([]Digest, len(level)/2)
		parallel.Execute(len(next), func(start, end int) {
			for i := start; i < end; i++ {
				next[i] = HashDigests(level[2*i], level[2*i+1])
			}
		})
		level = next
	}

	return HashDigests(level...), level, nil
}
