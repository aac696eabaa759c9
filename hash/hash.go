// Package hash is the commitment collaborator consumed by the circuit builder
// at finalize time. It exposes a digest type, a field-element hasher and a
// capped Merkle root over column-major evaluation tables.
//
// The builder only ever needs roots and a circuit digest from this package; the
// full Merkle tree and opening machinery live with the prover, out of scope.
package hash

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"golang.org/x/crypto/blake2b"
)

// Digest is a 256-bit commitment digest.
type Digest [32]byte

// Hash hashes field elements in canonical form.
func Hash(values []goldilocks.Element) Digest {
	h, _ := blake2b.New256(nil)
	for i := range values {
		b := values[i].Bytes()
		h.Write(b[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// HashDigests combines digests into one; used for the circuit digest.
func HashDigests(ds ...Digest) Digest {
	h, _ := blake2b.New256(nil)
	for i := range ds {
		h.Write(ds[i][:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
