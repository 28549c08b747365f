package muhash

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// HashSize is the size, in bytes, of the compact Blake2b checksum
	// returned by MuHash3072.Hash. It is a convenience on top of the
	// 384-byte Finalize digest, not part of the interoperable core.
	HashSize = 32

	// SerializedMuHashSize is the length in bytes of a SerializedMuHash,
	// and of the digest produced by Finalize.
	SerializedMuHashSize = elementByteSize
)

var errOverflow = errors.New("value read from a serialized MuHash is >= the field modulus")

// Hash is a 32-byte checksum of a finalized digest, produced by
// MuHash3072.Hash. It is external framing around the core, kept for
// compact comparisons/storage; the 384-byte output of Finalize is the
// interoperable multiset digest.
type Hash [HashSize]byte

// IsEqual returns true if target holds the same bytes as hash.
func (hash Hash) IsEqual(target *Hash) bool {
	if target == nil {
		return false
	}
	return hash == *target
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (hash *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return errors.Errorf("invalid hash length got %d, expected %d", len(newHash), HashSize)
	}
	copy(hash[:], newHash)
	return nil
}

// String returns the Hash as a hexadecimal string.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// MuHash3072 is the multiset accumulator: a running product of inserted
// elements divided by the product of removed elements, modulo P. It is
// represented as a fraction (numerator, denominator) so that removal never
// pays for a modular inversion until the caller actually wants a digest;
// see the design notes on the "optional fractional representation".
//
// For the empty multiset, numerator == denominator == 1.
//
// A single MuHash3072 is not internally synchronized: callers must
// serialize mutating calls (MulAssign, DivAssign) on a given instance.
// Distinct instances are fully independent and may be used concurrently.
type MuHash3072 struct {
	numerator   Num3072
	denominator Num3072
}

// SerializedMuHash is the storage representation of a MuHash3072: the
// current numerator, normalized against the denominator, in little-endian
// limb order. Serialize always produces a value in [0, P), the same value
// Finalize encodes; DeserializeMuHash rejects any encoding >= P.
type SerializedMuHash [SerializedMuHashSize]byte

// String returns the SerializedMuHash as a hexadecimal string.
func (s SerializedMuHash) String() string {
	return hex.EncodeToString(s[:])
}

// New returns the accumulator for the empty multiset.
func New() *MuHash3072 {
	return &MuHash3072{
		numerator:   oneNum3072(),
		denominator: oneNum3072(),
	}
}

// FromKey returns the singleton accumulator holding exactly the element
// derived from the given 32-byte key.
func FromKey(key [32]byte) *MuHash3072 {
	return &MuHash3072{
		numerator:   KeyToElement(key),
		denominator: oneNum3072(),
	}
}

// Reset clears mu back to the empty multiset.
func (mu *MuHash3072) Reset() {
	mu.numerator.SetToOne()
	mu.denominator.SetToOne()
}

// Clone returns an independent copy of mu.
func (mu MuHash3072) Clone() *MuHash3072 {
	return &mu
}

// MulAssign folds other into mu, as if every element other represents had
// been individually inserted into mu. Commutative and associative: callers
// may fold a stream of elements into independent shard accumulators and
// combine the shards with MulAssign in any order (see utxoset.FoldSharded).
func (mu *MuHash3072) MulAssign(other *MuHash3072) {
	mu.numerator.Multiply(&other.numerator)
	mu.denominator.Multiply(&other.denominator)
}

// DivAssign removes other's elements from mu, as if they had never been
// inserted. Commutes with MulAssign: mu.MulAssign(x); mu.DivAssign(x)
// leaves mu bit-exactly as it was (after Finalize).
func (mu *MuHash3072) DivAssign(other *MuHash3072) {
	mu.numerator.Multiply(&other.denominator)
	mu.denominator.Multiply(&other.numerator)
}

// AddElement hashes the given data with Blake2b-256 into a 32-byte key and
// inserts the resulting element. Convenience wrapper around MulAssign for
// arbitrary-length payloads; the interoperable core operates on 32-byte
// keys directly via FromKey/MulAssign.
func (mu *MuHash3072) AddElement(data []byte) {
	mu.MulAssign(FromKey(blake2b.Sum256(data)))
}

// RemoveElement is the inverse of AddElement.
func (mu *MuHash3072) RemoveElement(data []byte) {
	mu.DivAssign(FromKey(blake2b.Sum256(data)))
}

// Combine is an alias for MulAssign, read as "combine two multiset
// accumulators" rather than "insert an element" at call sites that
// assemble shard results (utxoset.FoldSharded calls MulAssign directly).
func (mu *MuHash3072) Combine(other *MuHash3072) {
	mu.MulAssign(other)
}

// Finalize computes the canonical little-endian encoding of mu's current
// value, reduced into [0, P). It does not mutate mu: computing Finalize
// twice in a row, or interleaving it with further MulAssign/DivAssign
// calls, behaves exactly as if Finalize had never been called.
func (mu *MuHash3072) Finalize() [SerializedMuHashSize]byte {
	value := mu.numerator
	denomInv := mu.denominator.GetInverse()
	value.Multiply(&denomInv)

	var out [SerializedMuHashSize]byte
	writeNum3072LE(&value, out[:])
	return out
}

// Hash finalizes mu and additionally hashes the 384-byte digest down to a
// 32-byte Blake2b-256 checksum, for compact storage or comparison. This
// sits outside the interoperable core; two implementations only need to
// agree on Finalize's output, not on whether or how it's further hashed.
func (mu *MuHash3072) Hash() Hash {
	digest := mu.Finalize()
	return blake2b.Sum256(digest[:])
}

// Serialize normalizes mu (folding the denominator into the numerator and
// resetting the denominator to 1 — the same value, a different fraction)
// and returns the resulting numerator's byte encoding. Unlike Finalize,
// this is meant for round-tripping an in-progress accumulator through
// storage via DeserializeMuHash, not for producing an interoperable
// digest, and it does mutate mu's internal fraction (though not the value
// it represents).
func (mu *MuHash3072) Serialize() *SerializedMuHash {
	denomInv := mu.denominator.GetInverse()
	mu.numerator.Multiply(&denomInv)
	mu.denominator.SetToOne()

	var out SerializedMuHash
	writeNum3072LE(&mu.numerator, out[:])
	return &out
}

// DeserializeMuHash parses a SerializedMuHash produced by Serialize back
// into an accumulator with denominator 1. It returns errOverflow if the
// encoded value is not a canonical representative of [0, P).
func DeserializeMuHash(serialized *SerializedMuHash) (*MuHash3072, error) {
	var numerator Num3072
	readNum3072LE(serialized[:], &numerator)
	if numerator.IsOverflow() {
		return nil, errOverflow
	}
	return &MuHash3072{
		numerator:   numerator,
		denominator: oneNum3072(),
	}, nil
}

func writeNum3072LE(n *Num3072, out []byte) {
	for i := range n {
		binary.LittleEndian.PutUint64(out[i*8:], n[i])
	}
}

func readNum3072LE(in []byte, out *Num3072) {
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(in[i*8:])
	}
}
