package muhash

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

const (
	// elementBitSize is the bit width of a group element / Num3072.
	elementBitSize = 3072
	// elementByteSize is the number of bytes emitted by the keystream
	// generator and consumed as a group element: 384 bytes, matching
	// SerializedMuHashSize.
	elementByteSize = elementBitSize / 8
	// keyByteSize is the size of the key accepted by KeyToElement and FromKey.
	keyByteSize = 32
)

// KeystreamGenerator produces deterministic pseudorandom bytes from a fixed
// key. It exists as a seam between the core arithmetic and the concrete
// stream cipher choice: the production implementation is fixed (see
// NewChaCha20Keystream) and MUST NOT change without breaking
// interoperability with every other conformant implementation, but tests
// substitute a synthetic generator to exercise KeyToElement without pulling
// in the real cipher.
type KeystreamGenerator interface {
	// Keystream fills out with keystream bytes, starting from the
	// generator's initial state.
	Keystream(out []byte)
}

// chacha20Keystream is the production KeystreamGenerator: ChaCha20 keyed
// with the 32-byte input key, a 12-byte all-zero nonce, and counter 0. This
// exact construction is bit-for-bit the one used by the reference
// (Bitcoin Core's MuHash3072 constructor and kaspanet/go-muhash's
// dataToElement) and changing it yields an incompatible hash.
type chacha20Keystream struct {
	key [keyByteSize]byte
}

// NewChaCha20Keystream returns the fixed, reference-compatible keystream
// generator for the given 32-byte key.
func NewChaCha20Keystream(key [keyByteSize]byte) KeystreamGenerator {
	return chacha20Keystream{key: key}
}

func (g chacha20Keystream) Keystream(out []byte) {
	var zeroNonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(g.key[:], zeroNonce[:])
	if err != nil {
		// Only fails on a wrong key/nonce length, both of which are
		// fixed-size arrays here: a programmer error, not a runtime one.
		panic(err)
	}
	for i := range out {
		out[i] = 0
	}
	stream.XORKeyStream(out, out)
}

// KeyToElement deterministically expands a 32-byte key into a group
// element by drawing exactly 384 bytes from the fixed keystream generator
// and interpreting them as 48 little-endian uint64 limbs. The resulting
// value may be as large as 2^3072-1; the arithmetic layer tolerates any
// input in that range and only requires an explicit FullReduce before
// output.
func KeyToElement(key [keyByteSize]byte) Num3072 {
	return keyToElementWith(NewChaCha20Keystream(key))
}

func keyToElementWith(gen KeystreamGenerator) Num3072 {
	var buf [elementByteSize]byte
	gen.Keystream(buf[:])

	var out Num3072
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return out
}
