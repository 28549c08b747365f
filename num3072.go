package muhash

import "math/bits"

const (
	// limbBits is the width, in bits, of a single limb. Go always has a
	// uint64 and a 128-bit double-width multiply (math/bits.Mul64), so
	// unlike the C reference this package never falls back to 32-bit limbs.
	limbBits = 64

	// numLimbs is the number of limbs needed to hold a 3072-bit value.
	numLimbs = elementBitSize / limbBits

	// primeDiff is C in P = 2^3072 - C.
	primeDiff = 1103717

	maxLimb = ^uint64(0)
)

// Num3072 is a nonnegative integer strictly less than 2^3072, represented
// as 48 little-endian uint64 limbs. Values are not canonically reduced on
// construction: KeyToElement may yield a value in [P, 2^3072). Multiply,
// Square and GetInverse accept any value below 2^3072 and always leave
// their result in [0, P).
type Num3072 [numLimbs]uint64

// oneNum3072 returns the multiplicative identity of the group.
func oneNum3072() Num3072 {
	return Num3072{1}
}

// SetToOne resets n to the multiplicative identity.
func (n *Num3072) SetToOne() {
	n[0] = 1
	for i := 1; i < numLimbs; i++ {
		n[i] = 0
	}
}

// IsOverflow reports whether n >= P.
func (n *Num3072) IsOverflow() bool {
	if n[0] <= maxLimb-primeDiff {
		return false
	}
	for i := 1; i < numLimbs; i++ {
		if n[i] != maxLimb {
			return false
		}
	}
	return true
}

// FullReduce brings n from [0, 2*P) down into [0, P), exploiting
// 2^3072 = C (mod P): adding C to limb 0 and propagating the carry is
// equivalent to subtracting P once. The carry out of the top limb is
// discarded; the precondition n < 2*P guarantees that's correct.
func (n *Num3072) FullReduce() {
	low := uint64(primeDiff)
	var high uint64
	for i := 0; i < numLimbs; i++ {
		addAndExtract2(&low, &high, &n[i], n[i])
	}
}

// mul computes [low,high] = a*b.
func mul(low, high *uint64, a, b uint64) {
	*high, *low = bits.Mul64(a, b)
}

// muladd3 accumulates [low,high,carry] += a*b.
func muladd3(low, high, carry *uint64, a, b uint64) {
	th, tl := bits.Mul64(a, b)
	var c uint64
	*low, c = bits.Add64(*low, tl, 0)
	*high, c = bits.Add64(*high, th, c)
	*carry += c
}

// muldbladd3 accumulates [low,high,carry] += 2*a*b, exploiting the
// symmetry a[i]*a[k-i] + a[k-i]*a[i] used by Square.
func muldbladd3(low, high, carry *uint64, a, b uint64) {
	th, tl := bits.Mul64(a, b)
	var c uint64
	*low, c = bits.Add64(*low, tl, 0)
	*high, c = bits.Add64(*high, th, c)
	*carry += c
	*low, c = bits.Add64(*low, tl, 0)
	*high, c = bits.Add64(*high, th, c)
	*carry += c
}

// mulnadd3 sets [c0,c1,c2] += n*[d0,d1,d2] for small n (here n = primeDiff,
// which always fits so that n*maxLimb fits in a double-width limb plus 1).
func mulnadd3(c0, c1, c2 *uint64, d0, d1, d2, n uint64) {
	th, tl := bits.Mul64(d0, n)
	var carry uint64
	*c0, carry = bits.Add64(*c0, tl, 0)
	th += carry

	th2, tl2 := bits.Mul64(d1, n)
	*c1, carry = bits.Add64(tl2, *c1, 0)
	th2 += carry
	*c1, carry = bits.Add64(*c1, th, 0)
	th2 += carry

	*c2 = th2 + d2*n
}

// muln2 sets [low,high] *= n.
func muln2(low, high *uint64, n uint64) {
	var tmpLow, tmpHigh uint64
	tmpHigh, *low = bits.Mul64(*low, n)
	_, tmpLow = bits.Mul64(*high, n)
	*high = tmpHigh + tmpLow
}

// addAndExtract2 adds a into [low,high], then extracts the (now shifted)
// low limb into n and shifts the accumulator down by one limb.
func addAndExtract2(low, high, n *uint64, a uint64) {
	var carry uint64
	*low, carry = bits.Add64(*low, a, 0)
	*high, carry = bits.Add64(*high, 0, carry)
	*n = *low
	*low = *high
	*high = carry
}

// extract3 extracts the low limb of [c0,c1,c2] into n and shifts down by one limb.
func extract3(c0, c1, c2, n *uint64) {
	*n = *c0
	*c0 = *c1
	*c1 = *c2
	*c2 = 0
}

func assertf(cond bool, msg string) {
	if debugAsserts && !cond {
		panic(msg)
	}
}

// Multiply sets n := n*rhs (mod P), leaving n in [0, P).
func (n *Num3072) Multiply(rhs *Num3072) {
	var c0, c1 uint64
	var tmp Num3072

	// Compute limbs 0..N-2 of n*rhs into tmp, including one reduction.
	for j := 0; j < numLimbs-1; j++ {
		var d0, d1, d2, c2 uint64
		mul(&d0, &d1, n[1+j], rhs[numLimbs+j-(1+j)])
		for i := 2 + j; i < numLimbs; i++ {
			muladd3(&d0, &d1, &d2, n[i], rhs[numLimbs+j-i])
		}
		mulnadd3(&c0, &c1, &c2, d0, d1, d2, primeDiff)
		for i := 0; i < j+1; i++ {
			muladd3(&c0, &c1, &c2, n[i], rhs[j-i])
		}
		extract3(&c0, &c1, &c2, &tmp[j])
	}

	// Compute limb N-1 of n*rhs into tmp.
	{
		var c2 uint64
		for i := 0; i < numLimbs; i++ {
			muladd3(&c0, &c1, &c2, n[i], rhs[numLimbs-1-i])
		}
		extract3(&c0, &c1, &c2, &tmp[numLimbs-1])
	}

	// Second reduction.
	muln2(&c0, &c1, primeDiff)
	for j := 0; j < numLimbs; j++ {
		addAndExtract2(&c0, &c1, &n[j], tmp[j])
	}
	assertf(c1 == 0, "muhash: Multiply: unexpected high carry")
	assertf(c0 == 0 || c0 == 1, "muhash: Multiply: carry out of range")

	// Up to two more conditional reductions.
	if n.IsOverflow() {
		n.FullReduce()
	}
	if c0 > 0 {
		n.FullReduce()
	}
}

// Square sets n := n*n (mod P), leaving n in [0, P).
func (n *Num3072) Square() {
	var low, high, carry uint64
	var tmp Num3072

	for j := 0; j < numLimbs-1; j++ {
		var c0, c1, c2 uint64

		for i := 0; i < (numLimbs-1-j)/2; i++ {
			muldbladd3(&c0, &c1, &c2, n[i+j+1], n[numLimbs-1-i])
		}
		if (j+1)&1 == 1 {
			muladd3(&c0, &c1, &c2, n[(numLimbs-1-j)/2+j+1], n[numLimbs-1-(numLimbs-1-j)/2])
		}
		mulnadd3(&low, &high, &carry, c0, c1, c2, primeDiff)

		for i := 0; i < (j+1)/2; i++ {
			muldbladd3(&low, &high, &carry, n[i], n[j-i])
		}
		if (j+1)&1 == 1 {
			muladd3(&low, &high, &carry, n[(j+1)/2], n[j-(j+1)/2])
		}
		extract3(&low, &high, &carry, &tmp[j])
	}
	assertf(carry == 0, "muhash: Square: unexpected carry into limb 2")

	for i := 0; i < numLimbs/2; i++ {
		muldbladd3(&low, &high, &carry, n[i], n[numLimbs-1-i])
	}
	extract3(&low, &high, &carry, &tmp[numLimbs-1])

	muln2(&low, &high, primeDiff)
	for j := 0; j < numLimbs; j++ {
		addAndExtract2(&low, &high, &n[j], tmp[j])
	}
	assertf(high == 0, "muhash: Square: unexpected high carry")
	assertf(low == 0 || low == 1, "muhash: Square: carry out of range")

	if n.IsOverflow() {
		n.FullReduce()
	}
	if low > 0 {
		n.FullReduce()
	}
}

// squareNMul sets n := n^(2^exp) * mul, i.e. exp squarings followed by one multiply.
func (n *Num3072) squareNMul(exp int, mul *Num3072) {
	for j := 0; j < exp; j++ {
		n.Square()
	}
	n.Multiply(mul)
}

// GetInverse returns n^(P-2) mod P, the multiplicative inverse of n, via a
// fixed-window addition chain over the binary expansion of P-2. The
// squarings/multiplies schedule below is the exact hard-coded schedule
// mandated by the specification: it must not be regenerated at runtime.
//
// n is assumed nonzero mod P; behavior for n == 0 is undefined, as it
// would be for any modular inverse.
func (n *Num3072) GetInverse() Num3072 {
	// repunits[i] = n^(2^(2^i) - 1), the "all-ones" building blocks of
	// the sliding-window exponentiation. See Brumley & Järvinen, "Fast
	// Point Decompression for Standard Elliptic Curves" (2008).
	var repunits [12]Num3072
	repunits[0] = *n
	for i := 0; i < 11; i++ {
		repunits[i+1] = repunits[i]
		for j := 0; j < (1 << i); j++ {
			repunits[i+1].Square()
		}
		repunits[i+1].Multiply(&repunits[i])
	}

	res := repunits[11]
	res.squareNMul(512, &repunits[9])
	res.squareNMul(256, &repunits[8])
	res.squareNMul(128, &repunits[7])
	res.squareNMul(64, &repunits[6])
	res.squareNMul(32, &repunits[5])
	res.squareNMul(8, &repunits[3])
	res.squareNMul(2, &repunits[1])
	res.squareNMul(1, &repunits[0])
	res.squareNMul(5, &repunits[2])
	res.squareNMul(3, &repunits[0])
	res.squareNMul(2, &repunits[0])
	res.squareNMul(4, &repunits[0])
	res.squareNMul(4, &repunits[1])
	res.squareNMul(3, &repunits[0])
	return res
}
