package muhash

import (
	"math/big"
	"math/rand"
	"testing"
)

// bigP mirrors the reference modulus via math/big, independent of the
// fixed-width schoolbook implementation, and is used purely as a test
// oracle (as the teacher's uint3072.go used math/big.Int.ModInverse for
// the same purpose).
var bigP = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), elementBitSize), big.NewInt(primeDiff))

func (n *Num3072) toBig() *big.Int {
	words := make([]big.Word, numLimbs)
	for i, limb := range n {
		words[i] = big.Word(limb)
	}
	return new(big.Int).SetBits(words)
}

func randomNum3072(r *rand.Rand) Num3072 {
	var n Num3072
	for i := range n {
		n[i] = r.Uint64()
	}
	return n
}

func TestNum3072_SetToOne(t *testing.T) {
	n := randomNum3072(rand.New(rand.NewSource(1)))
	n.SetToOne()
	if n != oneNum3072() {
		t.Fatalf("SetToOne left %v, want the identity", n)
	}
}

func TestNum3072_MultiplyMatchesBigInt(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		a := randomNum3072(r)
		b := randomNum3072(r)

		wantBig := new(big.Int).Mul(a.toBig(), b.toBig())
		wantBig.Mod(wantBig, bigP)

		a.Multiply(&b)
		if got := a.toBig(); got.Cmp(wantBig) != 0 {
			t.Fatalf("Multiply mismatch on iteration %d: got %x want %x", i, got, wantBig)
		}
		if a.IsOverflow() {
			t.Fatalf("Multiply result on iteration %d is >= P", i)
		}
	}
}

func TestNum3072_SquareMatchesMultiply(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		a := randomNum3072(r)
		square := a
		square.Square()

		product := a
		product.Multiply(&a)

		if square != product {
			t.Fatalf("Square/Multiply mismatch on iteration %d: square=%x product=%x", i, square, product)
		}
	}
}

func TestNum3072_GetInverseMatchesBigInt(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		a := randomNum3072(r)
		if a.IsOverflow() {
			a.FullReduce()
		}
		if a.toBig().Sign() == 0 {
			continue
		}

		want := new(big.Int).ModInverse(a.toBig(), bigP)

		inv := a.GetInverse()
		if inv.IsOverflow() {
			inv.FullReduce()
		}
		if got := inv.toBig(); got.Cmp(want) != 0 {
			t.Fatalf("GetInverse mismatch on iteration %d: got %x want %x", i, got, want)
		}
	}
}

func TestNum3072_GetInverse_DoubleInverseIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		var element Num3072
		for j := range element {
			element[j] = r.Uint64()
		}
		inv := element.GetInverse()
		again := inv.GetInverse()
		if again.IsOverflow() {
			again.FullReduce()
		}
		reduced := element
		if reduced.IsOverflow() {
			reduced.FullReduce()
		}
		if again != reduced {
			t.Fatalf("iteration %d: double inverting should be the identity: %x != %x", i, again, reduced)
		}
	}
}

func TestNum3072_FullReduceOverflow(t *testing.T) {
	var overflownOne Num3072
	for i := range overflownOne {
		overflownOne[i] = maxLimb
	}
	// Full max is 2^3072-1 = P + primeDiff - 1; subtracting (primeDiff-2)
	// leaves exactly P+1, i.e. a canonical 1 shifted up by one P.
	overflownOne[0] -= primeDiff - 2
	if !overflownOne.IsOverflow() {
		t.Fatalf("test setup bug: overflownOne should be >= P")
	}

	overflownOne.FullReduce()
	if overflownOne != oneNum3072() {
		t.Fatalf("expected FullReduce(P+1) == 1, got %x", overflownOne)
	}
}

func TestNum3072_MulMax(t *testing.T) {
	var max Num3072
	for i := range max {
		max[i] = maxLimb
	}
	max[0] -= primeDiff // max now holds P-1

	copyMax := max
	max.Multiply(&copyMax)
	if max != oneNum3072() {
		t.Fatalf("(P-1)*(P-1) mod P should be 1, got %x", max)
	}
}

const mulDivLoops = 150

func TestNum3072_MulDivRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	var list [mulDivLoops]Num3072
	start := oneNum3072()
	for i := 0; i < mulDivLoops; i++ {
		list[i] = randomNum3072(r)
		start.Multiply(&list[i])
	}
	if start == oneNum3072() {
		t.Fatalf("start should not be 1 after multiplying in %d random elements", mulDivLoops)
	}

	for i := 0; i < mulDivLoops; i++ {
		inv := list[i].GetInverse()
		start.Multiply(&inv)
	}
	if start.IsOverflow() {
		start.FullReduce()
	}
	if start != oneNum3072() {
		t.Fatalf("start should be back to 1 after dividing out everything multiplied in, got %x", start)
	}
}

func FuzzNum3072_MultiplyStaysInRange(f *testing.F) {
	f.Add(uint64(0), uint64(1))
	f.Add(maxLimb, maxLimb)
	f.Fuzz(func(t *testing.T, seedA, seedB uint64) {
		ra := rand.New(rand.NewSource(int64(seedA)))
		rb := rand.New(rand.NewSource(int64(seedB)))
		a := randomNum3072(ra)
		b := randomNum3072(rb)
		a.Multiply(&b)
		if a.toBig().Cmp(bigP) >= 0 {
			t.Fatalf("Multiply left a value >= P: %x", a)
		}
	})
}
