package utxoset

import "testing"

func sampleRecord(b byte) Record {
	var txid [32]byte
	txid[0] = b
	return Record{
		Outpoint: Outpoint{TransactionID: txid, Index: 1},
		Entry: UTXOEntry{
			Amount:          5_000_000_000,
			ScriptPublicKey: []byte{0x76, 0xa9, 0x14},
			BlockBlueScore:  42,
			IsCoinbase:      true,
		},
	}
}

func TestSerializeUTXO_Deterministic(t *testing.T) {
	r := sampleRecord(1)
	a := SerializeUTXO(r.Entry, r.Outpoint)
	b := SerializeUTXO(r.Entry, r.Outpoint)
	if string(a) != string(b) {
		t.Fatalf("SerializeUTXO should be deterministic for the same input")
	}
}

func TestSerializeUTXO_DiffersOnCoinbaseFlag(t *testing.T) {
	r := sampleRecord(1)
	withCoinbase := SerializeUTXO(r.Entry, r.Outpoint)

	r.Entry.IsCoinbase = false
	withoutCoinbase := SerializeUTXO(r.Entry, r.Outpoint)

	if string(withCoinbase) == string(withoutCoinbase) {
		t.Fatalf("the coinbase flag should affect the serialization")
	}
}

func TestKeyFor_DiffersPerOutpoint(t *testing.T) {
	a := sampleRecord(1)
	b := sampleRecord(2)
	if KeyFor(a) == KeyFor(b) {
		t.Fatalf("distinct outpoints should derive distinct keys")
	}
}

func TestAppendVarInt_Boundaries(t *testing.T) {
	cases := []struct {
		n       uint64
		wantLen int
	}{
		{0, 1},
		{252, 1},
		{253, 3},
		{0xffff, 3},
		{0x10000, 5},
		{0x100000000, 9},
	}
	for _, c := range cases {
		got := appendVarInt(nil, c.n)
		if len(got) != c.wantLen {
			t.Fatalf("appendVarInt(%d): got length %d, want %d", c.n, len(got), c.wantLen)
		}
	}
}
