// Package utxoset is the UTXO-traversal collaborator that spec.md places
// outside the muhash core: it turns UTXO records into the core's 32-byte
// keys, folds them into a MuHash3072 (optionally sharded across
// goroutines, exercising the core's associativity contract), and persists
// finalized digests as named snapshots.
package utxoset

import (
	"crypto/sha256"
	"encoding/binary"
)

// Outpoint identifies a transaction output: the transaction that created
// it and the output index within that transaction.
type Outpoint struct {
	TransactionID [32]byte
	Index         uint32
}

// UTXOEntry is the subset of a UTXO's data that participates in the
// multiset hash, mirroring kaspad's externalapi.UTXOEntry.
type UTXOEntry struct {
	Amount          uint64
	ScriptPublicKey []byte
	BlockBlueScore  uint64
	IsCoinbase      bool
}

// Record pairs an Outpoint with its UTXOEntry, the unit FoldSharded
// consumes.
type Record struct {
	Outpoint Outpoint
	Entry    UTXOEntry
}

// SerializeUTXO produces the canonical byte encoding of a UTXO used to
// derive its multiset key: txid || index || (2*blueScore + isCoinbase) ||
// amount || varint-length-prefixed script. The field order and varint
// convention match kaspad's domain/consensus/utils/utxo serialization and
// the theStack/utxo_dump_tools reference tool.
func SerializeUTXO(entry UTXOEntry, outpoint Outpoint) []byte {
	out := make([]byte, 0, 32+4+4+8+9+len(entry.ScriptPublicKey))
	out = append(out, outpoint.TransactionID[:]...)

	var tmp4 [4]byte
	binary.LittleEndian.PutUint32(tmp4[:], outpoint.Index)
	out = append(out, tmp4[:]...)

	coinbase := uint32(0)
	if entry.IsCoinbase {
		coinbase = 1
	}
	binary.LittleEndian.PutUint32(tmp4[:], uint32(2*entry.BlockBlueScore)+coinbase)
	out = append(out, tmp4[:]...)

	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], entry.Amount)
	out = append(out, tmp8[:]...)

	out = appendVarInt(out, uint64(len(entry.ScriptPublicKey)))
	out = append(out, entry.ScriptPublicKey...)
	return out
}

// appendVarInt appends n using Bitcoin's CompactSize convention, which is
// what theStack/utxo_dump_tools' serializeTransaction uses for the script
// length prefix.
func appendVarInt(out []byte, n uint64) []byte {
	switch {
	case n < 253:
		return append(out, byte(n))
	case n <= 0xffff:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(n))
		return append(append(out, 253), buf[:]...)
	case n <= 0xffffffff:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(n))
		return append(append(out, 254), buf[:]...)
	default:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		return append(append(out, 255), buf[:]...)
	}
}

// KeyFor derives the 32-byte key fed to muhash.FromKey for a UTXO record,
// by SHA-256-hashing its canonical serialization. See DESIGN.md's Open
// Question O1 for why this collaborator uses SHA-256 while the core
// package's own Blake2b-based AddElement/RemoveElement convenience layer
// does not: this hash is part of the UTXO-dump wire format this package
// reads, fixed by the theStack/utxo_dump_tools reference tool it's
// grounded on.
func KeyFor(record Record) [32]byte {
	return sha256.Sum256(SerializeUTXO(record.Entry, record.Outpoint))
}
