package utxoset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kaspanet/go-muhash3072"
)

func TestSnapshotStore_PutGetRoundtrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	store, err := OpenSnapshotStore(dir)
	if err != nil {
		t.Fatalf("OpenSnapshotStore: %v", err)
	}
	defer store.Close()

	acc := muhash.New()
	key := [32]byte{1, 2, 3}
	acc.MulAssign(muhash.FromKey(key))

	snapshot := NewSnapshot("tip", 1, acc, time.Unix(1700000000, 0).UTC())
	if err := store.Put(snapshot); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get("tip")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != snapshot.Name || got.UTXOCount != snapshot.UTXOCount {
		t.Fatalf("round-tripped snapshot metadata mismatch: got %+v, want %+v", got, snapshot)
	}
	if got.Digest != snapshot.Digest {
		t.Fatalf("round-tripped digest mismatch")
	}
	if !got.CreatedAt.Equal(snapshot.CreatedAt) {
		t.Fatalf("round-tripped CreatedAt mismatch: got %v, want %v", got.CreatedAt, snapshot.CreatedAt)
	}
}

func TestSnapshotStore_GetMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	store, err := OpenSnapshotStore(dir)
	if err != nil {
		t.Fatalf("OpenSnapshotStore: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("does-not-exist"); err == nil {
		t.Fatalf("expected an error looking up a missing snapshot")
	}
}

func TestSnapshotStore_PutOverwritesByName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	store, err := OpenSnapshotStore(dir)
	if err != nil {
		t.Fatalf("OpenSnapshotStore: %v", err)
	}
	defer store.Close()

	first := NewSnapshot("tip", 1, muhash.New(), time.Unix(1, 0).UTC())
	if err := store.Put(first); err != nil {
		t.Fatalf("Put(first): %v", err)
	}

	acc := muhash.New()
	acc.MulAssign(muhash.FromKey([32]byte{9}))
	second := NewSnapshot("tip", 2, acc, time.Unix(2, 0).UTC())
	if err := store.Put(second); err != nil {
		t.Fatalf("Put(second): %v", err)
	}

	got, err := store.Get("tip")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != second.ID || got.UTXOCount != 2 {
		t.Fatalf("expected the later Put to win, got %+v", got)
	}
}
