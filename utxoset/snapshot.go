package utxoset

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/kaspanet/go-muhash3072"
)

// Snapshot is a named, persisted point-in-time multiset digest, grounded
// in kaspad's domain/consensus/datastructures/multisetstore: a multiset
// digest keyed by an identifier so a caller can later compare "is this
// UTXO set the same as the one I recorded before".
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UTXOCount int       `json:"utxoCount"`
	Digest    [384]byte `json:"digest"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSnapshot finalizes acc and wraps the digest with the metadata needed
// to store and later look it up.
func NewSnapshot(name string, utxoCount int, acc *muhash.MuHash3072, createdAt time.Time) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		UTXOCount: utxoCount,
		Digest:    acc.Finalize(),
		CreatedAt: createdAt,
	}
}

// SnapshotStore persists Snapshots in a LevelDB database, keyed by name,
// mirroring kaspad's use of syndtr/goleveldb as its on-disk UTXO/block
// store (see dbaccess/multiset.go in the retrieval pack for the same
// "serialize a multiset digest, put it in leveldb" pattern this adapts).
type SnapshotStore struct {
	db *leveldb.DB
}

// OpenSnapshotStore opens (creating if necessary) a LevelDB database at dir.
func OpenSnapshotStore(dir string) (*SnapshotStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot store at %s", dir)
	}
	return &SnapshotStore{db: db}, nil
}

// Close closes the underlying LevelDB database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Put persists snapshot under its Name.
func (s *SnapshotStore) Put(snapshot Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "marshaling snapshot")
	}
	if err := s.db.Put([]byte(snapshot.Name), data, nil); err != nil {
		return errors.Wrapf(err, "writing snapshot %s", snapshot.Name)
	}
	return nil
}

// Get loads the snapshot most recently stored under name.
func (s *SnapshotStore) Get(name string) (Snapshot, error) {
	data, err := s.db.Get([]byte(name), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return Snapshot{}, errors.Errorf("no snapshot named %q", name)
		}
		return Snapshot{}, errors.Wrapf(err, "reading snapshot %s", name)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, errors.Wrapf(err, "unmarshaling snapshot %s", name)
	}
	return snapshot, nil
}
