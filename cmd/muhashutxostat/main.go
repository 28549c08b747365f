// muhashutxostat folds a UTXO dump into a single MuHash3072 digest and
// prints it, in the spirit of theStack/utxo_dump_tools' hashing utility
// but built on the pure-Go MuHash3072 accumulator instead of shelling out
// to Bitcoin Core.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/kaspanet/go-muhash3072/config"
	"github.com/kaspanet/go-muhash3072/logger"
	"github.com/kaspanet/go-muhash3072/utxoset"
)

var log = logger.Subsystem("MAIN")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "muhashutxostat:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.UTXODumpPath)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Infof("parsing UTXO dump %s", cfg.UTXODumpPath)
	records, err := utxoset.ParseDump(f)
	if err != nil {
		return err
	}
	log.Infof("parsed %d UTXO records", len(records))

	log.Infof("folding into %d shards", cfg.Shards)
	acc := utxoset.FoldSharded(records, cfg.Shards)
	digest := acc.Finalize()
	checksum := acc.Hash()

	fmt.Printf("utxos:   %d\n", len(records))
	fmt.Printf("digest:  %s\n", hex.EncodeToString(digest[:]))
	fmt.Printf("hash256: %s\n", checksum)

	if cfg.SnapshotDB != "" {
		store, err := utxoset.OpenSnapshotStore(cfg.SnapshotDB)
		if err != nil {
			return err
		}
		defer store.Close()

		snapshot := utxoset.NewSnapshot(cfg.SnapshotName, len(records), acc, time.Now())
		if err := store.Put(snapshot); err != nil {
			return err
		}
		log.Infof("recorded snapshot %q (id %s)", snapshot.Name, snapshot.ID)
	}

	return nil
}
