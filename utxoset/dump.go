package utxoset

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDump reads a newline-delimited UTXO dump from r, one record per
// line, in the format:
//
//	txid:vout:amount:blueScore:coinbase:scriptHex
//
// Blank lines and lines starting with '#' are skipped. This is
// deliberately close to the row layout theStack/utxo_dump_tools reads out
// of its sqlite table, flattened into a plain text format so this package
// doesn't need a SQL driver dependency to demonstrate FoldSharded.
func ParseDump(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	// UTXO scripts can be large; grow the scan buffer past bufio's default.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		record, err := parseDumpLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading UTXO dump")
	}
	return records, nil
}

func parseDumpLine(line string) (Record, error) {
	fields := strings.Split(line, ":")
	if len(fields) != 6 {
		return Record{}, errors.Errorf("expected 6 ':'-separated fields, got %d", len(fields))
	}

	txidBytes, err := hex.DecodeString(fields[0])
	if err != nil || len(txidBytes) != 32 {
		return Record{}, errors.Errorf("invalid txid %q", fields[0])
	}
	var txid [32]byte
	copy(txid[:], txidBytes)

	vout, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return Record{}, errors.Wrapf(err, "invalid vout %q", fields[1])
	}
	amount, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Record{}, errors.Wrapf(err, "invalid amount %q", fields[2])
	}
	blueScore, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return Record{}, errors.Wrapf(err, "invalid blueScore %q", fields[3])
	}
	coinbase, err := strconv.ParseBool(fields[4])
	if err != nil {
		return Record{}, errors.Wrapf(err, "invalid coinbase flag %q", fields[4])
	}
	script, err := hex.DecodeString(fields[5])
	if err != nil {
		return Record{}, errors.Wrapf(err, "invalid scriptPubKey hex %q", fields[5])
	}

	return Record{
		Outpoint: Outpoint{TransactionID: txid, Index: uint32(vout)},
		Entry: UTXOEntry{
			Amount:          amount,
			ScriptPublicKey: script,
			BlockBlueScore:  blueScore,
			IsCoinbase:      coinbase,
		},
	}, nil
}
