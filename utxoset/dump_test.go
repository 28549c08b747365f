package utxoset

import (
	"strings"
	"testing"
)

func TestParseDump_ValidLines(t *testing.T) {
	input := strings.Join([]string{
		"# comment line, skipped",
		"",
		"0000000000000000000000000000000000000000000000000000000000000001:0:5000000000:1:true:76a914",
		"0000000000000000000000000000000000000000000000000000000000000002:1:100:2:false:51",
	}, "\n")

	records, err := ParseDump(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseDump: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if !records[0].Entry.IsCoinbase {
		t.Fatalf("expected first record to be a coinbase output")
	}
	if records[1].Entry.Amount != 100 {
		t.Fatalf("expected second record's amount to be 100, got %d", records[1].Entry.Amount)
	}
}

func TestParseDump_RejectsMalformedLine(t *testing.T) {
	_, err := ParseDump(strings.NewReader("not-enough-fields:1"))
	if err == nil {
		t.Fatalf("expected an error for a malformed line")
	}
}

func TestParseDump_RejectsBadTxid(t *testing.T) {
	_, err := ParseDump(strings.NewReader("zz:0:1:1:false:"))
	if err == nil {
		t.Fatalf("expected an error for a non-hex txid")
	}
}
