package utxoset

import "testing"

func sampleRecords(n int) []Record {
	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = sampleRecord(byte(i))
		records[i].Outpoint.Index = uint32(i)
	}
	return records
}

func TestFoldSharded_MatchesSequentialAcrossShardCounts(t *testing.T) {
	records := sampleRecords(97)
	want := foldSequential(records).Finalize()

	for _, shards := range []int{1, 2, 5, 17, 97, 200} {
		got := FoldSharded(records, shards).Finalize()
		if got != want {
			t.Fatalf("FoldSharded with %d shards diverged from the sequential fold", shards)
		}
	}
}

func TestFoldSharded_EmptyInput(t *testing.T) {
	got := FoldSharded(nil, 4).Finalize()
	want := foldSequential(nil).Finalize()
	if got != want {
		t.Fatalf("folding an empty record set should match the empty accumulator")
	}
}
