package s1isp

import "testing"

func TestSubcomRecordSizesPartitionCycle(t *testing.T) {
	// PVT (22 words) + Attitude (19 words) + HK (23 words) must exactly
	// tile the 64-word cycle with no gaps or overlap.
	if got, want := pvtRecordInfo.nWords, 22; got != want {
		t.Errorf("pvt words = %d, want %d", got, want)
	}
	if got, want := attRecordInfo.nWords, 19; got != want {
		t.Errorf("attitude words = %d, want %d", got, want)
	}
	if got, want := hkRecordInfo.nWords, 23; got != want {
		t.Errorf("hk words = %d, want %d", got, want)
	}
	if got, want := pvtRecordInfo.nWords+attRecordInfo.nWords+hkRecordInfo.nWords, MAX_WORD_INDEX; got != want {
		t.Errorf("sum of record words = %d, want %d", got, want)
	}
	if got, want := attRecordInfo.firstWordIndex, pvtRecordInfo.lastWordIndex()+1; got != want {
		t.Errorf("attitude does not immediately follow pvt: first=%d, want %d", got, want)
	}
	if got, want := hkRecordInfo.firstWordIndex, attRecordInfo.lastWordIndex()+1; got != want {
		t.Errorf("hk does not immediately follow attitude: first=%d, want %d", got, want)
	}
	if got := hkRecordInfo.lastWordIndex(); got != MAX_WORD_INDEX {
		t.Errorf("hk does not end the cycle: last=%d, want %d", got, MAX_WORD_INDEX)
	}
}

// fullCycleFragments builds one complete, well-formed cycle's worth of
// fragments (word indexes 1..64) starting at the given packet count.
func fullCycleFragments(startPacketCount int) []SubCommFragment {
	frags := make([]SubCommFragment, MAX_WORD_INDEX)
	for i := 0; i < MAX_WORD_INDEX; i++ {
		frags[i] = SubCommFragment{
			PacketCount: startPacketCount + i,
			Word:        SubCommWord{Word_Index: uint8(i + 1)},
		}
	}
	return frags
}

func TestSubCommReassemblerCompletesOneCycle(t *testing.T) {
	r := NewSubCommReassembler()
	for _, f := range fullCycleFragments(0) {
		if err := r.Feed(f); err != nil {
			t.Fatalf("Feed: %v", err)
		}
	}
	cycles := r.Finalize()
	if len(cycles) != 1 {
		t.Fatalf("len(cycles) = %d, want 1", len(cycles))
	}
	if !cycles[0].IsComplete() {
		t.Error("cycle should be complete")
	}
}

func TestSubCommReassemblerZeroIndexIgnored(t *testing.T) {
	r := NewSubCommReassembler()
	if err := r.Feed(SubCommFragment{PacketCount: 0, Word: SubCommWord{Word_Index: 0}}); err != nil {
		t.Fatal(err)
	}
	if r.current != nil {
		t.Error("a zero word index should not start a cycle")
	}
}

func TestSubCommReassemblerBreaksOnIndexRegression(t *testing.T) {
	r := NewSubCommReassembler()
	frags := []SubCommFragment{
		{PacketCount: 0, Word: SubCommWord{Word_Index: 10}},
		{PacketCount: 1, Word: SubCommWord{Word_Index: 11}},
		{PacketCount: 2, Word: SubCommWord{Word_Index: 5}}, // regression: new cycle
	}
	for _, f := range frags {
		if err := r.Feed(f); err != nil {
			t.Fatal(err)
		}
	}
	cycles := r.Finalize()
	if len(cycles) != 2 {
		t.Fatalf("len(cycles) = %d, want 2", len(cycles))
	}
	if len(cycles[0].words) != 2 {
		t.Errorf("first cycle has %d words, want 2", len(cycles[0].words))
	}
	if len(cycles[1].words) != 1 {
		t.Errorf("second cycle has %d words, want 1", len(cycles[1].words))
	}
}

func TestSubCommReassemblerBreaksOnPacketCountGap(t *testing.T) {
	r := NewSubCommReassembler()
	frags := []SubCommFragment{
		{PacketCount: 0, Word: SubCommWord{Word_Index: 1}},
		{PacketCount: 1, Word: SubCommWord{Word_Index: 2}},
		{PacketCount: 5, Word: SubCommWord{Word_Index: 3}}, // dropped packets: new cycle
	}
	for _, f := range frags {
		if err := r.Feed(f); err != nil {
			t.Fatal(err)
		}
	}
	cycles := r.Finalize()
	if len(cycles) != 2 {
		t.Fatalf("len(cycles) = %d, want 2", len(cycles))
	}
}

func TestSubCommReassemblerRejectsOutOfRangeIndex(t *testing.T) {
	r := NewSubCommReassembler()
	err := r.Feed(SubCommFragment{PacketCount: 0, Word: SubCommWord{Word_Index: MAX_WORD_INDEX + 1}})
	if err == nil {
		t.Fatal("expected an error for an out-of-range word index")
	}
}

func TestDecodeCyclesDropsIncompleteCycles(t *testing.T) {
	r := NewSubCommReassembler()
	// One complete cycle, then a short, incomplete trailing run.
	for _, f := range fullCycleFragments(0) {
		if err := r.Feed(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Feed(SubCommFragment{PacketCount: 64, Word: SubCommWord{Word_Index: 1}}); err != nil {
		t.Fatal(err)
	}

	decoded, incomplete := DecodeCycles(r.Finalize())
	if len(decoded) != 1 {
		t.Fatalf("len(decoded) = %d, want 1", len(decoded))
	}
	if incomplete != 1 {
		t.Errorf("incomplete = %d, want 1", incomplete)
	}
}
