package s1isp

import "testing"

func TestBlockSampleCount(t *testing.T) {
	cases := []struct {
		b, nb, nq, blocksize, want int
	}{
		{0, 3, 300, 128, 128},
		{1, 3, 300, 128, 128},
		{2, 3, 300, 128, 44}, // 300 - 256
		{0, 1, 0, 128, 0},
	}
	for _, c := range cases {
		if got := blockSampleCount(c.b, c.nb, c.nq, c.blocksize); got != c.want {
			t.Errorf("blockSampleCount(%d,%d,%d,%d) = %d, want %d", c.b, c.nb, c.nq, c.blocksize, got, c.want)
		}
	}
}

func TestAlignToWordBoundary(t *testing.T) {
	r := NewBitReader(make([]byte, 8))
	_, _ = r.ReadUint(3)
	alignToWordBoundary(r)
	if r.BitsConsumed() != 16 {
		t.Errorf("BitsConsumed() = %d, want 16", r.BitsConsumed())
	}

	r2 := NewBitReader(make([]byte, 8))
	_, _ = r2.ReadUint(16)
	alignToWordBoundary(r2)
	if r2.BitsConsumed() != 16 {
		t.Errorf("already-aligned reader should not move: got %d, want 16", r2.BitsConsumed())
	}
}

func TestDecodeFdbaqBlockIndicesRoundTrip(t *testing.T) {
	// Encode 3 BRC0 samples using their known Huffman codes, then
	// decode the raw magnitude indices and resolve them against a
	// nonzero-THIDX LUT (indices are BRC-only; THIDX is applied
	// separately, once it is known).
	brc := BRC0
	// Positive code index 1 ({0,1,0}), negative code index 0 ({1,0}),
	// positive code index 0 ({0,0}).
	bits := []int{0, 1, 0, 1, 0, 0, 0}
	r := NewBitReader(bitsToBuf(bits))

	idxs, err := decodeFdbaqBlockIndices(r, brc, 3)
	if err != nil {
		t.Fatal(err)
	}

	n := BRC_SIZE[brc]
	wantIdx := []int{1, n + 0, 0}
	for i := range wantIdx {
		if idxs[i] != wantIdx[i] {
			t.Errorf("idxs[%d] = %d, want %d", i, idxs[i], wantIdx[i])
		}
	}

	lut, err := GetFdbaqLut(brc, 7)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]float64, 3)
	if err := applyFdbaqLut(lut, idxs, out); err != nil {
		t.Fatal(err)
	}
	want := []float64{lut[1], lut[n+0], lut[0]}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

// TestDecodeFDBAQSharesThidxAcrossChannels builds a full four-channel
// FDBAQ block (a single BRC0 block, nq=3) with a nonzero Qe-carried
// THIDX and checks that Ie, Io and Qo are reconstructed through that
// same (BRC, THIDX) LUT rather than THIDX 0 — the echo-packet scenario
// of section 8.3.
func TestDecodeFDBAQSharesThidxAcrossChannels(t *testing.T) {
	const thidx = 5

	// Each channel reuses the same 7-bit code sequence: positive index
	// 1 ({0,1,0}), negative index 0 ({1,0}), positive index 0 ({0,0}).
	codeBits := []int{0, 1, 0, 1, 0, 0, 0}

	var bits []int
	// Ie: 3-bit BRC0 header + codes, padded to the 16-bit boundary.
	bits = append(bits, 0, 0, 0)
	bits = append(bits, codeBits...)
	bits = append(bits, make([]int, 6)...)
	// Io: codes only, padded to the 16-bit boundary.
	bits = append(bits, codeBits...)
	bits = append(bits, make([]int, 9)...)
	// Qe: 8-bit THIDX header + codes, padded to the 16-bit boundary.
	bits = append(bits, 0, 0, 0, 0, 0, 1, 0, 1) // thidx = 5
	bits = append(bits, codeBits...)
	bits = append(bits, 0)
	// Qo: codes only, no trailing alignment required.
	bits = append(bits, codeBits...)

	data := bitsToBuf(bits)

	samples, err := DecodeFDBAQ(data, 3)
	if err != nil {
		t.Fatal(err)
	}
	if samples.NumQuads() != 3 {
		t.Fatalf("NumQuads() = %d, want 3", samples.NumQuads())
	}

	lut, err := GetFdbaqLut(BRC0, thidx)
	if err != nil {
		t.Fatal(err)
	}
	n := BRC_SIZE[BRC0]
	want := []float32{float32(lut[1]), float32(lut[n+0]), float32(lut[0])}

	for k := 0; k < 3; k++ {
		if samples.Real[2*k] != want[k] {
			t.Errorf("Ie[%d] = %v, want %v (thidx=0 value would be wrong)", k, samples.Real[2*k], want[k])
		}
		if samples.Real[2*k+1] != want[k] {
			t.Errorf("Io[%d] = %v, want %v (thidx=0 value would be wrong)", k, samples.Real[2*k+1], want[k])
		}
		if samples.Imag[2*k] != want[k] {
			t.Errorf("Qe[%d] = %v, want %v", k, samples.Imag[2*k], want[k])
		}
		if samples.Imag[2*k+1] != want[k] {
			t.Errorf("Qo[%d] = %v, want %v (thidx=0 value would be wrong)", k, samples.Imag[2*k+1], want[k])
		}
	}
}

func TestDecodeFDBAQRejectsInvalidBrc(t *testing.T) {
	// BRC header of 0b101 = 5, which is not a valid BRC (max is 4).
	data := bitsToBuf([]int{1, 0, 1})
	if _, err := DecodeFDBAQ(data, 128); err == nil {
		t.Fatal("expected an error for an invalid BRC header")
	}
}
