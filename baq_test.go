package s1isp

import "testing"

func TestExtractThidxByteStride(t *testing.T) {
	// nbits=3, blocksize=4 -> blockstride = 3*4+8 = 20 bits -> step = 20/8 = 2 bytes.
	// Lay two blocks' THIDX bytes (0x11, 0x22) at bytes 0 and 2.
	data := []byte{0x11, 0x00, 0x22, 0x00}
	got := extractThidx(data, 3, 4, 2)
	want := []int{0x11, 0x22}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("thidx[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestUnpackBaqSamplesRoundTrip(t *testing.T) {
	nbits := 4
	values := []int{0, 1, 15, 8, 3}
	buf := make([]byte, 4)
	pos := 0
	for _, v := range values {
		for i := 0; i < nbits; i++ {
			bit := (v >> (nbits - 1 - i)) & 1
			if bit != 0 {
				buf[pos/8] |= 1 << (7 - pos%8)
			}
			pos++
		}
	}

	got, err := unpackBaqSamples(buf, nbits, len(values))
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range values {
		if got[i] != want {
			t.Errorf("sample %d = %d, want %d", i, got[i], want)
		}
	}
}

func TestUnpackBaqBlockSamplesSkipsThidxHeader(t *testing.T) {
	nbits := 4
	blocksize := 2
	nb := 2
	// Block 0: THIDX=0xAA, samples 1,2. Block 1: THIDX=0xBB, samples 3,4.
	buf := []byte{
		0xAA, 0x12, // thidx byte, then samples 1 and 2 packed into one byte
		0xBB, 0x34, // thidx byte, then samples 3 and 4
	}
	got, err := unpackBaqBlockSamples(buf, nbits, blocksize, nb, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDecodeBAQRejectsBypassMode(t *testing.T) {
	if _, err := DecodeBAQ(nil, 4, BaqModeBypass); err == nil {
		t.Fatal("expected an error decoding BAQ with the bypass mode")
	}
}

func TestDecodeBAQTruncated(t *testing.T) {
	if _, err := DecodeBAQ([]byte{0}, 128, BaqModeBAQ3); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
