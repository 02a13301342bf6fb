package s1isp

import "testing"

// zeroSecondaryHeader builds a 62-byte secondary header that decodes
// cleanly under every sub-service's validation: every multi-bit
// enumerated field happens to be legal at its zero value (baq_mode=0 is
// BaqModeBypass, range_decimation=0 is RangeDecimation_X3_ON_4,
// test_mode=0 is TestModeDefault, ssb_flag=0 is the imaging variant),
// so the only field that needs to be set explicitly is the fixed
// ancillary data's sync marker.
func zeroSecondaryHeader() []byte {
	buf := make([]byte, SECONDARY_HEADER_SIZE)
	off := DATATION_SIZE
	buf[off] = byte(SYNC_MARKER >> 24)
	buf[off+1] = byte(SYNC_MARKER >> 16)
	buf[off+2] = byte(SYNC_MARKER >> 8)
	buf[off+3] = byte(SYNC_MARKER)
	return buf
}

func TestDecodeSecondaryHeaderRoundTrip(t *testing.T) {
	buf := zeroSecondaryHeader()
	h, err := DecodeSecondaryHeader[ECalTypeS1AB](buf)
	if err != nil {
		t.Fatal(err)
	}
	if h.Fixed_Ancillary.Sync_Marker != SYNC_MARKER {
		t.Errorf("Sync_Marker = %#x, want %#x", h.Fixed_Ancillary.Sync_Marker, uint32(SYNC_MARKER))
	}
	format, err := h.DataFormatType()
	if err != nil {
		t.Fatal(err)
	}
	// test_mode=TestModeDefault pairs with baq_mode=bypass as format B,
	// not A: format A is reserved for the bypass test modes
	// (TestModeBypass/TestModeContingencyRxmFullyBypassed).
	if format != DataFormatTypeB {
		t.Errorf("DataFormatType() = %v, want %v", format, DataFormatTypeB)
	}
}

func TestDecodeSecondaryHeaderTruncated(t *testing.T) {
	buf := zeroSecondaryHeader()[:SECONDARY_HEADER_SIZE-1]
	if _, err := DecodeSecondaryHeader[ECalTypeS1AB](buf); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeSecondaryHeaderPropagatesBadSyncMarker(t *testing.T) {
	buf := make([]byte, SECONDARY_HEADER_SIZE)
	if _, err := DecodeSecondaryHeader[ECalTypeS1AB](buf); err != ErrSyncMarker {
		t.Errorf("expected ErrSyncMarker, got %v", err)
	}
}

func TestDataFormatTypeReflectsBaqMode(t *testing.T) {
	buf := zeroSecondaryHeader()
	off := DATATION_SIZE + FIXED_ANCILLARY_SIZE + SUBCOMM_WORD_SIZE + COUNTERS_SIZE
	// baq_mode occupies bits 3-7 of the radar configuration support's
	// first byte (1 error_flag bit, 2 reserved bits, 5 baq_mode bits).
	buf[off] = byte(BaqModeBAQ4)

	h, err := DecodeSecondaryHeader[ECalTypeS1AB](buf)
	if err != nil {
		t.Fatal(err)
	}
	format, err := h.DataFormatType()
	if err != nil {
		t.Fatal(err)
	}
	if format != DataFormatTypeC {
		t.Errorf("DataFormatType() = %v, want %v", format, DataFormatTypeC)
	}
}
