package s1isp

import "testing"

func TestDecodeSasSbbImagingVariant(t *testing.T) {
	// bit0: ssb_flag=0; bits1-3: polarization=0b101; bits4-5: temp_comp=0b01;
	// bits6-7: reserved. bits8-11: dynamic_data=0b1010; bits12-13: reserved;
	// bits14-23: beam_address=1 (10 bits).
	buf := []byte{0b0_101_01_00, 0b1010_00_00, 0b0000_0001}

	r := NewBitReader(buf)
	s, err := decodeSasSbb(r)
	if err != nil {
		t.Fatal(err)
	}
	if s.Ssb_Flag {
		t.Error("Ssb_Flag = true, want false (imaging)")
	}
	if !s.IsImaging() {
		t.Error("IsImaging() = false, want true")
	}
	ev, err := s.ElevationBeamAddress(true)
	if err != nil {
		t.Fatal(err)
	}
	if ev != 0b1010 {
		t.Errorf("ElevationBeamAddress = %d, want %d", ev, 0b1010)
	}
	if _, err := s.SasTest(true); err == nil {
		t.Error("SasTest(true) on an imaging record should error")
	}
	if _, err := CalType[ECalTypeS1AB](s, true); err == nil {
		t.Error("CalType(true) on an imaging record should error")
	}
}

func TestCalTypeValidatesPlatformDialect(t *testing.T) {
	// dynamic_data low 3 bits = 5 (CalTypeReserved5): valid for S1C/D,
	// invalid for S1A/B.
	buf := []byte{0b1_000_0000, 0b0101_0000, 0}
	r := NewBitReader(buf)
	s, err := decodeSasSbb(r)
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsCalibration() {
		t.Fatal("expected a calibration-variant record")
	}

	if _, err := CalType[ECalTypeS1AB](s, true); err == nil {
		t.Error("CalType[ECalTypeS1AB] should reject cal type 5")
	}
	ct, err := CalType[ECalTypeS1CD](s, true)
	if err != nil {
		t.Fatalf("CalType[ECalTypeS1CD] should accept cal type 5: %v", err)
	}
	if ct != CalTypeReserved5 {
		t.Errorf("CalType = %v, want CalTypeReserved5", ct)
	}
}

func TestRxGainDb(t *testing.T) {
	c := RadarConfigurationSupport{Rx_Gain: 10}
	if got, want := c.RxGainDb(), -5.0; got != want {
		t.Errorf("RxGainDb() = %v, want %v", got, want)
	}
}

func TestBaqBlockLenSamples(t *testing.T) {
	c := RadarConfigurationSupport{Baq_Block_Len: 0}
	if got, want := c.BaqBlockLenSamples(), 8; got != want {
		t.Errorf("BaqBlockLenSamples() = %d, want %d", got, want)
	}
}

func TestDecodeRadarConfigurationSupportRejectsErrorFlag(t *testing.T) {
	buf := make([]byte, RADAR_CONFIG_SIZE)
	buf[0] = 0x80 // error_flag bit set
	if _, err := DecodeRadarConfigurationSupport(buf); err != ErrHeaderConsistency {
		t.Errorf("expected ErrHeaderConsistency, got %v", err)
	}
}

func TestDecodeRadarConfigurationSupportTruncated(t *testing.T) {
	if _, err := DecodeRadarConfigurationSupport(make([]byte, RADAR_CONFIG_SIZE-1)); err != ErrTruncated {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
