package s1isp

import (
	"math"
	"testing"
)

func TestGetBaqLutMirrorsNegativeHalf(t *testing.T) {
	for _, mode := range []EBaqMode{BaqModeBAQ3, BaqModeBAQ4, BaqModeBAQ5} {
		nbits, _ := mode.BitsPerSample()
		n := 1 << (nbits - 1)
		for _, thidx := range []int{0, n - 1, n, 255} {
			lut, err := GetBaqLut(mode, thidx)
			if err != nil {
				t.Fatalf("mode=%v thidx=%d: %v", mode, thidx, err)
			}
			if len(lut) != 1<<nbits {
				t.Fatalf("mode=%v thidx=%d: len(lut)=%d, want %d", mode, thidx, len(lut), 1<<nbits)
			}
			for i := 0; i < n; i++ {
				if lut[n+i] != -lut[i] {
					t.Errorf("mode=%v thidx=%d: lut[%d]=%v is not -lut[%d]=%v", mode, thidx, n+i, lut[n+i], i, lut[i])
				}
			}
		}
	}
}

func TestGetFdbaqLutMirrorsNegativeHalf(t *testing.T) {
	for brc, n := range BRC_SIZE {
		for _, thidx := range []int{0, n - 1, n, 255} {
			lut, err := GetFdbaqLut(brc, thidx)
			if err != nil {
				t.Fatalf("brc=%v thidx=%d: %v", brc, thidx, err)
			}
			if len(lut) != 2*n {
				t.Fatalf("brc=%v thidx=%d: len(lut)=%d, want %d", brc, thidx, len(lut), 2*n)
			}
			for i := 0; i < n; i++ {
				if lut[n+i] != -lut[i] {
					t.Errorf("brc=%v thidx=%d: lut[%d]=%v is not -lut[%d]=%v", brc, thidx, n+i, lut[n+i], i, lut[i])
				}
			}
		}
	}
}

func TestGetBaqLutRejectsBypassAndOutOfRangeThidx(t *testing.T) {
	if _, err := GetBaqLut(BaqModeBypass, 0); err == nil {
		t.Error("expected an error for BaqModeBypass (not a BAQ reconstruction mode)")
	}
	if _, err := GetBaqLut(BaqModeBAQ3, 256); err == nil {
		t.Error("expected an error for an out-of-range THIDX")
	}
	if _, err := GetBaqLut(BaqModeBAQ3, -1); err == nil {
		t.Error("expected an error for a negative THIDX")
	}
}

func TestLookupRangeDecimationInfoRejectsReservedCode(t *testing.T) {
	if _, err := LookupRangeDecimationInfo(2); err == nil {
		t.Error("expected an error for the reserved range decimation code 2")
	}
}

func TestLookupTguTemperatureBounds(t *testing.T) {
	v, err := LookupTguTemperature(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 116.14 {
		t.Errorf("LookupTguTemperature(0) = %v, want 116.14", v)
	}
	if _, err := LookupTguTemperature(128); err == nil {
		t.Error("expected an error for an out-of-range TGU code")
	}
}

func TestLookupEfeTemperatureRejectsReservedHoles(t *testing.T) {
	for _, code := range []int{0, 1, 2, 3} {
		if _, err := LookupEfeTemperature(code); err == nil {
			t.Errorf("expected an error for reserved EFE temperature code %d", code)
		}
	}
	v, err := LookupEfeTemperature(4)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-(-51.38)) > 1e-9 {
		t.Errorf("LookupEfeTemperature(4) = %v, want -51.38", v)
	}
}
