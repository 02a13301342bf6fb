package s1isp

import "math"

// SasSbb is the 3-byte SAS (SAR Antenna Subsystem) tagged-variant
// record (S1-IF-ASD-PL-0007, section 3.2.5.13). Which interpretation
// of the trailing (u4, u10) tail applies depends on Ssb_Flag: a raw
// accessor pair, plus checked accessors that refuse to read the wrong
// variant, mirror the reference decoder's get_*(check=True) methods.
type SasSbb struct {
	Ssb_Flag                  bool
	Polarization               EPolarization
	Temperature_Compensation   ETemperatureCompensation
	dynamicData                uint8 // raw 4-bit tail
	beamAddress                uint16 // raw 10-bit tail
}

func decodeSasSbb(r *BitReader) (SasSbb, error) {
	var s SasSbb
	base := r.BitsConsumed()

	b, err := r.ReadBool()
	if err != nil {
		return s, err
	}
	s.Ssb_Flag = b

	v, err := r.ReadUint(3)
	if err != nil {
		return s, err
	}
	s.Polarization = EPolarization(v)

	v, err = r.ReadUint(2)
	if err != nil {
		return s, err
	}
	s.Temperature_Compensation = ETemperatureCompensation(v)

	// dynamic_data is at relative offset 8, beam_address at 14.
	r.SeekBits(base + 8)
	v, err = r.ReadUint(4)
	if err != nil {
		return s, err
	}
	s.dynamicData = uint8(v)

	r.SeekBits(base + 14)
	v, err = r.ReadUint(10)
	if err != nil {
		return s, err
	}
	s.beamAddress = uint16(v)

	r.SeekBits(base + 24)
	return s, nil
}

// IsImaging reports whether this SAS record carries the imaging
// variant's elevation/azimuth beam addresses (Ssb_Flag == false).
func (s SasSbb) IsImaging() bool { return !s.Ssb_Flag }

// IsCalibration reports whether this SAS record carries the
// calibration variant's sas_test/cal_type/calibration_beam_address
// (Ssb_Flag == true).
func (s SasSbb) IsCalibration() bool { return s.Ssb_Flag }

// ElevationBeamAddress returns the imaging elevation beam address. If
// check is true and this is not an imaging record, it returns an
// error instead of a meaningless bit pattern.
func (s SasSbb) ElevationBeamAddress(check bool) (uint8, error) {
	if check && !s.IsImaging() {
		return 0, &InvalidEnumError{Enum: "SasSbb.ElevationBeamAddress (not imaging)", Value: uint64(s.dynamicData)}
	}
	return s.dynamicData, nil
}

// AzimuthBeamAddress returns the imaging azimuth beam address.
func (s SasSbb) AzimuthBeamAddress(check bool) (uint16, error) {
	if check && !s.IsImaging() {
		return 0, &InvalidEnumError{Enum: "SasSbb.AzimuthBeamAddress (not imaging)", Value: uint64(s.beamAddress)}
	}
	return s.beamAddress, nil
}

// SasTest returns the calibration variant's sas_test flag (top bit of
// the dynamic data tail).
func (s SasSbb) SasTest(check bool) (ESasTestMode, error) {
	if check && !s.IsCalibration() {
		return 0, &InvalidEnumError{Enum: "SasSbb.SasTest (not calibration)", Value: uint64(s.dynamicData)}
	}
	return ESasTestMode((s.dynamicData >> 3) & 1), nil
}

// CalType returns the calibration variant's cal_type (low 3 bits of
// the dynamic data tail), validated against the platform dialect C.
func CalType[C CalTypeValidator](s SasSbb, check bool) (ECalType, error) {
	if check && !s.IsCalibration() {
		return 0, &InvalidEnumError{Enum: "SasSbb.CalType (not calibration)", Value: uint64(s.dynamicData)}
	}
	ct := ECalType(s.dynamicData & 0b111)
	var dialect C
	if err := dialect.Validate(ct); err != nil {
		return 0, err
	}
	return ct, nil
}

// CalibrationBeamAddress returns the calibration variant's beam
// address.
func (s SasSbb) CalibrationBeamAddress(check bool) (uint16, error) {
	if check && !s.IsCalibration() {
		return 0, &InvalidEnumError{Enum: "SasSbb.CalibrationBeamAddress (not calibration)", Value: uint64(s.beamAddress)}
	}
	return s.beamAddress, nil
}

// SesSbb is the 3-byte SES (SAR Electronics Subsystem) record
// (S1-IF-ASD-PL-0007, section 3.2.5.14).
type SesSbb struct {
	Cal_Mode        ECalMode
	Tx_Pulse_Number uint8
	Signal_Type     ESignalType
	Swap            bool
	Swath_Number    uint8
}

func decodeSesSbb(r *BitReader) (SesSbb, error) {
	var s SesSbb
	base := r.BitsConsumed()

	v, err := r.ReadUint(2)
	if err != nil {
		return s, err
	}
	s.Cal_Mode = ECalMode(v)

	// tx_pulse_number is at relative offset 3 (1-bit gap).
	r.SeekBits(base + 3)
	v, err = r.ReadUint(5)
	if err != nil {
		return s, err
	}
	s.Tx_Pulse_Number = uint8(v)

	v, err = r.ReadUint(4)
	if err != nil {
		return s, err
	}
	s.Signal_Type = ESignalType(v)

	// swap is at relative offset 15 (3-bit gap).
	r.SeekBits(base + 15)
	b, err := r.ReadBool()
	if err != nil {
		return s, err
	}
	s.Swap = b

	v, err = r.ReadUint(8)
	if err != nil {
		return s, err
	}
	s.Swath_Number = uint8(v)

	return s, nil
}

// RadarConfigurationSupport is the 28-byte radar configuration
// support service (S1-IF-ASD-PL-0007, section 3.2.5), carrying the
// BAQ mode, range decimation code, and the timing counters that the
// derived-formula methods below convert to physical units.
type RadarConfigurationSupport struct {
	Error_Flag             bool
	Baq_Mode               EBaqMode
	Baq_Block_Len          uint8
	Range_Decimation       ERangeDecimation
	Rx_Gain                uint8
	Tx_Ramp_Rate           uint16
	Tx_Pulse_Start_Freq    uint16
	Tx_Pulse_Length        uint32
	Rank                   uint8
	Pri                    uint32
	Swst                   uint32
	Swl                    uint32
	Sas                    SasSbb
	Ses                    SesSbb
}

func DecodeRadarConfigurationSupport(buf []byte) (RadarConfigurationSupport, error) {
	var c RadarConfigurationSupport
	if len(buf) < RADAR_CONFIG_SIZE {
		return c, ErrTruncated
	}
	r := NewBitReader(buf[:RADAR_CONFIG_SIZE])

	b, err := r.ReadBool()
	if err != nil {
		return c, err
	}
	c.Error_Flag = b
	if c.Error_Flag {
		return c, ErrHeaderConsistency
	}

	// 2 reserved bits, then baq_mode at offset 3.
	if _, err := r.ReadUint(2); err != nil {
		return c, err
	}
	v, err := r.ReadUint(5)
	if err != nil {
		return c, err
	}
	c.Baq_Mode = EBaqMode(v)
	if err := c.Baq_Mode.Validate(); err != nil {
		return c, err
	}

	v, err = r.ReadUint(8)
	if err != nil {
		return c, err
	}
	c.Baq_Block_Len = uint8(v)

	// 8 bits padding, then range_decimation at offset 24.
	r.SeekBits(24)
	v, err = r.ReadUint(8)
	if err != nil {
		return c, err
	}
	c.Range_Decimation = ERangeDecimation(v)
	if err := c.Range_Decimation.Validate(); err != nil {
		return c, err
	}

	v, err = r.ReadUint(8)
	if err != nil {
		return c, err
	}
	c.Rx_Gain = uint8(v)

	v, err = r.ReadUint(16)
	if err != nil {
		return c, err
	}
	c.Tx_Ramp_Rate = uint16(v)

	v, err = r.ReadUint(16)
	if err != nil {
		return c, err
	}
	c.Tx_Pulse_Start_Freq = uint16(v)

	v, err = r.ReadUint(24)
	if err != nil {
		return c, err
	}
	c.Tx_Pulse_Length = uint32(v)

	// 3 bits padding, then rank at offset 99.
	r.SeekBits(99)
	v, err = r.ReadUint(5)
	if err != nil {
		return c, err
	}
	c.Rank = uint8(v)

	v, err = r.ReadUint(24)
	if err != nil {
		return c, err
	}
	c.Pri = uint32(v)

	v, err = r.ReadUint(24)
	if err != nil {
		return c, err
	}
	c.Swst = uint32(v)

	v, err = r.ReadUint(24)
	if err != nil {
		return c, err
	}
	c.Swl = uint32(v)

	sas, err := decodeSasSbb(r)
	if err != nil {
		return c, err
	}
	c.Sas = sas

	ses, err := decodeSesSbb(r)
	if err != nil {
		return c, err
	}
	c.Ses = ses

	return c, nil
}

// BaqBlockLenSamples returns the number of complex samples per BAQ
// block (S1-IF-ASD-PL-0007, section 3.2.5.3).
func (c RadarConfigurationSupport) BaqBlockLenSamples() int {
	return 8 * (int(c.Baq_Block_Len) + 1)
}

// RangeDecimationInfo returns the decimation parameters for this
// packet's range_decimation code.
func (c RadarConfigurationSupport) RangeDecimationInfo() (RangeDecimationInfo, error) {
	return LookupRangeDecimationInfo(int(c.Range_Decimation))
}

// RxGainDb returns the receiver gain in dB (section 3.2.5.5).
func (c RadarConfigurationSupport) RxGainDb() float64 {
	return -0.5 * float64(c.Rx_Gain)
}

func (c RadarConfigurationSupport) txRampRateMhzPerUsec() float64 {
	sign := -1.0
	if c.Tx_Ramp_Rate>>15 != 0 {
		sign = 1.0
	}
	value := float64(c.Tx_Ramp_Rate & 0x7FFF)
	return sign * (value * REF_FREQ * REF_FREQ / float64(int64(1)<<21))
}

// TxRampRateHzPerSec returns the Tx pulse ramp rate in Hz/s (section
// 3.2.5.6).
func (c RadarConfigurationSupport) TxRampRateHzPerSec() float64 {
	return c.txRampRateMhzPerUsec() * 1e12
}

// TxPulseStartFreqHz returns the Tx pulse start frequency in Hz
// (section 3.2.5.7).
func (c RadarConfigurationSupport) TxPulseStartFreqHz() float64 {
	sign := -1.0
	if c.Tx_Pulse_Start_Freq>>15 != 0 {
		sign = 1.0
	}
	value := float64(c.Tx_Pulse_Start_Freq & 0x7FFF)
	return 1e6 * (c.txRampRateMhzPerUsec()/(4*REF_FREQ) + sign*value*REF_FREQ/16384.0)
}

// TxPulseLengthSec returns the Tx pulse length in seconds (section
// 3.2.5.8).
func (c RadarConfigurationSupport) TxPulseLengthSec() float64 {
	return float64(c.Tx_Pulse_Length) / REF_FREQ * 1e-6
}

// TxPulseLengthSamples returns the number of complex Tx pulse samples
// after decimation (N3_Tx, section 3.2.5.8).
func (c RadarConfigurationSupport) TxPulseLengthSamples() (int, error) {
	info, err := c.RangeDecimationInfo()
	if err != nil {
		return 0, err
	}
	fDec := info.SamplingFrequencyHz()
	return int(math.Ceil(c.TxPulseLengthSec() * fDec)), nil
}

// PriSec returns the pulse repetition interval in seconds (section
// 3.2.5.10).
func (c RadarConfigurationSupport) PriSec() float64 {
	return float64(c.Pri) / REF_FREQ * 1e-6
}

// SwstSec returns the sampling window start time in seconds (section
// 3.2.5.11).
func (c RadarConfigurationSupport) SwstSec() float64 {
	return float64(c.Swst) / REF_FREQ * 1e-6
}

// DeltaTSuppressionSec returns the decimation filter transient
// duration in seconds (section 3.2.5.11).
func (c RadarConfigurationSupport) DeltaTSuppressionSec() float64 {
	return 320.0 / 8.0 / REF_FREQ * 1e-6
}

// SwstAfterDecimationSec returns the sampling window start time after
// accounting for the decimation filter transient.
func (c RadarConfigurationSupport) SwstAfterDecimationSec() float64 {
	return (float64(c.Swst) + 320.0/8.0) / REF_FREQ * 1e-6
}

// SwlSec returns the sampling window length in seconds (section
// 3.2.5.12).
func (c RadarConfigurationSupport) SwlSec() float64 {
	return float64(c.Swl) / REF_FREQ * 1e-6
}

// SwlN3RxSamples returns the sampling window length in complex
// samples after decimation (N3_Rx, section 3.2.5.12). The truncating
// division below is the pinned resolution of the reference decoder's
// own "not sure if truncation or rounding" note (SPEC_FULL.md §9).
func (c RadarConfigurationSupport) SwlN3RxSamples() (int, error) {
	rdcode := int(c.Range_Decimation)
	info, err := c.RangeDecimationInfo()
	if err != nil {
		return 0, err
	}
	num := info.RatioNum
	den := info.RatioDen
	nf := info.FilterLength

	filterOutputOffset := 80 + nf/4
	lutOffset, err := LookupFilterOutputOffset(rdcode)
	if err != nil {
		return 0, err
	}
	if filterOutputOffset != lutOffset {
		return 0, &LutLookupError{Table: "FILTER_OUTPUT_OFFSET_LUT consistency", Key: rdcode}
	}

	b := 2*int(c.Swl) - filterOutputOffset - 17
	q := b / den
	cval := b - den*q
	d, err := LookupDValue(rdcode, cval)
	if err != nil {
		return 0, err
	}
	return 2 * (num*q + d + 1), nil
}

// SwlN3RxSec returns the sampling window length after decimation in
// seconds.
func (c RadarConfigurationSupport) SwlN3RxSec() (float64, error) {
	info, err := c.RangeDecimationInfo()
	if err != nil {
		return 0, err
	}
	n, err := c.SwlN3RxSamples()
	if err != nil {
		return 0, err
	}
	return float64(n) / info.SamplingFrequencyHz(), nil
}

// RadarSampleCount is the 3-byte radar sample count service
// (S1-IF-ASD-PL-0007, section 3.2.6).
type RadarSampleCount struct {
	Number_Of_Quads uint16
}

func DecodeRadarSampleCount(buf []byte) (RadarSampleCount, error) {
	var s RadarSampleCount
	if len(buf) < RADAR_SAMPLE_SIZE {
		return s, ErrTruncated
	}
	r := NewBitReader(buf[:RADAR_SAMPLE_SIZE])
	v, err := r.ReadUint(16)
	if err != nil {
		return s, err
	}
	s.Number_Of_Quads = uint16(v)
	return s, nil
}
