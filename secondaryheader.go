package s1isp

// SecondaryHeader is the 62-byte packet secondary header: the fixed
// concatenation of the six sub-services in declared order. It is
// parameterized by the calibration-type dialect validator (C), so
// that S1A/B and S1C/D streams can share one decoder while still
// rejecting/accepting cal_type 5 and 6 according to their own rules
// (see ECalTypeS1AB / ECalTypeS1CD and SasSbb.CalType).
type SecondaryHeader[C CalTypeValidator] struct {
	Datation                  Datation
	Fixed_Ancillary           FixedAncillary
	Subcomm_Word              SubCommWord
	Counters                  Counters
	Radar_Configuration_Support RadarConfigurationSupport
	Radar_Sample_Count        RadarSampleCount
}

// DecodeSecondaryHeader decodes a 62-byte secondary header. The type
// parameter only affects later cal_type validation performed via
// CalType[C]; the byte layout is identical across platforms.
func DecodeSecondaryHeader[C CalTypeValidator](buf []byte) (SecondaryHeader[C], error) {
	var h SecondaryHeader[C]
	if len(buf) < SECONDARY_HEADER_SIZE {
		return h, ErrTruncated
	}

	r := NewBitReader(buf[:DATATION_SIZE])
	d, err := DecodeDatation(r)
	if err != nil {
		return h, err
	}
	h.Datation = d

	off := DATATION_SIZE
	r = NewBitReader(buf[off : off+FIXED_ANCILLARY_SIZE])
	f, err := DecodeFixedAncillary(r)
	if err != nil {
		return h, err
	}
	h.Fixed_Ancillary = f

	off += FIXED_ANCILLARY_SIZE
	r = NewBitReader(buf[off : off+SUBCOMM_WORD_SIZE])
	w, err := DecodeSubCommWord(r)
	if err != nil {
		return h, err
	}
	h.Subcomm_Word = w

	off += SUBCOMM_WORD_SIZE
	r = NewBitReader(buf[off : off+COUNTERS_SIZE])
	c, err := DecodeCounters(r)
	if err != nil {
		return h, err
	}
	h.Counters = c

	off += COUNTERS_SIZE
	rc, err := DecodeRadarConfigurationSupport(buf[off : off+RADAR_CONFIG_SIZE])
	if err != nil {
		return h, err
	}
	h.Radar_Configuration_Support = rc

	off += RADAR_CONFIG_SIZE
	sc, err := DecodeRadarSampleCount(buf[off : off+RADAR_SAMPLE_SIZE])
	if err != nil {
		return h, err
	}
	h.Radar_Sample_Count = sc

	return h, nil
}

// DataFormatType returns the UDF encoding format implied by this
// header's baq_mode and test_mode fields.
func (h SecondaryHeader[C]) DataFormatType() (EDataFormatType, error) {
	return GetDataFormatType(h.Radar_Configuration_Support.Baq_Mode, h.Fixed_Ancillary.Test_Mode)
}
