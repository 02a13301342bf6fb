package s1isp

// REF_FREQ is the Sentinel-1 reference oscillator frequency in MHz,
// used to derive range-sample timing quantities from raw counter
// fields in the radar configuration support service.
const REF_FREQ = 37.53472224

// SYNC_MARKER is the fixed 32-bit pattern that must open every
// secondary header's fixed ancillary data service.
const SYNC_MARKER = 0x352EF853

// Fixed, byte-exact sizes of the framing structures.
const (
	PRIMARY_HEADER_SIZE   = 6
	SECONDARY_HEADER_SIZE = 62

	DATATION_SIZE        = 6
	FIXED_ANCILLARY_SIZE = 14
	SUBCOMM_WORD_SIZE    = 3
	COUNTERS_SIZE        = 8
	RADAR_CONFIG_SIZE    = 28
	RADAR_SAMPLE_SIZE    = 3

	// Encoded sizes of the sub-commutated ancillary records, derived
	// from their authoritative field offsets (see SPEC_FULL.md §9).
	PVT_RECORD_SIZE       = 44
	ATTITUDE_RECORD_SIZE  = 38
	HK_TEMPERATURE_SIZE   = 46

	MAX_WORD_INDEX = 64
)

// Sub-commutated first-word indices, taken verbatim from the source
// reassembler: PVT starts the cycle, Attitude follows it, HK follows
// Attitude. Last-word indices are derived (see subcomm.go) from the
// encoded record sizes above, not hardcoded.
const (
	PVT_FIRST_WORD_INDEX      = 1
	ATTITUDE_FIRST_WORD_INDEX = 23
	HK_FIRST_WORD_INDEX       = 42
)
