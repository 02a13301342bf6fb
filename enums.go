package s1isp

// EEccNumber identifies the ECC (Elementary Coded Command) timeline
// entry that produced a packet. No values are checked; every value is
// accepted as an opaque identifier (the full ECC program catalogue is
// out of scope).
type EEccNumber uint8

// ETestMode reports whether the instrument was exercising a test path.
type ETestMode uint8

const (
	TestModeDefault                        ETestMode = 0
	TestModeContingencyRxmFullyOperational ETestMode = 4
	TestModeContingencyRxmFullyBypassed    ETestMode = 5
	TestModeOper                           ETestMode = 6
	TestModeBypass                         ETestMode = 7
)

func (m ETestMode) Validate() error {
	switch m {
	case TestModeDefault, TestModeContingencyRxmFullyOperational,
		TestModeContingencyRxmFullyBypassed, TestModeOper, TestModeBypass:
		return nil
	}
	return &InvalidEnumError{Enum: "ETestMode", Value: uint64(m)}
}

// ERxChannelId identifies the receive channel (0-based).
type ERxChannelId uint8

// EBaqMode selects the sample compression scheme used for the UDF.
type EBaqMode uint8

const (
	BaqModeBypass      EBaqMode = 0
	BaqModeBAQ3        EBaqMode = 3
	BaqModeBAQ4        EBaqMode = 4
	BaqModeBAQ5        EBaqMode = 5
	BaqModeFDBAQMode0  EBaqMode = 12
	BaqModeFDBAQMode1  EBaqMode = 13
	BaqModeFDBAQMode2  EBaqMode = 14
)

func (m EBaqMode) Validate() error {
	switch m {
	case BaqModeBypass, BaqModeBAQ3, BaqModeBAQ4, BaqModeBAQ5,
		BaqModeFDBAQMode0, BaqModeFDBAQMode1, BaqModeFDBAQMode2:
		return nil
	}
	return &InvalidEnumError{Enum: "EBaqMode", Value: uint64(m)}
}

// BitsPerSample returns the number of bits used per I or Q sample for
// BAQ modes (format C), and 10 for bypass. FDBAQ modes are
// variable-length and are not handled by this method.
func (m EBaqMode) BitsPerSample() (int, bool) {
	switch m {
	case BaqModeBypass:
		return 10, true
	case BaqModeBAQ3:
		return 3, true
	case BaqModeBAQ4:
		return 4, true
	case BaqModeBAQ5:
		return 5, true
	}
	return 0, false
}

// ERangeDecimation selects the filtering/decimation applied to the
// raw range samples. Value 2 is reserved and never assigned.
type ERangeDecimation uint8

const (
	RangeDecimation_X3_ON_4   ERangeDecimation = 0
	RangeDecimation_X2_ON_3   ERangeDecimation = 1
	RangeDecimation_X5_ON_9   ERangeDecimation = 3
	RangeDecimation_X4_ON_9   ERangeDecimation = 4
	RangeDecimation_X3_ON_8   ERangeDecimation = 5
	RangeDecimation_X1_ON_3   ERangeDecimation = 6
	RangeDecimation_X1_ON_6   ERangeDecimation = 7
	RangeDecimation_X3_ON_7   ERangeDecimation = 8
	RangeDecimation_X5_ON_16  ERangeDecimation = 9
	RangeDecimation_X3_ON_26  ERangeDecimation = 10
	RangeDecimation_X4_ON_11  ERangeDecimation = 11
)

func (r ERangeDecimation) Validate() error {
	if r == 2 || r > 11 {
		return &InvalidEnumError{Enum: "ERangeDecimation", Value: uint64(r)}
	}
	return nil
}

// EAocsOpMode reports the attitude and orbit control system's
// operating mode at the time of the attitude sample.
type EAocsOpMode uint8

// EPolarization identifies the polarization channel of a SAS image
// record.
type EPolarization uint8

// ETemperatureCompensation reports whether the SAS applied temperature
// compensation to its beam steering.
type ETemperatureCompensation uint8

// ESasTestMode reports the SAS elevation beam test configuration.
type ESasTestMode uint8

// ECalType enumerates the calibration pulse types carried in a SAS
// calibration record. The exact set of values accepted as
// "applicable" depends on the platform: S1A/B treat 5 and 6 as
// reserved/not-applicable, S1C/D define them. See the ECalTypeS1AB and
// ECalTypeS1CD validators below, and secondaryheader.go for how a
// SecondaryHeader is parameterized by one of them.
type ECalType uint8

const (
	CalTypeTxCal       ECalType = 0
	CalTypeRxCal       ECalType = 1
	CalTypeEpdnCal     ECalType = 2
	CalTypeTaCal       ECalType = 3
	CalTypeApdnCal     ECalType = 4
	CalTypeReserved5   ECalType = 5
	CalTypeReserved6   ECalType = 6
	CalTypeTxhCalIso   ECalType = 7
)

// CalTypeValidator is implemented by the platform dialect markers
// ECalTypeS1AB and ECalTypeS1CD; each knows which ECalType values are
// legal for its platform family.
type CalTypeValidator interface {
	Validate(ECalType) error
}

// ECalTypeS1AB is the platform dialect marker for Sentinel-1 A/B,
// where cal types 5 and 6 are reserved and rejected.
type ECalTypeS1AB struct{}

func (ECalTypeS1AB) Validate(v ECalType) error {
	switch v {
	case CalTypeReserved5, CalTypeReserved6:
		return &InvalidEnumError{Enum: "ECalType(S1A/B)", Value: uint64(v)}
	}
	if v > CalTypeTxhCalIso {
		return &InvalidEnumError{Enum: "ECalType(S1A/B)", Value: uint64(v)}
	}
	return nil
}

// ECalTypeS1CD is the platform dialect marker for Sentinel-1 C/D,
// where cal types 5 and 6 are defined and accepted.
type ECalTypeS1CD struct{}

func (ECalTypeS1CD) Validate(v ECalType) error {
	if v > CalTypeTxhCalIso {
		return &InvalidEnumError{Enum: "ECalType(S1C/D)", Value: uint64(v)}
	}
	return nil
}

// ECalMode identifies which calibration waveform generator path was
// exercised.
type ECalMode uint8

// ESignalType identifies the transmitted/received signal kind. Silent
// is represented out of band (no valid packet carries it) and is only
// used by callers that need a sentinel "no signal" value.
type ESignalType int8

const (
	SignalTypeSilent    ESignalType = -1
	SignalTypeEcho      ESignalType = 0
	SignalTypeNoise     ESignalType = 1
	SignalTypeTxCal     ESignalType = 8
	SignalTypeRxCal     ESignalType = 9
	SignalTypeEpdnCal   ESignalType = 10
	SignalTypeTaCal     ESignalType = 11
	SignalTypeApdnCal   ESignalType = 12
	SignalTypeTxhCalIso ESignalType = 15
)

// EBrcCode selects the Huffman code table used to decode one FDBAQ
// block (format D).
type EBrcCode uint8

const (
	BRC0 EBrcCode = 0
	BRC1 EBrcCode = 1
	BRC2 EBrcCode = 2
	BRC3 EBrcCode = 3
	BRC4 EBrcCode = 4
)

func (b EBrcCode) Validate() error {
	if b > BRC4 {
		return &InvalidEnumError{Enum: "EBrcCode", Value: uint64(b)}
	}
	return nil
}

// EDataFormatType identifies which of the four UDF sample encodings
// (bypass/types A and B, BAQ type C, FDBAQ type D) applies to a
// packet, determined from baq_mode and test_mode.
type EDataFormatType uint8

const (
	DataFormatTypeA EDataFormatType = iota // bypass, bypass test mode
	DataFormatTypeB                        // bypass, default/oper test mode
	DataFormatTypeC                        // BAQ 3/4/5-bit
	DataFormatTypeD                        // FDBAQ
)

// GetDataFormatType mirrors the dispatch table used by the reference
// decoder: the UDF sample encoding is a function of the baq_mode and
// test_mode fields of the radar configuration / fixed ancillary data.
// test_mode splits into two sets: {bypass, contingency_rxm_fully_bypassed}
// pairs only with baq_mode bypass (format A); {default, oper,
// contingency_rxm_fully_operational} pairs with bypass (format B),
// BAQ (format C) or FDBAQ (format D). Any other (baq_mode, test_mode)
// pairing — notably a bypass test mode alongside BAQ/FDBAQ — is
// untabulated and rejected.
func GetDataFormatType(baq_mode EBaqMode, test_mode ETestMode) (EDataFormatType, error) {
	bypassTestMode := test_mode == TestModeBypass || test_mode == TestModeContingencyRxmFullyBypassed
	operTestMode := test_mode == TestModeDefault || test_mode == TestModeOper || test_mode == TestModeContingencyRxmFullyOperational

	switch baq_mode {
	case BaqModeBypass:
		switch {
		case bypassTestMode:
			return DataFormatTypeA, nil
		case operTestMode:
			return DataFormatTypeB, nil
		}
	case BaqModeBAQ3, BaqModeBAQ4, BaqModeBAQ5:
		if operTestMode {
			return DataFormatTypeC, nil
		}
	case BaqModeFDBAQMode0, BaqModeFDBAQMode1, BaqModeFDBAQMode2:
		if operTestMode {
			return DataFormatTypeD, nil
		}
	default:
		return 0, &InvalidEnumError{Enum: "EBaqMode", Value: uint64(baq_mode)}
	}
	return 0, ErrInvalidFormat
}
