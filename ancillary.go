package s1isp

import "math"

// Datation is the 6-byte coarse/fine time pair opening the secondary
// header (S1-IF-ASD-PL-0007, section 3.2.1).
type Datation struct {
	Coarse_Time uint32
	Fine_Time   uint16
}

// FineTimeSec returns the sub-second component of the timestamp, in
// seconds.
func (d Datation) FineTimeSec() float64 {
	return (float64(d.Fine_Time) + 0.5) * (1.0 / 65536.0)
}

func DecodeDatation(r *BitReader) (Datation, error) {
	var d Datation
	v, err := r.ReadUint(32)
	if err != nil {
		return d, err
	}
	d.Coarse_Time = uint32(v)
	v, err = r.ReadUint(16)
	if err != nil {
		return d, err
	}
	d.Fine_Time = uint16(v)
	return d, nil
}

// FixedAncillary is the fixed ancillary data service (S1-IF-ASD-PL-0007,
// section 3.2.2). It always opens with the 32-bit sync marker.
type FixedAncillary struct {
	Sync_Marker                  uint32
	Data_Take_Id                 uint32
	Ecc_Num                      EEccNumber
	Test_Mode                    ETestMode
	Rx_Channel_Id                ERxChannelId
	Instrument_Configuration_Id  uint32
}

func DecodeFixedAncillary(r *BitReader) (FixedAncillary, error) {
	var f FixedAncillary

	v, err := r.ReadUint(32)
	if err != nil {
		return f, err
	}
	f.Sync_Marker = uint32(v)
	if f.Sync_Marker != SYNC_MARKER {
		return f, ErrSyncMarker
	}

	v, err = r.ReadUint(32)
	if err != nil {
		return f, err
	}
	f.Data_Take_Id = uint32(v)

	v, err = r.ReadUint(8)
	if err != nil {
		return f, err
	}
	f.Ecc_Num = EEccNumber(v)

	// bit 72 is reserved (n/a); test_mode starts at absolute bit
	// offset 73 within this record.
	r.SeekBits(73)

	v, err = r.ReadUint(3)
	if err != nil {
		return f, err
	}
	f.Test_Mode = ETestMode(v)
	if err := f.Test_Mode.Validate(); err != nil {
		return f, err
	}

	v, err = r.ReadUint(4)
	if err != nil {
		return f, err
	}
	f.Rx_Channel_Id = ERxChannelId(v)

	v, err = r.ReadUint(32)
	if err != nil {
		return f, err
	}
	f.Instrument_Configuration_Id = uint32(v)

	return f, nil
}

// SubCommWord is one (index, data) fragment of the sub-commutated
// ancillary data service, carried once per packet.
type SubCommWord struct {
	Word_Index uint8
	Word_Data  [2]byte
}

func DecodeSubCommWord(r *BitReader) (SubCommWord, error) {
	var w SubCommWord
	v, err := r.ReadUint(8)
	if err != nil {
		return w, err
	}
	w.Word_Index = uint8(v)

	b, err := r.ReadUint(16)
	if err != nil {
		return w, err
	}
	w.Word_Data = [2]byte{byte(b >> 8), byte(b)}
	return w, nil
}

// Counters is the PRI/space-packet counter pair (S1-IF-ASD-PL-0007,
// section 3.2.4).
type Counters struct {
	Space_Packet_Count uint32
	Pri_Count          uint32
}

func DecodeCounters(r *BitReader) (Counters, error) {
	var c Counters
	v, err := r.ReadUint(32)
	if err != nil {
		return c, err
	}
	c.Space_Packet_Count = uint32(v)
	v, err = r.ReadUint(32)
	if err != nil {
		return c, err
	}
	c.Pri_Count = uint32(v)
	return c, nil
}

// PVT is the reassembled Position/Velocity/Time sub-commutated
// record (S1-IF-ASD-PL-0007, table 3.2-5). Its encoded size is 44
// bytes/22 words (see SPEC_FULL.md §9).
type PVT struct {
	X, Y, Z    float64
	Vx, Vy, Vz float32
	// Time_Stamp is in yocto-seconds (1e-24 s).
	Time_Stamp uint64
}

func DecodePVT(buf []byte) (PVT, error) {
	var p PVT
	if len(buf) < PVT_RECORD_SIZE {
		return p, ErrTruncated
	}
	r := NewBitReader(buf[:PVT_RECORD_SIZE])

	p.X = readFloat64(r)
	p.Y = readFloat64(r)
	p.Z = readFloat64(r)
	p.Vx = readFloat32(r)
	p.Vy = readFloat32(r)
	p.Vz = readFloat32(r)

	r.SeekBits(296)
	v, err := r.ReadUint(56)
	if err != nil {
		return p, err
	}
	p.Time_Stamp = v

	return p, nil
}

// PointingStatus carries the attitude and orbit control system
// operating mode and error flags (S1-IF-ASD-PL-0007, table 3.2-8).
type PointingStatus struct {
	Aocs_Op_Mode EAocsOpMode
	Roll_Error   bool
	Pitch_Error  bool
	Yaw_Error    bool
}

func decodePointingStatus(r *BitReader) (PointingStatus, error) {
	var p PointingStatus
	v, err := r.ReadUint(8)
	if err != nil {
		return p, err
	}
	p.Aocs_Op_Mode = EAocsOpMode(v)

	// 5 reserved bits, then roll/pitch/yaw error at bits 13/14/15.
	if _, err := r.ReadUint(5); err != nil {
		return p, err
	}
	b, err := r.ReadBool()
	if err != nil {
		return p, err
	}
	p.Roll_Error = b
	b, err = r.ReadBool()
	if err != nil {
		return p, err
	}
	p.Pitch_Error = b
	b, err = r.ReadBool()
	if err != nil {
		return p, err
	}
	p.Yaw_Error = b
	return p, nil
}

// Attitude is the reassembled attitude sub-commutated record
// (S1-IF-ASD-PL-0007, table 3.2-6). Its encoded size is 38 bytes/19
// words (see SPEC_FULL.md §9).
type Attitude struct {
	Q0, Q1, Q2, Q3          float32
	Omega_X, Omega_Y, Omega_Z float32
	// Time_Stamp is in yocto-seconds (1e-24 s).
	Time_Stamp      uint64
	Pointing_Status PointingStatus
}

func DecodeAttitude(buf []byte) (Attitude, error) {
	var a Attitude
	if len(buf) < ATTITUDE_RECORD_SIZE {
		return a, ErrTruncated
	}
	r := NewBitReader(buf[:ATTITUDE_RECORD_SIZE])

	a.Q0 = readFloat32(r)
	a.Q1 = readFloat32(r)
	a.Q2 = readFloat32(r)
	a.Q3 = readFloat32(r)
	a.Omega_X = readFloat32(r)
	a.Omega_Y = readFloat32(r)
	a.Omega_Z = readFloat32(r)

	r.SeekBits(232)
	v, err := r.ReadUint(56)
	if err != nil {
		return a, err
	}
	a.Time_Stamp = v

	ps, err := decodePointingStatus(r)
	if err != nil {
		return a, err
	}
	a.Pointing_Status = ps

	return a, nil
}

// HKTemperature is the reassembled antenna and TGU temperature
// housekeeping record (S1-IF-ASD-PL-0007, table 3.2-9); 46 bytes/23
// words, 14 tiles of (EFEH, EFEV, TA) plus a TGU code.
type HKTemperature struct {
	Temperature_Update_Status uint16
	Tile_EFEH_Temperature     [14]uint8
	Tile_EFEV_Temperature     [14]uint8
	Tile_TA_Temperature       [14]uint8
	TGU_Temperature           uint8
}

func DecodeHKTemperature(buf []byte) (HKTemperature, error) {
	var h HKTemperature
	if len(buf) < HK_TEMPERATURE_SIZE {
		return h, ErrTruncated
	}
	r := NewBitReader(buf[:HK_TEMPERATURE_SIZE])

	v, err := r.ReadUint(16)
	if err != nil {
		return h, err
	}
	h.Temperature_Update_Status = uint16(v)

	for i := 0; i < 14; i++ {
		efeh, err := r.ReadUint(8)
		if err != nil {
			return h, err
		}
		efev, err := r.ReadUint(8)
		if err != nil {
			return h, err
		}
		ta, err := r.ReadUint(8)
		if err != nil {
			return h, err
		}
		h.Tile_EFEH_Temperature[i] = uint8(efeh)
		h.Tile_EFEV_Temperature[i] = uint8(efev)
		h.Tile_TA_Temperature[i] = uint8(ta)
	}

	r.SeekBits(361)
	v, err = r.ReadUint(7)
	if err != nil {
		return h, err
	}
	h.TGU_Temperature = uint8(v)

	return h, nil
}

// TguTemperatureC converts TGU_Temperature to degrees Celsius.
func (h HKTemperature) TguTemperatureC() (float64, error) {
	return LookupTguTemperature(int(h.TGU_Temperature))
}

// EfeTemperatureC converts one of the EFEH/EFEV temperature codes for
// a given tile (0-13) to degrees Celsius.
func (h HKTemperature) EfeTemperatureC(tile int, horizontal bool) (float64, error) {
	if tile < 0 || tile >= 14 {
		return 0, &InvalidIndexError{Table: "HKTemperature tiles", Index: tile}
	}
	if horizontal {
		return LookupEfeTemperature(int(h.Tile_EFEH_Temperature[tile]))
	}
	return LookupEfeTemperature(int(h.Tile_EFEV_Temperature[tile]))
}

// TaTemperatureC converts a tile's TA temperature code to degrees
// Celsius. TA shares the EFE calibration table.
func (h HKTemperature) TaTemperatureC(tile int) (float64, error) {
	if tile < 0 || tile >= 14 {
		return 0, &InvalidIndexError{Table: "HKTemperature tiles", Index: tile}
	}
	return LookupEfeTemperature(int(h.Tile_TA_Temperature[tile]))
}

func readFloat32(r *BitReader) float32 {
	v, err := r.ReadUint(32)
	if err != nil {
		return 0
	}
	return math.Float32frombits(uint32(v))
}

func readFloat64(r *BitReader) float64 {
	v, err := r.ReadUint(64)
	if err != nil {
		return 0
	}
	return math.Float64frombits(v)
}
