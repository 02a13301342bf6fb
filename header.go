package s1isp

// PrimaryHeader is the fixed 6-byte CCSDS space packet primary header
// that opens every ISP.
type PrimaryHeader struct {
	Packet_Version_Number uint8
	Packet_Type           uint8
	Secondary_Header_Flag bool
	Pid                   uint8
	Pcat                  uint8
	Sequence_Flags        uint8
	Packet_Sequence_Count uint16
	Packet_Data_Length    uint16
}

// BodyLength is the total packet body length in bytes, following the
// CCSDS "length minus one" convention of packet_data_length.
func (h PrimaryHeader) BodyLength() int {
	return int(h.Packet_Data_Length) + 1
}

// DecodePrimaryHeader decodes a PrimaryHeader from its 6-byte
// encoding and checks the invariants that must hold for every
// Sentinel-1 ISP: version zero, packet type zero, sequence flags
// "unsegmented" (3), and the secondary header flag set.
func DecodePrimaryHeader(buf []byte) (PrimaryHeader, error) {
	var h PrimaryHeader
	if len(buf) < PRIMARY_HEADER_SIZE {
		return h, ErrTruncated
	}

	r := NewBitReader(buf[:PRIMARY_HEADER_SIZE])

	v, err := r.ReadUint(3)
	if err != nil {
		return h, err
	}
	h.Packet_Version_Number = uint8(v)

	v, err = r.ReadUint(1)
	if err != nil {
		return h, err
	}
	h.Packet_Type = uint8(v)

	b, err := r.ReadBool()
	if err != nil {
		return h, err
	}
	h.Secondary_Header_Flag = b

	v, err = r.ReadUint(7)
	if err != nil {
		return h, err
	}
	h.Pid = uint8(v)

	v, err = r.ReadUint(4)
	if err != nil {
		return h, err
	}
	h.Pcat = uint8(v)

	v, err = r.ReadUint(2)
	if err != nil {
		return h, err
	}
	h.Sequence_Flags = uint8(v)

	v, err = r.ReadUint(14)
	if err != nil {
		return h, err
	}
	h.Packet_Sequence_Count = uint16(v)

	v, err = r.ReadUint(16)
	if err != nil {
		return h, err
	}
	h.Packet_Data_Length = uint16(v)

	if err := h.checkInvariants(); err != nil {
		return h, err
	}

	return h, nil
}

func (h PrimaryHeader) checkInvariants() error {
	if h.Packet_Version_Number != 0 {
		return ErrHeaderConsistency
	}
	if h.Packet_Type != 0 {
		return ErrHeaderConsistency
	}
	if h.Sequence_Flags != 3 {
		return ErrHeaderConsistency
	}
	if !h.Secondary_Header_Flag {
		return ErrHeaderConsistency
	}
	return nil
}
