package s1isp

import (
	"bytes"
	"testing"
)

// buildPacket returns the wire bytes of one ISP: a primary header
// whose declared body length matches a zero-filled secondary header
// (valid under every sub-service's zero-value enums, see
// zeroSecondaryHeader) followed by nq=0 quads of UDF (no sample
// bytes).
func buildPacket(seqCount uint16) []byte {
	sh := zeroSecondaryHeader()
	dataLen := uint16(len(sh) - 1)
	ph := encodePrimaryHeader(0, 0, seqCount, dataLen)
	return append(ph, sh...)
}

func TestDecodeStreamSinglePacket(t *testing.T) {
	data := buildPacket(0)
	stream := bytes.NewReader(data)

	result, err := DecodeStream[ECalTypeS1AB](stream, DriverOptions{UDFMode: UDFModeDecode})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Packets) != 1 {
		t.Fatalf("len(Packets) = %d, want 1", len(result.Packets))
	}
	if result.Offsets[0] != 0 {
		t.Errorf("Offsets[0] = %d, want 0", result.Offsets[0])
	}
	if result.Packets[0].Samples == nil {
		t.Fatal("Samples = nil, want a decoded (empty) ComplexSamples")
	}
	if got := result.Packets[0].Samples.NumQuads(); got != 0 {
		t.Errorf("NumQuads() = %d, want 0", got)
	}
	if len(result.Fragments) != 1 {
		t.Errorf("len(Fragments) = %d, want 1", len(result.Fragments))
	}
}

func TestDecodeStreamMultiplePacketsWithSkipAndMaxCount(t *testing.T) {
	var data []byte
	for i := uint16(0); i < 4; i++ {
		data = append(data, buildPacket(i)...)
	}
	stream := bytes.NewReader(data)

	result, err := DecodeStream[ECalTypeS1AB](stream, DriverOptions{
		Skip:     1,
		MaxCount: 2,
		UDFMode:  UDFModeNone,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Packets) != 2 {
		t.Fatalf("len(Packets) = %d, want 2", len(result.Packets))
	}
	if result.Packets[0].PrimaryHeader.Packet_Sequence_Count != 1 {
		t.Errorf("first decoded packet seq count = %d, want 1 (skipped packet 0)",
			result.Packets[0].PrimaryHeader.Packet_Sequence_Count)
	}
	if result.Packets[1].PrimaryHeader.Packet_Sequence_Count != 2 {
		t.Errorf("second decoded packet seq count = %d, want 2", result.Packets[1].PrimaryHeader.Packet_Sequence_Count)
	}
}

func TestDecodeStreamUDFModeExtract(t *testing.T) {
	data := buildPacket(0)
	stream := bytes.NewReader(data)

	result, err := DecodeStream[ECalTypeS1AB](stream, DriverOptions{UDFMode: UDFModeExtract})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Packets[0].RawUDF) != 0 {
		t.Errorf("len(RawUDF) = %d, want 0", len(result.Packets[0].RawUDF))
	}
	if result.Packets[0].Samples != nil {
		t.Error("Samples should be nil under UDFModeExtract")
	}
}

func TestDecodeStreamTerminatesCleanlyOnShortFinalRead(t *testing.T) {
	data := buildPacket(0)
	// Truncate mid-primary-header of a would-be second packet.
	data = append(data, 0, 0, 0)
	stream := bytes.NewReader(data)

	result, err := DecodeStream[ECalTypeS1AB](stream, DriverOptions{UDFMode: UDFModeNone})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Packets) != 1 {
		t.Errorf("len(Packets) = %d, want 1", len(result.Packets))
	}
}
