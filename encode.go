package s1isp

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// writeBytes writes data to uri. URIs with a scheme (e.g. "tiledb://",
// "s3://") are written through TileDB's VFS; everything else is
// treated as a local path and written directly.
func writeBytes(uri string, data []byte) error {
	if strings.Contains(uri, "://") && !strings.HasPrefix(uri, "file://") {
		config, err := tiledb.NewConfig()
		if err != nil {
			return err
		}
		defer config.Free()

		ctx, err := tiledb.NewContext(config)
		if err != nil {
			return err
		}
		defer ctx.Free()

		vfs, err := tiledb.NewVFS(ctx, config)
		if err != nil {
			return err
		}
		defer vfs.Free()

		if exists, _ := vfs.IsFile(uri); exists {
			if err := vfs.RemoveFile(uri); err != nil {
				return err
			}
		}

		fh, err := vfs.Open(uri, tiledb.TILEDB_VFS_WRITE)
		if err != nil {
			return err
		}
		defer fh.Close()

		if _, err := fh.Write(data); err != nil {
			return err
		}
		return nil
	}

	return os.WriteFile(uri, data, 0o644)
}

// recordDictColumns is the CSV column order for recordDict. Kept
// separate from the map so WriteRecordsCSV gets a stable header row
// regardless of Go's randomized map iteration order.
var recordDictColumns = []string{
	"packet_version_number", "packet_type", "secondary_header_flag",
	"pid", "pcat", "sequence_flags", "packet_sequence_count", "packet_data_length",
	"coarse_time", "fine_time",
	"data_take_id", "ecc_number", "test_mode", "rx_channel_id", "instrument_configuration_id",
	"space_packet_count", "pri_count",
	"error_flag", "baq_mode", "baq_block_len", "range_decimation", "rx_gain",
	"tx_ramp_rate", "tx_pulse_start_freq", "tx_pulse_length", "rank", "pri", "swst", "swl",
	"ssb_flag", "polarization", "temperature_compensation",
	"cal_mode", "tx_pulse_number", "signal_type", "swap", "swath_number",
	"number_of_quads",
}

// recordDict flattens one decoded packet into a tabular dictionary:
// primary-header fields, then secondary-header fields in sub-record
// order, with SAS/SES flattened alongside the radar configuration
// (spec section 6, "Persisted outputs").
func recordDict[C CalTypeValidator](p DecodedPacket[C]) map[string]any {
	ph := p.PrimaryHeader
	sh := p.SecondaryHeader
	rc := sh.Radar_Configuration_Support

	m := map[string]any{
		"packet_version_number": ph.Packet_Version_Number,
		"packet_type":            ph.Packet_Type,
		"secondary_header_flag":  ph.Secondary_Header_Flag,
		"pid":                    ph.Pid,
		"pcat":                   ph.Pcat,
		"sequence_flags":         ph.Sequence_Flags,
		"packet_sequence_count":  ph.Packet_Sequence_Count,
		"packet_data_length":     ph.Packet_Data_Length,

		"coarse_time": sh.Datation.Coarse_Time,
		"fine_time":   sh.Datation.Fine_Time,

		"data_take_id":                sh.Fixed_Ancillary.Data_Take_Id,
		"ecc_number":                  sh.Fixed_Ancillary.Ecc_Num,
		"test_mode":                   sh.Fixed_Ancillary.Test_Mode,
		"rx_channel_id":               sh.Fixed_Ancillary.Rx_Channel_Id,
		"instrument_configuration_id": sh.Fixed_Ancillary.Instrument_Configuration_Id,

		"space_packet_count": sh.Counters.Space_Packet_Count,
		"pri_count":          sh.Counters.Pri_Count,

		"error_flag":          rc.Error_Flag,
		"baq_mode":            rc.Baq_Mode,
		"baq_block_len":       rc.Baq_Block_Len,
		"range_decimation":    rc.Range_Decimation,
		"rx_gain":             rc.Rx_Gain,
		"tx_ramp_rate":        rc.Tx_Ramp_Rate,
		"tx_pulse_start_freq": rc.Tx_Pulse_Start_Freq,
		"tx_pulse_length":     rc.Tx_Pulse_Length,
		"rank":                rc.Rank,
		"pri":                 rc.Pri,
		"swst":                rc.Swst,
		"swl":                 rc.Swl,

		"ssb_flag":                 rc.Sas.Ssb_Flag,
		"polarization":             rc.Sas.Polarization,
		"temperature_compensation": rc.Sas.Temperature_Compensation,

		"cal_mode":     rc.Ses.Cal_Mode,
		"tx_pulse_number": rc.Ses.Tx_Pulse_Number,
		"signal_type":  rc.Ses.Signal_Type,
		"swap":         rc.Ses.Swap,
		"swath_number": rc.Ses.Swath_Number,

		"number_of_quads": sh.Radar_Sample_Count.Number_Of_Quads,
	}
	return m
}

// WriteRecordsJSON writes the flattened record dictionaries for a
// decoded packet list to uri as a JSON array.
func WriteRecordsJSON[C CalTypeValidator](uri string, packets []DecodedPacket[C]) error {
	dicts := make([]map[string]any, len(packets))
	for i, p := range packets {
		dicts[i] = recordDict(p)
	}
	data, err := json.MarshalIndent(dicts, "", "  ")
	if err != nil {
		return err
	}
	return writeBytes(uri, data)
}

// WriteRecordsCSV writes the flattened record dictionaries for a
// decoded packet list to uri as CSV, one row per packet, columns in
// recordDictColumns order.
func WriteRecordsCSV[C CalTypeValidator](uri string, packets []DecodedPacket[C]) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(recordDictColumns); err != nil {
		return err
	}
	for _, p := range packets {
		m := recordDict(p)
		row := make([]string, len(recordDictColumns))
		for i, col := range recordDictColumns {
			row[i] = fmt.Sprint(m[col])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeBytes(uri, buf.Bytes())
}

// WriteSubCommJSON writes the reassembled sub-commutated cycles to
// uri as a JSON array.
func WriteSubCommJSON(uri string, cycles []DecodedSubCommCycle) error {
	data, err := json.MarshalIndent(cycles, "", "  ")
	if err != nil {
		return err
	}
	return writeBytes(uri, data)
}
