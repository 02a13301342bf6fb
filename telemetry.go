package s1isp

import (
	"math"
	"time"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/sentinel1/go-s1isp/archive"
)

// onboardEpoch anchors Time_Stamp (yocto-seconds, 1e-24 s, with no
// absolute epoch of its own in the ISP wire format) to a calendar time
// so cycles can be archived in timestamp order; only relative ordering
// and spacing between cycles are meaningful.
var onboardEpoch = time.Unix(0, 0).UTC()

func onboardTime(ts uint64) time.Time {
	nanos := float64(ts) / 1e15
	return onboardEpoch.Add(time.Duration(nanos))
}

func boolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func efeRow(codes [14]uint8, horizontal bool, h HKTemperature) []float64 {
	row := make([]float64, 14)
	for i := range codes {
		v, err := h.EfeTemperatureC(i, horizontal)
		if err != nil {
			row[i] = math.NaN()
			continue
		}
		row[i] = v
	}
	return row
}

// telemetryRowsFromCycles flattens reassembled sub-commutated cycles
// into the columnar form archive.WriteTelemetry expects, one row per
// cycle in arrival order.
func telemetryRowsFromCycles(cycles []DecodedSubCommCycle) *archive.TelemetryRows {
	rows := &archive.TelemetryRows{}
	for _, c := range cycles {
		rows.CycleTimestamp = append(rows.CycleTimestamp, onboardTime(c.PVT.Time_Stamp))

		rows.PosX = append(rows.PosX, c.PVT.X)
		rows.PosY = append(rows.PosY, c.PVT.Y)
		rows.PosZ = append(rows.PosZ, c.PVT.Z)
		rows.VelX = append(rows.VelX, c.PVT.Vx)
		rows.VelY = append(rows.VelY, c.PVT.Vy)
		rows.VelZ = append(rows.VelZ, c.PVT.Vz)

		rows.Q0 = append(rows.Q0, c.Attitude.Q0)
		rows.Q1 = append(rows.Q1, c.Attitude.Q1)
		rows.Q2 = append(rows.Q2, c.Attitude.Q2)
		rows.Q3 = append(rows.Q3, c.Attitude.Q3)
		rows.OmegaX = append(rows.OmegaX, c.Attitude.Omega_X)
		rows.OmegaY = append(rows.OmegaY, c.Attitude.Omega_Y)
		rows.OmegaZ = append(rows.OmegaZ, c.Attitude.Omega_Z)
		rows.RollErr = append(rows.RollErr, boolToUint8(c.Attitude.Pointing_Status.Roll_Error))
		rows.PitchErr = append(rows.PitchErr, boolToUint8(c.Attitude.Pointing_Status.Pitch_Error))
		rows.YawErr = append(rows.YawErr, boolToUint8(c.Attitude.Pointing_Status.Yaw_Error))

		tgu, err := c.HK.TguTemperatureC()
		if err != nil {
			tgu = math.NaN()
		}
		rows.TguTemperatureC = append(rows.TguTemperatureC, tgu)
		rows.EfehTemperatureC = append(rows.EfehTemperatureC, efeRow(c.HK.Tile_EFEH_Temperature, true, c.HK))
		rows.EfevTemperatureC = append(rows.EfevTemperatureC, efeRow(c.HK.Tile_EFEV_Temperature, false, c.HK))
	}
	return rows
}

// WriteTelemetryArchive flattens already decoded sub-commutated cycles
// into rows and writes them to a TileDB telemetry array at uri, in
// addition to (not instead of) the per-file JSON dump written by
// DecodeOneFile.
func WriteTelemetryArchive(ctx *tiledb.Context, uri string, cycles []DecodedSubCommCycle) error {
	rows := telemetryRowsFromCycles(cycles)
	return archive.WriteTelemetry(ctx, uri, rows)
}
