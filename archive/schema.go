// Package archive persists reassembled ancillary telemetry (PVT,
// Attitude, HK temperature) to TileDB arrays for downstream querying,
// independent of the per-file record dump handled by encode.go.
package archive

import (
	"errors"
	"reflect"
	"time"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

var ErrCreateAttributeTdb = errors.New("error creating tiledb attribute")
var ErrCreateSchemaTdb = errors.New("error creating tiledb array schema")
var ErrCreateArrayTdb = errors.New("error creating tiledb array")
var ErrWriteTelemetryTdb = errors.New("error writing telemetry to tiledb array")

// TelemetryRows is a columnar (struct-of-slices) representation of a
// run of reassembled sub-commutated telemetry cycles, one row per
// cycle, suitable for a single TileDB write. Tags follow the same
// dtype/ftype/filters convention used throughout this package.
type TelemetryRows struct {
	CycleTimestamp []time.Time `tiledb:"dtype=datetime_ns,ftype=attr" filters:"zstd(level=16)"`

	PosX []float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	PosY []float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	PosZ []float64 `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	VelX []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	VelY []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	VelZ []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`

	Q0      []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Q1      []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Q2      []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	Q3      []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	OmegaX  []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	OmegaY  []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	OmegaZ  []float32 `tiledb:"dtype=float32,ftype=attr" filters:"zstd(level=16)"`
	RollErr []uint8   `tiledb:"dtype=uint8,ftype=attr" filters:"bysh"`
	PitchErr []uint8  `tiledb:"dtype=uint8,ftype=attr" filters:"bysh"`
	YawErr  []uint8   `tiledb:"dtype=uint8,ftype=attr" filters:"bysh"`

	TguTemperatureC  []float64   `tiledb:"dtype=float64,ftype=attr" filters:"zstd(level=16)"`
	EfehTemperatureC [][]float64 `tiledb:"dtype=float64,ftype=attr,var" filters:"zstd(level=16)"`
	EfevTemperatureC [][]float64 `tiledb:"dtype=float64,ftype=attr,var" filters:"zstd(level=16)"`
}

// NumRows returns the number of telemetry cycles held.
func (t *TelemetryRows) NumRows() int {
	return len(t.CycleTimestamp)
}

// schemaAttrs reads the tiledb/filters struct tags off TelemetryRows
// and adds one tiledb attribute per tagged field, skipping any field
// tagged as a dimension.
func schemaAttrs(t any, schema *tiledb.ArraySchema, ctx *tiledb.Context) error {
	values := reflect.ValueOf(t).Elem()
	types := values.Type()
	filtDefs, _ := stgpsr.ParseStruct(t, "filters")
	tdbDefs, _ := stgpsr.ParseStruct(t, "tiledb")

	for i := 0; i < values.NumField(); i++ {
		name := types.Field(i).Name
		fieldFiltDefs := filtDefs[name]

		fieldTdbDefs := make(map[string]stgpsr.Definition)
		for _, v := range tdbDefs[name] {
			fieldTdbDefs[v.Name()] = v
		}

		def, ok := fieldTdbDefs["ftype"]
		if !ok {
			return errors.Join(ErrCreateAttributeTdb, errors.New("ftype tag not found on "+name))
		}
		ftype, _ := def.Attribute("ftype")
		if ftype == "dim" {
			continue
		}

		if err := CreateAttr(name, fieldFiltDefs, fieldTdbDefs, schema, ctx); err != nil {
			return errors.Join(ErrCreateAttributeTdb, err)
		}
	}
	return nil
}

// telemetrySchema builds the dense array schema for nrows telemetry
// cycles, dimensioned by cycle index.
func telemetrySchema(ctx *tiledb.Context, nrows uint64) (*tiledb.ArraySchema, error) {
	domain, err := tiledb.NewDomain(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer domain.Free()

	tileSz := nrows
	if tileSz > 50_000 {
		tileSz = 50_000
	}
	if tileSz == 0 {
		tileSz = 1
	}

	dim, err := tiledb.NewDimension(ctx, "CYCLE_ID", tiledb.TILEDB_UINT64, []uint64{0, nrows - 1}, tileSz)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer dim.Free()

	dimFilters, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer dimFilters.Free()

	posDelta, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_POSITIVE_DELTA)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer posDelta.Free()

	zstd, err := ZstdFilter(ctx, 16)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	defer zstd.Free()

	if err := AddFilters(dimFilters, posDelta, zstd); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := dim.SetFilterList(dimFilters); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := domain.AddDimensions(dim); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	schema, err := tiledb.NewArraySchema(ctx, tiledb.TILEDB_DENSE)
	if err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetDomain(domain); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetCellOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}
	if err := schema.SetTileOrder(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	if err := schemaAttrs(&TelemetryRows{}, schema, ctx); err != nil {
		return nil, err
	}

	if err := schema.Check(); err != nil {
		return nil, errors.Join(ErrCreateSchemaTdb, err)
	}

	return schema, nil
}
