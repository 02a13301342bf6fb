package archive

import (
	"errors"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	stgpsr "github.com/yuin/stagparser"
)

// ArrayOpen opens an existing TileDB array in the given mode.
func ArrayOpen(ctx *tiledb.Context, uri string, mode tiledb.QueryType) (*tiledb.Array, error) {
	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return nil, err
	}
	if err := array.Open(mode); err != nil {
		array.Free()
		return nil, err
	}
	return array, nil
}

// AddFilters sequentially appends compression filters to a pipeline.
func AddFilters(filterList *tiledb.FilterList, filters ...*tiledb.Filter) error {
	for _, f := range filters {
		if err := filterList.AddFilter(f); err != nil {
			return err
		}
	}
	return nil
}

// ZstdFilter builds a Zstandard compression filter at the given level.
func ZstdFilter(ctx *tiledb.Context, level int32) (*tiledb.Filter, error) {
	filt, err := tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_ZSTD)
	if err != nil {
		return nil, err
	}
	if err := filt.SetOption(tiledb.TILEDB_COMPRESSION_LEVEL, level); err != nil {
		filt.Free()
		return nil, err
	}
	return filt, nil
}

// ByteShuffleFilter builds a byte-shuffle filter.
func ByteShuffleFilter(ctx *tiledb.Context) (*tiledb.Filter, error) {
	return tiledb.NewFilter(ctx, tiledb.TILEDB_FILTER_BYTESHUFFLE)
}

// CreateAttr creates one tiledb attribute (with its compression filter
// pipeline) on schema, per the tags attached to the owning struct
// field. Tags for tiledb: dtype, var, ftype (dim or attr, dim fields
// are skipped by the caller). Tags for filters: zstd(level=N), bysh
// (byteshuffle). Filters are attached in the order given in the tag.
func CreateAttr(
	fieldName string,
	filterDefs []stgpsr.Definition,
	tiledbDefs map[string]stgpsr.Definition,
	schema *tiledb.ArraySchema,
	ctx *tiledb.Context,
) error {
	def, ok := tiledbDefs["dtype"]
	if !ok {
		return errors.Join(ErrCreateAttributeTdb, errors.New("dtype tag not found"))
	}
	dtype, _ := def.Attribute("dtype")

	var tdbDtype tiledb.Datatype
	switch dtype {
	case "uint8":
		tdbDtype = tiledb.TILEDB_UINT8
	case "int32":
		tdbDtype = tiledb.TILEDB_INT32
	case "uint32":
		tdbDtype = tiledb.TILEDB_UINT32
	case "int64":
		tdbDtype = tiledb.TILEDB_INT64
	case "uint64":
		tdbDtype = tiledb.TILEDB_UINT64
	case "float32":
		tdbDtype = tiledb.TILEDB_FLOAT32
	case "float64":
		tdbDtype = tiledb.TILEDB_FLOAT64
	case "datetime_ns":
		tdbDtype = tiledb.TILEDB_DATETIME_NS
	default:
		return errors.Join(ErrCreateAttributeTdb, errors.New("unsupported dtype: "+dtype.(string)))
	}

	attrFilts, err := tiledb.NewFilterList(ctx)
	if err != nil {
		return errors.Join(ErrCreateAttributeTdb, err)
	}
	defer attrFilts.Free()

	for _, filt := range filterDefs {
		switch filt.Name() {
		case "zstd":
			level, ok := filt.Attribute("level")
			if !ok {
				return errors.Join(ErrCreateAttributeTdb, errors.New("zstd level not defined"))
			}
			f, err := ZstdFilter(ctx, int32(level.(int64)))
			if err != nil {
				return errors.Join(ErrCreateAttributeTdb, err)
			}
			defer f.Free()
			if err := attrFilts.AddFilter(f); err != nil {
				return errors.Join(ErrCreateAttributeTdb, err)
			}
		case "bysh":
			f, err := ByteShuffleFilter(ctx)
			if err != nil {
				return errors.Join(ErrCreateAttributeTdb, err)
			}
			defer f.Free()
			if err := attrFilts.AddFilter(f); err != nil {
				return errors.Join(ErrCreateAttributeTdb, err)
			}
		}
	}

	attr, err := tiledb.NewAttribute(ctx, fieldName, tdbDtype)
	if err != nil {
		return errors.Join(ErrCreateAttributeTdb, err)
	}
	defer attr.Free()

	if _, ok := tiledbDefs["var"]; ok {
		if err := attr.SetCellValNum(tiledb.TILEDB_VAR_NUM); err != nil {
			return errors.Join(ErrCreateAttributeTdb, err)
		}
	}

	if err := attr.SetFilterList(attrFilts); err != nil {
		return errors.Join(ErrCreateAttributeTdb, err)
	}

	return schema.AddAttributes(attr)
}

// ArrayOpenWrite opens a TileDB array for writing.
func ArrayOpenWrite(ctx *tiledb.Context, uri string) (*tiledb.Array, error) {
	return ArrayOpen(ctx, uri, tiledb.TILEDB_WRITE)
}

// CreateTelemetryArray creates an empty dense TileDB array at uri
// sized for nrows telemetry cycles.
func CreateTelemetryArray(ctx *tiledb.Context, uri string, nrows uint64) error {
	schema, err := telemetrySchema(ctx, nrows)
	if err != nil {
		return err
	}
	defer schema.Free()

	array, err := tiledb.NewArray(ctx, uri)
	if err != nil {
		return errors.Join(ErrCreateArrayTdb, err)
	}
	defer array.Free()

	if err := array.Create(schema); err != nil {
		return errors.Join(ErrCreateArrayTdb, err)
	}
	return nil
}

// WriteTelemetry creates and writes rows to the
// telemetry array at uri in one row-major query.
func WriteTelemetry(ctx *tiledb.Context, uri string, rows *TelemetryRows) error {
	nrows := uint64(rows.NumRows())
	if nrows == 0 {
		return nil
	}

	if err := CreateTelemetryArray(ctx, uri, nrows); err != nil {
		return err
	}

	array, err := ArrayOpenWrite(ctx, uri)
	if err != nil {
		return errors.Join(ErrWriteTelemetryTdb, err)
	}
	defer array.Free()
	defer array.Close()

	query, err := tiledb.NewQuery(ctx, array)
	if err != nil {
		return errors.Join(ErrWriteTelemetryTdb, err)
	}
	defer query.Free()

	if err := query.SetLayout(tiledb.TILEDB_ROW_MAJOR); err != nil {
		return errors.Join(ErrWriteTelemetryTdb, err)
	}

	obsTime := make([]int64, nrows)
	for i, t := range rows.CycleTimestamp {
		obsTime[i] = t.UnixNano()
	}

	setBuffers := []struct {
		name string
		buf  any
	}{
		{"CycleTimestamp", obsTime},
		{"PosX", rows.PosX},
		{"PosY", rows.PosY},
		{"PosZ", rows.PosZ},
		{"VelX", rows.VelX},
		{"VelY", rows.VelY},
		{"VelZ", rows.VelZ},
		{"Q0", rows.Q0},
		{"Q1", rows.Q1},
		{"Q2", rows.Q2},
		{"Q3", rows.Q3},
		{"OmegaX", rows.OmegaX},
		{"OmegaY", rows.OmegaY},
		{"OmegaZ", rows.OmegaZ},
		{"RollErr", rows.RollErr},
		{"PitchErr", rows.PitchErr},
		{"YawErr", rows.YawErr},
		{"TguTemperatureC", rows.TguTemperatureC},
	}
	for _, sb := range setBuffers {
		if _, err := query.SetDataBuffer(sb.name, sb.buf); err != nil {
			return errors.Join(ErrWriteTelemetryTdb, err)
		}
	}

	if err := setVarLenBuffer(query, "EfehTemperatureC", rows.EfehTemperatureC); err != nil {
		return err
	}
	if err := setVarLenBuffer(query, "EfevTemperatureC", rows.EfevTemperatureC); err != nil {
		return err
	}

	if err := query.Submit(); err != nil {
		return errors.Join(ErrWriteTelemetryTdb, err)
	}
	return query.Finalize()
}

// setVarLenBuffer flattens a variable-length column into a single
// data buffer plus an offsets buffer, as TileDB's query API requires.
func setVarLenBuffer(query *tiledb.Query, name string, rows [][]float64) error {
	var flat []float64
	offsets := make([]uint64, len(rows))
	var offset uint64
	for i, row := range rows {
		offsets[i] = offset
		flat = append(flat, row...)
		offset += uint64(len(row))
	}
	if _, err := query.SetDataBuffer(name, flat); err != nil {
		return errors.Join(ErrWriteTelemetryTdb, err)
	}
	if _, err := query.SetOffsetsBuffer(name, offsets); err != nil {
		return errors.Join(ErrWriteTelemetryTdb, err)
	}
	return nil
}
