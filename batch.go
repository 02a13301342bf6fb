package s1isp

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/alitto/pond"
)

// BatchResult is one file's outcome from DecodeBatch.
type BatchResult struct {
	Uri string
	Err error
}

// OutputFormat selects the encoding used for the per-file records dump
// written by DecodeOneFile.
type OutputFormat int

const (
	OutputFormatJSON OutputFormat = iota
	OutputFormatCSV
)

// DecodeOneFile opens uri, decodes its packet stream with opts, writes
// the decoded records (in format) and reassembled sub-commutated
// cycles to outdirUri (see encode.go), and closes the file. C selects
// the platform's calibration-type dialect. When archiveUri is
// non-empty, the reassembled cycles are additionally written to a
// TileDB telemetry array there (see telemetry.go/archive).
func DecodeOneFile[C CalTypeValidator](uri, configUri, outdirUri, archiveUri string, format OutputFormat, inMemory bool, opts DriverOptions) error {
	f, err := OpenISPFile(uri, configUri, inMemory)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := DecodeStream[C](f.Stream, opts)
	if err != nil {
		return err
	}

	cycles := NewSubCommReassembler()
	for _, frag := range result.Fragments {
		if err := cycles.Feed(frag); err != nil {
			return err
		}
	}
	decoded, _ := DecodeCycles(cycles.Finalize())

	_, file := filepath.Split(uri)
	switch format {
	case OutputFormatCSV:
		recordsUri := filepath.Join(outdirUri, file+"-records.csv")
		if err := WriteRecordsCSV(recordsUri, result.Packets); err != nil {
			return err
		}
	default:
		recordsUri := filepath.Join(outdirUri, file+"-records.json")
		if err := WriteRecordsJSON(recordsUri, result.Packets); err != nil {
			return err
		}
	}

	subcommUri := filepath.Join(outdirUri, file+"-subcomm.json")
	if err := WriteSubCommJSON(subcommUri, decoded); err != nil {
		return err
	}

	if archiveUri == "" || len(decoded) == 0 {
		return nil
	}

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

	return WriteTelemetryArchive(ctx, filepath.Join(archiveUri, file+"-telemetry"), decoded)
}

// DecodeBatch submits every file matched by globUri (a filepath.Glob
// pattern, e.g. "/data/*.dat") to a fixed worker pool of 2*NumCPU
// workers and decodes each independently. It returns as soon as every
// submission completes, collecting one BatchResult per file; a
// Ctrl+C (SIGINT) stops outstanding work without cancelling work
// already in flight.
func DecodeBatch[C CalTypeValidator](globUri, configUri, outdirUri, archiveUri string, format OutputFormat, inMemory bool, opts DriverOptions) ([]BatchResult, error) {
	items, err := filepath.Glob(globUri)
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))

	results := make([]BatchResult, len(items))
	for i, name := range items {
		i, name := i, name
		pool.Submit(func() {
			err := DecodeOneFile[C](name, configUri, outdirUri, archiveUri, format, inMemory, opts)
			results[i] = BatchResult{Uri: name, Err: err}
		})
	}
	pool.StopAndWait()

	return results, nil
}
