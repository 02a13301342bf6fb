package s1isp

import (
	"bytes"
	"encoding/binary"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// Stream caters for a generic reader type so that we can handle both
// a stream of data from a file on disk or object store, as well as
// an in-memory byte stream.
// This package deals with either a *tiledb.VFSfh or *bytes.Reader,
// and all we care about are two methods, Read and Seek, which both
// implement.
type Stream interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
}

// GenericStream decides whether to buffer the whole input into memory
// or leave it as a stream handled by *tiledb.VFSfh.
func GenericStream(stream *tiledb.VFSfh, size uint64, inmem bool) (Stream, error) {
	if inmem {
		buffer := make([]byte, size)
		err := binary.Read(stream, binary.BigEndian, &buffer)
		if err != nil {
			return nil, err
		}
		reader := bytes.NewReader(buffer)
		return reader, nil
	}
	return stream, nil
}

// Tell reports the current position within a stream opened for reading.
func Tell(stream Stream) (int64, error) {
	return stream.Seek(0, 1)
}

// OpenISPFile opens an ISP file (local path or tiledb:// URI) for
// streamed IO.
type ISPFile struct {
	Uri      string
	filesize uint64
	config   *tiledb.Config
	ctx      *tiledb.Context
	vfs      *tiledb.VFS
	handler  *tiledb.VFSfh
	Stream
}

func OpenISPFile(uri string, config_uri string, in_memory bool) (*ISPFile, error) {
	var (
		f      ISPFile
		config *tiledb.Config
		err    error
	)

	f.Uri = uri

	if config_uri == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(config_uri)
	}
	if err != nil {
		return nil, err
	}
	f.config = config

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		return nil, err
	}
	f.ctx = ctx

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		return nil, err
	}
	f.vfs = vfs

	handler, err := vfs.Open(uri, tiledb.TILEDB_VFS_READ)
	if err != nil {
		return nil, err
	}
	f.handler = handler

	filesize, err := vfs.FileSize(uri)
	if err != nil {
		return nil, err
	}
	f.filesize = filesize

	stream, err := GenericStream(handler, filesize, in_memory)
	if err != nil {
		return nil, err
	}
	f.Stream = stream

	return &f, nil
}

// Close releases the open tiledb file handler connections.
func (f *ISPFile) Close() {
	f.handler.Close()
	f.vfs.Free()
	f.ctx.Free()
	f.config.Free()
}

func (f *ISPFile) Size() uint64 {
	return f.filesize
}
