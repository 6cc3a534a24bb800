package bedgraph

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// File is a bedgraph opened for scanning.  Close must be called when done.
type File struct {
	*Scanner
	ctx context.Context
	in  file.File
	gz  *gzip.Reader
}

// Open opens the bedgraph at path, which may be any path understood by
// grailbio/base/file (local or s3://).  Paths with a gzip suffix are
// decompressed; bgzip output is valid gzip, so .bg.gz files from tabix
// pipelines work too.
func Open(ctx context.Context, path string) (*File, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "bedgraph.Open:", path)
	}
	f := &File{ctx: ctx, in: in}
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if f.gz, err = gzip.NewReader(reader); err != nil {
			_ = in.Close(ctx)
			return nil, errors.E(err, "bedgraph.Open:", path)
		}
		reader = f.gz
	}
	f.Scanner = NewScanner(reader)
	return f, nil
}

// Close releases the underlying file.
func (f *File) Close() (err error) {
	if f.gz != nil {
		err = f.gz.Close()
	}
	if e := f.in.Close(f.ctx); e != nil && err == nil {
		err = e
	}
	return
}
