// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package peak

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
)

// WriteRecords writes records as tab-separated lines without a header:
//   chrom start end score          (generateID false)
//   chrom start end id score       (generateID true)
func WriteRecords(w io.Writer, records []Record, generateID bool) error {
	tsvw := tsv.NewWriter(w)
	for _, r := range records {
		tsvw.WriteString(r.Chrom)
		tsvw.WriteInt64(int64(r.Start))
		tsvw.WriteInt64(int64(r.End))
		if generateID {
			tsvw.WriteString(r.ID)
		}
		tsvw.WriteString(FormatScore(r.Score))
		if err := tsvw.EndLine(); err != nil {
			return err
		}
	}
	return tsvw.Flush()
}

// Write creates (or truncates) path and writes records to it with
// WriteRecords.  A path with a gzip suffix is bgzip-compressed.
//
// There is no existence check: an existing file is replaced unconditionally.
// The write is not transactional either; after a failure the destination
// may hold partial output, depending on the file implementation.
func Write(ctx context.Context, path string, records []Record, generateID bool) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "peak.Write: couldn't create", path)
	}
	defer file.CloseAndReport(ctx, out, &err)

	w := io.Writer(out.Writer(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		bgzfWriter := bgzf.NewWriter(w, 1)
		defer func() {
			if e := bgzfWriter.Close(); e != nil && err == nil {
				err = errors.E(e, "peak.Write:", path)
			}
		}()
		w = bgzfWriter
	}
	if err = WriteRecords(w, records, generateID); err != nil {
		return errors.E(err, "peak.Write: error writing to", path)
	}
	return nil
}
