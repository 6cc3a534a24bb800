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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/peakcall/encoding/bedgraph"
	"github.com/grailbio/peakcall/interval"
)

// Logger receives Call's progress messages.
type Logger interface {
	Printf(format string, args ...interface{})
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// DiscardLogger drops all progress messages.
var DiscardLogger Logger = discardLogger{}

// Opts configures Call.
type Opts struct {
	// Threshold is the minimum bedgraph score (inclusive) of a position that
	// can be part of a peak.
	Threshold float64
	// MinLength and MaxLength bound (inclusive) the length of an
	// above-threshold run before the inter-peak merge.  MaxLength <= 0 means
	// no upper bound.
	MinLength int
	MaxLength int
	// InterPeakDistance is the largest gap, in bases, between two peaks that
	// are merged into one.
	InterPeakDistance int
	// GenerateID adds an "id1".."idN" column before the score column.
	GenerateID bool
	// OutputPath defaults to DefaultOutputPath(input).
	OutputPath string
	// Region, if nonempty, restricts peak calling to one region; see
	// interval.ParseRegionString for the format.  Bedgraph intervals crossing
	// the region boundary are clipped.
	Region string
	// ExcludeBEDPath, if nonempty, names a sorted BED of regions to ignore.
	// Bedgraph intervals overlapping it are dropped before thresholding.
	ExcludeBEDPath string
	// ChromOrderPath, if nonempty, names a .fai or chrom.sizes file whose
	// first column fixes the output chromosome order.  The default is
	// lexicographic.
	ChromOrderPath string
	// Logger defaults to grailbio/base/log at Info level.
	Logger Logger
}

// DefaultOpts holds the defaults used by bio-peaks.  MaxLength is large
// enough to be effectively unbounded for ordinary peaks.
var DefaultOpts = Opts{
	Threshold:         0,
	MinLength:         0,
	MaxLength:         10000,
	InterPeakDistance: 0,
	GenerateID:        true,
}

func (o *Opts) validate() error {
	if o.MinLength < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("peak: negative min length %d", o.MinLength))
	}
	if o.InterPeakDistance < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("peak: negative inter-peak distance %d", o.InterPeakDistance))
	}
	if o.MaxLength > 0 && o.MaxLength < o.MinLength {
		return errors.E(errors.Invalid, fmt.Sprintf("peak: max length %d is smaller than min length %d", o.MaxLength, o.MinLength))
	}
	return nil
}

// Result summarizes one Call.
type Result struct {
	// Input is the resolved bedgraph path; Output is the path written.
	Input  string
	Output string
	// Interval counts after each stage.
	NRecords        int
	NAboveThreshold int
	NAdjacentMerged int
	NLengthFiltered int
	NPeaks          int
}

// String returns a one-line status message.
func (r Result) String() string {
	return fmt.Sprintf("Finished: %d peak(s) written to %s", r.NPeaks, r.Output)
}

// ResolveInput maps a bedgraph path or glob pattern to exactly one path.
// Paths without glob metacharacters are returned unchanged, so remote paths
// work.  A pattern matching nothing is an errors.NotExist error; a pattern
// matching several files is an errors.Invalid error.
func ResolveInput(pattern string) (string, error) {
	if !strings.ContainsAny(pattern, `*?[\`) {
		return pattern, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", errors.E(errors.Invalid, "peak.ResolveInput: bad pattern", pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", errors.E(errors.NotExist, fmt.Sprintf("peak.ResolveInput: no file matches %q", pattern))
	case 1:
		return matches[0], nil
	}
	return "", errors.E(errors.Invalid, fmt.Sprintf("peak.ResolveInput: %q is ambiguous, matches %s", pattern, strings.Join(matches, ", ")))
}

var bedgraphSuffixes = []string{".bg", ".bedgraph", ".bedGraph"}

// DefaultOutputPath derives the output path from a bedgraph path:
// "x.bg", "x.bedgraph" and their .gz forms become "x_peaks.bed".  Other
// names get "_peaks.bed" appended.
func DefaultOutputPath(input string) string {
	base := strings.TrimSuffix(input, ".gz")
	for _, suffix := range bedgraphSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	return base + "_peaks.bed"
}

// loadFilter drops or clips bedgraph records before thresholding.
type loadFilter struct {
	region  *interval.Region
	exclude *interval.BEDUnion
}

func newLoadFilter(ctx context.Context, opts *Opts) (f loadFilter, err error) {
	if opts.Region != "" {
		var region interval.Region
		if region, err = interval.ParseRegionString(opts.Region); err != nil {
			return
		}
		f.region = &region
	}
	if opts.ExcludeBEDPath != "" {
		var exclude interval.BEDUnion
		if exclude, err = interval.NewBEDUnionFromPath(ctx, opts.ExcludeBEDPath, interval.NewBEDOpts{}); err != nil {
			return
		}
		f.exclude = &exclude
	}
	return
}

func (f loadFilter) apply(iv *Interval) bool {
	if f.region != nil {
		var ok bool
		if iv.Start, iv.End, ok = f.region.Clip(iv.Chrom, iv.Start, iv.End); !ok {
			return false
		}
	}
	if f.exclude != nil && f.exclude.Intersects(iv.Chrom, iv.Start, iv.End) {
		return false
	}
	return true
}

// load reads every bedgraph record at path that passes filt.
func load(ctx context.Context, path string, filt loadFilter) (intervals []Interval, nRecords int, err error) {
	var in *bedgraph.File
	if in, err = bedgraph.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	var rec bedgraph.Record
	for in.Scan(&rec) {
		nRecords++
		iv := fromRecord(rec)
		if filt.apply(&iv) {
			intervals = append(intervals, iv)
		}
	}
	if err = in.Err(); err != nil {
		err = errors.E(err, path)
	}
	return
}

// Load reads every record of the bedgraph at path.
func Load(ctx context.Context, path string) ([]Interval, error) {
	intervals, _, err := load(ctx, path, loadFilter{})
	return intervals, err
}

// Call runs the peak-calling pipeline on the bedgraph at bedgraphPath (a
// path or a glob matching exactly one file) and writes the peaks to
// opts.OutputPath.  Finding no peaks is not an error: an empty file is
// written and Result.NPeaks is zero.
func Call(ctx context.Context, bedgraphPath string, opts *Opts) (res Result, err error) {
	if err = opts.validate(); err != nil {
		return
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Info
	}
	if res.Input, err = ResolveInput(bedgraphPath); err != nil {
		return
	}
	res.Output = opts.OutputPath
	if res.Output == "" {
		res.Output = DefaultOutputPath(res.Input)
	}
	logger.Printf("input bedgraph file: %s", res.Input)
	logger.Printf("output filename: %s", res.Output)

	var order ChromOrder
	if opts.ChromOrderPath != "" {
		if order, err = LoadChromOrder(ctx, opts.ChromOrderPath); err != nil {
			return
		}
	}
	var filt loadFilter
	if filt, err = newLoadFilter(ctx, opts); err != nil {
		return
	}
	var intervals []Interval
	if intervals, res.NRecords, err = load(ctx, res.Input, filt); err != nil {
		return
	}

	aboveThreshold := FilterThreshold(intervals, opts.Threshold)
	res.NAboveThreshold = len(aboveThreshold)
	var adjacent []Interval
	if adjacent, err = Merge(aboveThreshold, 0); err != nil {
		err = errors.E(err, res.Input)
		return
	}
	res.NAdjacentMerged = len(adjacent)
	lengthFiltered := FilterLength(adjacent, opts.MinLength, opts.MaxLength)
	res.NLengthFiltered = len(lengthFiltered)
	var merged []Interval
	if merged, err = Merge(lengthFiltered, opts.InterPeakDistance); err != nil {
		return
	}
	peaks := Sort(merged, order)
	res.NPeaks = len(peaks)
	log.Debug.Printf("peak.Call: %d records, %d above threshold, %d after adjacency merge, %d after length filter",
		res.NRecords, res.NAboveThreshold, res.NAdjacentMerged, res.NLengthFiltered)
	logger.Printf("number of peaks found: %d", res.NPeaks)
	if res.NPeaks == 0 {
		logger.Printf("warning: no peaks survived filtering, %s will be empty", res.Output)
	}

	if opts.GenerateID {
		logger.Printf("saving sorted peak bed file with ID names")
	} else {
		logger.Printf("saving sorted peak bed file with no ID")
	}
	err = Write(ctx, res.Output, AssignIDs(peaks, opts.GenerateID), opts.GenerateID)
	return
}
