package interval

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
)

// GetTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter, so both tab- and space-separated BED-like files are
// accepted.
func GetTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops beat the standard library string-split functions
		// when only the first few columns are needed.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewBEDOpts defines behavior of this package's BED-loading function(s).
type NewBEDOpts struct {
	// OneBasedInput interprets the BED interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).
	OneBasedInput bool
}

// PosType is the coordinate type shared by every interval in this module.
type PosType int32

// PosTypeMax is one past the largest coordinate a PosType interval may end
// at.
const PosTypeMax = math.MaxInt32

// searchPosType returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).  It's exactly the same
// as sort.SearchInts(), except for PosType.
func searchPosType(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// BEDUnion is a per-chromosome union of disjoint intervals, stored as
// length-2N sequences where the (0-based) start position of interval #k is in
// element [2k] and the end position is in element [2k+1], in increasing
// order.  It backs the exclusion mask applied while loading a bedgraph.
type BEDUnion struct {
	// nameMap is a chromosome-keyed map with disjoint-interval-set values.
	// Always initialized.
	nameMap map[string]([]PosType)
	// nBases is the total number of bases covered.
	nBases int
}

// NBases returns the number of bases covered by the union.
func (u *BEDUnion) NBases() int {
	return u.nBases
}

// Intersects returns true iff the 0-based half-open interval [start, end) on
// chrName shares at least one base with the union.
func (u *BEDUnion) Intersects(chrName string, start, end PosType) bool {
	if end <= start {
		return false
	}
	chrIntervals := u.nameMap[chrName]
	if chrIntervals == nil {
		return false
	}
	// The first boundary strictly greater than start.  If it's an end
	// boundary, start itself is covered.
	idx := searchPosType(chrIntervals, start+1)
	if idx&1 == 1 {
		return true
	}
	return idx < len(chrIntervals) && chrIntervals[idx] < end
}

func scanBEDUnion(scanner *bufio.Scanner, opts NewBEDOpts) (bedUnion BEDUnion, err error) {
	bedUnion.nameMap = make(map[string]([]PosType))

	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}

	var tokens [3][]byte

	lineIdx := 0
	prevChr := ""
	var prevStart, prevEnd PosType
	var chrIntervals []PosType
	flush := func() {
		if prevEnd > prevStart {
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
			bedUnion.nBases += int(prevEnd - prevStart)
		}
		bedUnion.nameMap[prevChr] = chrIntervals
	}
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := GetTokens(tokens[:], curLine)
		if nToken == 0 || IsHeader(tokens[0]) {
			continue
		}
		if nToken != 3 {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: line %d has fewer tokens than expected", lineIdx))
			return
		}

		curChr := tokens[0]
		var parsedStart int
		if parsedStart, err = strconv.Atoi(gunsafe.BytesToString(tokens[1])); err != nil {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: line %d", lineIdx), err)
			return
		}
		parsedStart -= startSubtract
		if parsedStart < 0 {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: negative start coordinate %s on line %d", tokens[1], lineIdx))
			return
		}
		start := PosType(parsedStart)

		var parsedEnd int
		if parsedEnd, err = strconv.Atoi(gunsafe.BytesToString(tokens[2])); err != nil {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: line %d", lineIdx), err)
			return
		}
		if (parsedEnd < parsedStart) || (parsedEnd >= PosTypeMax) {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: invalid coordinate pair on line %d", lineIdx))
			return
		}
		end := PosType(parsedEnd)
		if prevChr != gunsafe.BytesToString(curChr) {
			if prevChr != "" {
				flush()
			}
			// curChr refers to bytes on curLine that will be overwritten soon, so
			// make a heap copy; it persists as a map key.
			prevChr = string(curChr)
			if _, found := bedUnion.nameMap[prevChr]; found {
				err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: unsorted input (split chromosome %v)", prevChr))
				return
			}
			chrIntervals = []PosType{}
			prevStart = start
			prevEnd = end
			continue
		}
		if end == start {
			continue
		}
		if prevEnd == prevStart {
			// Only an empty interval has been seen on this chromosome so far.
			prevStart = start
			prevEnd = end
			continue
		}
		if start > prevEnd {
			// New interval doesn't overlap previous one, so we can save the previous
			// one.
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
			bedUnion.nBases += int(prevEnd - prevStart)
			prevStart = start
			prevEnd = end
		} else {
			if start < prevStart {
				err = errors.E(errors.Invalid, fmt.Sprintf("interval.scanBEDUnion: unsorted input on line %d", lineIdx))
				return
			}
			// Intervals overlap, merge them.
			if end > prevEnd {
				prevEnd = end
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if prevChr != "" {
		flush()
	}
	log.Debug.Printf("BED loaded, %d base(s) covered.", bedUnion.nBases)
	return
}

// IsHeader returns true iff a line whose first token is firstToken should be
// skipped: comments, and the UCSC "track" and "browser" lines that may
// precede BED and bedgraph bodies.
func IsHeader(firstToken []byte) bool {
	s := gunsafe.BytesToString(firstToken)
	return s == "track" || s == "browser" || (len(s) > 0 && s[0] == '#')
}

// NewBEDUnion loads just the intervals from a sorted (by first coordinate)
// interval-BED, merging touching/overlapping intervals and eliminating empty
// ones in the process.
func NewBEDUnion(reader io.Reader, opts NewBEDOpts) (bedUnion BEDUnion, err error) {
	scanner := bufio.NewScanner(reader)
	return scanBEDUnion(scanner, opts)
}

// NewBEDUnionFromPath is a wrapper for NewBEDUnion that takes a path instead
// of an io.Reader.  Gzip/bgzip input is detected from the path suffix.
func NewBEDUnionFromPath(ctx context.Context, path string, opts NewBEDOpts) (bedUnion BEDUnion, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		err = errors.E(err, "interval.NewBEDUnionFromPath:", path)
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			err = errors.E(err, "interval.NewBEDUnionFromPath:", path)
			return
		}
	}
	if bedUnion, err = NewBEDUnion(reader, opts); err != nil {
		err = errors.E(err, path)
	}
	return
}
