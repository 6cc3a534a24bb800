package interval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// Region represents a single interval on one chromosome, with 0-based
// half-open coordinates.
type Region struct {
	ChrName string
	Start0  PosType
	End     PosType
}

// Clip intersects [start, end) on chrName with the region.  ok is false when
// the intersection is empty.
func (r Region) Clip(chrName string, start, end PosType) (clippedStart, clippedEnd PosType, ok bool) {
	if chrName != r.ChrName {
		return
	}
	clippedStart, clippedEnd = start, end
	if clippedStart < r.Start0 {
		clippedStart = r.Start0
	}
	if clippedEnd > r.End {
		clippedEnd = r.End
	}
	ok = clippedStart < clippedEnd
	return
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, PosTypeMax - 1) is returned if there is no positional restriction.
func ParseRegionString(region string) (result Region, err error) {
	if len(region) == 0 {
		err = errors.E(errors.Invalid, "interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.ChrName = region
		result.Start0 = 0
		result.End = PosTypeMax - 1
		return
	}
	if colonPos == 0 {
		err = errors.E(errors.Invalid, "interval.ParseRegionString: empty contig ID")
		return
	}
	result.ChrName = region[0:colonPos]
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 32); err != nil {
			err = errors.E(errors.Invalid, "interval.ParseRegionString:", region, err)
			return
		}
		if pos1 <= 0 {
			err = errors.E(errors.Invalid, fmt.Sprintf("interval.ParseRegionString: position %v in region string out of range", rangeStr))
			return
		}
		result.Start0 = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 int
	if start1, err = strconv.Atoi(start1Str); err != nil {
		err = errors.E(errors.Invalid, "interval.ParseRegionString:", region, err)
		return
	}
	if start1 <= 0 {
		err = errors.E(errors.Invalid, fmt.Sprintf("interval.ParseRegionString: position %v in region string out of range", start1Str))
		return
	}
	var end0 int
	if end0, err = strconv.Atoi(endStr); err != nil {
		err = errors.E(errors.Invalid, "interval.ParseRegionString:", region, err)
		return
	}
	// A single-base region "chr1:5-5" is allowed.
	if end0 < start1 || end0 >= PosTypeMax {
		err = errors.E(errors.Invalid, fmt.Sprintf("interval.ParseRegionString: invalid range string %v", rangeStr))
		return
	}
	result.Start0 = PosType(start1 - 1)
	result.End = PosType(end0)
	return
}
