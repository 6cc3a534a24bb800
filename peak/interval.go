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
	"strconv"

	"github.com/grailbio/peakcall/encoding/bedgraph"
	"github.com/grailbio/peakcall/interval"
)

// PosType is the coordinate type of an Interval.
type PosType = interval.PosType

// Interval is a scored 0-based half-open genomic interval, End > Start.
// Every pipeline stage returns freshly allocated Intervals; inputs are never
// modified.
type Interval struct {
	Chrom string
	Start PosType
	End   PosType
	Score float64
}

// Len returns End - Start.
func (iv Interval) Len() int {
	return int(iv.End - iv.Start)
}

func fromRecord(rec bedgraph.Record) Interval {
	return Interval{Chrom: rec.Chrom, Start: rec.Start, End: rec.End, Score: rec.Score}
}

// Record is one output row.  ID is empty unless IDs were requested.
type Record struct {
	Interval
	ID string
}

// AssignIDs converts sorted peaks to output records.  With generateID, the
// k-th record (1-based, in the given order) is named "id<k>".
func AssignIDs(peaks []Interval, generateID bool) []Record {
	records := make([]Record, len(peaks))
	for i, p := range peaks {
		records[i].Interval = p
		if generateID {
			records[i].ID = "id" + strconv.Itoa(i+1)
		}
	}
	return records
}

// FormatScore renders a score in its natural textual form: integral sums
// print without a decimal point ("15"), others with the shortest exact
// representation ("15.25").
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
