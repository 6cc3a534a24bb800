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
	"fmt"

	"github.com/grailbio/base/errors"
)

// Merge collapses runs of intervals on the same chromosome whose gap is at
// most maxGap bases into a single interval spanning the run, with the sum of
// the run's scores.  The gap between a and a following b is b.Start - a.End,
// so touching intervals have gap 0 and overlapping ones a negative gap.
// Chaining is transitive: each interval is compared against the end of the
// run so far.  Intervals on different chromosomes never merge.
//
// The input must be grouped by chromosome (in any chromosome order) and
// sorted by start within a chromosome; otherwise an errors.Invalid
// "unsorted input" error is returned.  The output keeps the input's
// chromosome order.  Merge(Merge(x, d), d) == Merge(x, d).
func Merge(in []Interval, maxGap int) ([]Interval, error) {
	if maxGap < 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("peak.Merge: negative max gap %d", maxGap))
	}
	out := make([]Interval, 0, len(in))
	if len(in) == 0 {
		return out, nil
	}
	seen := map[string]bool{in[0].Chrom: true}
	cur := in[0]
	prevStart := cur.Start
	for _, iv := range in[1:] {
		if iv.Chrom != cur.Chrom {
			if seen[iv.Chrom] {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("peak.Merge: unsorted input (split chromosome %v)", iv.Chrom))
			}
			seen[iv.Chrom] = true
			out = append(out, cur)
			cur = iv
			prevStart = iv.Start
			continue
		}
		if iv.Start < prevStart {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("peak.Merge: unsorted input (%s:%d follows %s:%d)", iv.Chrom, iv.Start, iv.Chrom, prevStart))
		}
		prevStart = iv.Start
		if int(iv.Start)-int(cur.End) <= maxGap {
			if iv.End > cur.End {
				cur.End = iv.End
			}
			cur.Score += iv.Score
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	return append(out, cur), nil
}
