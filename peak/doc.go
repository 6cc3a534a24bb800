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

/*
Package peak calls peaks on a bedgraph signal track.

Peak calling is a fixed pipeline over sorted, scored intervals:
  1. keep bedgraph intervals with score >= threshold;
  2. merge touching/overlapping survivors, summing their scores;
  3. keep merged intervals whose length is within [MinLength, MaxLength];
  4. merge the survivors again if they are at most InterPeakDistance bases
     apart, summing scores, and sort by (chromosome, start, end);
  5. write a 4-column BED, or a 5-column one with "id1".."idN" names.

The score of a peak is the sum of the scores of the intervals merged into it.
It is *not* the total signal in the peak's span: sub-threshold positions in
the gaps bridged by either merge contribute nothing.  Downstream consumers
depend on this, so keep it that way.

Call runs the whole pipeline; the individual stages (FilterThreshold, Merge,
FilterLength, Sort, AssignIDs, Write) are exported for callers that need a
different composition, e.g. "bio-peaks merge".
*/
package peak
