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
bio-peaks calls peaks on a bedgraph signal track.

"bio-peaks call" keeps bedgraph intervals scoring at least -threshold, merges
touching ones, keeps runs between -min-length and -max-length bases long,
merges runs at most -inter-peak-distance bases apart, and writes the result
sorted by chromosome/start/end as a BED file.  Column 4 is "id1".."idN"
(unless -id=false) and the last column is the sum of the bedgraph scores of
the merged intervals.  That sum does not include sub-threshold positions
between merged intervals.

"bio-peaks merge" is the merge step on its own: it sums the scores of
intervals at most -d bases apart in a sorted bedgraph, like
"bedtools merge -d <d> -c 4 -o sum".

Sample usage:
bio-peaks call \
    -threshold 3 \
    -min-length 20 \
    -inter-peak-distance 100 \
    sample.bg
writes sample_peaks.bed.
*/
package main
