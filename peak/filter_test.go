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
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestFilterThreshold(t *testing.T) {
	in := []Interval{
		{"chr1", 0, 10, 2.9},
		{"chr1", 10, 20, 3},
		{"chr1", 20, 30, 7},
		{"chr2", 0, 10, -1},
	}
	out := FilterThreshold(in, 3)
	expect.EQ(t, out, []Interval{{"chr1", 10, 20, 3}, {"chr1", 20, 30, 7}})
	// The input is left alone.
	expect.EQ(t, len(in), 4)
	expect.EQ(t, in[0].Score, 2.9)

	expect.EQ(t, len(FilterThreshold(in, -5)), 4)
	expect.EQ(t, len(FilterThreshold(in, 8)), 0)
}

func TestFilterLength(t *testing.T) {
	in := []Interval{
		{"chr1", 0, 19, 1},
		{"chr1", 100, 120, 1},
		{"chr1", 200, 300, 1},
		{"chr1", 400, 20401, 1},
	}
	expect.EQ(t, FilterLength(in, 20, 100), []Interval{{"chr1", 100, 120, 1}, {"chr1", 200, 300, 1}})
	expect.EQ(t, FilterLength(in, 20, 0), []Interval{{"chr1", 100, 120, 1}, {"chr1", 200, 300, 1}, {"chr1", 400, 20401, 1}})
	expect.EQ(t, FilterLength(in, 19, 19), []Interval{{"chr1", 0, 19, 1}})
	expect.EQ(t, len(FilterLength(in, 101, 10000)), 0)
}

// randomTrack returns a sorted bedgraph-like track with random gaps and
// scores on two chromosomes.
func randomTrack(r *rand.Rand, n int) []Interval {
	var out []Interval
	for _, chrom := range []string{"chr1", "chr2"} {
		pos := PosType(0)
		for i := 0; i < n; i++ {
			pos += PosType(r.Intn(3) * r.Intn(20))
			length := PosType(1 + r.Intn(30))
			out = append(out, Interval{chrom, pos, pos + length, float64(r.Intn(10))})
			pos += length
		}
	}
	return out
}

func callPeaks(t *testing.T, in []Interval, threshold float64, minLength, maxLength, distance int) []Interval {
	adjacent, err := Merge(FilterThreshold(in, threshold), 0)
	expect.NoError(t, err)
	merged, err := Merge(FilterLength(adjacent, minLength, maxLength), distance)
	expect.NoError(t, err)
	return Sort(merged, nil)
}

func covered(peaks []Interval) int {
	n := 0
	for _, p := range peaks {
		n += p.Len()
	}
	return n
}

// contains reports whether some interval in peaks contains iv.
func contains(peaks []Interval, iv Interval) bool {
	for _, p := range peaks {
		if p.Chrom == iv.Chrom && p.Start <= iv.Start && iv.End <= p.End {
			return true
		}
	}
	return false
}

func TestThresholdMonotonicity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		track := randomTrack(r, 200)
		for threshold := 1.0; threshold < 10; threshold++ {
			lo, hi := threshold-1, threshold
			expect.LE(t, len(FilterThreshold(track, hi)), len(FilterThreshold(track, lo)))

			// Without a length filter, raising the threshold can only shrink
			// the set of bases covered by peaks.
			loPeaks := callPeaks(t, track, lo, 0, 0, 15)
			hiPeaks := callPeaks(t, track, hi, 0, 0, 15)
			expect.LE(t, covered(hiPeaks), covered(loPeaks))
			for _, p := range hiPeaks {
				expect.True(t, contains(loPeaks, p), "threshold %v: %v", hi, p)
			}
		}
	}
}

func TestRaisingThresholdCanSplitPeak(t *testing.T) {
	track := []Interval{
		{"chr1", 0, 10, 5},
		{"chr1", 10, 20, 2},
		{"chr1", 20, 30, 5},
	}
	expect.EQ(t, callPeaks(t, track, 1, 0, 0, 0), []Interval{{"chr1", 0, 30, 12}})
	expect.EQ(t, callPeaks(t, track, 3, 0, 0, 0), []Interval{{"chr1", 0, 10, 5}, {"chr1", 20, 30, 5}})
	// A large enough inter-peak distance bridges the sub-threshold gap again,
	// without adding the gap's score.
	expect.EQ(t, callPeaks(t, track, 3, 0, 0, 10), []Interval{{"chr1", 0, 30, 10}})
}
