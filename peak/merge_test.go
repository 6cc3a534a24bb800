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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		in     []Interval
		maxGap int
		want   []Interval
	}{
		{
			"empty",
			nil,
			0,
			[]Interval{},
		},
		{
			"touching",
			[]Interval{{"chr1", 100, 150, 5}, {"chr1", 150, 200, 6}, {"chr1", 300, 350, 4}},
			0,
			[]Interval{{"chr1", 100, 200, 11}, {"chr1", 300, 350, 4}},
		},
		{
			"gap of one base stays apart at distance 0",
			[]Interval{{"chr1", 100, 150, 5}, {"chr1", 151, 200, 6}},
			0,
			[]Interval{{"chr1", 100, 150, 5}, {"chr1", 151, 200, 6}},
		},
		{
			"overlapping and contained",
			[]Interval{{"chr1", 100, 200, 1}, {"chr1", 120, 150, 2}, {"chr1", 190, 220, 3}},
			0,
			[]Interval{{"chr1", 100, 220, 6}},
		},
		{
			"distance is inclusive",
			[]Interval{{"chr1", 100, 200, 11}, {"chr1", 300, 350, 4}},
			100,
			[]Interval{{"chr1", 100, 350, 15}},
		},
		{
			"distance just short",
			[]Interval{{"chr1", 100, 200, 11}, {"chr1", 300, 350, 4}},
			99,
			[]Interval{{"chr1", 100, 200, 11}, {"chr1", 300, 350, 4}},
		},
		{
			"transitive chain",
			[]Interval{{"chr1", 0, 10, 1}, {"chr1", 15, 20, 2}, {"chr1", 25, 30, 4}, {"chr1", 100, 110, 8}},
			5,
			[]Interval{{"chr1", 0, 30, 7}, {"chr1", 100, 110, 8}},
		},
		{
			"gap measured from the end of the run, not the last interval",
			[]Interval{{"chr1", 0, 100, 1}, {"chr1", 10, 20, 2}, {"chr1", 105, 110, 4}},
			5,
			[]Interval{{"chr1", 0, 110, 7}},
		},
		{
			"chromosomes never merge",
			[]Interval{{"chr2", 0, 10, 1}, {"chr1", 10, 20, 2}, {"chr1", 20, 30, 3}},
			1000,
			[]Interval{{"chr2", 0, 10, 1}, {"chr1", 10, 30, 5}},
		},
	}
	for _, tt := range tests {
		got, err := Merge(tt.in, tt.maxGap)
		assert.NoError(t, err, tt.name)
		expect.EQ(t, got, tt.want, tt.name)
	}
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	in := []Interval{{"chr1", 100, 150, 5}, {"chr1", 150, 200, 6}}
	_, err := Merge(in, 0)
	assert.NoError(t, err)
	expect.EQ(t, in, []Interval{{"chr1", 100, 150, 5}, {"chr1", 150, 200, 6}})
}

func TestMergeErrors(t *testing.T) {
	_, err := Merge([]Interval{{"chr1", 0, 10, 1}}, -1)
	expect.True(t, errors.Is(errors.Invalid, err))

	_, err = Merge([]Interval{{"chr1", 0, 10, 1}, {"chr2", 0, 10, 1}, {"chr1", 20, 30, 1}}, 0)
	expect.True(t, errors.Is(errors.Invalid, err))
	assert.HasSubstr(t, err.Error(), "split chromosome chr1")

	_, err = Merge([]Interval{{"chr1", 50, 60, 1}, {"chr1", 0, 10, 1}}, 0)
	expect.True(t, errors.Is(errors.Invalid, err))
	assert.HasSubstr(t, err.Error(), "unsorted input")
}

func TestMergeIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		track := randomTrack(r, 100)
		for _, d := range []int{0, 1, 7, 50} {
			once, err := Merge(track, d)
			assert.NoError(t, err)
			twice, err := Merge(once, d)
			assert.NoError(t, err)
			expect.EQ(t, twice, once, "distance %d", d)
		}
	}
}

// scoreWithin sums the scores of the intervals in parts that lie inside p.
func scoreWithin(parts []Interval, p Interval) float64 {
	var sum float64
	for _, iv := range parts {
		if iv.Chrom == p.Chrom && p.Start <= iv.Start && iv.End <= p.End {
			sum += iv.Score
		}
	}
	return sum
}

func TestScoreConservation(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		track := randomTrack(r, 200)
		adjacent, err := Merge(FilterThreshold(track, 4), 0)
		assert.NoError(t, err)
		lengthFiltered := FilterLength(adjacent, 10, 40)
		peaks, err := Merge(lengthFiltered, 25)
		assert.NoError(t, err)
		for _, p := range peaks {
			// Scores are small integers, so the float sums are exact.
			expect.EQ(t, p.Score, scoreWithin(lengthFiltered, p))
		}
	}
}

func TestLengthBoundBeforeFinalMerge(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	const minLength, maxLength = 10, 40
	sawLonger := false
	for trial := 0; trial < 20; trial++ {
		track := randomTrack(r, 200)
		adjacent, err := Merge(FilterThreshold(track, 2), 0)
		assert.NoError(t, err)
		lengthFiltered := FilterLength(adjacent, minLength, maxLength)
		for _, iv := range lengthFiltered {
			expect.GE(t, iv.Len(), minLength)
			expect.LE(t, iv.Len(), maxLength)
		}
		peaks, err := Merge(lengthFiltered, 50)
		assert.NoError(t, err)
		for _, p := range peaks {
			// The final merge may exceed maxLength, but never shrinks below
			// minLength.
			expect.GE(t, p.Len(), minLength)
			if p.Len() > maxLength {
				sawLonger = true
			}
		}
	}
	expect.True(t, sawLonger)
}
