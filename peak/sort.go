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
	"bufio"
	"context"
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/peakcall/interval"
)

// ChromOrder maps a chromosome name to its rank in a caller-chosen
// (usually karyotypic) ordering.  Listed chromosomes sort by rank, before any
// unlisted ones; unlisted chromosomes sort lexicographically.  A nil
// ChromOrder is plain lexicographic order.
type ChromOrder map[string]int

// Less reports whether chromosome a sorts before chromosome b.
func (o ChromOrder) Less(a, b string) bool {
	if a == b {
		return false
	}
	rankA, okA := o[a]
	rankB, okB := o[b]
	switch {
	case okA && okB:
		return rankA < rankB
	case okA:
		return true
	case okB:
		return false
	}
	return a < b
}

// Sort returns a copy of in sorted by (chromosome, start, end).
func Sort(in []Interval, order ChromOrder) []Interval {
	out := make([]Interval, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.Chrom != b.Chrom {
			return order.Less(a.Chrom, b.Chrom)
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	return out
}

// LoadChromOrder reads a chromosome ordering from the first column of a
// FASTA index (.fai) or chrom.sizes file; rank is file order.
func LoadChromOrder(ctx context.Context, path string) (order ChromOrder, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, "peak.LoadChromOrder:", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	order = ChromOrder{}
	scanner := bufio.NewScanner(in.Reader(ctx))
	var tokens [1][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		if interval.GetTokens(tokens[:], scanner.Bytes()) == 0 || interval.IsHeader(tokens[0]) {
			continue
		}
		name := string(tokens[0])
		if _, found := order[name]; found {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("peak.LoadChromOrder: %s: duplicate chromosome %s on line %d", path, name, lineIdx))
		}
		order[name] = len(order)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.E(err, "peak.LoadChromOrder:", path)
	}
	return order, nil
}
