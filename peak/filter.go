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

// FilterThreshold returns the intervals whose score is >= threshold, in their
// original order.
func FilterThreshold(in []Interval, threshold float64) []Interval {
	out := make([]Interval, 0, len(in))
	for _, iv := range in {
		if iv.Score >= threshold {
			out = append(out, iv)
		}
	}
	return out
}

// FilterLength returns the intervals with minLength <= Len() <= maxLength,
// in their original order.  maxLength <= 0 removes the upper bound.
func FilterLength(in []Interval, minLength, maxLength int) []Interval {
	out := make([]Interval, 0, len(in))
	for _, iv := range in {
		n := iv.Len()
		if n < minLength {
			continue
		}
		if maxLength > 0 && n > maxLength {
			continue
		}
		out = append(out, iv)
	}
	return out
}
